package client

import (
	gosync "sync"
)

// AuthStatus - дискретное состояние аутентификации клиента.
type AuthStatus string

const (
	AuthLoading         AuthStatus = "loading"
	AuthUnauthenticated AuthStatus = "unauthenticated"
	AuthAuthenticated   AuthStatus = "authenticated"
)

// AuthState - текущее состояние аутентификации и владелец, если он известен.
type AuthState struct {
	Status  AuthStatus
	OwnerID int
}

// AuthNotifier раздаёт переходы состояния аутентификации подписчикам.
// Подписчики получают каждый переход отдельным вызовом, порядок вызовов
// соответствует порядку переходов.
type AuthNotifier struct {
	mu          gosync.RWMutex
	state       AuthState
	subscribers []func(AuthState)
}

func NewAuthNotifier() *AuthNotifier {
	return &AuthNotifier{
		state: AuthState{Status: AuthLoading},
	}
}

// State возвращает текущее состояние.
func (n *AuthNotifier) State() AuthState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state
}

// Subscribe регистрирует подписчика. Подписчик сразу получает текущее
// состояние, дальше - каждый переход.
func (n *AuthNotifier) Subscribe(fn func(AuthState)) {
	n.mu.Lock()
	n.subscribers = append(n.subscribers, fn)
	state := n.state
	n.mu.Unlock()

	fn(state)
}

// Set публикует новое состояние. Повторная публикация того же состояния
// подписчиков не будит.
func (n *AuthNotifier) Set(state AuthState) {
	n.mu.Lock()
	if n.state == state {
		n.mu.Unlock()
		return
	}
	n.state = state
	subs := make([]func(AuthState), len(n.subscribers))
	copy(subs, n.subscribers)
	n.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
