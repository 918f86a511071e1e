package user

import "canlog/internal/domain/user"

type registerInput struct {
	Body user.BaseRequest
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     int    `json:"user_id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type loginInput struct {
	Body user.BaseRequest
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token  string `json:"token"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type logoutInput struct {
	Authorization string `header:"Authorization" doc:"Bearer токен текущей сессии"`
}

type logoutOutput struct {
	Body LogoutResponse
}

type LogoutResponse struct {
	Status string `json:"status"`
}
