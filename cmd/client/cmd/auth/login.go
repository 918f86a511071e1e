// cmd/client/cmd/auth/login.go
package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"canlog/cmd/client/cmd/types"
	"canlog/internal/app/client"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в аккаунт Canlog",
	Long: `Аутентификация на сервере Canlog.

После входа токен сохраняется локально, а журнал синхронизируется
с сервером: команда возвращается только после полного прогона.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		fmt.Println("=== Вход в аккаунт ===")
		fmt.Println()

		fmt.Print("Логин: ")
		var login string
		_, _ = fmt.Scanln(&login)

		fmt.Print("Пароль: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		fmt.Println("Аутентификация...")
		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		if err := app.Login(ctx, login, string(password)); err != nil {
			return fmt.Errorf("ошибка входа: %w", err)
		}

		fmt.Println("✓ Вход выполнен, журнал синхронизирован")

		return nil
	},
}
