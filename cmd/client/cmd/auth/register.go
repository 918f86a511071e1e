// cmd/client/cmd/auth/register.go
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

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать новый аккаунт",
	Long: `Регистрация нового аккаунта на сервере Canlog.

Журнал можно вести и без аккаунта: он нужен только для
синхронизации между устройствами.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		fmt.Println("=== Регистрация ===")
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

		fmt.Print("Повторите пароль: ")
		confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		if string(password) != string(confirm) {
			return fmt.Errorf("пароли не совпадают")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := app.Register(ctx, login, string(password)); err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		fmt.Println("✓ Аккаунт создан")
		fmt.Println("Теперь выполните вход: canlog auth login")

		return nil
	},
}
