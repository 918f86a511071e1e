package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd - родительская команда для всех операций с авторизацией пользователя
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление аккаунтом",
	Long:  `Регистрация, вход и выход из аккаунта Canlog.`,
}
