// cmd/client/cmd/init.go
package cmd

import (
	"canlog/cmd/client/cmd/auth"
	"canlog/cmd/client/cmd/entry"
	"canlog/cmd/client/cmd/profile"
	"canlog/cmd/client/cmd/sync"
)

func init() {
	// Команды аутентификации
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	// Команды журнала
	rootCmd.AddCommand(entry.EntryCmd)
	entry.EntryCmd.AddCommand(entry.AddCmd)
	entry.EntryCmd.AddCommand(entry.ListCmd)
	entry.EntryCmd.AddCommand(entry.RemoveCmd)
	entry.EntryCmd.AddCommand(entry.CatalogCmd)

	rootCmd.AddCommand(entry.StatsCmd)

	// Настройки и профиль
	rootCmd.AddCommand(profile.ProfileCmd)
	profile.ProfileCmd.AddCommand(profile.NameCmd)
	profile.ProfileCmd.AddCommand(profile.GoalCmd)
	profile.ProfileCmd.AddCommand(profile.RateLimitCmd)
	profile.ProfileCmd.AddCommand(profile.ShowCmd)

	rootCmd.AddCommand(sync.SyncCmd)
}
