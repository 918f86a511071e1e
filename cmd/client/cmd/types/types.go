package types

// ContextKey - тип ключей контекста команд.
type ContextKey string

// ClientAppKey - ключ, под которым собранное приложение лежит в контексте
// команды. Кладётся в PersistentPreRunE корневой команды.
const ClientAppKey ContextKey = "app"
