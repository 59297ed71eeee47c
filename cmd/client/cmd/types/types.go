package types

type contextKey string

// ClientAppKey is the context key subcommands use to reach the wired
// client application.
const ClientAppKey contextKey = "app"
