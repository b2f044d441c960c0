package config

const (
	ServiceName = "Meeting Agent API"
	Version     = "0.4.3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)
