package config

// EnvPrefix is passed to envconfig.Process; individual tags carry the full
// variable names so the prefix stays informational.
const EnvPrefix = "TABLEMAPS"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "TABLEMAPS_DB_DSN"
	EnvDBHost = "TABLEMAPS_DB_HOST"
	EnvDBUser = "TABLEMAPS_DB_USER"
	EnvDBName = "TABLEMAPS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
