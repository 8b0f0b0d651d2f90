package config

// EnvPrefix is passed to envconfig; individual fields carry fully
// qualified variable names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv         = "MOBILECART_APP_ENV"
	EnvPort           = "MOBILECART_APP_PORT"
	EnvStorageBackend = "MOBILECART_STORAGE_BACKEND"
	EnvStoragePath    = "MOBILECART_STORAGE_PATH"
	EnvStorageDSN     = "MOBILECART_STORAGE_DSN"
	EnvRedisURL       = "MOBILECART_REDIS_URL"
	EnvCatalogBaseURL = "MOBILECART_CATALOG_BASE_URL"
	EnvCatalogAPIKey  = "MOBILECART_CATALOG_API_KEY"
)

const (
	StorageBackendMemory = "memory"
	StorageBackendFile   = "file"
	StorageBackendSQLite = "sqlite"
	StorageBackendPG     = "postgres"
	StorageBackendRedis  = "redis"
)
