package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Secrets have no fallback defaults: the process
// refuses to start when they are missing, so the hardcoded credentials of
// earlier server generations cannot resurface.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	DBDriver string // "mysql" or "sqlite"
	DBUser   string // database username (mysql)
	DBPass   string // database password (optional)
	DBHost   string // database host address (mysql)
	DBPort   string // database port number (mysql)
	DBName   string // database name (mysql)
	DBPath   string // database file path (sqlite)

	JWTSecret     string // secret used to sign admin session tokens
	TokenTTLHours int    // admin session token time-to-live in hours
	AdminEmail    string // admin login email
	AdminPassword string // admin login password, hashed before storage
	BcryptCost    int    // bcrypt cost for hashing the admin password

	BlobDriver string // "local" or "s3"
	UploadDir  string // directory for locally stored uploads
	S3Bucket   string // bucket name for the s3 blob backend
	S3Region   string // region for the s3 blob backend
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file is honoured when present.  Required variables are
// enforced by must() and missing values cause the program to exit with a
// fatal log message.
func Load() Config {
	_ = godotenv.Load() // optional .env file; ignore absence

	cfg := Config{
		Env:           getenvDefault("APP_ENV", "dev"),
		Port:          getenvDefault("APP_PORT", "5000"),
		DBDriver:      getenvDefault("DB_DRIVER", "mysql"),
		DBPass:        os.Getenv("DB_PASS"),
		JWTSecret:     must("JWT_SECRET"),
		TokenTTLHours: intDefault("TOKEN_TTL_HOURS", 24),
		AdminEmail:    must("ADMIN_EMAIL"),
		AdminPassword: must("ADMIN_PASSWORD"),
		BcryptCost:    intDefault("BCRYPT_COST", 10),
		BlobDriver:    getenvDefault("BLOB_DRIVER", "local"),
		UploadDir:     getenvDefault("UPLOAD_DIR", "uploads"),
	}

	switch cfg.DBDriver {
	case "mysql":
		cfg.DBUser = must("DB_USER")
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	case "sqlite":
		cfg.DBPath = getenvDefault("DB_PATH", "ems.db")
	default:
		log.Fatalf("unsupported DB_DRIVER: %q", cfg.DBDriver)
	}

	switch cfg.BlobDriver {
	case "local":
		// UploadDir already set
	case "s3":
		cfg.S3Bucket = must("S3_BUCKET")
		cfg.S3Region = must("S3_REGION")
	default:
		log.Fatalf("unsupported BLOB_DRIVER: %q", cfg.BlobDriver)
	}

	if cfg.TokenTTLHours <= 0 {
		log.Fatalf("TOKEN_TTL_HOURS must be positive, got %d", cfg.TokenTTLHours)
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
