package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	CORSOrigins []string

	// EnableAuth gates the JWT middleware; a single-user local install runs
	// open, the hosted variant turns it on.
	EnableAuth    bool
	AuthSecret    string
	AdminUser     string
	AdminPassHash string // bcrypt

	DefaultQuizSize int
}

func FromEnv() Config {
	// Local installs keep settings in a .env next to the binary.
	_ = godotenv.Load()

	return Config{
		HTTPAddr:        envOr("HTTP_ADDR", ":8080"),
		DBDriver:        envOr("DB_DRIVER", "sqlite"),
		DBDSN:           envOr("DB_DSN", ""),
		CORSOrigins:     csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		EnableAuth:      envBool("ENABLE_AUTH", false),
		AuthSecret:      envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AdminUser:       envOr("ADMIN_USER", "admin"),
		AdminPassHash:   envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		DefaultQuizSize: envInt("DEFAULT_QUIZ_SIZE", 10),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(k)); err == nil && v > 0 {
		return v
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
