package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr  string
	Host      string
	StaticDir string

	ResultsDriver string // fs|s3
	ResultsDir    string
	S3Bucket      string
	S3Prefix      string
	S3Region      string
	S3Endpoint    string

	GatePassword     string
	GatePassHash     string // bcrypt, takes precedence over GatePassword
	AuthHMACSecret   string
	GateTokenTTL     time.Duration
	RequireGateToken bool

	DBDriver string // sqlite|postgres|mysql|none
	DBDSN    string
	// ExposeAccessLog mounts GET /access-log for viewer token holders.
	ExposeAccessLog bool

	CORSOrigins []string
	LogLevel    string
}

// Load reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func Load(files ...string) Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
	return FromEnv()
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":" + envOr("PORT", "3000")
	}
	static := envOr("STATIC_DIR", "./public")
	return Config{
		HTTPAddr:  addr,
		Host:      envOr("HOST", "localhost"),
		StaticDir: static,

		ResultsDriver: envOr("RESULTS_DRIVER", "fs"),
		ResultsDir:    envOr("RESULTS_DIR", strings.TrimSuffix(static, "/")+"/results-file"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Prefix:      os.Getenv("S3_PREFIX"),
		S3Region:      envOr("S3_REGION", os.Getenv("AWS_REGION")),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),

		GatePassword:     envOr("GATE_PASSWORD", "dcstudent"),
		GatePassHash:     os.Getenv("GATE_PASS_HASH"),
		AuthHMACSecret:   envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		GateTokenTTL:     envDuration("GATE_TOKEN_TTL", 2*time.Hour),
		RequireGateToken: envBool("REQUIRE_GATE_TOKEN", false),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		ExposeAccessLog: envBool("EXPOSE_ACCESS_LOG", false),

		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),
		LogLevel:    envOr("LOG_LEVEL", "info"),
	}
}

// PublicURL is the address printed at startup.
func (c Config) PublicURL() string {
	port := c.HTTPAddr
	if i := strings.LastIndex(port, ":"); i >= 0 {
		port = port[i+1:]
	}
	return "http://" + c.Host + ":" + port
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
func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
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
