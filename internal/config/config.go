package config

import (
	"os"
	"strings"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// ModelDir holds one exported regression artifact per dataset kind.
	ModelDir string

	UploadBasePath string

	GenAIAPIKey string
	GenAIModel  string

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:               mode,
		HTTPAddr:           envOr("HTTP_ADDR", ":8080"),
		DBDriver:           envOr("DB_DRIVER", "sqlite"),
		DBDSN:              envOr("DB_DSN", ""),
		ModelDir:           envOr("MODEL_DIR", "./saved_models"),
		UploadBasePath:     envOr("UPLOAD_BASE_PATH", "./data/uploads"),
		GenAIAPIKey:        os.Getenv("GENAI_API_KEY"),
		GenAIModel:         envOr("GENAI_MODEL", "gemini-2.5-flash"),
		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://dashboard.fieldscore.in"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := os.Getenv(k)
	if v == "" {
		v = def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
