package config

import "os"

type Config struct {
	Addr     string
	DBPath   string
	JikanURL string
}

func Default() Config {
	return Config{
		Addr:     envOr("ASW_ADDR", "127.0.0.1:8080"),
		DBPath:   envOr("ASW_DB_PATH", "aniswipe.db"),
		JikanURL: envOr("ASW_JIKAN_URL", "https://api.jikan.moe/v4"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
