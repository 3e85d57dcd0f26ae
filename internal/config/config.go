package config

import "os"

// Config holds all runtime settings. Values come from the environment with
// sensible defaults; cmd/markbook loads a .env file first if one exists.
type Config struct {
	DataFile  string // path of the persisted dataset
	ChartsDir string // directory rendered chart PNGs are written to
	ViewAddr  string // listen address for the HTTP chart viewer; empty disables it
	NoColor   bool   // disable colored console output
}

func Load() *Config {
	return &Config{
		DataFile:  getEnv("MARKBOOK_DATA_FILE", "students_data.json"),
		ChartsDir: getEnv("MARKBOOK_CHARTS_DIR", "charts"),
		ViewAddr:  getEnv("MARKBOOK_VIEW_ADDR", ""),
		NoColor:   os.Getenv("MARKBOOK_NO_COLOR") != "",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
