package config

import (
	"strings"
	"time"
)

// LoaderConfig selects where shows and venues come from.
//
// Source is one of:
//   file  – SHOWS_PATH and VENUES_PATH (.json, .jsonc, .yaml, .yml, .csv)
//   http  – SHOWS_URL and VENUES_URL returning JSON
//   mysql – the shows and venues tables of DB_NAME
type LoaderConfig struct {
	Source     string
	ShowsPath  string
	VenuesPath string
	ShowsURL   string
	VenuesURL  string
	Timeout    time.Duration
	DB         DBConfig
}

// DBConfig holds MySQL connection settings for the mysql source.
type DBConfig struct {
	User string
	Pass string
	Host string
	Port string
	Name string
}

// LoadLoaderConfig reads DATA_SOURCE and the settings of the selected
// source.  Unused settings are still read; they are harmless.
func LoadLoaderConfig() LoaderConfig {
	return LoaderConfig{
		Source:     strings.ToLower(envStr("DATA_SOURCE", "file")),
		ShowsPath:  envStr("SHOWS_PATH", "data/shows.json"),
		VenuesPath: envStr("VENUES_PATH", "data/venues.json"),
		ShowsURL:   envStr("SHOWS_URL", ""),
		VenuesURL:  envStr("VENUES_URL", ""),
		Timeout:    envDur("DATA_LOAD_TIMEOUT", 10*time.Second),
		DB: DBConfig{
			User: envStr("DB_USER", "root"),
			Pass: envStr("DB_PASS", ""),
			Host: envStr("DB_HOST", "localhost"),
			Port: envStr("DB_PORT", "3306"),
			Name: envStr("DB_NAME", "circus"),
		},
	}
}
