package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

type Config struct {
	Domain   string `json:"domain"`
	Port     int    `json:"port"`
	LogLevel string `json:"logLevel"`
	Timezone string `json:"timezone"`

	RosterFile       string `json:"rosterFile"`
	RosterTTLSeconds int    `json:"rosterTTLSeconds"`

	EventLogFile string `json:"eventLogFile"`
	EventBuffer  int    `json:"eventBuffer"`

	WebhookURL string `json:"webhookURL"`

	Sheets SheetsConfig `json:"sheets"`
}

// SheetsConfig points at the spreadsheet holding the roster and the
// help log.
type SheetsConfig struct {
	CredentialsFile string `json:"credentialsFile"`
	SpreadsheetID   string `json:"spreadsheetID"`
	LogSheet        string `json:"logSheet"`
	StudentsRange   string `json:"studentsRange"`
	HelpersRange    string `json:"helpersRange"`
	WritesPerMinute int    `json:"writesPerMinute"`
}

func (s SheetsConfig) Enabled() bool {
	return s.CredentialsFile != "" && s.SpreadsheetID != ""
}

func Default() Config {
	return Config{
		Domain:           "http://127.0.0.1",
		Port:             8080,
		LogLevel:         "info",
		Timezone:         "UTC",
		RosterTTLSeconds: 300,
		EventBuffer:      256,
		Sheets: SheetsConfig{
			LogSheet:        "Log",
			StudentsRange:   "Alumnos!A2:C",
			HelpersRange:    "Ayudantes!A2:B",
			WritesPerMinute: 60,
		},
	}
}

// Load reads a JSON file over the defaults. An empty path returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err))
	}
	if c.Sheets.CredentialsFile != "" && c.Sheets.SpreadsheetID == "" {
		errs = append(errs, errors.New("sheets credentials set without a spreadsheet id"))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// URL is where the server is reachable, used for the startup banner.
func (c Config) URL() string { return fmt.Sprintf("%s:%d", c.Domain, c.Port) }

func (c Config) RosterTTL() time.Duration {
	return time.Duration(c.RosterTTLSeconds) * time.Second
}

func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
