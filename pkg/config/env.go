package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// FromEnv overlays HELPQUEUE_* environment variables onto cfg. Variables
// that fail to parse leave cfg untouched and are reported together.
func FromEnv(cfg *Config) error {
	var errs []error
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid integer %q", key, v))
				return
			}
			*dst = n
		}
	}

	str("HELPQUEUE_DOMAIN", &cfg.Domain)
	// PORT is what most hosting platforms set.
	num("PORT", &cfg.Port)
	num("HELPQUEUE_PORT", &cfg.Port)
	str("HELPQUEUE_LOG_LEVEL", &cfg.LogLevel)
	str("HELPQUEUE_TIMEZONE", &cfg.Timezone)

	str("HELPQUEUE_ROSTER_FILE", &cfg.RosterFile)
	num("HELPQUEUE_ROSTER_TTL_SECONDS", &cfg.RosterTTLSeconds)
	str("HELPQUEUE_EVENT_LOG_FILE", &cfg.EventLogFile)
	num("HELPQUEUE_EVENT_BUFFER", &cfg.EventBuffer)
	str("HELPQUEUE_WEBHOOK_URL", &cfg.WebhookURL)

	str("GOOGLE_APPLICATION_CREDENTIALS", &cfg.Sheets.CredentialsFile)
	str("HELPQUEUE_SHEETS_CREDENTIALS", &cfg.Sheets.CredentialsFile)
	str("HELPQUEUE_SHEETS_SPREADSHEET_ID", &cfg.Sheets.SpreadsheetID)
	str("HELPQUEUE_SHEETS_LOG_SHEET", &cfg.Sheets.LogSheet)
	str("HELPQUEUE_SHEETS_STUDENTS_RANGE", &cfg.Sheets.StudentsRange)
	str("HELPQUEUE_SHEETS_HELPERS_RANGE", &cfg.Sheets.HelpersRange)
	num("HELPQUEUE_SHEETS_WRITES_PER_MINUTE", &cfg.Sheets.WritesPerMinute)
	return errors.Join(errs...)
}
