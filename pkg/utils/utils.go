package utils

import (
	"encoding/json"

	"github.com/charmbracelet/log"
)

// Logf prints consistent server logs.
func Logf(format string, v ...any) {
	log.Infof("[helpqueue] "+format, v...)
}

// PrettyJSON marshals with indentation.
func PrettyJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}

// LimitStr returns s truncated to n runes with "..." appended if longer.
func LimitStr(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
