package logger

import (
	"fmt"
	"strings"
)

// ParseLevel converts the textual level used in configs to a level constant.
func ParseLevel(s string) (int, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG, nil
	case "", "info":
		return INFO, nil
	case "warn", "warning":
		return WARNING, nil
	case "error":
		return ERROR, nil
	case "silence":
		return SILENCE, nil
	}

	return 0, fmt.Errorf("unknown log level %s", s)
}
