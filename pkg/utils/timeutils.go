package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDuration formata uma duração para exibição amigável
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour

	m := d / time.Minute
	d -= m * time.Minute

	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	} else if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatDateTimeMs formata um time.Time para exibição com milissegundos
func FormatDateTimeMs(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.000")
}

// ParseTimestamp interpreta o timestamp de captura enviado pelo cliente:
// ISO 8601 ou Unix em segundos/milissegundos
func ParseTimestamp(timestamp string) (time.Time, error) {
	timestamp = strings.TrimSpace(timestamp)

	if n, err := strconv.ParseInt(timestamp, 10, 64); err == nil {
		// Números grandes são milissegundos
		if n > 1000000000000 {
			return time.UnixMilli(n), nil
		}
		return time.Unix(n, 0), nil
	}

	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, timestamp); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("formato de timestamp não reconhecido: %q", timestamp)
}
