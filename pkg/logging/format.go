package logging

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Format represents the log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat parses a log format string, defaulting to text
func ParseFormat(s string) Format {
	if strings.ToLower(s) == string(FormatJSON) {
		return FormatJSON
	}
	return FormatText
}

// encode formats one log entry, terminated by a newline
func encode(format Format, now time.Time, level Level, msg string, err error, fields Fields) ([]byte, error) {
	if format == FormatJSON {
		return encodeJSON(now, level, msg, err, fields)
	}
	return encodeText(now, level, msg, err, fields), nil
}

func encodeJSON(now time.Time, level Level, msg string, err error, fields Fields) ([]byte, error) {
	entry := map[string]interface{}{
		"timestamp": now.UTC().Format(time.RFC3339),
		"level":     level.String(),
		"message":   msg,
	}

	if err != nil {
		entry["error"] = err.Error()
	}

	for k, v := range fields {
		entry[k] = v
	}

	data, jsonErr := json.Marshal(entry)
	if jsonErr != nil {
		return nil, jsonErr
	}

	return append(data, '\n'), nil
}

// encodeText writes fields in key order so lines are stable
func encodeText(now time.Time, level Level, msg string, err error, fields Fields) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", now.UTC().Format("2006-01-02T15:04:05.000Z"), level.String(), msg)

	if err != nil {
		fmt.Fprintf(&b, " error=%q", err.Error())
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}

	b.WriteByte('\n')
	return []byte(b.String())
}
