package zap

import (
	"strings"
)

// controlCharReplacer escapes control characters that can be used for log
// injection (CWE-117). The JSON encoder already escapes these inside string
// values, so this is primarily a defense for development environments using
// the console encoder.
var controlCharReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// sanitizeString escapes control characters in a single string value.
func sanitizeString(s string) string {
	return controlCharReplacer.Replace(s)
}

// sanitizeArgs escapes control characters in all string-typed arguments.
// Non-string arguments are passed through unchanged.
func sanitizeArgs(args []any) []any {
	sanitized := make([]any, len(args))
	for i, arg := range args {
		if s, ok := arg.(string); ok {
			sanitized[i] = sanitizeString(s)
		} else {
			sanitized[i] = arg
		}
	}

	return sanitized
}

// sanitizeFormat escapes control characters in a format string. The format
// verbs (%s, %d, etc.) are preserved; only literal control characters are
// escaped.
func sanitizeFormat(format string) string {
	return sanitizeString(format)
}
