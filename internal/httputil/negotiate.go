package httputil

import (
	"net/http"
	"strconv"
	"strings"
)

// Format is the negotiated response representation.
type Format int

const (
	// FormatHTML is the default human-oriented representation.
	FormatHTML Format = iota
	// FormatJSON is the structured-data representation, chosen only when
	// the client explicitly prefers it.
	FormatJSON
)

// NegotiateFormat picks the response representation from the Accept header.
// JSON wins only when application/json is acceptable with a quality at
// least as high as any HTML or wildcard alternative; everything else,
// including an absent header, renders HTML. Negotiation is independent of
// the operation's outcome.
func NegotiateFormat(r *http.Request) Format {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return FormatHTML
	}

	jsonQ := -1.0
	htmlQ := -1.0

	for _, part := range strings.Split(accept, ",") {
		mediaType, q := parseMediaRange(part)
		switch mediaType {
		case "application/json":
			if q > jsonQ {
				jsonQ = q
			}
		case "text/html", "application/xhtml+xml", "text/*":
			if q > htmlQ {
				htmlQ = q
			}
		case "*/*":
			// A wildcard keeps HTML in play but never promotes JSON
			if q > htmlQ {
				htmlQ = q
			}
		}
	}

	if jsonQ > 0 && jsonQ >= htmlQ {
		return FormatJSON
	}
	return FormatHTML
}

// parseMediaRange splits one Accept entry into media type and q-value.
func parseMediaRange(part string) (string, float64) {
	fields := strings.Split(part, ";")
	mediaType := strings.ToLower(strings.TrimSpace(fields[0]))
	q := 1.0

	for _, param := range fields[1:] {
		param = strings.TrimSpace(param)
		if value, ok := strings.CutPrefix(param, "q="); ok {
			if parsed, err := strconv.ParseFloat(value, 64); err == nil {
				q = parsed
			}
		}
	}

	return mediaType, q
}
