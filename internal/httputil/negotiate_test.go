package httputil

import (
	"net/http/httptest"
	"testing"
)

func TestNegotiateFormat(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   Format
	}{
		{
			name:   "explicit json",
			accept: "application/json",
			want:   FormatJSON,
		},
		{
			name:   "html with wildcard",
			accept: "text/html,*/*",
			want:   FormatHTML,
		},
		{
			name:   "no accept header",
			accept: "",
			want:   FormatHTML,
		},
		{
			name:   "browser default",
			accept: "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			want:   FormatHTML,
		},
		{
			name:   "json preferred over html",
			accept: "application/json,text/html;q=0.5",
			want:   FormatJSON,
		},
		{
			name:   "json downgraded below html",
			accept: "text/html,application/json;q=0.2",
			want:   FormatHTML,
		},
		{
			name:   "wildcard only",
			accept: "*/*",
			want:   FormatHTML,
		},
		{
			name:   "json and equal wildcard",
			accept: "application/json,*/*",
			want:   FormatJSON,
		},
		{
			name:   "unrelated types",
			accept: "image/png",
			want:   FormatHTML,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}

			if got := NegotiateFormat(r); got != tt.want {
				t.Errorf("NegotiateFormat(%q) = %v, want %v", tt.accept, got, tt.want)
			}
		})
	}
}
