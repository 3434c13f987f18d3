package application

import "testing"

func TestSanitizeHostPort(t *testing.T) {
	cases := map[string]string{
		"localhost:9000":    "127.0.0.1:9000",
		":9000":             "127.0.0.1:9000",
		"127.0.0.1:0":       "127.0.0.1:8080",
		"example.com:70000": "example.com:8080",
		"not-a-hostport":    "127.0.0.1:8080",
	}

	for in, want := range cases {
		if got := sanitizeHostPort(in); got != want {
			t.Errorf("sanitizeHostPort(%q) = %q, want %q", in, got, want)
		}
	}
}
