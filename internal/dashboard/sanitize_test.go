package dashboard

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitize(t *testing.T) {
	token := "_session_id=abc123secret"

	tests := []struct {
		name  string
		text  string
		token string
		want  string
	}{
		{
			name:  "full token redacted",
			text:  "rejected cookie _session_id=abc123secret here",
			token: token,
			want:  "rejected cookie [REDACTED] here",
		},
		{
			name:  "bare value redacted",
			text:  "session abc123secret expired",
			token: token,
			want:  "session [REDACTED] expired",
		},
		{
			name:  "empty token leaves text alone",
			text:  "plain message",
			token: "",
			want:  "plain message",
		},
		{
			name:  "short prose untouched",
			text:  "description too short",
			token: token,
			want:  "description too short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.text, tt.token); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSanitize_TokenLikeRuns(t *testing.T) {
	run := strings.Repeat("A1b2", 100) // 400 chars of base64-ish material
	text := "body contained " + run + " which is secret"

	got := Sanitize(text, "")

	if strings.Contains(got, run) {
		t.Error("token-like run survived sanitization")
	}
	if got != "body contained [REDACTED] which is secret" {
		t.Errorf("got %q", got)
	}

	// Runs under the threshold are prose, not secrets.
	short := strings.Repeat("A1b2", 50) // 200 chars
	if got := Sanitize(short, ""); got != short {
		t.Errorf("short run was redacted: %q", got)
	}
}

func TestSanitize_Truncates(t *testing.T) {
	long := strings.Repeat("error detail. ", 100) // well over the cap
	got := Sanitize(long, "")
	if len(got) != 500 {
		t.Errorf("len = %d, want 500", len(got))
	}
	if !strings.HasPrefix(long, got) {
		t.Error("truncated text should be a prefix of the input")
	}
}

func TestSanitize_TruncatesOnRuneBoundary(t *testing.T) {
	// Place a two-byte rune across the cap so a byte-index cut would split it.
	long := strings.Repeat("a", 499) + "é" + strings.Repeat("b", 50)

	got := Sanitize(long, "")

	if !utf8.ValidString(got) {
		t.Fatalf("truncated text is not valid UTF-8: %q", got[490:])
	}
	if len(got) != 499 {
		t.Errorf("len = %d, want 499 (cut backed off the split rune)", len(got))
	}
	if !strings.HasPrefix(long, got) {
		t.Error("truncated text should be a prefix of the input")
	}
}
