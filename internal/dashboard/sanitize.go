package dashboard

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxErrorTextLen caps outward-facing error text pulled from response bodies.
const maxErrorTextLen = 500

// redacted replaces secret material in outward-facing text.
const redacted = "[REDACTED]"

// tokenLikeRun matches long base64-ish runs that are almost certainly secret
// material (session blobs, signed cookies) rather than prose.
var tokenLikeRun = regexp.MustCompile(`[A-Za-z0-9+/=_%-]{300,}`)

// Sanitize scrubs token material from text destined for users or logs:
// the configured session token (with and without its cookie-name prefix) is
// removed, long token-like runs are redacted, and the result is truncated.
func Sanitize(text, token string) string {
	if token != "" {
		text = strings.ReplaceAll(text, token, redacted)

		// The raw value may appear without the cookie-name prefix.
		if _, value, found := strings.Cut(token, "="); found && value != "" {
			text = strings.ReplaceAll(text, value, redacted)
		}
	}

	text = tokenLikeRun.ReplaceAllString(text, redacted)

	if len(text) > maxErrorTextLen {
		cut := maxErrorTextLen
		// Back up to a rune boundary so the cut never splits a multi-byte rune.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}
