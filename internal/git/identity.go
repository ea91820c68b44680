package git

import (
	"regexp"
	"strings"

	"github.com/gorewood/worklog/internal/output"
)

// Identity is the acting user identity from git configuration.
// Both fields are mandatory: authorship filtering cannot work without them.
type Identity struct {
	Name  string
	Email string
}

// LoadIdentity reads user.name and user.email from the repository's git
// configuration. Fails if either is unset.
func LoadIdentity(dir string) (Identity, error) {
	name, nameErr := Run(dir, "config", "user.name")
	email, emailErr := Run(dir, "config", "user.email")

	// git config exits non-zero for unset keys; treat that the same as empty.
	if nameErr != nil || name == "" || emailErr != nil || email == "" {
		return Identity{}, output.NewUserError(
			"git user.name and user.email must be configured (git config user.name / user.email)")
	}

	return Identity{Name: name, Email: email}, nil
}

// authorPredicate reports whether a commit author matches the identity.
// Predicates are evaluated in order; the first match wins. Keeping each
// heuristic as its own function keeps them independently testable.
type authorPredicate func(id Identity, authorName, authorEmail string) bool

var authorPredicates = []authorPredicate{
	matchExactName,
	matchExactEmail,
	matchEmailLocalPart,
	matchNoreplyHandle,
	matchFuzzyName,
	matchNameToken,
}

// MatchesAuthor reports whether a commit author matches the acting identity.
// Matching is deliberately permissive: contributors commit under GitHub
// noreply addresses, work emails, and handle-style names interchangeably.
func MatchesAuthor(id Identity, authorName, authorEmail string) bool {
	for _, predicate := range authorPredicates {
		if predicate(id, authorName, authorEmail) {
			return true
		}
	}
	return false
}

// matchExactName: the commit author name equals the configured name.
func matchExactName(id Identity, authorName, _ string) bool {
	return authorName == id.Name
}

// matchExactEmail: emails are equal after stripping angle brackets,
// case-insensitive.
func matchExactEmail(id Identity, _, authorEmail string) bool {
	return strings.EqualFold(stripAngleBrackets(authorEmail), stripAngleBrackets(id.Email))
}

// matchEmailLocalPart: the local parts before '@' are equal.
func matchEmailLocalPart(id Identity, _, authorEmail string) bool {
	commitLocal := localPart(authorEmail)
	configLocal := localPart(id.Email)
	return commitLocal != "" && strings.EqualFold(commitLocal, configLocal)
}

// matchNoreplyHandle: for addresses like 12345+handle@users.noreply.github.com,
// the extracted handles are equal.
func matchNoreplyHandle(id Identity, _, authorEmail string) bool {
	if !isNoreply(authorEmail) && !isNoreply(id.Email) {
		return false
	}
	commitHandle := handle(authorEmail)
	configHandle := handle(id.Email)
	return commitHandle != "" && strings.EqualFold(commitHandle, configHandle)
}

// matchFuzzyName: the commit email's local part (or noreply handle) equals the
// configured name after stripping whitespace and non-alphanumerics.
func matchFuzzyName(id Identity, _, authorEmail string) bool {
	normalized := normalizeFuzzy(id.Name)
	if normalized == "" {
		return false
	}
	return normalizeFuzzy(handle(authorEmail)) == normalized
}

// matchNameToken: a whitespace-separated token of the configured name matches
// the commit email's local part under the same fuzzy normalization.
func matchNameToken(id Identity, _, authorEmail string) bool {
	emailPart := normalizeFuzzy(handle(authorEmail))
	if emailPart == "" {
		return false
	}
	for _, token := range strings.Fields(id.Name) {
		if normalizeFuzzy(token) == emailPart {
			return true
		}
	}
	return false
}

// stripAngleBrackets removes a surrounding <...> from an email.
func stripAngleBrackets(email string) string {
	email = strings.TrimSpace(email)
	email = strings.TrimPrefix(email, "<")
	email = strings.TrimSuffix(email, ">")
	return email
}

// localPart returns the part of an email before '@'.
func localPart(email string) string {
	email = stripAngleBrackets(email)
	at := strings.Index(email, "@")
	if at < 0 {
		return email
	}
	return email[:at]
}

// isNoreply reports whether an email uses a users.noreply host.
func isNoreply(email string) bool {
	email = stripAngleBrackets(email)
	at := strings.Index(email, "@")
	if at < 0 {
		return false
	}
	return strings.HasPrefix(strings.ToLower(email[at+1:]), "users.noreply.")
}

// noreplyIDPrefix matches the numeric id prefix of GitHub noreply addresses
// (e.g. "12345+" in 12345+handle@users.noreply.github.com).
var noreplyIDPrefix = regexp.MustCompile(`^\d+\+`)

// handle extracts the account handle from an email: the local part, with the
// numeric id prefix removed for noreply-style addresses.
func handle(email string) string {
	part := localPart(email)
	if isNoreply(email) {
		part = noreplyIDPrefix.ReplaceAllString(part, "")
	}
	return part
}

// nonAlphanumeric matches everything fuzzy comparison ignores.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

// normalizeFuzzy lowercases and strips whitespace and non-alphanumerics.
func normalizeFuzzy(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "")
}
