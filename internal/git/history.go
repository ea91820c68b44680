package git

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gorewood/worklog/internal/output"
)

// Commit is a raw commit as read from the log.
type Commit struct {
	SHA         string    // Full 40-character SHA
	Short       string    // Abbreviated SHA (typically 7 chars)
	Subject     string    // First line of commit message
	Body        string    // Rest of commit message (may be empty)
	Author      string    // Author name
	AuthorEmail string    // Author email
	Authored    time.Time // Author date (not commit date)
}

// Category is a coarse classification of a commit's message.
type Category string

// Commit categories.
const (
	CategoryFeature  Category = "feature"
	CategoryFix      Category = "fix"
	CategoryRefactor Category = "refactor"
	CategoryOther    Category = "other"
)

// AnnotatedCommit is a commit annotated with ticket and category metadata.
// Derived deterministically from the message; never mutated after creation.
type AnnotatedCommit struct {
	Commit
	Ticket   string   // Ticket identifier like ENG-155, empty if none
	Category Category // Coarse category from message keywords
	IsMerge  bool     // True for merge metadata records
}

// Reader queries a repository's commit history for the acting user.
type Reader struct {
	dir string
}

// NewReader creates a Reader for the repository at dir.
// An empty dir means the current working directory.
func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

// Lookback/lookahead padding around the requested window. Merge-commit dates
// lag authorship dates, and git's native since/until filter on commit time,
// not author time, so the fetch is deliberately wider than the result window.
const (
	fetchLookbackDays  = 7
	fetchLookaheadDays = 1
)

// CommitsForDate returns the acting user's commits authored on the calendar
// day starting at date (local midnight), oldest first.
func (r *Reader) CommitsForDate(date time.Time) ([]AnnotatedCommit, error) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return r.CommitsBetween(from, from.AddDate(0, 0, 1))
}

// CommitsBetween returns the acting user's commits whose authored timestamp
// falls in the half-open window [from, to), oldest first.
//
// The underlying query spans all refs and a wider window; results are
// filtered down by authored timestamp, authorship, and noise heuristics:
// stash artifacts are dropped, merge records made redundant by a same-day
// commit with the same PR number are dropped, and rebased/squashed duplicates
// are collapsed.
func (r *Reader) CommitsBetween(from, to time.Time) ([]AnnotatedCommit, error) {
	if _, err := RepoRoot(r.dir); err != nil {
		return nil, err
	}

	identity, err := LoadIdentity(r.dir)
	if err != nil {
		return nil, err
	}

	commits, err := r.fetch(from.AddDate(0, 0, -fetchLookbackDays), to.AddDate(0, 0, fetchLookaheadDays))
	if err != nil {
		return nil, err
	}

	return assemble(commits, identity, from, to), nil
}

// assemble runs the post-fetch pipeline: stash and authorship filtering,
// redundant-merge removal, duplicate collapse, the exact half-open window
// check on the authored timestamp, and annotation.
func assemble(commits []Commit, identity Identity, from, to time.Time) []AnnotatedCommit {
	var surviving []Commit
	for _, commit := range commits {
		if isStashArtifact(commit.Subject) {
			continue
		}
		if !MatchesAuthor(identity, commit.Author, commit.AuthorEmail) {
			continue
		}
		surviving = append(surviving, commit)
	}

	surviving = dropRedundantMerges(surviving)
	surviving = dedupeByMessage(surviving)

	var annotated []AnnotatedCommit
	for _, commit := range surviving {
		// The fetch window was intentionally wider; enforce the exact
		// half-open window here.
		if commit.Authored.Before(from) || !commit.Authored.Before(to) {
			continue
		}
		annotated = append(annotated, annotate(commit))
	}

	return annotated
}

// Separators for the custom log format, chosen to never appear in messages.
const (
	commitSeparator = "---COMMIT-BOUNDARY---"
	fieldSeparator  = "---FIELD---"
)

// gitTimeLayout renders a local time for git's since/until flags.
// A bare local timestamp keeps git from interpreting the value as UTC.
const gitTimeLayout = "2006-01-02 15:04:05"

// fetch queries the log across all refs for the given (already widened) window.
func (r *Reader) fetch(since, until time.Time) ([]Commit, error) {
	format := strings.Join([]string{
		"%H",  // Full SHA
		"%h",  // Short SHA
		"%s",  // Subject
		"%b",  // Body
		"%an", // Author name
		"%ae", // Author email
		"%at", // Author date, Unix timestamp
	}, fieldSeparator) + commitSeparator

	out, err := Run(r.dir,
		"log", "--all",
		"--since="+since.Format(gitTimeLayout),
		"--until="+until.Format(gitTimeLayout),
		"--pretty=format:"+format,
	)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read git log", err)
	}

	commits := parseCommits(out)

	// git log emits newest first; downstream wants chronological order.
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}

	return commits, nil
}

// parseCommits parses the custom formatted git log output into Commit structs.
func parseCommits(out string) []Commit {
	if out == "" {
		return nil
	}

	var commits []Commit
	for _, commitStr := range strings.Split(out, commitSeparator) {
		commitStr = strings.TrimSpace(commitStr)
		if commitStr == "" {
			continue
		}
		if commit, ok := parseCommitFields(commitStr); ok {
			commits = append(commits, commit)
		}
	}
	return commits
}

// parseCommitFields parses a single commit string into a Commit struct.
// Returns the commit and true if successful, zero value and false otherwise.
func parseCommitFields(commitStr string) (Commit, bool) {
	fields := strings.Split(commitStr, fieldSeparator)
	if len(fields) < 7 {
		return Commit{}, false
	}

	timestamp, err := strconv.ParseInt(strings.TrimSpace(fields[6]), 10, 64)
	if err != nil {
		timestamp = 0
	}

	return Commit{
		SHA:         strings.TrimSpace(fields[0]),
		Short:       strings.TrimSpace(fields[1]),
		Subject:     strings.TrimSpace(fields[2]),
		Body:        strings.TrimSpace(fields[3]),
		Author:      strings.TrimSpace(fields[4]),
		AuthorEmail: strings.TrimSpace(fields[5]),
		Authored:    time.Unix(timestamp, 0),
	}, true
}

// stashPatterns recognize git stash artifacts that surface under --all.
var stashPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^WIP on `),
	regexp.MustCompile(`(?i)^index on `),
	regexp.MustCompile(`(?i)^On \w+:`),
}

// isStashArtifact reports whether a message is a git stash entry.
func isStashArtifact(message string) bool {
	for _, pattern := range stashPatterns {
		if pattern.MatchString(message) {
			return true
		}
	}
	return false
}

// mergePatterns recognize merge metadata records. Squash merges (ordinary
// messages ending in "(#N)") represent real work and are not matched.
var mergePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^Merge pull request #\d+`),
	regexp.MustCompile(`^Merge branch '`),
	regexp.MustCompile(`^Merge remote-tracking branch`),
	regexp.MustCompile(`^Merge '[^']+' into `),
	regexp.MustCompile(`^Merged in `),
	regexp.MustCompile(`\(Merged by `),
}

// IsMergeRecord reports whether a message is merge metadata rather than work.
func IsMergeRecord(message string) bool {
	for _, pattern := range mergePatterns {
		if pattern.MatchString(message) {
			return true
		}
	}
	return false
}

// prNumberPattern matches the first pull-request reference in a message.
var prNumberPattern = regexp.MustCompile(`#(\d+)`)

// prNumber extracts the first PR number from a message, or 0 if none.
func prNumber(message string) int {
	m := prNumberPattern.FindStringSubmatch(message)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// sameCalendarDay reports whether two timestamps fall on the same local day.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// dropRedundantMerges removes merge records whose PR number also appears on a
// non-merge commit authored the same calendar day. A merge record without a
// PR number, or without a same-day match, is kept: when the source branch was
// deleted, the merge record may be the only trace of the work.
func dropRedundantMerges(commits []Commit) []Commit {
	result := make([]Commit, 0, len(commits))
	for _, commit := range commits {
		if !IsMergeRecord(commit.Subject) {
			result = append(result, commit)
			continue
		}

		pr := prNumber(commit.Subject)
		if pr == 0 {
			result = append(result, commit)
			continue
		}

		redundant := false
		for _, other := range commits {
			if other.SHA == commit.SHA || IsMergeRecord(other.Subject) {
				continue
			}
			if prNumber(other.Subject) == pr && sameCalendarDay(other.Authored, commit.Authored) {
				redundant = true
				break
			}
		}
		if !redundant {
			result = append(result, commit)
		}
	}
	return result
}

// squashSuffixPattern matches a trailing "(#N)" squash-merge marker.
var squashSuffixPattern = regexp.MustCompile(`\s*\(#\d+\)\s*$`)

// whitespaceRun collapses internal whitespace for message keys.
var whitespaceRun = regexp.MustCompile(`\s+`)

// messageKey normalizes a message for duplicate detection: lowercased,
// trimmed, "(#N)" suffix removed, internal whitespace collapsed.
func messageKey(message string) string {
	key := strings.ToLower(strings.TrimSpace(message))
	key = squashSuffixPattern.ReplaceAllString(key, "")
	key = whitespaceRun.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}

// dedupeByMessage collapses rebased/squashed duplicates that differ only by a
// "(#N)" suffix or whitespace. When exactly one duplicate carries the suffix,
// that one is kept; otherwise the first encountered wins.
func dedupeByMessage(commits []Commit) []Commit {
	byKey := make(map[string]int, len(commits))
	result := make([]Commit, 0, len(commits))

	for _, commit := range commits {
		key := messageKey(commit.Subject)
		idx, seen := byKey[key]
		if !seen {
			byKey[key] = len(result)
			result = append(result, commit)
			continue
		}

		keptHasSuffix := squashSuffixPattern.MatchString(result[idx].Subject)
		newHasSuffix := squashSuffixPattern.MatchString(commit.Subject)
		if newHasSuffix && !keptHasSuffix {
			result[idx] = commit
		}
	}

	return result
}

// ticketPattern matches ticket identifiers like ENG-155 or WAY-204.
var ticketPattern = regexp.MustCompile(`[A-Z]+-\d+`)

// ExtractTicket returns the first ticket identifier in a message, or "".
func ExtractTicket(message string) string {
	return ticketPattern.FindString(message)
}

// Classify determines a commit's category from message keywords.
func Classify(message string) Category {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "fix") || strings.Contains(lower, "bug"):
		return CategoryFix
	case strings.Contains(lower, "refactor") || strings.Contains(lower, "cleanup"):
		return CategoryRefactor
	case strings.Contains(lower, "feature") || strings.Contains(lower, "implement") ||
		strings.Contains(lower, "add"):
		return CategoryFeature
	default:
		return CategoryOther
	}
}

// annotate derives ticket and category metadata for a commit.
func annotate(commit Commit) AnnotatedCommit {
	return AnnotatedCommit{
		Commit:   commit,
		Ticket:   ExtractTicket(commit.Subject),
		Category: Classify(commit.Subject),
		IsMerge:  IsMergeRecord(commit.Subject),
	}
}
