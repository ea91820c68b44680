// Package git reads commit history from a local repository via the git executable.
//
// The package shells out to git, capturing stdout/stderr and translating
// failures into coded errors. Its main entry point is the Reader:
//
//	reader := git.NewReader(repoPath)
//	commits, err := reader.CommitsForDate(date)
//
// CommitsForDate and CommitsBetween return the acting user's commits with
// ticket and category annotations, after filtering stash artifacts, merge
// metadata made redundant by squash merges, and rebase duplicates.
//
// The acting identity comes from git configuration:
//
//	identity, err := git.LoadIdentity(repoPath)
//
// Authorship matching is permissive (exact name, exact email, email local
// part, noreply handles, fuzzy name forms) because contributors rarely commit
// under a single canonical identity.
package git
