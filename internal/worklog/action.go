package worklog

import (
	"regexp"
	"strings"
	"unicode"
)

// fallbackAction is used when stripping reduces a message to nothing.
const fallbackAction = "Development work"

// Patterns applied by extractAction, in order.
var (
	ticketTag          = regexp.MustCompile(`\[?[A-Z]+-\d+\]?`)
	prMergeSubject     = regexp.MustCompile(`^Merge pull request #\d+ from \S+\s*`)
	squashSuffix       = regexp.MustCompile(`\s*\(#\d+\)\s*$`)
	mergeBranchPrefix  = regexp.MustCompile(`^Merge branch '[^']+'\s*`)
	bracketedBranch    = regexp.MustCompile(`^\[[^\]]+\]\s*`)
	conventionalPrefix = regexp.MustCompile(`(?i)^(feat|fix|docs|style|refactor|test|chore):\s*`)
	leadingPunct       = regexp.MustCompile(`^[^\pL\pN]+`)
)

// extractAction derives a compact action phrase from a commit message.
//
// Stripping order matters: ticket tags first (so "[ENG-1] fix" and "ENG-1: fix"
// converge), then merge decoration, squash suffixes, branch prefixes, and
// conventional-commit prefixes. Whatever survives gets a leading capital; an
// empty survivor falls back to a generic phrase.
func extractAction(message string) string {
	clean := ticketTag.ReplaceAllString(message, "")
	clean = strings.TrimSpace(clean)

	// A PR merge record only carries useful text after the "from <branch>"
	// segment; the decoration itself says nothing about the work.
	if prMergeSubject.MatchString(clean) {
		clean = prMergeSubject.ReplaceAllString(clean, "")
	}

	clean = squashSuffix.ReplaceAllString(clean, "")
	clean = mergeBranchPrefix.ReplaceAllString(clean, "")
	clean = bracketedBranch.ReplaceAllString(clean, "")
	clean = conventionalPrefix.ReplaceAllString(clean, "")
	clean = leadingPunct.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)

	if clean == "" {
		return fallbackAction
	}

	if r := []rune(clean)[0]; unicode.IsLower(r) {
		clean = upperFirst(clean)
	}
	return clean
}
