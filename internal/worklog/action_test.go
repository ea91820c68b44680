package worklog

import "testing"

func TestExtractAction(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "bracketed ticket tag stripped",
			message: "[ENG-155] Add login form",
			want:    "Add login form",
		},
		{
			name:    "bare ticket stripped",
			message: "ENG-155: add login form",
			want:    "Add login form",
		},
		{
			name:    "conventional prefix stripped",
			message: "feat: add login form",
			want:    "Add login form",
		},
		{
			name:    "conventional prefix case insensitive",
			message: "Fix: session timeout",
			want:    "Session timeout",
		},
		{
			name:    "squash suffix stripped",
			message: "Add login form (#42)",
			want:    "Add login form",
		},
		{
			name:    "pr merge decoration stripped with trailing text",
			message: "Merge pull request #42 from org/login-form Add the new login form",
			want:    "Add the new login form",
		},
		{
			name:    "pr merge decoration with nothing after it",
			message: "Merge pull request #42 from org/login-form",
			want:    "Development work",
		},
		{
			name:    "merge branch prefix stripped",
			message: "Merge branch 'main' into develop",
			want:    "Into develop",
		},
		{
			name:    "bracketed branch prefix stripped",
			message: "[login-form] Wire up the submit button",
			want:    "Wire up the submit button",
		},
		{
			name:    "lowercase subject is capitalized",
			message: "add login form",
			want:    "Add login form",
		},
		{
			name:    "empty message falls back",
			message: "",
			want:    "Development work",
		},
		{
			name:    "only a ticket falls back",
			message: "[ENG-155]",
			want:    "Development work",
		},
		{
			name:    "plain subject passes through",
			message: "Update onboarding copy",
			want:    "Update onboarding copy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractAction(tt.message); got != tt.want {
				t.Errorf("extractAction(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}
