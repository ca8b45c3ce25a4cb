package git

import (
	"errors"
	"strings"
	"testing"
)

func TestGitError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *GitError
		contains []string
	}{
		{
			name: "includes command name",
			err: &GitError{
				Command:  []string{"status"},
				ExitCode: 1,
				Stderr:   "fatal: not a git repository",
			},
			contains: []string{"git", "status", "exit 1", "fatal: not a git repository"},
		},
		{
			name: "includes exit code",
			err: &GitError{
				Command:  []string{"rev-parse", "--verify", "HEAD"},
				ExitCode: 128,
				Stderr:   "fatal: bad revision",
			},
			contains: []string{"128", "bad revision"},
		},
		{
			name: "empty stderr",
			err: &GitError{
				Command:  []string{"worktree"},
				ExitCode: 1,
				Stderr:   "",
			},
			contains: []string{"worktree", "exit 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errMsg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(errMsg, s) {
					t.Errorf("Error() = %q, want to contain %q", errMsg, s)
				}
			}
		})
	}
}

func TestErrRefNotFound_Error(t *testing.T) {
	tests := []struct {
		name        string
		err         *ErrRefNotFound
		contains    []string
		notContains []string
	}{
		{
			name: "simple ref not found",
			err: &ErrRefNotFound{
				Ref:       "nonexistent-branch",
				IsShallow: false,
			},
			contains:    []string{"nonexistent-branch", "not found"},
			notContains: []string{"shallow"},
		},
		{
			name: "ref not found in shallow clone",
			err: &ErrRefNotFound{
				Ref:       "v1.0.0",
				IsShallow: true,
			},
			contains: []string{"v1.0.0", "not found", "shallow", "git fetch origin v1.0.0", "--unshallow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errMsg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(errMsg, s) {
					t.Errorf("Error() = %q, want to contain %q", errMsg, s)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(errMsg, s) {
					t.Errorf("Error() = %q, should not contain %q", errMsg, s)
				}
			}
		})
	}
}

func TestErrNotARepository_Error(t *testing.T) {
	err := &ErrNotARepository{Dir: "/tmp/not-a-repo"}
	errMsg := err.Error()

	if !strings.Contains(errMsg, "/tmp/not-a-repo") {
		t.Errorf("Error() = %q, want to contain directory path", errMsg)
	}
	if !strings.Contains(errMsg, "not a git repository") {
		t.Errorf("Error() = %q, want to contain 'not a git repository'", errMsg)
	}
}

func TestErrVersionTooOld_Error(t *testing.T) {
	err := &ErrVersionTooOld{Current: "2.3.0", Required: "2.5.0"}
	errMsg := err.Error()

	if !strings.Contains(errMsg, "2.3.0") {
		t.Errorf("Error() = %q, want to contain current version", errMsg)
	}
	if !strings.Contains(errMsg, "2.5.0") {
		t.Errorf("Error() = %q, want to contain required version", errMsg)
	}
}

func TestIsNotFound_True(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "exit code 128 with unknown revision",
			err: &GitError{
				Command:  []string{"rev-parse", "--verify", "nonexistent"},
				ExitCode: 128,
				Stderr:   "fatal: Needed a single revision",
			},
		},
		{
			name: "exit code 128 with bad object",
			err: &GitError{
				Command:  []string{"rev-parse", "--verify", "bad-ref"},
				ExitCode: 128,
				Stderr:   "fatal: bad object bad-ref",
			},
		},
		{
			name: "rev-parse exit code 1 (quiet verify)",
			err: &GitError{
				Command:  []string{"rev-parse", "--verify", "--quiet", "nonexistent"},
				ExitCode: 1,
				Stderr:   "",
			},
		},
		{
			name: "pathspec did not match",
			err: &GitError{
				Command:  []string{"show", "nonexistent:file.txt"},
				ExitCode: 128,
				Stderr:   "fatal: pathspec 'nonexistent:file.txt' did not match any file(s) known to git",
			},
		},
		{
			name: "ErrRefNotFound error type",
			err:  &ErrRefNotFound{Ref: "missing"},
		},
		{
			name: "wrapped ErrRefNotFound",
			err:  errors.Join(errors.New("resolving base"), &ErrRefNotFound{Ref: "main"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !IsNotFound(tt.err) {
				t.Errorf("IsNotFound() = false, want true")
			}
		})
	}
}

func TestIsNotFound_False(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "generic error",
			err:  errors.New("some error"),
		},
		{
			name: "terminal prompts disabled is auth, not missing ref",
			err: &GitError{
				Command:  []string{"fetch", "origin"},
				ExitCode: 128,
				Stderr:   "fatal: could not read Username: terminal prompts disabled",
			},
		},
		{
			name: "auth failure with exit code 1",
			err: &GitError{
				Command:  []string{"fetch", "origin"},
				ExitCode: 1,
				Stderr:   "git@github.com: Permission denied (publickey).",
			},
		},
		{
			name: "network error",
			err: &GitError{
				Command:  []string{"fetch", "origin"},
				ExitCode: 128,
				Stderr:   "fatal: unable to access 'https://github.com/org/repo.git/': Could not resolve host",
			},
		},
		{
			name: "nil error",
			err:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsNotFound(tt.err) {
				t.Errorf("IsNotFound() = true, want false for %q", tt.name)
			}
		})
	}
}

func TestErrGitNotFound(t *testing.T) {
	if ErrGitNotFound == nil {
		t.Fatal("ErrGitNotFound should not be nil")
	}

	if !strings.Contains(ErrGitNotFound.Error(), "git") {
		t.Errorf("ErrGitNotFound.Error() = %q, want to contain 'git'", ErrGitNotFound.Error())
	}
}
