package git

import (
	"errors"
	"os/exec"
	"testing"
)

// createTag creates a lightweight tag at HEAD.
func createTag(t *testing.T, dir, tag string) {
	t.Helper()
	runGit(t, dir, "tag", tag)
}

// getHeadSHA returns the commit SHA of HEAD.
func getHeadSHA(t *testing.T, dir string) string {
	t.Helper()
	return runGit(t, dir, "rev-parse", "HEAD")
}

func TestRefExists_Branch(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	repoDir := setupTestRepo(t)

	exists, err := RefExists(repoDir, "HEAD")
	if err != nil {
		t.Fatalf("RefExists() error = %v", err)
	}
	if !exists {
		t.Error("RefExists('HEAD') = false, want true")
	}
}

func TestRefExists_Tag(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	repoDir := setupTestRepo(t)
	createTag(t, repoDir, "v1.0.0")

	exists, err := RefExists(repoDir, "v1.0.0")
	if err != nil {
		t.Fatalf("RefExists() error = %v", err)
	}
	if !exists {
		t.Error("RefExists('v1.0.0') = false, want true")
	}
}

func TestRefExists_Commit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	repoDir := setupTestRepo(t)
	sha := getHeadSHA(t, repoDir)

	exists, err := RefExists(repoDir, sha)
	if err != nil {
		t.Fatalf("RefExists() error = %v", err)
	}
	if !exists {
		t.Errorf("RefExists(%q) = false, want true", sha)
	}
}

func TestRefExists_Missing(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	repoDir := setupTestRepo(t)

	exists, err := RefExists(repoDir, "no-such-branch")
	if err != nil {
		t.Fatalf("RefExists() error = %v", err)
	}
	if exists {
		t.Error("RefExists('no-such-branch') = true, want false")
	}
}

func TestResolveRef(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	repoDir := setupTestRepo(t)
	want := getHeadSHA(t, repoDir)

	sha, err := ResolveRef(repoDir, "HEAD")
	if err != nil {
		t.Fatalf("ResolveRef() error = %v", err)
	}
	if sha != want {
		t.Errorf("ResolveRef('HEAD') = %q, want %q", sha, want)
	}
}

func TestResolveRef_Tag(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	repoDir := setupTestRepo(t)
	createTag(t, repoDir, "v2.0.0")
	want := getHeadSHA(t, repoDir)

	sha, err := ResolveRef(repoDir, "v2.0.0")
	if err != nil {
		t.Fatalf("ResolveRef() error = %v", err)
	}
	if sha != want {
		t.Errorf("ResolveRef('v2.0.0') = %q, want %q", sha, want)
	}
}

func TestResolveRef_NotFound(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	repoDir := setupTestRepo(t)

	_, err := ResolveRef(repoDir, "no-such-ref")
	if err == nil {
		t.Fatal("expected error for missing ref")
	}

	var refErr *ErrRefNotFound
	if !errors.As(err, &refErr) {
		t.Fatalf("error type = %T, want *ErrRefNotFound", err)
	}
	if refErr.Ref != "no-such-ref" {
		t.Errorf("Ref = %q, want %q", refErr.Ref, "no-such-ref")
	}
	if refErr.IsShallow {
		t.Error("IsShallow = true, want false for a full local repository")
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound() = false, want true")
	}
}
