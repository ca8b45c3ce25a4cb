package git

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// setupRepoWithHistory creates a repository with two commits so that
// shallow clones of it are meaningful.
func setupRepoWithHistory(t *testing.T) string {
	t.Helper()
	dir := setupTestRepo(t)

	updated := `package "p" {
  type "A" {
    field "b" {
      type = "p.B"
    }
  }

  type "B" {
    field "a" {
      type = "p.A"
    }
  }
}
`
	if err := os.WriteFile(filepath.Join(dir, "model.graph.hcl"), []byte(updated), 0644); err != nil {
		t.Fatalf("failed to update model file: %v", err)
	}
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "add back reference")

	return dir
}

func TestFindGitRoot(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	repoDir := setupTestRepo(t)

	// Create a nested directory and resolve the root from within it
	subDir := filepath.Join(repoDir, "models", "billing")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	root, err := FindGitRoot(subDir)
	if err != nil {
		t.Fatalf("FindGitRoot() error = %v", err)
	}

	wantRoot, _ := filepath.EvalSymlinks(repoDir)
	gotRoot, _ := filepath.EvalSymlinks(root)
	if gotRoot != wantRoot {
		t.Errorf("FindGitRoot() = %q, want %q", gotRoot, wantRoot)
	}
}

func TestFindGitRoot_NotARepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	dir := t.TempDir()

	_, err := FindGitRoot(dir)
	if err == nil {
		t.Fatal("expected error for directory outside any repository")
	}

	var notRepo *ErrNotARepository
	if !errors.As(err, &notRepo) {
		t.Fatalf("error type = %T, want *ErrNotARepository", err)
	}
}

func TestIsGitRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	repoDir := setupTestRepo(t)
	if !IsGitRepository(repoDir) {
		t.Error("IsGitRepository() = false, want true for a repository")
	}

	if IsGitRepository(t.TempDir()) {
		t.Error("IsGitRepository() = true, want false for a plain directory")
	}
}

func TestIsShallowClone_True(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	remoteDir := setupRepoWithHistory(t)

	shallowDir := t.TempDir()
	cmd := exec.Command("git", "clone", "--depth=1", remoteDir, shallowDir)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git clone --depth=1 failed: %v\n%s", err, output)
	}

	// Some git configs do not create the shallow file for local clones
	shallowFile := filepath.Join(shallowDir, ".git", "shallow")
	if _, err := os.Stat(shallowFile); os.IsNotExist(err) {
		t.Skip("git did not create shallow file for local clone (git version/config dependent)")
	}

	isShallow, err := IsShallowClone(shallowDir)
	if err != nil {
		t.Fatalf("IsShallowClone() error = %v", err)
	}
	if !isShallow {
		t.Error("IsShallowClone() = false, want true for shallow clone")
	}
}

func TestIsShallowClone_False(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	repoDir := setupTestRepo(t)

	isShallow, err := IsShallowClone(repoDir)
	if err != nil {
		t.Fatalf("IsShallowClone() error = %v", err)
	}
	if isShallow {
		t.Error("IsShallowClone() = true, want false for full repository")
	}
}

func TestGetHEAD(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	repoDir := setupTestRepo(t)
	want := getHeadSHA(t, repoDir)

	sha, err := GetHEAD(repoDir)
	if err != nil {
		t.Fatalf("GetHEAD() error = %v", err)
	}
	if sha != want {
		t.Errorf("GetHEAD() = %q, want %q", sha, want)
	}
}
