// Package git provides a safe wrapper around git command execution.
//
// cyclefinder uses it to materialize the model directory at a base ref
// (check --since) in a detached worktree, so the same analysis can run
// against the historical model. All operations delegate to the system
// git binary and the user's existing git configuration; nothing
// platform-specific is implemented and no credentials are stored.
//
// Key features:
//   - Command execution with proper stderr capture for error diagnostics
//   - Git version detection and validation (worktrees need git 2.5+)
//   - Ref resolution with shallow-clone aware error messages
//   - Detached worktree creation and cleanup
//
// Example usage:
//
//	if !git.Available() {
//	    return git.ErrGitNotFound
//	}
//	if err := git.CheckMinVersion(); err != nil {
//	    return err
//	}
//	wt, err := git.CreateWorktree("/path/to/repo", "main")
//	if err != nil {
//	    return err
//	}
//	defer wt.Remove()
package git
