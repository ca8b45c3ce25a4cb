package git

import (
	"fmt"
)

// RefExists checks if a ref exists in a local repository.
// Returns true if the ref exists, false if it doesn't, or an error if the check fails.
func RefExists(dir, ref string) (bool, error) {
	_, err := Run([]string{"rev-parse", "--verify", "--quiet", ref}, &RunOptions{Dir: dir})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check ref %q: %w", ref, err)
	}
	return true, nil
}

// ResolveRef resolves a ref to its commit SHA in a local repository.
func ResolveRef(dir, ref string) (string, error) {
	sha, err := Run([]string{"rev-parse", ref}, &RunOptions{Dir: dir})
	if err != nil {
		if IsNotFound(err) {
			isShallow, _ := IsShallowClone(dir)
			return "", &ErrRefNotFound{Ref: ref, IsShallow: isShallow}
		}
		return "", fmt.Errorf("failed to resolve ref %q: %w", ref, err)
	}
	return sha, nil
}
