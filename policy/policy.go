// Package policy holds the authorization decisions. It keeps no state:
// every function is a pure decision over the caller and the resource.
package policy

import (
	"errors"

	"github.com/geuresti/Hack-The-Woodz-Backend/domain"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrNotOwner        = errors.New("you don't have permission")
)

// Read: listing and viewing projects and accounts is public.
func Read() error {
	return nil
}

// Write requires an authenticated caller.
func Write(callerID int) error {
	if callerID == 0 {
		return ErrUnauthenticated
	}
	return nil
}

// Mutate requires the caller to own the project. Existence is resolved
// before this check, so a missing project is always a not-found and
// never a permission error.
func Mutate(callerID int, project *domain.Project) error {
	if callerID == 0 {
		return ErrUnauthenticated
	}
	if project.AccountID != callerID {
		return ErrNotOwner
	}
	return nil
}
