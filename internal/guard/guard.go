// Package guard is the authorization decision point shared by all
// resource-scoped operations. It distinguishes authentication, resource
// ownership and elevated roles, and makes the deliberate 403-as-404
// conflation an explicit, testable policy instead of an incidental one.
package guard

import "errors"

// Sentinel deny reasons. Handlers map these onto the HTTP error taxonomy:
// ErrUnauthorized -> 401, ErrForbidden -> 403, ErrNotFound -> 404.
var (
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("insufficient permissions")
	ErrNotFound     = errors.New("resource not found")
)

// Identity is the caller resolved from a verified credential. It is produced
// per request and never cached or persisted.
type Identity struct {
	UserID      uint
	Email       string
	IsProfessor bool
	IsAdmin     bool
}

// IsAuthenticated reports whether the identity resolves to a real user.
func (id Identity) IsAuthenticated() bool {
	return id.UserID != 0
}

// Relation names the required relationship between a caller and a resource.
type Relation int

const (
	// IsAuthenticated requires only a resolved identity.
	IsAuthenticated Relation = iota
	// IsResourceOwner requires the caller's id to equal the resource's owning user id.
	IsResourceOwner
	// IsAdmin requires the admin role flag.
	IsAdmin
	// IsProfessorOrAdmin requires either elevated role flag.
	IsProfessorOrAdmin
	// IsOwnerOrAdmin passes for the resource owner or any admin.
	IsOwnerOrAdmin
)

// Check describes one authorization decision.
//
// When DenyAsNotFound is set, an ownership failure is reported as
// ErrNotFound rather than ErrForbidden so that non-owners cannot confirm the
// resource exists.
type Check struct {
	Relation       Relation
	OwnerID        uint
	DenyAsNotFound bool
}

// Authorize decides whether the caller satisfies the check. A nil return
// means allow; otherwise one of the sentinel deny reasons is returned.
// Decisions are recomputed against current state on every call.
func Authorize(caller Identity, check Check) error {
	if !caller.IsAuthenticated() {
		return ErrUnauthorized
	}

	switch check.Relation {
	case IsAuthenticated:
		return nil
	case IsAdmin:
		if caller.IsAdmin {
			return nil
		}
		return ErrForbidden
	case IsProfessorOrAdmin:
		if caller.IsProfessor || caller.IsAdmin {
			return nil
		}
		return ErrForbidden
	case IsResourceOwner:
		if caller.UserID == check.OwnerID {
			return nil
		}
		return denyOwnership(check)
	case IsOwnerOrAdmin:
		if caller.IsAdmin || caller.UserID == check.OwnerID {
			return nil
		}
		return denyOwnership(check)
	default:
		return ErrForbidden
	}
}

func denyOwnership(check Check) error {
	if check.DenyAsNotFound {
		return ErrNotFound
	}
	return ErrForbidden
}
