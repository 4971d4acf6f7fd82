// Package policy decides whether a principal may perform an action on a
// resource. Every decision is a pure function over the principal and a
// static rule table; no I/O happens here.
//
// Checks come in two stages. The coarse check (Allow) runs before any
// database lookup and answers "may this principal call this endpoint at
// all". The object check (AllowObject) runs after the target has been
// loaded and additionally considers ownership.
package policy

import (
	"review-hub/internal/data/entity"

	"github.com/google/uuid"
)

// Principal is the identity attempting an action. The zero value is the
// anonymous principal.
type Principal struct {
	UserID        uuid.UUID
	Role          entity.Role
	Superuser     bool
	Authenticated bool
}

// Anonymous is the principal used for requests without credentials.
var Anonymous = Principal{}

// IsAdmin reports whether the principal has full administrative rights.
func (p Principal) IsAdmin() bool {
	return p.Authenticated && (p.Superuser || p.Role == entity.RoleAdmin)
}

// CanModerate reports whether the principal may act on reviews and
// comments it does not own.
func (p Principal) CanModerate() bool {
	return p.Authenticated && (p.Superuser || p.Role.CanModerate())
}

type Resource string

const (
	ResourceCategory Resource = "category"
	ResourceGenre    Resource = "genre"
	ResourceTitle    Resource = "title"
	ResourceReview   Resource = "review"
	ResourceComment  Resource = "comment"
	ResourceUser     Resource = "user"
	ResourceUserSelf Resource = "user_self"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// requirement is the minimum standing a principal needs to pass the
// coarse check.
type requirement int

const (
	anyone requirement = iota
	authenticated
	admin
)

// rules is the coarse access table, keyed by (resource, action).
// An action missing from the table is denied for everyone.
var rules = map[Resource]map[Action]requirement{
	ResourceCategory: {
		ActionRead:   anyone,
		ActionCreate: admin,
		ActionUpdate: admin,
		ActionDelete: admin,
	},
	ResourceGenre: {
		ActionRead:   anyone,
		ActionCreate: admin,
		ActionUpdate: admin,
		ActionDelete: admin,
	},
	ResourceTitle: {
		ActionRead:   anyone,
		ActionCreate: admin,
		ActionUpdate: admin,
		ActionDelete: admin,
	},
	ResourceReview: {
		ActionRead:   anyone,
		ActionCreate: authenticated,
		ActionUpdate: authenticated,
		ActionDelete: authenticated,
	},
	ResourceComment: {
		ActionRead:   anyone,
		ActionCreate: authenticated,
		ActionUpdate: authenticated,
		ActionDelete: authenticated,
	},
	ResourceUser: {
		ActionRead:   admin,
		ActionCreate: admin,
		ActionUpdate: admin,
		ActionDelete: admin,
	},
	ResourceUserSelf: {
		ActionRead:   authenticated,
		ActionUpdate: authenticated,
	},
}

// Allow is the coarse check: may the principal call this endpoint at all.
// It must be evaluated before any database lookup.
func Allow(p Principal, res Resource, act Action) bool {
	actions, ok := rules[res]
	if !ok {
		return false
	}
	req, ok := actions[act]
	if !ok {
		return false
	}

	switch req {
	case anyone:
		return true
	case authenticated:
		return p.Authenticated
	case admin:
		return p.IsAdmin()
	}
	return false
}

// AllowObject is the object-level check, evaluated only after Allow has
// passed and the target instance has been loaded. Ownership always grants
// access; moderators and admins may additionally act on reviews and
// comments they do not own.
func AllowObject(p Principal, res Resource, act Action, ownerID uuid.UUID) bool {
	if !Allow(p, res, act) {
		return false
	}
	if act == ActionRead {
		return true
	}
	if p.Authenticated && p.UserID == ownerID {
		return true
	}

	switch res {
	case ResourceReview, ResourceComment:
		return p.CanModerate()
	}
	return p.IsAdmin()
}
