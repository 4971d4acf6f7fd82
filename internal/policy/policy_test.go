package policy

import (
	"testing"

	"review-hub/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func principalWithRole(role entity.Role) Principal {
	return Principal{UserID: uuid.New(), Role: role, Authenticated: true}
}

func TestAllow_Anonymous(t *testing.T) {
	cases := []struct {
		res  Resource
		act  Action
		want bool
	}{
		{ResourceCategory, ActionRead, true},
		{ResourceGenre, ActionRead, true},
		{ResourceTitle, ActionRead, true},
		{ResourceReview, ActionRead, true},
		{ResourceComment, ActionRead, true},
		{ResourceCategory, ActionCreate, false},
		{ResourceTitle, ActionUpdate, false},
		{ResourceReview, ActionCreate, false},
		{ResourceComment, ActionDelete, false},
		{ResourceUser, ActionRead, false},
		{ResourceUserSelf, ActionRead, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Allow(Anonymous, c.res, c.act),
			"anonymous %s %s", c.act, c.res)
	}
}

func TestAllow_User(t *testing.T) {
	p := principalWithRole(entity.RoleUser)

	cases := []struct {
		res  Resource
		act  Action
		want bool
	}{
		{ResourceReview, ActionCreate, true},
		{ResourceReview, ActionUpdate, true},
		{ResourceComment, ActionCreate, true},
		{ResourceUserSelf, ActionRead, true},
		{ResourceUserSelf, ActionUpdate, true},
		{ResourceCategory, ActionCreate, false},
		{ResourceGenre, ActionDelete, false},
		{ResourceTitle, ActionCreate, false},
		{ResourceUser, ActionRead, false},
		{ResourceUser, ActionCreate, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Allow(p, c.res, c.act),
			"user %s %s", c.act, c.res)
	}
}

func TestAllow_Moderator(t *testing.T) {
	p := principalWithRole(entity.RoleModerator)

	// Moderation powers are object-level; the coarse table treats a
	// moderator like any authenticated user.
	assert.True(t, Allow(p, ResourceReview, ActionDelete))
	assert.True(t, Allow(p, ResourceComment, ActionUpdate))
	assert.False(t, Allow(p, ResourceCategory, ActionCreate))
	assert.False(t, Allow(p, ResourceTitle, ActionDelete))
	assert.False(t, Allow(p, ResourceUser, ActionRead))
}

func TestAllow_Admin(t *testing.T) {
	p := principalWithRole(entity.RoleAdmin)

	for _, res := range []Resource{ResourceCategory, ResourceGenre, ResourceTitle, ResourceReview, ResourceComment, ResourceUser} {
		for _, act := range []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete} {
			assert.True(t, Allow(p, res, act), "admin %s %s", act, res)
		}
	}
}

func TestAllow_SuperuserActsAsAdmin(t *testing.T) {
	// A superuser keeps admin rights even with the plain user role.
	p := Principal{UserID: uuid.New(), Role: entity.RoleUser, Superuser: true, Authenticated: true}

	assert.True(t, Allow(p, ResourceUser, ActionDelete))
	assert.True(t, Allow(p, ResourceCategory, ActionCreate))
	assert.True(t, p.IsAdmin())
	assert.True(t, p.CanModerate())
}

func TestAllow_UnknownPairDenied(t *testing.T) {
	p := principalWithRole(entity.RoleAdmin)

	// user_self has no delete rule, so even an admin is denied.
	assert.False(t, Allow(p, ResourceUserSelf, ActionDelete))
}

func TestAllowObject_Ownership(t *testing.T) {
	ownerID := uuid.New()
	owner := Principal{UserID: ownerID, Role: entity.RoleUser, Authenticated: true}
	stranger := principalWithRole(entity.RoleUser)
	moderator := principalWithRole(entity.RoleModerator)
	admin := principalWithRole(entity.RoleAdmin)

	// Owner edits own review.
	assert.True(t, AllowObject(owner, ResourceReview, ActionUpdate, ownerID))
	assert.True(t, AllowObject(owner, ResourceReview, ActionDelete, ownerID))

	// Stranger cannot touch it.
	assert.False(t, AllowObject(stranger, ResourceReview, ActionUpdate, ownerID))
	assert.False(t, AllowObject(stranger, ResourceComment, ActionDelete, ownerID))

	// Moderator and admin act on any review or comment.
	assert.True(t, AllowObject(moderator, ResourceReview, ActionDelete, ownerID))
	assert.True(t, AllowObject(moderator, ResourceComment, ActionUpdate, ownerID))
	assert.True(t, AllowObject(admin, ResourceReview, ActionUpdate, ownerID))
}

func TestAllowObject_ReadsAreOpen(t *testing.T) {
	ownerID := uuid.New()

	assert.True(t, AllowObject(Anonymous, ResourceReview, ActionRead, ownerID))
	assert.True(t, AllowObject(Anonymous, ResourceComment, ActionRead, ownerID))
}

func TestAllowObject_CoarseDenialWins(t *testing.T) {
	ownerID := uuid.New()

	// Anonymous fails the coarse check, so ownership never matters.
	assert.False(t, AllowObject(Anonymous, ResourceReview, ActionUpdate, ownerID))
}

func TestRole_CanModerate(t *testing.T) {
	assert.False(t, entity.RoleUser.CanModerate())
	assert.True(t, entity.RoleModerator.CanModerate())
	assert.True(t, entity.RoleAdmin.CanModerate())
}
