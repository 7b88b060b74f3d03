package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateMatrix(t *testing.T) {
	// The full matrix, spelled out. consulting in particular must not be
	// inferred from rank: it may only create plain users.
	expected := map[Role]map[Role]bool{
		RoleSuperAdmin: {RoleSuperAdmin: true, RoleAdmin: true, RoleConsulting: true, RoleSEOUser: true, RoleUser: true},
		RoleAdmin:      {RoleSuperAdmin: false, RoleAdmin: true, RoleConsulting: true, RoleSEOUser: true, RoleUser: true},
		RoleConsulting: {RoleSuperAdmin: false, RoleAdmin: false, RoleConsulting: false, RoleSEOUser: false, RoleUser: true},
		RoleSEOUser:    {RoleSuperAdmin: false, RoleAdmin: false, RoleConsulting: false, RoleSEOUser: false, RoleUser: false},
		RoleUser:       {RoleSuperAdmin: false, RoleAdmin: false, RoleConsulting: false, RoleSEOUser: false, RoleUser: false},
	}
	for actor, targets := range expected {
		for target, allowed := range targets {
			assert.Equalf(t, allowed, actor.CanCreate(target), "%s creating %s", actor, target)
		}
	}
}

func TestRolePredicatesAreMonotonic(t *testing.T) {
	ranked := []Role{RoleUser, RoleSEOUser, RoleConsulting, RoleAdmin, RoleSuperAdmin}
	predicates := []struct {
		name  string
		check func(Role) bool
	}{
		{"is_seouser", Role.IsSEOUser},
		{"is_consulting", Role.IsConsulting},
		{"is_admin", Role.IsAdmin},
	}
	for _, p := range predicates {
		seen := false
		for _, role := range ranked {
			holds := p.check(role)
			if seen {
				assert.Truef(t, holds, "%s must hold for %s once a lower rank satisfies it", p.name, role)
			}
			seen = seen || holds
		}
		assert.Truef(t, seen, "%s never held", p.name)
	}
}

func TestRolePredicateCutoffs(t *testing.T) {
	assert.True(t, RoleSuperAdmin.IsAdmin())
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleConsulting.IsAdmin())

	assert.True(t, RoleConsulting.IsConsulting())
	assert.False(t, RoleSEOUser.IsConsulting())

	assert.True(t, RoleSEOUser.IsSEOUser())
	assert.False(t, RoleUser.IsSEOUser())

	assert.True(t, RoleSuperAdmin.IsSuperAdmin())
	assert.False(t, RoleAdmin.IsSuperAdmin())
}

func TestUnknownRoleHasNoPrivileges(t *testing.T) {
	bogus := Role("root")
	assert.False(t, bogus.Valid())
	assert.False(t, bogus.AtLeast(RoleUser))
	assert.False(t, bogus.CanCreate(RoleUser))
}
