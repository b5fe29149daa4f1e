package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"

	_ "github.com/mealdesk/mealdesk/testing"
)

func TestKnownPermissionsExcludeWildcard(t *testing.T) {
	for _, perm := range KnownPermissions() {
		assert.NotEqual(t, PermAll, perm)
		assert.True(t, perm.Valid())
	}
	assert.False(t, PermAll.Valid())
	assert.False(t, Permission("Launch Rockets").Valid())
	assert.False(t, Permission("").Valid())
}

func TestEntityRefBound(t *testing.T) {
	assert.True(t, EntityRef{Type: EntityHostel, ID: "h1"}.Bound())
	assert.True(t, EntityRef{Type: EntityCorporate, ID: "c1"}.Bound())

	assert.False(t, EntityRef{}.Bound())
	assert.False(t, EntityRef{Type: EntityHostel}.Bound())
	assert.False(t, EntityRef{ID: "h1"}.Bound())
	assert.False(t, EntityRef{Type: EntitySystem, ID: "s1"}.Bound())
}

func TestPrincipalHasPermission(t *testing.T) {
	p := &Principal{Permissions: []Permission{PermManageMembers}}
	assert.True(t, p.HasPermission(PermManageMembers))
	assert.False(t, p.HasPermission(PermManageRoles))

	super := &Principal{IsSuperAdmin: true}
	assert.True(t, super.HasPermission(PermManageRoles))

	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.HasPermission(PermManageMembers))
}
