package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, r := range AllRoles {
		got, ok := ParseRole(string(r))
		assert.True(t, ok, r)
		assert.Equal(t, r, got)
	}

	for _, s := range []string{"", "admin", "SUPER", "root"} {
		_, ok := ParseRole(s)
		assert.False(t, ok, s)
	}
}

func TestIsElevated(t *testing.T) {
	assert.True(t, RoleSuper.IsElevated())
	for _, r := range []Role{RoleTenantAdmin, RoleSurvey, RoleInstitute, RoleMember} {
		assert.False(t, r.IsElevated(), r)
	}
}

func TestRoleIn(t *testing.T) {
	assert.True(t, RoleIn(RoleTenantAdmin, StaffRoles))
	assert.False(t, RoleIn(RoleMember, StaffRoles))
	assert.True(t, RoleIn(RoleSuper, SuperOnly))
	assert.False(t, RoleIn(RoleTenantAdmin, SuperOnly))
	assert.True(t, RoleIn(RoleMember, AllRoles))
}
