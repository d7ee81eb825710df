package constants

import "fmt"

// Role adalah enumerasi tertutup — penambahan role baru harus lewat file ini
// supaya semua switch/guard ikut berubah.
type Role string

const (
	RoleSuper       Role = "super"
	RoleTenantAdmin Role = "tenant_admin"
	RoleSurvey      Role = "survey"
	RoleInstitute   Role = "institute"
	RoleMember      Role = "member"
)

// ParseRole memvalidasi string role dari claim/body.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSuper, RoleTenantAdmin, RoleSurvey, RoleInstitute, RoleMember:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

// IsElevated: hanya super yang boleh lintas tenant.
func (r Role) IsElevated() bool { return r == RoleSuper }

// Template pesan error role
const (
	ErrOnlySuperCanAccess  = "❌ Hanya super admin yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess = "❌ Hanya admin mahall yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess  = "❌ Hanya role selain 'member' yang boleh mengakses fitur %s."
)

func RoleErrorSuper(feature string) string {
	return fmt.Sprintf(ErrOnlySuperCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []Role{
		RoleSuper,
		RoleTenantAdmin,
		RoleSurvey,
		RoleInstitute,
		RoleMember,
	}

	// Staff = semua role pengelola (bukan member biasa)
	StaffRoles = []Role{
		RoleSuper,
		RoleTenantAdmin,
		RoleSurvey,
		RoleInstitute,
	}

	AdminAndAbove = []Role{
		RoleSuper,
		RoleTenantAdmin,
	}

	SuperOnly = []Role{
		RoleSuper,
	}
)

// RoleIn cek keanggotaan role pada salah satu grup di atas.
func RoleIn(r Role, group []Role) bool {
	for _, g := range group {
		if r == g {
			return true
		}
	}
	return false
}
