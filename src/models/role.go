package models

type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleConsulting Role = "consulting"
	RoleSEOUser    Role = "seouser"
	RoleUser       Role = "user"
)

var roleRanks = map[Role]int{
	RoleSuperAdmin: 5,
	RoleAdmin:      4,
	RoleConsulting: 3,
	RoleSEOUser:    2,
	RoleUser:       1,
}

var roleDisplayNames = map[Role]string{
	RoleSuperAdmin: "Super Admin",
	RoleAdmin:      "Admin",
	RoleConsulting: "Consulting",
	RoleSEOUser:    "SEO User",
	RoleUser:       "User",
}

// createMatrix is the literal assignment table. consulting is narrower than
// a rank cutoff would give it, so the matrix is spelled out, not derived.
var createMatrix = map[Role][]Role{
	RoleSuperAdmin: {RoleSuperAdmin, RoleAdmin, RoleConsulting, RoleSEOUser, RoleUser},
	RoleAdmin:      {RoleAdmin, RoleConsulting, RoleSEOUser, RoleUser},
	RoleConsulting: {RoleUser},
	RoleSEOUser:    {},
	RoleUser:       {},
}

func AllRoles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleConsulting, RoleSEOUser, RoleUser}
}

func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

func (r Role) Rank() int {
	return roleRanks[r]
}

func (r Role) Display() string {
	return roleDisplayNames[r]
}

// AtLeast reports whether r carries the privileges of other. Every rank
// decision in the permission layer goes through this comparison.
func (r Role) AtLeast(other Role) bool {
	return r.Rank() > 0 && r.Rank() >= other.Rank()
}

func (r Role) IsSuperAdmin() bool { return r == RoleSuperAdmin }
func (r Role) IsAdmin() bool      { return r.AtLeast(RoleAdmin) }
func (r Role) IsConsulting() bool { return r.AtLeast(RoleConsulting) }
func (r Role) IsSEOUser() bool    { return r.AtLeast(RoleSEOUser) }

// CanCreate reports whether an actor with role r may assign target to a
// new or updated account.
func (r Role) CanCreate(target Role) bool {
	for _, allowed := range createMatrix[r] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (r Role) CanManageUsers() bool {
	return r.IsAdmin()
}
