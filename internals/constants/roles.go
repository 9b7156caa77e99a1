package constants

// Marketplace roles carried in the JWT "role" claim.
const (
	RoleAdmin     = "ADMIN"
	RoleClient    = "CLIENT"
	RoleDeveloper = "DEVELOPER"
)

var (
	AllRoles       = []string{RoleAdmin, RoleClient, RoleDeveloper}
	StaffRoles     = []string{RoleAdmin, RoleClient}
	AssignerRoles  = []string{RoleAdmin, RoleClient}
	DeveloperRoles = []string{RoleAdmin, RoleDeveloper}
)

// Error message templates for role gates.
const (
	ErrOnlyAdminsCanAccess    = "only admins may access %s"
	ErrOnlyAssignersCanAccess = "only admins or clients may access %s"
)
