package domain

// Permission names form a closed catalog: scope.action, plus a superadmin
// wildcard per scope. The wildcard is just another name checked literally;
// it is pre-assigned to the bootstrap admin roles, never expanded at check
// time.
const (
	PermUserCreate     = "user.create"
	PermUserList       = "user.list"
	PermUserUpdate     = "user.update"
	PermUserDelete     = "user.delete"
	PermUserSuperadmin = "user.superadmin"

	PermOrganizationCreate     = "organization.create"
	PermOrganizationList       = "organization.list"
	PermOrganizationUpdate     = "organization.update"
	PermOrganizationDelete     = "organization.delete"
	PermOrganizationSuperadmin = "organization.superadmin"

	PermTeamCreate     = "team.create"
	PermTeamList       = "team.list"
	PermTeamUpdate     = "team.update"
	PermTeamDelete     = "team.delete"
	PermTeamSuperadmin = "team.superadmin"

	PermBuildCreate     = "build.create"
	PermBuildList       = "build.list"
	PermBuildUpdate     = "build.update"
	PermBuildDelete     = "build.delete"
	PermBuildDownload   = "build.download"
	PermBuildSuperadmin = "build.superadmin"
)

// Operation identifies a protected operation for permission lookup.
type Operation string

const (
	OpUserCreate Operation = "user.create"
	OpUserList   Operation = "user.list"
	OpUserUpdate Operation = "user.update"
	OpUserDelete Operation = "user.delete"

	OpOrganizationCreate Operation = "organization.create"
	OpOrganizationList   Operation = "organization.list"
	OpOrganizationUpdate Operation = "organization.update"
	OpOrganizationDelete Operation = "organization.delete"

	OpTeamCreate Operation = "team.create"
	OpTeamList   Operation = "team.list"
	OpTeamUpdate Operation = "team.update"
	OpTeamDelete Operation = "team.delete"

	OpBuildCreate   Operation = "build.create"
	OpBuildList     Operation = "build.list"
	OpBuildUpdate   Operation = "build.update"
	OpBuildDelete   Operation = "build.delete"
	OpBuildDownload Operation = "build.download"

	OpRoleList Operation = "role.list"
)

// RequiredPermissions is the static table of acceptable permission sets per
// protected operation. Possessing any one name in the set suffices (OR
// semantics).
var RequiredPermissions = map[Operation][]string{
	OpUserCreate: {PermUserCreate, PermUserSuperadmin},
	OpUserList:   {PermUserList, PermUserSuperadmin},
	OpUserUpdate: {PermUserUpdate, PermUserSuperadmin},
	OpUserDelete: {PermUserDelete, PermUserSuperadmin},

	OpOrganizationCreate: {PermOrganizationCreate, PermOrganizationSuperadmin},
	OpOrganizationList:   {PermOrganizationList, PermOrganizationSuperadmin},
	OpOrganizationUpdate: {PermOrganizationUpdate, PermOrganizationSuperadmin},
	OpOrganizationDelete: {PermOrganizationDelete, PermOrganizationSuperadmin},

	OpTeamCreate: {PermTeamCreate, PermTeamSuperadmin},
	OpTeamList:   {PermTeamList, PermTeamSuperadmin},
	OpTeamUpdate: {PermTeamUpdate, PermTeamSuperadmin},
	OpTeamDelete: {PermTeamDelete, PermTeamSuperadmin},

	OpBuildCreate:   {PermBuildCreate, PermBuildSuperadmin},
	OpBuildList:     {PermBuildList, PermBuildSuperadmin},
	OpBuildUpdate:   {PermBuildUpdate, PermBuildSuperadmin},
	OpBuildDelete:   {PermBuildDelete, PermBuildSuperadmin},
	OpBuildDownload: {PermBuildDownload, PermBuildSuperadmin},

	OpRoleList: {PermUserSuperadmin},
}

// PermissionCatalog is the fixed set of permissions seeded at first boot.
var PermissionCatalog = []Permission{
	{Name: PermUserCreate, Description: "Create users"},
	{Name: PermUserList, Description: "List users"},
	{Name: PermUserUpdate, Description: "Update users"},
	{Name: PermUserDelete, Description: "Delete users"},
	{Name: PermUserSuperadmin, Description: "Super admin access to all user operations"},

	{Name: PermOrganizationCreate, Description: "Create organizations"},
	{Name: PermOrganizationList, Description: "List organizations"},
	{Name: PermOrganizationUpdate, Description: "Update organizations"},
	{Name: PermOrganizationDelete, Description: "Delete organizations"},
	{Name: PermOrganizationSuperadmin, Description: "Super admin access to all organization operations"},

	{Name: PermTeamCreate, Description: "Create teams"},
	{Name: PermTeamList, Description: "List teams"},
	{Name: PermTeamUpdate, Description: "Update teams"},
	{Name: PermTeamDelete, Description: "Delete teams"},
	{Name: PermTeamSuperadmin, Description: "Super admin access to all team operations"},

	{Name: PermBuildCreate, Description: "Create builds"},
	{Name: PermBuildList, Description: "List builds"},
	{Name: PermBuildUpdate, Description: "Update builds"},
	{Name: PermBuildDelete, Description: "Delete builds"},
	{Name: PermBuildDownload, Description: "Download builds"},
	{Name: PermBuildSuperadmin, Description: "Super admin access to all build operations"},
}

// RoleSeed describes one bootstrap role and the permission names assigned
// to it.
type RoleSeed struct {
	Name        string
	Description string
	Permissions []string
}

// RoleCatalog is the fixed set of roles seeded at first boot.
var RoleCatalog = []RoleSeed{
	{
		Name:        "superuser",
		Description: "Super user with all permissions",
		Permissions: []string{PermUserSuperadmin, PermOrganizationSuperadmin, PermTeamSuperadmin, PermBuildSuperadmin},
	},
	{
		Name:        "organization_admin",
		Description: "Organization administrator",
		Permissions: []string{PermOrganizationSuperadmin, PermTeamSuperadmin, PermBuildSuperadmin},
	},
	{
		Name:        "team_admin",
		Description: "Team administrator",
		Permissions: []string{PermTeamSuperadmin, PermBuildSuperadmin},
	},
	{
		Name:        "user_admin",
		Description: "User administrator",
		Permissions: []string{PermUserSuperadmin},
	},
	{
		Name:        "build_admin",
		Description: "Build administrator",
		Permissions: []string{PermBuildSuperadmin},
	},
	{
		Name:        "user",
		Description: "Regular user with build management permissions",
		Permissions: []string{PermBuildList, PermBuildCreate, PermBuildDownload, PermBuildDelete, PermBuildUpdate},
	},
}
