package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	// PermissionCoursesRead allows viewing the course catalog in the admin dashboard.
	PermissionCoursesRead Permission = "courses:read"

	// PermissionCoursesWrite allows creating, updating, and deleting course listings.
	PermissionCoursesWrite Permission = "courses:write"

	// PermissionSubjectsRead allows viewing subjects.
	PermissionSubjectsRead Permission = "subjects:read"

	// PermissionSubjectsWrite allows creating, updating, and deleting subjects.
	PermissionSubjectsWrite Permission = "subjects:write"

	// PermissionLeadsRead allows viewing consultation leads and exporting them.
	PermissionLeadsRead Permission = "leads:read"

	// PermissionLeadsWrite allows updating a lead's follow-up status.
	PermissionLeadsWrite Permission = "leads:write"

	// PermissionEmailsSend allows composing and sending bulk parent emails.
	PermissionEmailsSend Permission = "emails:send"

	// PermissionAdminsRead allows viewing admin user lists and details.
	PermissionAdminsRead Permission = "admins:read"

	// PermissionAdminsWrite allows creating, updating, and deleting admin users.
	PermissionAdminsWrite Permission = "admins:write"

	// PermissionRolesRead allows viewing admin roles and permissions.
	PermissionRolesRead Permission = "roles:read"

	// PermissionRolesWrite allows creating, updating, and deleting admin roles.
	PermissionRolesWrite Permission = "roles:write"
)

// AllPermissions is a slice of all available permissions.
var AllPermissions = []Permission{
	PermissionCoursesRead,
	PermissionCoursesWrite,
	PermissionSubjectsRead,
	PermissionSubjectsWrite,
	PermissionLeadsRead,
	PermissionLeadsWrite,
	PermissionEmailsSend,
	PermissionAdminsRead,
	PermissionAdminsWrite,
	PermissionRolesRead,
	PermissionRolesWrite,
}
