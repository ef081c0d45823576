package authz

import "github.com/OussamaBoujdig/archivio1/app/models"

// Permission names a protected capability. Controllers check permissions
// instead of comparing role strings.
type Permission string

const (
	ManageUsers      Permission = "manage_users"
	ManageCategories Permission = "manage_categories"
	ManageDocuments  Permission = "manage_documents"
	ViewBilling      Permission = "view_billing"
	ManageBilling    Permission = "manage_billing"
)

var rolePermissions = map[string]map[Permission]bool{
	models.ROLE_ADMIN: {
		ManageUsers:      true,
		ManageCategories: true,
		ManageDocuments:  true,
		ViewBilling:      true,
		ManageBilling:    true,
	},
	models.ROLE_EMPLOYEE: {
		ManageCategories: true,
		ManageDocuments:  true,
		ViewBilling:      true,
		ManageBilling:    true,
	},
	models.ROLE_USER: {
		ManageDocuments: true,
		ViewBilling:     true,
		ManageBilling:   true,
	},
}

// Can reports whether the given role holds the permission. Unknown roles
// hold nothing.
func Can(role string, perm Permission) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[perm]
}
