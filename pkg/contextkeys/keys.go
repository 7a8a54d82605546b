package contextkeys

type contextKey string

const (
	UserIDKey         contextKey = "userID"
	RoleIDKey         contextKey = "roleID"
	PermissionsMapKey contextKey = "permissionsMap"
)
