package contextkeys

// Custom key type to avoid collisions with other context values.
type contextKey string

// DBContextKey stores the request-scoped *gorm.DB.
const DBContextKey = contextKey("db")

// UserIDKey is the gin context key the auth middleware sets.
const UserIDKey = "userID"

// UserRoleKey is the gin context key for the authenticated role.
const UserRoleKey = "role"
