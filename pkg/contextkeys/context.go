package contextkeys

// Кастомный тип, чтобы избежать коллизий ключей в context
type contextKey string

const (
	// UserIDKey - ключ, по которому middleware кладет ID пользователя в gin.Context
	UserIDKey = contextKey("userID")

	// RoleKey - ключ роли пользователя
	RoleKey = contextKey("role")
)
