package models

// Role is a named permission grouping shared across users
type Role struct {
	ID   int64  `json:"roleid"`
	Name string `json:"name"`
}

// UserRoles associates one user with one role.
// Identity is the (UserID, Role.ID) pair.
type UserRoles struct {
	UserID int64 `json:"-"`
	Role   Role  `json:"role"`
}
