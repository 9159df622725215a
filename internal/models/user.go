package models

// User represents an account in the system
type User struct {
	ID           int64       `json:"userid"`
	Username     string      `json:"username"`
	Password     string      `json:"password,omitempty"` // Plain text, accepted on input only
	PasswordHash string      `json:"-"`                  // Never serialize password hash
	PrimaryEmail string      `json:"primaryemail"`
	Roles        []UserRoles `json:"roles"`
	Useremails   []Useremail `json:"useremails"`
}

// IsNew reports whether the user has not been persisted yet
func (u *User) IsNew() bool {
	return u.ID == 0
}

// RoleIDs returns the role identifiers referenced by the user, in order and without duplicates
func (u *User) RoleIDs() []int64 {
	ids := make([]int64, 0, len(u.Roles))
	seen := make(map[int64]struct{}, len(u.Roles))
	for _, ur := range u.Roles {
		if _, ok := seen[ur.Role.ID]; ok {
			continue
		}
		seen[ur.Role.ID] = struct{}{}
		ids = append(ids, ur.Role.ID)
	}
	return ids
}
