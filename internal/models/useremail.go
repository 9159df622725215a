package models

// Useremail is an email address owned by exactly one user
type Useremail struct {
	ID        int64  `json:"useremailid"`
	UserID    int64  `json:"-"`
	Useremail string `json:"useremail"`
}
