package model

// User is the authenticated principal of a session.
type User struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// AllowedEmail is an allow-list record: the only way to log in.
type AllowedEmail struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// User builds the session principal for this authorization record.
func (a AllowedEmail) User() User {
	return User{Name: a.Name, Role: a.Role, Email: a.Email}
}
