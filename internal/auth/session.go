package auth

// Session is the authenticated principal, passed explicitly to whatever
// needs the current user rather than looked up from ambient globals.
// Customers get one from the external identity provider; chefs get one
// from the access-key login.
type Session struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
