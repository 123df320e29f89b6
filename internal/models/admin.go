package models

const RoleAdmin = "admin"

// AdminIdentity is who the identity check says signed in.
type AdminIdentity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
