package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column.  The json tags are omitted
// because these structs are used by the repository layer; handlers define
// separate response types with the JSON field names the clients expect.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address.
//  Phone        – contact phone number.
//  PasswordHash – bcrypt hashed password.
//  ProfilePhoto – optional photo reference (URL or inline data).
//  IsAdmin      – whether the user holds the administrative role.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	Phone        string    // users.phone
	PasswordHash string    // users.password_hash
	ProfilePhoto *string   // users.profile_photo (nullable)
	IsAdmin      bool      // users.is_admin
	CreatedAt    time.Time // users.created_at
}

// Role returns the JWT role claim value for the user.  Admin users gate
// the privileged car and reservation operations.
func (u User) Role() string {
	if u.IsAdmin {
		return "ADMIN"
	}
	return "CUSTOMER"
}
