package domain

import "time"

// User is an account holder. Password holds the bcrypt hash, never the
// plaintext.
type User struct {
	ID        string    `json:"id" bson:"_id"`
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"-" bson:"password"`
	Email     string    `json:"email" bson:"email"`
	FullName  string    `json:"fullName" bson:"fullName"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// RefreshToken is a stored long-lived credential used to mint new access
// tokens.
type RefreshToken struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"userId"`
	Token     string    `json:"token" bson:"token"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	Revoked   bool      `json:"revoked" bson:"revoked"`
}
