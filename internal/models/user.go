package models

import "encoding/json"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AuthUser is the caller decoded from a verified Firebase ID token.
type AuthUser struct {
	UID           string `json:"uid"`
	Role          string `json:"role"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Picture       string `json:"picture"`
	Name          string `json:"name"`
	AuthTime      int64  `json:"auth_time"`
	IssuedAt      int64  `json:"iat"`
	Expires       int64  `json:"exp"`
}

func (u *AuthUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AdminUser is a Firebase account as listed on the user management screen.
// Timestamps are epoch milliseconds encoded as strings and CustomAttributes
// is the JSON-encoded custom claims, matching the identity provider's REST shape.
type AdminUser struct {
	UID              string  `json:"uid"`
	Email            string  `json:"email"`
	DisplayName      *string `json:"display_name"`
	PhotoURL         *string `json:"photo_url"`
	LastLoginAt      string  `json:"last_login_at"`
	CreatedAt        string  `json:"created_at"`
	CustomAttributes *string `json:"custom_attributes"`
	Disabled         bool    `json:"disabled"`
}

// SupabaseUser is the row mirrored into the Supabase users table.
type SupabaseUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
	IsAdmin     bool   `json:"is_admin"`
}

// Role reads the role claim from CustomAttributes, defaulting to RoleUser.
func (u AdminUser) Role() string {
	if u.CustomAttributes == nil || *u.CustomAttributes == "" {
		return RoleUser
	}
	var claims struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal([]byte(*u.CustomAttributes), &claims); err != nil || claims.Role == "" {
		return RoleUser
	}
	return claims.Role
}
