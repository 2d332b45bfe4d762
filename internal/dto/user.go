package dto

type SetRoleRequest struct {
	UID  string `json:"uid" validate:"required"`
	Role string `json:"role" validate:"omitempty,oneof=admin user"`
}

type VerifyLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UserSyncResult summarises one Firebase to Supabase user sync run.
type UserSyncResult struct {
	FirebaseUsers int `json:"firebase_users"`
	Existing      int `json:"existing"`
	Inserted      int `json:"inserted"`
}
