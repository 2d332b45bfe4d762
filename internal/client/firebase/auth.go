package firebaseclient

import (
	"context"
	"encoding/json"
	"strconv"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"

	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
)

const listPageSize = 500

type AuthAdapter struct {
	client *auth.Client
}

func NewAuthAdapter(client *auth.Client) *AuthAdapter {
	return &AuthAdapter{client: client}
}

// ListUsers walks every page of the Firebase user list.
func (a *AuthAdapter) ListUsers(ctx context.Context) ([]models.AdminUser, error) {
	iter := a.client.Users(ctx, "")
	iter.PageInfo().MaxSize = listPageSize

	var users []models.AdminUser
	for {
		u, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewExternalServiceError("firebase", "Error encountered while getting users list.", false, err)
		}
		users = append(users, ToAdminUser(u.UserRecord))
	}
	return users, nil
}

func (a *AuthAdapter) GetUser(ctx context.Context, uid string) (models.AdminUser, error) {
	u, err := a.client.GetUser(ctx, uid)
	if auth.IsUserNotFound(err) {
		return models.AdminUser{}, errs.NewNotFoundError("user not found")
	}
	if err != nil {
		return models.AdminUser{}, errs.NewExternalServiceError("firebase", "Error encountered while getting user.", false, err)
	}
	return ToAdminUser(u), nil
}

// SetRole replaces the user's custom claims with {"role": role}.
func (a *AuthAdapter) SetRole(ctx context.Context, uid, role string) error {
	err := a.client.SetCustomUserClaims(ctx, uid, map[string]interface{}{"role": role})
	if auth.IsUserNotFound(err) {
		return errs.NewNotFoundError("user not found")
	}
	if err != nil {
		return errs.NewExternalServiceError("firebase", "Error encountered while setting user role.", false, err)
	}
	return nil
}

func (a *AuthAdapter) EmailVerificationLink(ctx context.Context, email string) (string, error) {
	link, err := a.client.EmailVerificationLink(ctx, email)
	if auth.IsUserNotFound(err) {
		return "", errs.NewNotFoundError("user not found")
	}
	if err != nil {
		return "", errs.NewExternalServiceError("firebase", "Error encountered while generating verification link.", false, err)
	}
	return link, nil
}

// ToAdminUser maps a Firebase record onto the user management shape. Empty
// display names, photo URLs and claims become null.
func ToAdminUser(u *auth.UserRecord) models.AdminUser {
	if u == nil || u.UserInfo == nil {
		return models.AdminUser{}
	}
	out := models.AdminUser{
		UID:      u.UID,
		Email:    u.Email,
		Disabled: u.Disabled,
	}
	if u.DisplayName != "" {
		out.DisplayName = &u.DisplayName
	}
	if u.PhotoURL != "" {
		out.PhotoURL = &u.PhotoURL
	}
	if u.UserMetadata != nil {
		out.CreatedAt = millis(u.UserMetadata.CreationTimestamp)
		out.LastLoginAt = millis(u.UserMetadata.LastLogInTimestamp)
	}
	if len(u.CustomClaims) > 0 {
		if b, err := json.Marshal(u.CustomClaims); err == nil {
			s := string(b)
			out.CustomAttributes = &s
		}
	}
	return out
}

func millis(ts int64) string {
	if ts == 0 {
		return ""
	}
	return strconv.FormatInt(ts, 10)
}
