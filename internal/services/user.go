package services

import (
	"context"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
	"github.com/GregMSThompson/flowadmin/pkg/helpers"
	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

type identityProvider interface {
	ListUsers(ctx context.Context) ([]models.AdminUser, error)
	GetUser(ctx context.Context, uid string) (models.AdminUser, error)
	SetRole(ctx context.Context, uid, role string) error
	EmailVerificationLink(ctx context.Context, email string) (string, error)
}

type supabaseTables interface {
	Select(ctx context.Context, q dto.SelectQuery) (dto.SelectResult, error)
	Insert(ctx context.Context, table string, rows any) error
	Update(ctx context.Context, table string, eq map[string]string, values any) error
}

type userService struct {
	Identity   identityProvider
	Supabase   supabaseTables // nil when Supabase is not configured
	UsersTable string
}

func NewUserService(identity identityProvider, supabase supabaseTables, usersTable string) *userService {
	return &userService{
		Identity:   identity,
		Supabase:   supabase,
		UsersTable: usersTable,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.AdminUser, error) {
	users, err := s.Identity.ListUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list firebase users", "error", err)
		return nil, err
	}
	if users == nil {
		users = []models.AdminUser{}
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, uid string) (models.AdminUser, error) {
	return s.Identity.GetUser(ctx, uid)
}

// SetRole writes the role claim on the target account and mirrors the admin
// flag into Supabase. Granting admin is only open to admins.
func (s *userService) SetRole(ctx context.Context, caller *models.AuthUser, req dto.SetRoleRequest) (models.AdminUser, error) {
	log := logger.FromContext(ctx)

	if !caller.IsAdmin() {
		return models.AdminUser{}, errs.NewUnauthorizedError("User does not have permission to set user role.")
	}
	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}

	log.Info("setting user role", "target_uid", req.UID, "role", role)
	if err := s.Identity.SetRole(ctx, req.UID, role); err != nil {
		log.Error("failed to set user role", "target_uid", req.UID, "error", err)
		return models.AdminUser{}, err
	}

	if s.Supabase != nil {
		err := s.Supabase.Update(ctx, s.UsersTable,
			map[string]string{"id": req.UID},
			map[string]bool{"is_admin": role == models.RoleAdmin})
		if err != nil {
			log.Error("failed to mirror admin flag to supabase", "target_uid", req.UID, "error", err)
			return models.AdminUser{}, err
		}
	}

	return s.Identity.GetUser(ctx, req.UID)
}

func (s *userService) VerificationLink(ctx context.Context, email string) (string, error) {
	return s.Identity.EmailVerificationLink(ctx, email)
}

// SyncSupabaseUsers inserts every Firebase user missing from the Supabase
// users table. Existing rows are left untouched.
func (s *userService) SyncSupabaseUsers(ctx context.Context) (dto.UserSyncResult, error) {
	log := logger.FromContext(ctx)
	var res dto.UserSyncResult

	if s.Supabase == nil {
		return res, errs.NewValidationError("supabase is not configured")
	}

	log.Info("running user sync between firebase and supabase")
	rows, err := s.Supabase.Select(ctx, dto.SelectQuery{Table: s.UsersTable, Columns: "id"})
	if err != nil {
		return res, err
	}
	existing := make(map[string]bool, len(rows.Rows))
	for _, row := range rows.Rows {
		if id, ok := row["id"].(string); ok {
			existing[id] = true
		}
	}

	users, err := s.Identity.ListUsers(ctx)
	if err != nil {
		return res, err
	}
	res.FirebaseUsers = len(users)

	missing := make([]models.SupabaseUser, 0)
	for _, u := range users {
		if existing[u.UID] {
			res.Existing++
			continue
		}
		missing = append(missing, models.SupabaseUser{
			ID:          u.UID,
			Email:       u.Email,
			DisplayName: helpers.Value(u.DisplayName),
			PhotoURL:    helpers.Value(u.PhotoURL),
			IsAdmin:     u.Role() == models.RoleAdmin,
		})
	}

	if len(missing) > 0 {
		if err := s.Supabase.Insert(ctx, s.UsersTable, missing); err != nil {
			log.Error("failed to insert users into supabase", "count", len(missing), "error", err)
			return res, err
		}
	}
	res.Inserted = len(missing)

	log.Info("user sync complete", "firebase_users", res.FirebaseUsers, "inserted", res.Inserted)
	return res, nil
}

