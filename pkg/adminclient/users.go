package adminclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a Firebase account as listed by /admin/auth/users.
type User struct {
	UID              string  `json:"uid"`
	Email            string  `json:"email"`
	DisplayName      *string `json:"display_name"`
	PhotoURL         *string `json:"photo_url"`
	LastLoginAt      string  `json:"last_login_at"`
	CreatedAt        string  `json:"created_at"`
	CustomAttributes *string `json:"custom_attributes"`
	Disabled         bool    `json:"disabled"`
}

// Role parses the role claim out of CustomAttributes; RoleUser if absent.
func (u User) Role() string {
	if u.CustomAttributes == nil {
		return RoleUser
	}
	var claims struct {
		Role string `json:"role"`
	}
	if json.Unmarshal([]byte(*u.CustomAttributes), &claims) != nil || claims.Role == "" {
		return RoleUser
	}
	return claims.Role
}

func (u User) IsAdmin() bool { return u.Role() == RoleAdmin }

type UserStore struct {
	state

	users []User
	user  *User
}

func NewUserStore(client *Client) *UserStore {
	return &UserStore{state: state{client: client}}
}

func (s *UserStore) Users() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]User(nil), s.users...)
}

func (s *UserStore) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *UserStore) Fetch(ctx context.Context) Notification {
	var out []User
	return s.run(ctx, http.MethodGet, "/admin/auth/users", nil, &out, func() string {
		s.users = out
		return fmt.Sprintf("Loaded %d users", len(out))
	})
}

func (s *UserStore) Get(ctx context.Context, uid string) Notification {
	var out User
	return s.run(ctx, http.MethodGet, "/admin/auth/users/"+url.PathEscape(uid), nil, &out, func() string {
		s.user = &out
		return "User loaded"
	})
}

func (s *UserStore) SetRole(ctx context.Context, uid, role string) Notification {
	body := map[string]string{"uid": uid, "role": role}
	var out User
	return s.run(ctx, http.MethodPost, "/admin/auth/set-role", body, &out, func() string {
		s.user = &out
		for i := range s.users {
			if s.users[i].UID == uid {
				s.users[i] = out
			}
		}
		return fmt.Sprintf("Role set to %s", role)
	})
}

// ToggleAdmin flips the user between admin and user, reading the current
// role from the loaded list or the backend.
func (s *UserStore) ToggleAdmin(ctx context.Context, uid string) Notification {
	current, ok := s.cached(uid)
	if !ok {
		if n := s.Get(ctx, uid); !n.OK() {
			return n
		}
		current, _ = s.cached(uid)
	}
	role := RoleAdmin
	if current.IsAdmin() {
		role = RoleUser
	}
	return s.SetRole(ctx, uid, role)
}

func (s *UserStore) cached(uid string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil && s.user.UID == uid {
		return *s.user, true
	}
	for _, u := range s.users {
		if u.UID == uid {
			return u, true
		}
	}
	return User{}, false
}
