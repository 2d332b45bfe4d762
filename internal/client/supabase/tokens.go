package supabaseclient

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/patrickmn/go-cache"
)

const (
	tokenLifetime = 30 * 24 * time.Hour
	tokenCacheTTL = 5 * time.Minute
)

// Claims are the JWT claims PostgREST row level security policies read.
// UserRole is only present on tokens minted for admins.
type Claims struct {
	MemberID string `json:"member_id"`
	Ref      string `json:"ref,omitempty"`
	Role     string `json:"role"`
	UserRole string `json:"user_role,omitempty"`
	jwt.RegisteredClaims
}

// Minter signs Supabase access tokens for Firebase users and caches them
// briefly so a burst of proxied requests reuses one token.
type Minter struct {
	secret []byte
	ref    string
	cache  *cache.Cache
	now    func() time.Time
}

func NewMinter(secret, projectRef string) *Minter {
	return &Minter{
		secret: []byte(secret),
		ref:    projectRef,
		cache:  cache.New(tokenCacheTTL, 2*tokenCacheTTL),
		now:    time.Now,
	}
}

func (m *Minter) Token(uid string, admin bool) (string, error) {
	key := fmt.Sprintf("%s:%t", uid, admin)
	if tok, ok := m.cache.Get(key); ok {
		return tok.(string), nil
	}

	now := m.now()
	claims := Claims{
		MemberID: uid,
		Ref:      m.ref,
		Role:     "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    "supabase",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	if admin {
		claims.UserRole = "admin"
	}

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", err
	}
	m.cache.SetDefault(key, tok)
	return tok, nil
}
