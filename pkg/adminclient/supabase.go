package adminclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// SupabaseStore reads Supabase tables through the backend proxy.
type SupabaseStore struct {
	state

	rows []map[string]any
}

func NewSupabaseStore(client *Client) *SupabaseStore {
	return &SupabaseStore{state: state{client: client}}
}

func (s *SupabaseStore) Rows() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.rows...)
}

// Fetch loads /supabase/rest/v1{collection}. collection is a PostgREST path
// such as "/orders?select=*".
func (s *SupabaseStore) Fetch(ctx context.Context, collection string) Notification {
	if !strings.HasPrefix(collection, "/") {
		collection = "/" + collection
	}

	var rows []map[string]any
	return s.run(ctx, http.MethodGet, "/supabase/rest/v1"+collection, nil, &rows, func() string {
		s.rows = rows
		return fmt.Sprintf("Loaded %d rows", len(rows))
	})
}
