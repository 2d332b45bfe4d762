package adminclient

import (
	"context"
	"sync"
)

// state is the request bookkeeping shared by the stores. mu also guards the
// embedding store's own fields.
type state struct {
	client *Client

	mu      sync.Mutex
	loading bool
	err     error
}

// Loading reports whether a request is in flight.
func (s *state) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err is the error of the last action, or nil if it succeeded.
func (s *state) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// run performs one request with loading/error bookkeeping. apply runs under
// the lock on success and returns the success detail.
func (s *state) run(ctx context.Context, method, path string, body, out any, apply func() string) Notification {
	s.mu.Lock()
	s.loading, s.err = true, nil
	s.mu.Unlock()

	err := s.client.Do(ctx, method, path, body, out)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return errorNotice(err)
	}
	return successNotice(apply())
}
