package teststubs

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/nhl-schedule-service/internal/pagefetch"
)

// StubFetcher is a test double for pagefetch.Fetcher. Pages are keyed by
// request name; unknown names fall back to Default.
type StubFetcher struct {
	Pages   map[string][]byte
	Default []byte
	Err     error
	Calls   atomic.Int32

	mu       sync.Mutex
	requests []pagefetch.Request
}

// Fetch returns the configured page for req while tracking calls.
func (s *StubFetcher) Fetch(ctx context.Context, req pagefetch.Request) ([]byte, error) {
	s.Calls.Add(1)
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if body, ok := s.Pages[req.Name]; ok {
		return body, nil
	}
	if s.Default != nil {
		return s.Default, nil
	}
	return nil, fmt.Errorf("no stub page for %s", req.Name)
}

// Requests returns a copy of every request seen so far.
func (s *StubFetcher) Requests() []pagefetch.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]pagefetch.Request(nil), s.requests...)
}
