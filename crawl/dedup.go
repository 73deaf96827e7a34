package crawl

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// SeenSet is a crawl-scoped de-duplication set keyed by content digest.
// It lives for one multi-page crawl and is discarded when the crawl ends;
// nothing persists across calls. The zero value is ready to use.
type SeenSet struct {
	mu   sync.Mutex
	seen map[uint64]struct{}
}

// Add records the content and reports whether it was new. Byte-identical
// content (an aliased URL serving the same page) is reported as seen.
func (s *SeenSet) Add(content string) bool {
	sum := xxhash.Sum64String(content)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen == nil {
		s.seen = make(map[uint64]struct{})
	}
	if _, ok := s.seen[sum]; ok {
		return false
	}
	s.seen[sum] = struct{}{}
	return true
}

// Len returns the number of distinct contents recorded.
func (s *SeenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
