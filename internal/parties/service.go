// Package parties caches seller/buyer directory records for local lookup.
package parties

import "github.com/gstdraft-dev/gstdraft/internal/model"

// Service provides in-memory lookup over directory records. It is immutable
// after construction; a successful directory refresh swaps in a new Service.
type Service struct {
	parties []model.Party
	byID    map[int]model.Party
}

// NewService creates a Service from a slice of directory records.
func NewService(parties []model.Party) *Service {
	byID := make(map[int]model.Party, len(parties))
	for _, p := range parties {
		byID[p.ID] = p
	}
	return &Service{parties: parties, byID: byID}
}

// All returns all cached records.
func (s *Service) All() []model.Party {
	return s.parties
}

// Get returns a record by ID.
func (s *Service) Get(id int) (model.Party, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Exists reports whether a record ID is cached.
func (s *Service) Exists(id int) bool {
	_, ok := s.byID[id]
	return ok
}
