package store

import (
	"context"
	"strings"

	"mhimmo/internal/domain"
)

// CreateUser appends a user. Duplicate emails are accepted.
func (s *Store) CreateUser(ctx context.Context, in domain.NewUser) (domain.User, error) {
	s.mu.Lock()
	u := domain.User{
		ID:        freshID(s, "user", s.data.Users, func(u domain.User) string { return u.ID }),
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		Phone:     in.Phone,
		CreatedAt: s.now(),
	}
	s.data.Users = append(s.data.Users, u)
	err := s.commit(ctx, pending{domain.CollectionUsers, clone(s.data.Users)})
	return u, err
}

func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.data.Users)
}

func (s *Store) UserByID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.UserByID(id)
}

func (s *Store) UserByEmail(email string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.UserByEmail(email)
}

// UsersByRole returns users holding role, in insertion order.
func (s *Store) UsersByRole(role domain.Role) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.User
	for _, u := range s.data.Users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// SearchUsers matches q against name and email (case-insensitive) and
// optionally filters by role. An empty q matches everyone.
func (s *Store) SearchUsers(q string, role domain.Role) []domain.User {
	q = strings.ToLower(strings.TrimSpace(q))
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.data.Users))
	for _, u := range s.data.Users {
		if role != "" && u.Role != role {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(strings.ToLower(u.Email), q) {
			continue
		}
		out = append(out, u)
	}
	return out
}
