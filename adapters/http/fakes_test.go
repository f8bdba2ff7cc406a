package http

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/techfolio/backend/internal/application/service"
	"github.com/techfolio/backend/internal/domain/portfolio"
	"github.com/techfolio/backend/internal/domain/user"
	"github.com/techfolio/backend/internal/domain/wizard"
	"github.com/techfolio/backend/pkg/apperror"
)

// In-memory substitutes for Postgres and Redis, so the handler tests
// exercise the full use case wiring without containers.

type fakePortfolioRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*portfolio.Portfolio
}

func newFakePortfolioRepo() *fakePortfolioRepo {
	return &fakePortfolioRepo{records: make(map[uuid.UUID]*portfolio.Portfolio)}
}

func (r *fakePortfolioRepo) GetByOwnerID(_ context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.records[ownerID]
	if !ok {
		return nil, apperror.NewNotFound("portfolio", ownerID.String())
	}
	clone := *p
	clone.Normalize()
	return &clone, nil
}

func (r *fakePortfolioRepo) Create(_ context.Context, p *portfolio.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[p.OwnerID]; ok {
		return apperror.NewConflict("portfolio", "owner_id", p.OwnerID.String())
	}
	clone := *p
	r.records[p.OwnerID] = &clone
	return nil
}

func (r *fakePortfolioRepo) Merge(_ context.Context, ownerID uuid.UUID, patch portfolio.Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.records[ownerID]
	if !ok {
		p = portfolio.New(ownerID, "", "")
		r.records[ownerID] = p
	}
	p.Apply(patch)
	return nil
}

func (r *fakePortfolioRepo) ListAll(_ context.Context) ([]*portfolio.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*portfolio.Portfolio, 0, len(r.records))
	for _, p := range r.records {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*wizard.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*wizard.Session)}
}

func (s *fakeSessionStore) Get(_ context.Context, ownerID uuid.UUID) (*wizard.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[ownerID]
	if !ok {
		return nil, apperror.NewNotFound("wizard session", ownerID.String())
	}
	return session, nil
}

func (s *fakeSessionStore) Put(_ context.Context, session *wizard.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.OwnerID] = session
	return nil
}

func (s *fakeSessionStore) Delete(_ context.Context, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, ownerID)
	return nil
}

type fakePreviewCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*portfolio.Portfolio

	gets, hits, sets, invalidations int
}

func newFakePreviewCache() *fakePreviewCache {
	return &fakePreviewCache{entries: make(map[uuid.UUID]*portfolio.Portfolio)}
}

func (c *fakePreviewCache) Get(_ context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	p, ok := c.entries[ownerID]
	if !ok {
		return nil, false
	}
	c.hits++
	clone := *p
	return &clone, true
}

func (c *fakePreviewCache) Set(_ context.Context, p *portfolio.Portfolio) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	clone := *p
	c.entries[p.OwnerID] = &clone
	return nil
}

func (c *fakePreviewCache) Invalidate(_ context.Context, ownerID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	delete(c.entries, ownerID)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperror.NewConflict("user", "email", u.Email)
		}
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperror.NewNotFound("user", id.String())
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperror.NewNotFound("user", id.String())
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeResetTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*user.ResetToken
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{tokens: make(map[string]*user.ResetToken)}
}

func (r *fakeResetTokenRepo) Create(_ context.Context, token *user.ResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *token
	r.tokens[token.TokenHash] = &clone
	return nil
}

func (r *fakeResetTokenRepo) FindByTokenHash(_ context.Context, tokenHash string) (*user.ResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, apperror.NewNotFound("reset token", tokenHash)
	}
	clone := *token
	return &clone, nil
}

func (r *fakeResetTokenRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, token := range r.tokens {
		if token.UserID == userID {
			delete(r.tokens, hash)
		}
	}
	return nil
}

func (r *fakeResetTokenRepo) DeleteExpired(_ context.Context) error {
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []service.ResetPasswordEmail
}

func (m *fakeMailer) SendResetPasswordEmail(_ context.Context, mail service.ResetPasswordEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, mail)
	return nil
}
