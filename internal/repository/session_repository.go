package repository

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fadilmartias/pitch-evaluator/internal/model"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps evaluation sessions in memory until they expire.
// Nothing survives a restart.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]model.Session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[uuid.UUID]model.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create stores a new session and fills in its ID and timestamps.
func (r *SessionRepository) Create(session *model.Session) error {
	if session.Result == nil {
		return fmt.Errorf("create session: result is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	session.ID = uuid.New()
	session.CreatedAt = now
	if r.ttl > 0 {
		session.ExpiresAt = now.Add(r.ttl)
	}
	if session.CurrentSection == "" {
		session.CurrentSection = model.CriterionProblem
	}
	r.sessions[session.ID] = *session
	return nil
}

func (r *SessionRepository) FindByID(id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(id)
}

// SetCurrentSection records the criterion last viewed in the session.
func (r *SessionRepository) SetCurrentSection(id string, c model.Criterion) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, err := r.findLocked(id)
	if err != nil {
		return nil, err
	}
	session.CurrentSection = c
	r.sessions[session.ID] = *session
	return session, nil
}

func (r *SessionRepository) findLocked(id string) (*model.Session, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	session, ok := r.sessions[key]
	if !ok || r.expired(session) {
		delete(r.sessions, key)
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return &session, nil
}

// List returns live sessions newest first, one page at a time, plus the total count.
func (r *SessionRepository) List(page, pageSize int) ([]model.Session, int64, error) {
	if page < 1 || pageSize < 1 {
		return nil, 0, fmt.Errorf("invalid page %d or page size %d", page, pageSize)
	}

	r.mu.RLock()
	live := make([]model.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		if !r.expired(s) {
			live = append(live, s)
		}
	}
	r.mu.RUnlock()

	sort.Slice(live, func(i, j int) bool {
		if live[i].CreatedAt.Equal(live[j].CreatedAt) {
			return live[i].ID.String() < live[j].ID.String()
		}
		return live[i].CreatedAt.After(live[j].CreatedAt)
	})

	total := int64(len(live))
	start := (page - 1) * pageSize
	if start >= len(live) {
		return []model.Session{}, total, nil
	}
	end := min(start+pageSize, len(live))
	return live[start:end], total, nil
}

// PurgeExpired drops expired sessions and reports how many were removed.
func (r *SessionRepository) PurgeExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if r.expired(s) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

func (r *SessionRepository) expired(s model.Session) bool {
	return !s.ExpiresAt.IsZero() && !r.now().Before(s.ExpiresAt)
}
