package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"kacchi/model"
	"kacchi/utils"
)

type ProfilesRepo struct {
	mu       sync.Mutex
	profiles map[string]model.UserProfile // by user id
}

func NewProfilesRepo() *ProfilesRepo {
	return &ProfilesRepo{profiles: make(map[string]model.UserProfile)}
}

// ensure must be called with mu held.
func (r *ProfilesRepo) ensure(userID string) model.UserProfile {
	p, ok := r.profiles[userID]
	if !ok {
		ts := now()
		p = model.UserProfile{
			ID:          utils.NewID(),
			UserID:      userID,
			Preferences: model.DefaultPreferences(),
			CreatedAt:   ts,
			UpdatedAt:   ts,
		}
		r.profiles[userID] = p
	}
	return p
}

func (r *ProfilesRepo) GetOrCreate(_ context.Context, userID string) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.ensure(userID)
	return &p, nil
}

func (r *ProfilesRepo) Update(_ context.Context, userID string, patch model.ProfilePatch) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.ensure(userID)
	if patch.DisplayName != nil {
		p.DisplayName = *patch.DisplayName
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.AvatarURL != nil {
		p.AvatarURL = *patch.AvatarURL
	}
	if patch.Preferences != nil {
		p.Preferences = *patch.Preferences
	}
	p.UpdatedAt = now()
	r.profiles[userID] = p
	return &p, nil
}

func statCounter(s *model.UserStats, field model.StatField) *int64 {
	switch field {
	case model.StatNotes:
		return &s.NotesCount
	case model.StatStories:
		return &s.StoriesCount
	case model.StatExpenses:
		return &s.ExpensesCount
	case model.StatMemories:
		return &s.MemoriesCount
	}
	return nil
}

func (r *ProfilesRepo) IncrementStat(_ context.Context, userID string, field model.StatField, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		if delta <= 0 {
			return nil
		}
		p = r.ensure(userID)
	}

	counter := statCounter(&p.Stats, field)
	if counter == nil || *counter+delta < 0 {
		return nil
	}
	*counter += delta
	p.UpdatedAt = now()
	r.profiles[userID] = p
	return nil
}

func (r *ProfilesRepo) SetStats(_ context.Context, userID string, stats model.UserStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.ensure(userID)
	p.Stats = stats
	p.UpdatedAt = now()
	r.profiles[userID] = p
	return nil
}

type UsersRepo struct {
	mu      sync.RWMutex
	users   map[string]model.User
	byEmail map[string]string
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		users:   make(map[string]model.User),
		byEmail: make(map[string]string),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UsersRepo) Create(_ context.Context, user *model.User) error {
	user.Email = normalizeEmail(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return model.ErrConflict
	}
	if _, taken := r.users[user.ID]; taken {
		return model.ErrConflict
	}
	r.users[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *UsersRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, model.ErrNotFound
	}
	u := r.users[id]
	return &u, nil
}

func (r *UsersRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &u, nil
}

func (r *UsersRepo) RecordLogin(_ context.Context, id string, at time.Time, device string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return model.ErrNotFound
	}
	u.LastLoginAt = at
	u.LastLoginDevice = device
	u.UpdatedAt = at
	r.users[id] = u
	return nil
}
