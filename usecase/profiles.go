package usecase

import (
	"context"
	"fmt"

	"kacchi/model"
	"kacchi/repository"

	"golang.org/x/sync/errgroup"
)

// StatsCounter derives exact per-user counts from the entity stores.
type StatsCounter struct {
	Rooms    repository.RoomRepository
	Notes    repository.NoteRepository
	Stories  repository.StoryRepository
	Expenses repository.ExpenseRepository
	Memories repository.MemoryRepository
}

func NewStatsCounter(store *repository.Store) *StatsCounter {
	return &StatsCounter{
		Rooms:    store.Rooms,
		Notes:    store.Notes,
		Stories:  store.Stories,
		Expenses: store.Expenses,
		Memories: store.Memories,
	}
}

func (c *StatsCounter) Count(ctx context.Context, userID string) (model.UserStats, error) {
	var stats model.UserStats
	g, ctx := errgroup.WithContext(ctx)

	counters := []struct {
		count func(context.Context, string) (int64, error)
		dst   *int64
	}{
		{c.Rooms.Count, &stats.CreatedRooms},
		{c.Notes.Count, &stats.NotesCount},
		{c.Stories.Count, &stats.StoriesCount},
		{c.Expenses.Count, &stats.ExpensesCount},
		{c.Memories.Count, &stats.MemoriesCount},
	}
	for _, ctr := range counters {
		g.Go(func() error {
			n, err := ctr.count(ctx, userID)
			if err != nil {
				return err
			}
			*ctr.dst = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.UserStats{}, fmt.Errorf("count user content: %w", err)
	}
	return stats, nil
}

type ProfileService struct {
	Profiles repository.ProfileRepository
	Counter  *StatsCounter
}

func NewProfileService(store *repository.Store) *ProfileService {
	return &ProfileService{Profiles: store.Profiles, Counter: NewStatsCounter(store)}
}

// Get returns the caller's profile with freshly recomputed stats. Asking for
// anyone else's profile is model.ErrForbidden.
func (svc *ProfileService) Get(ctx context.Context, callerID, userID string) (*model.UserProfile, error) {
	if callerID != userID {
		return nil, model.ErrForbidden
	}

	profile, err := svc.Profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	stats, err := svc.Counter.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := svc.Profiles.SetStats(ctx, userID, stats); err != nil {
		return nil, fmt.Errorf("store profile stats: %w", err)
	}
	profile.Stats = stats
	return profile, nil
}

func (svc *ProfileService) Update(ctx context.Context, callerID, userID string, patch model.ProfilePatch) (*model.UserProfile, error) {
	if callerID != userID {
		return nil, model.ErrForbidden
	}

	if p := patch.Preferences; p != nil {
		if p.Theme == "" {
			p.Theme = model.ThemeAuto
		}
		switch p.Theme {
		case model.ThemeLight, model.ThemeDark, model.ThemeAuto:
		default:
			return nil, model.NewValidationError("Theme must be one of: light, dark, auto")
		}
	}

	profile, err := svc.Profiles.Update(ctx, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}
