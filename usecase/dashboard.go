package usecase

import (
	"context"
	"fmt"
	"slices"

	"kacchi/model"
	"kacchi/repository"
	"kacchi/utils"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardRooms    = 10
	dashboardPerType  = 5
	dashboardActivity = 10
	activityTitleLen  = 50
)

type DashboardService struct {
	Rooms    repository.RoomRepository
	Notes    repository.NoteRepository
	Stories  repository.StoryRepository
	Expenses repository.ExpenseRepository
	Memories repository.MemoryRepository
	Profiles repository.ProfileRepository
	Counter  *StatsCounter
}

func NewDashboardService(store *repository.Store) *DashboardService {
	return &DashboardService{
		Rooms:    store.Rooms,
		Notes:    store.Notes,
		Stories:  store.Stories,
		Expenses: store.Expenses,
		Memories: store.Memories,
		Profiles: store.Profiles,
		Counter:  NewStatsCounter(store),
	}
}

// Build reads everything concurrently; any failed read fails the dashboard.
func (svc *DashboardService) Build(ctx context.Context, userID string) (*model.Dashboard, error) {
	timer := prometheus.NewTimer(utils.DashboardBuildDuration)
	defer timer.ObserveDuration()

	var (
		rooms    []*model.Room
		notes    []*model.Note
		stories  []*model.Story
		expenses []*model.Expense
		memories []*model.Memory
		stats    model.UserStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rooms, err = svc.Rooms.Recent(gctx, userID, dashboardRooms)
		return err
	})
	g.Go(func() (err error) {
		notes, err = svc.Notes.Recent(gctx, userID, dashboardPerType)
		return err
	})
	g.Go(func() (err error) {
		stories, err = svc.Stories.Recent(gctx, userID, dashboardPerType)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = svc.Expenses.Recent(gctx, userID, dashboardPerType)
		return err
	})
	g.Go(func() (err error) {
		memories, err = svc.Memories.Recent(gctx, userID, dashboardPerType)
		return err
	})
	g.Go(func() (err error) {
		_, err = svc.Profiles.GetOrCreate(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		stats, err = svc.Counter.Count(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build dashboard: %w", err)
	}

	if err := svc.Profiles.SetStats(ctx, userID, stats); err != nil {
		return nil, fmt.Errorf("store dashboard stats: %w", err)
	}

	return &model.Dashboard{
		Rooms:          nonNil(rooms),
		RecentActivity: mergeActivity(notes, stories, expenses, memories),
		Stats: model.DashboardStats{
			NotesCount:    stats.NotesCount,
			StoriesCount:  stats.StoriesCount,
			ExpensesCount: stats.ExpensesCount,
			MemoriesCount: stats.MemoriesCount,
			RoomsCount:    stats.CreatedRooms,
		},
	}, nil
}

func mergeActivity(notes []*model.Note, stories []*model.Story, expenses []*model.Expense, memories []*model.Memory) []model.ActivityItem {
	items := make([]model.ActivityItem, 0, len(notes)+len(stories)+len(expenses)+len(memories))
	for _, n := range notes {
		items = append(items, model.ActivityItem{ID: n.ID, Type: model.ActivityNote, Title: n.Title, Date: n.UpdatedAt})
	}
	for _, s := range stories {
		items = append(items, model.ActivityItem{ID: s.ID, Type: model.ActivityStory, Title: s.Title, Date: s.UpdatedAt})
	}
	for _, e := range expenses {
		items = append(items, model.ActivityItem{ID: e.ID, Type: model.ActivityExpense, Title: e.Title, Date: e.UpdatedAt})
	}
	for _, m := range memories {
		items = append(items, model.ActivityItem{ID: m.ID, Type: model.ActivityMemory, Title: truncate(m.Text, activityTitleLen), Date: m.UpdatedAt})
	}

	slices.SortStableFunc(items, func(a, b model.ActivityItem) int {
		return b.Date.Compare(a.Date)
	})
	if len(items) > dashboardActivity {
		items = items[:dashboardActivity]
	}
	return items
}

// truncate cuts s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
