package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"kacchi/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesOwnershipAndOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepo()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	old := &model.Note{ID: "n1", UserID: "alice", Title: "old", Tags: []string{"a"}, IsPinned: true, UpdatedAt: base}
	recent := &model.Note{ID: "n2", UserID: "alice", Title: "recent", UpdatedAt: base.Add(time.Hour)}
	foreign := &model.Note{ID: "n3", UserID: "bob", Title: "bob's", UpdatedAt: base.Add(2 * time.Hour)}
	for _, n := range []*model.Note{old, recent, foreign} {
		require.NoError(t, repo.Create(ctx, n))
	}

	notes, err := repo.List(ctx, "alice", model.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "n1", notes[0].ID, "pinned first")
	assert.Equal(t, "n2", notes[1].ID)

	_, err = repo.FindByID(ctx, "alice", "n3")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = repo.Update(ctx, "alice", "n3", model.NotePatch{})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = repo.Delete(ctx, "alice", "n3")
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.ErrorIs(t, repo.Create(ctx, old), model.ErrConflict)
}

func TestNotesReturnCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepo()
	require.NoError(t, repo.Create(ctx, &model.Note{ID: "n1", UserID: "u", Title: "kept"}))

	got, err := repo.FindByID(ctx, "u", "n1")
	require.NoError(t, err)
	got.Title = "changed"

	again, err := repo.FindByID(ctx, "u", "n1")
	require.NoError(t, err)
	assert.Equal(t, "kept", again.Title)
}

func TestSliceFieldsAreNotShared(t *testing.T) {
	ctx := context.Background()

	notes := NewNotesRepo()
	tags := []string{"food"}
	require.NoError(t, notes.Create(ctx, &model.Note{ID: "n1", UserID: "u", Tags: tags}))
	tags[0] = "caller"

	got, err := notes.FindByID(ctx, "u", "n1")
	require.NoError(t, err)
	assert.Equal(t, []string{"food"}, got.Tags)
	got.Tags[0] = "mutated"

	listed, err := notes.List(ctx, "u", model.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, []string{"food"}, listed[0].Tags)
	listed[0].Tags[0] = "mutated"

	patch := []string{"patched"}
	updated, err := notes.Update(ctx, "u", "n1", model.NotePatch{Tags: &patch})
	require.NoError(t, err)
	patch[0] = "caller"
	updated.Tags[0] = "mutated"

	got, err = notes.FindByID(ctx, "u", "n1")
	require.NoError(t, err)
	assert.Equal(t, []string{"patched"}, got.Tags)

	memories := NewMemoriesRepo()
	require.NoError(t, memories.Create(ctx, &model.Memory{ID: "m1", UserID: "u", MediaURLs: []string{"a.png"}}))
	mem, err := memories.FindByID(ctx, "u", "m1")
	require.NoError(t, err)
	mem.MediaURLs[0] = "mutated"

	mem, err = memories.FindByID(ctx, "u", "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png"}, mem.MediaURLs)
}

func TestRecentExpensesAndMemoriesFollowDate(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	expenses := NewExpensesRepo()
	memories := NewMemoriesRepo()
	for i := 0; i < 6; i++ {
		id := string(rune('a' + i))
		date := base.AddDate(0, 0, i)
		// Updated order runs opposite to the date order.
		updated := base.Add(-time.Duration(i) * time.Hour)
		require.NoError(t, expenses.Create(ctx, &model.Expense{ID: id, UserID: "u", Date: date, CreatedAt: base, UpdatedAt: updated}))
		require.NoError(t, memories.Create(ctx, &model.Memory{ID: id, UserID: "u", Date: date, CreatedAt: base, UpdatedAt: updated}))
	}

	recentExpenses, err := expenses.Recent(ctx, "u", 5)
	require.NoError(t, err)
	require.Len(t, recentExpenses, 5)
	assert.Equal(t, "f", recentExpenses[0].ID)
	assert.Equal(t, "b", recentExpenses[4].ID)

	recentMemories, err := memories.Recent(ctx, "u", 5)
	require.NoError(t, err)
	require.Len(t, recentMemories, 5)
	assert.Equal(t, "f", recentMemories[0].ID)
	assert.Equal(t, "b", recentMemories[4].ID)
}

func TestSearchIsLiteralAndCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepo()
	require.NoError(t, repo.Create(ctx, &model.Note{ID: "1", UserID: "u", Title: "Cost (USD) .*", Tags: []string{"money"}}))
	require.NoError(t, repo.Create(ctx, &model.Note{ID: "2", UserID: "u", Title: "anything"}))

	got, err := repo.Search(ctx, "u", model.SearchQuery{Text: "(usd) .*", Limit: 20})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got, err = repo.Search(ctx, "u", model.SearchQuery{Tag: "money", Limit: 20})
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = repo.Search(ctx, "u", model.SearchQuery{Text: "a", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestExpensesRangeAndTotals(t *testing.T) {
	ctx := context.Background()
	repo := NewExpensesRepo()

	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 12, 0, 0, 0, time.UTC) }
	rows := []*model.Expense{
		{ID: "e1", UserID: "u", Amount: 10, Category: "Food", Date: day(3, 1)},
		{ID: "e2", UserID: "u", Amount: 2.5, Category: "Food", Date: day(3, 20)},
		{ID: "e3", UserID: "u", Amount: 40, Category: "Bills", Date: day(3, 31)},
		{ID: "e4", UserID: "u", Amount: 7, Category: "Bills", Date: day(4, 1)},
		{ID: "e5", UserID: "other", Amount: 100, Category: "Food", Date: day(3, 5)},
	}
	for _, e := range rows {
		require.NoError(t, repo.Create(ctx, e))
	}

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := day(3, 20)
	list, err := repo.List(ctx, "u", model.ExpenseFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "e2", list[0].ID, "newest date first")

	totals, err := repo.CategoryTotals(ctx, "u", from, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []model.CategoryTotal{
		{Category: "Bills", Total: 40, Count: 1},
		{Category: "Food", Total: 12.5, Count: 2},
	}, totals)
}

func TestChapterSequence(t *testing.T) {
	ctx := context.Background()
	repo := NewChaptersRepo()

	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := repo.NextOrder(ctx, "s1")
			assert.NoError(t, err)
			_, dup := seen.LoadOrStore(n, true)
			assert.False(t, dup)
		}()
	}
	wg.Wait()

	require.NoError(t, repo.ObserveOrder(ctx, "s1", 10))
	n, _ := repo.NextOrder(ctx, "s1")
	assert.Equal(t, 51, n)

	require.NoError(t, repo.ObserveOrder(ctx, "s1", 80))
	n, _ = repo.NextOrder(ctx, "s1")
	assert.Equal(t, 81, n)

	require.NoError(t, repo.DropSequence(ctx, "s1"))
	n, _ = repo.NextOrder(ctx, "s1")
	assert.Equal(t, 1, n)
}

func TestChaptersDeleteByStory(t *testing.T) {
	ctx := context.Background()
	repo := NewChaptersRepo()
	require.NoError(t, repo.Create(ctx, &model.Chapter{ID: "c2", StoryID: "s", UserID: "u", Order: 2}))
	require.NoError(t, repo.Create(ctx, &model.Chapter{ID: "c1", StoryID: "s", UserID: "u", Order: 1}))
	require.NoError(t, repo.Create(ctx, &model.Chapter{ID: "c3", StoryID: "t", UserID: "u", Order: 1}))

	list, err := repo.ListByStory(ctx, "s")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c1", list[0].ID)

	n, err := repo.DeleteByStory(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	list, _ = repo.ListByStory(ctx, "s")
	assert.Empty(t, list)
}

func TestProfileStatsNeverNegative(t *testing.T) {
	ctx := context.Background()
	repo := NewProfilesRepo()

	require.NoError(t, repo.IncrementStat(ctx, "u", model.StatNotes, -1))
	require.NoError(t, repo.IncrementStat(ctx, "u", model.StatNotes, 1))
	require.NoError(t, repo.IncrementStat(ctx, "u", model.StatNotes, -1))
	require.NoError(t, repo.IncrementStat(ctx, "u", model.StatNotes, -1))

	p, err := repo.GetOrCreate(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Stats.NotesCount)
	assert.Equal(t, model.DefaultPreferences(), p.Preferences)

	again, err := repo.GetOrCreate(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)
}

func TestUsersEmailUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewUsersRepo()

	require.NoError(t, repo.Create(ctx, &model.User{ID: "1", Email: " Ana@Example.com"}))
	assert.ErrorIs(t, repo.Create(ctx, &model.User{ID: "2", Email: "ana@example.com"}), model.ErrConflict)

	u, err := repo.FindByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)

	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.RecordLogin(ctx, "1", at, "Firefox on Linux"))
	u, _ = repo.FindByID(ctx, "1")
	assert.Equal(t, "Firefox on Linux", u.LastLoginDevice)
	assert.ErrorIs(t, repo.RecordLogin(ctx, "9", at, ""), model.ErrNotFound)
}
