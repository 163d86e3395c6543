package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"kacchi/model"
	"kacchi/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// newTestStore connects to TEST_MONGO_URI and hands back a store on a
// throwaway database that is dropped when the test ends.
func newTestStore(t *testing.T) (*Store, *mongo.Database) {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := utils.ConnectMongo(ctx, utils.MongoOptions{URI: uri, MaxPoolSize: 10})
	require.NoError(t, err)

	dbName := "kacchi_test_" + utils.NewID()[:8]
	db := client.Database(dbName)
	require.NoError(t, SetupIndexes(ctx, db))

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return NewMongoStore(client, dbName), db
}

func newNote(userID, title string, tags ...string) *model.Note {
	now := time.Now().UTC()
	return &model.Note{
		ID:        utils.NewID(),
		UserID:    userID,
		RoomID:    "room-1",
		Title:     title,
		Content:   "the quick brown fox jumps over the lazy dog.",
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMongoNotes(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	owner := utils.NewID()
	other := utils.NewID()

	first := newNote(owner, "Groceries", "home")
	second := newNote(owner, "Work (1+1)", "work")
	require.NoError(t, store.Notes.Create(ctx, first))
	require.NoError(t, store.Notes.Create(ctx, second))

	t.Run("OwnershipHidesOtherUsers", func(t *testing.T) {
		_, err := store.Notes.FindByID(ctx, other, first.ID)
		assert.ErrorIs(t, err, model.ErrNotFound)

		_, err = store.Notes.Delete(ctx, other, first.ID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("PinnedFirst", func(t *testing.T) {
		pinned := true
		_, err := store.Notes.Update(ctx, owner, first.ID, model.NotePatch{IsPinned: &pinned})
		require.NoError(t, err)

		notes, err := store.Notes.List(ctx, owner, model.NoteFilter{})
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, first.ID, notes[0].ID)
	})

	t.Run("SearchEscapesPattern", func(t *testing.T) {
		notes, err := store.Notes.Search(ctx, owner, model.SearchQuery{Text: "(1+1)", Limit: 20})
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, second.ID, notes[0].ID)

		notes, err = store.Notes.Search(ctx, owner, model.SearchQuery{Tag: "home", Limit: 20})
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, first.ID, notes[0].ID)
	})

	t.Run("Count", func(t *testing.T) {
		n, err := store.Notes.Count(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("PartialUpdateKeepsOtherFields", func(t *testing.T) {
		title := "Groceries for Sunday"
		updated, err := store.Notes.Update(ctx, owner, first.ID, model.NotePatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, title, updated.Title)

		stored, err := store.Notes.FindByID(ctx, owner, first.ID)
		require.NoError(t, err)
		assert.Equal(t, title, stored.Title)
		assert.Equal(t, first.Content, stored.Content)
		assert.Equal(t, []string{"home"}, stored.Tags)
		assert.Equal(t, first.RoomID, stored.RoomID)
		assert.True(t, stored.IsPinned, "pinned by the earlier subtest")
		assert.False(t, stored.UpdatedAt.Before(first.UpdatedAt))
	})
}

func TestMongoChapterOrderIsUniqueUnderConcurrency(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	storyID := utils.NewID()

	const workers = 20
	orders := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := store.Chapters.NextOrder(ctx, storyID)
			assert.NoError(t, err)
			orders[i] = n
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool, workers)
	for _, o := range orders {
		assert.False(t, seen[o], "order %d assigned twice", o)
		seen[o] = true
	}

	require.NoError(t, store.Chapters.ObserveOrder(ctx, storyID, 100))
	next, err := store.Chapters.NextOrder(ctx, storyID)
	require.NoError(t, err)
	assert.Equal(t, 101, next)

	require.NoError(t, store.Chapters.DropSequence(ctx, storyID))
	next, err = store.Chapters.NextOrder(ctx, storyID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestMongoExpenseCategoryTotals(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	owner := utils.NewID()

	add := func(amount float64, cat model.ExpenseCategory, date time.Time) {
		require.NoError(t, store.Expenses.Create(ctx, &model.Expense{
			ID: utils.NewID(), UserID: owner, RoomID: "r", Title: "x",
			Amount: amount, Category: cat, Date: date,
			CreatedAt: date, UpdatedAt: date,
		}))
	}
	add(10, "Food", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	add(5.5, "Food", time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC))
	add(20, "Bills", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	add(99, "Bills", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	totals, err := store.Expenses.CategoryTotals(ctx, owner,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	got := map[model.ExpenseCategory]float64{}
	for _, ct := range totals {
		got[ct.Category] = ct.Total
	}
	assert.Equal(t, map[model.ExpenseCategory]float64{"Food": 15.5, "Bills": 20}, got)

	recent, err := store.Expenses.Recent(ctx, owner, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 99.0, recent[0].Amount, "latest expense date first")
	assert.Equal(t, 5.5, recent[1].Amount)
}

func TestMongoProfileStats(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	owner := utils.NewID()

	require.NoError(t, store.Profiles.IncrementStat(ctx, owner, model.StatNotes, 1))
	require.NoError(t, store.Profiles.IncrementStat(ctx, owner, model.StatNotes, -1))
	require.NoError(t, store.Profiles.IncrementStat(ctx, owner, model.StatNotes, -1))

	profile, err := store.Profiles.GetOrCreate(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(0), profile.Stats.NotesCount)
	assert.Equal(t, model.DefaultPreferences(), profile.Preferences)

	require.NoError(t, store.Profiles.SetStats(ctx, owner, model.UserStats{NotesCount: 3, CreatedRooms: 2}))
	profile, err = store.Profiles.GetOrCreate(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(3), profile.Stats.NotesCount)
	assert.Equal(t, int64(2), profile.Stats.CreatedRooms)
}

func TestMongoUsersUniqueEmail(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	u := &model.User{ID: utils.NewID(), Name: "A", Email: "A@Example.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Users.Create(ctx, u))

	dup := &model.User{ID: utils.NewID(), Name: "B", Email: "a@example.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	assert.ErrorIs(t, store.Users.Create(ctx, dup), model.ErrConflict)

	found, err := store.Users.FindByEmail(ctx, "a@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	require.NoError(t, store.Users.RecordLogin(ctx, u.ID, now, "Chrome on Linux"))
	assert.ErrorIs(t, store.Users.RecordLogin(ctx, "missing", now, ""), model.ErrNotFound)
}
