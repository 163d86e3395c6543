package usecase

import (
	"context"
	"testing"
	"time"

	"kacchi/model"
	"kacchi/repository"
	"kacchi/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "alice"
	bob   = "bob"
)

func newStore(t *testing.T) *repository.Store {
	t.Helper()
	return memory.NewStore()
}

// tick makes now() advance a second per call so orderings are deterministic.
func tick(t *testing.T) {
	t.Helper()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	orig := now
	now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	t.Cleanup(func() { now = orig })
}

func ptr[T any](v T) *T { return &v }

func TestRoomsDefaultsAndValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewRoomsService(newStore(t))

	room, err := svc.Create(ctx, alice, model.RoomInput{Title: "Ideas"})
	require.NoError(t, err)
	assert.Equal(t, model.RoomTypeFree, room.Type)

	_, err = svc.Create(ctx, alice, model.RoomInput{Type: "diary"})
	var ve *model.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Get(ctx, bob, room.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.ListNotes(ctx, bob, room.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRoomDeleteDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	rooms := NewRoomsService(store)
	notes := NewNotesService(store)

	room, err := rooms.Create(ctx, alice, model.RoomInput{Type: model.RoomTypeNote})
	require.NoError(t, err)
	note, err := notes.Create(ctx, alice, model.NoteInput{RoomID: room.ID})
	require.NoError(t, err)

	listed, err := rooms.ListNotes(ctx, alice, room.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	_, err = rooms.Delete(ctx, alice, room.ID)
	require.NoError(t, err)

	kept, err := notes.Get(ctx, alice, note.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, kept.RoomID)
}

func TestNotesLifecycleTracksStats(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewNotesService(store)

	_, err := svc.Create(ctx, alice, model.NoteInput{})
	assert.EqualError(t, err, "Room ID is required")

	blank, err := svc.Create(ctx, alice, model.NoteInput{RoomID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultNoteTitle, blank.Title)
	assert.NotNil(t, blank.Tags)

	note, err := svc.Create(ctx, alice, model.NoteInput{RoomID: "r2", Title: "Dessert", Content: "Apple Pie", Tags: []string{"food"}})
	require.NoError(t, err)

	profile, _ := store.Profiles.GetOrCreate(ctx, alice)
	assert.Equal(t, int64(2), profile.Stats.NotesCount)

	updated, err := svc.Update(ctx, alice, note.ID, model.NotePatch{Title: ptr("Plans")})
	require.NoError(t, err)
	assert.Equal(t, "Plans", updated.Title)
	assert.Equal(t, "Apple Pie", updated.Content)
	assert.Equal(t, []string{"food"}, updated.Tags)
	assert.Equal(t, "r2", updated.RoomID)
	assert.False(t, updated.IsPinned)

	stored, err := svc.Get(ctx, alice, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apple Pie", stored.Content)
	assert.Equal(t, []string{"food"}, stored.Tags)

	updated, err = svc.Update(ctx, alice, note.ID, model.NotePatch{Tags: &[]string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, updated.Tags)
	assert.Equal(t, "Plans", updated.Title)
	assert.Equal(t, "Apple Pie", updated.Content)

	_, err = svc.Delete(ctx, bob, note.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.Delete(ctx, alice, note.ID)
	require.NoError(t, err)
	profile, _ = store.Profiles.GetOrCreate(ctx, alice)
	assert.Equal(t, int64(1), profile.Stats.NotesCount)
}

func TestStoryChaptersAndCascade(t *testing.T) {
	tick(t)
	ctx := context.Background()
	store := newStore(t)
	svc := NewStoriesService(store)

	story, err := svc.Create(ctx, alice, model.StoryInput{RoomID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultStoryTitle, story.Title)

	_, err = svc.CreateChapter(ctx, alice, model.ChapterInput{})
	assert.EqualError(t, err, "Story ID is required")

	_, err = svc.CreateChapter(ctx, bob, model.ChapterInput{StoryID: story.ID})
	assert.ErrorIs(t, err, model.ErrNotFound)

	first, err := svc.CreateChapter(ctx, alice, model.ChapterInput{StoryID: story.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Order)
	assert.Equal(t, model.DefaultChapterTitle, first.Title)

	explicit, err := svc.CreateChapter(ctx, alice, model.ChapterInput{StoryID: story.ID, Order: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, explicit.Order)

	next, err := svc.CreateChapter(ctx, alice, model.ChapterInput{StoryID: story.ID})
	require.NoError(t, err)
	assert.Equal(t, 6, next.Order)

	_, err = svc.UpdateChapter(ctx, alice, first.ID, model.ChapterPatch{Order: ptr(9)})
	require.NoError(t, err)

	got, err := svc.Get(ctx, alice, story.ID)
	require.NoError(t, err)
	require.Len(t, got.Chapters, 3)
	assert.Equal(t, []int{5, 6, 9}, []int{got.Chapters[0].Order, got.Chapters[1].Order, got.Chapters[2].Order})

	auto, err := svc.CreateChapter(ctx, alice, model.ChapterInput{StoryID: story.ID})
	require.NoError(t, err)
	assert.Equal(t, 10, auto.Order)

	_, err = svc.Delete(ctx, alice, story.ID)
	require.NoError(t, err)

	left, err := store.Chapters.ListByStory(ctx, story.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	_, err = svc.Get(ctx, alice, story.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestExpensesListTotalAndSummary(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewExpensesService(store)

	_, err := svc.Create(ctx, alice, model.ExpenseInput{RoomID: "r", Title: "no amount"})
	assert.EqualError(t, err, "Title and amount are required")

	add := func(title string, amount float64, cat model.ExpenseCategory, date time.Time) {
		_, err := svc.Create(ctx, alice, model.ExpenseInput{
			RoomID: "r", Title: title, Amount: &amount, Category: cat, Date: &model.Date{Time: date},
		})
		require.NoError(t, err)
	}
	add("lunch", 12.5, "Food", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	add("bus", 2, "Transport", time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC))
	add("rent", 500, "Bills", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	add("misc", 1, "", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))

	list, total, err := svc.List(ctx, alice, model.ExpenseFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 4)
	assert.InDelta(t, 515.5, total, 1e-9)
	assert.Equal(t, "rent", list[0].Title)

	from, to, err := model.ParseDateRange("2024-02-01", "2024-02-29")
	require.NoError(t, err)
	list, total, err = svc.List(ctx, alice, model.ExpenseFilter{From: from, To: to})
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.InDelta(t, 15.5, total, 1e-9)

	summary, err := svc.Summary(ctx, alice, 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ExpenseCount)
	assert.InDelta(t, 15.5, summary.Total, 1e-9)
	assert.Equal(t, map[model.ExpenseCategory]float64{"Food": 12.5, "Transport": 2, "Other": 1}, summary.CategoryTotals)

	_, err = svc.Summary(ctx, alice, 2024, 13)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestResolvePeriod(t *testing.T) {
	tick(t)

	y, m, err := ResolvePeriod("", "")
	require.NoError(t, err)
	assert.Equal(t, 2024, y)
	assert.Equal(t, 6, m)

	y, m, err = ResolvePeriod("2023-11", "")
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 11}, []int{y, m})

	y, m, err = ResolvePeriod("3", "2022")
	require.NoError(t, err)
	assert.Equal(t, []int{2022, 3}, []int{y, m})

	_, _, err = ResolvePeriod("13", "")
	assert.ErrorIs(t, err, model.ErrValidation)
	_, _, err = ResolvePeriod("", "abc")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestMemoriesComposeText(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoriesService(newStore(t))

	m, err := svc.Create(ctx, alice, model.MemoryInput{RoomID: "r", Title: "Beach", Content: "Sunny day"})
	require.NoError(t, err)
	assert.Equal(t, "Beach\n\nSunny day", m.Text)
	assert.Equal(t, model.DefaultMood, m.Mood)
	assert.NotNil(t, m.MediaURLs)

	m, err = svc.Update(ctx, alice, m.ID, model.MemoryPatch{Title: ptr("Lake")})
	require.NoError(t, err)
	assert.Equal(t, "Lake", m.Text)

	_, err = svc.List(ctx, alice, model.MemoryFilter{Mood: "bored"})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestProfileOwnershipAndRecompute(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewProfileService(store)

	_, err := svc.Get(ctx, alice, bob)
	assert.ErrorIs(t, err, model.ErrForbidden)
	_, err = svc.Update(ctx, alice, bob, model.ProfilePatch{})
	assert.ErrorIs(t, err, model.ErrForbidden)

	// Drift the cache, then read.
	require.NoError(t, store.Profiles.IncrementStat(ctx, alice, model.StatNotes, 7))
	_, err = NewNotesService(store).Create(ctx, alice, model.NoteInput{RoomID: "r"})
	require.NoError(t, err)
	_, err = NewRoomsService(store).Create(ctx, alice, model.RoomInput{})
	require.NoError(t, err)

	profile, err := svc.Get(ctx, alice, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.Stats.NotesCount)
	assert.Equal(t, int64(1), profile.Stats.CreatedRooms)

	updated, err := svc.Update(ctx, alice, alice, model.ProfilePatch{
		DisplayName: ptr("Ali"),
		Preferences: &model.Preferences{Theme: model.ThemeDark},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ali", updated.DisplayName)
	assert.Equal(t, model.ThemeDark, updated.Preferences.Theme)
}

func TestDashboardMergesActivity(t *testing.T) {
	tick(t)
	ctx := context.Background()
	store := newStore(t)

	notes := NewNotesService(store)
	memories := NewMemoriesService(store)
	for i := 0; i < 6; i++ {
		_, err := notes.Create(ctx, alice, model.NoteInput{RoomID: "r"})
		require.NoError(t, err)
	}
	long := "This memory is definitely longer than fifty characters in total."
	mem, err := memories.Create(ctx, alice, model.MemoryInput{RoomID: "r", Text: long})
	require.NoError(t, err)
	_, err = NewRoomsService(store).Create(ctx, alice, model.RoomInput{})
	require.NoError(t, err)
	_, err = notes.Create(ctx, bob, model.NoteInput{RoomID: "r"})
	require.NoError(t, err)

	dash, err := NewDashboardService(store).Build(ctx, alice)
	require.NoError(t, err)

	assert.Len(t, dash.Rooms, 1)
	assert.Equal(t, int64(6), dash.Stats.NotesCount)
	assert.Equal(t, int64(1), dash.Stats.MemoriesCount)
	assert.Equal(t, int64(1), dash.Stats.RoomsCount)

	require.Len(t, dash.RecentActivity, 6, "five notes plus one memory")
	top := dash.RecentActivity[0]
	assert.Equal(t, mem.ID, top.ID)
	assert.Equal(t, model.ActivityMemory, top.Type)
	assert.Equal(t, []rune(long)[:50], []rune(top.Title)[:50])
	assert.True(t, len(top.Title) == 53)

	for i := 1; i < len(dash.RecentActivity); i++ {
		assert.False(t, dash.RecentActivity[i].Date.After(dash.RecentActivity[i-1].Date))
	}

	profile, _ := store.Profiles.GetOrCreate(ctx, alice)
	assert.Equal(t, int64(6), profile.Stats.NotesCount)
}

func TestTruncateCountsRunes(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 50))
	assert.Equal(t, "ab...", truncate("abc", 2))
	assert.Equal(t, "কচ্...", truncate("কচ্চি", 3))
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := NewSearchService(store)

	_, err := NewNotesService(store).Create(ctx, alice, model.NoteInput{RoomID: "r", Title: "Trip (Goa)", Tags: []string{"travel"}})
	require.NoError(t, err)
	_, err = NewStoriesService(store).Create(ctx, alice, model.StoryInput{RoomID: "r", Title: "A goa story"})
	require.NoError(t, err)
	amount := 40.0
	_, err = NewExpensesService(store).Create(ctx, alice, model.ExpenseInput{RoomID: "r", Title: "Goa hotel", Amount: &amount})
	require.NoError(t, err)

	_, err = svc.Search(ctx, alice, "", "", "")
	assert.EqualError(t, err, "Search query or tag is required")
	_, err = svc.Search(ctx, alice, "goa", "", "songs")
	assert.ErrorIs(t, err, model.ErrValidation)

	res, err := svc.Search(ctx, alice, "GOA", "", "")
	require.NoError(t, err)
	assert.Len(t, res.Notes, 1)
	assert.Len(t, res.Stories, 1)
	assert.Len(t, res.Expenses, 1)
	assert.Equal(t, 3, res.Total())

	res, err = svc.Search(ctx, alice, "(goa)", "", model.SearchNotes)
	require.NoError(t, err)
	assert.Len(t, res.Notes, 1)
	assert.Empty(t, res.Stories)

	res, err = svc.Search(ctx, alice, "", "travel", "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total())

	res, err = svc.Search(ctx, bob, "goa", "", "")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total())
}
