package memory

import (
	"context"
	"slices"
	"time"

	"kacchi/model"
)

type RoomsRepo struct {
	t *table[model.Room]
}

func NewRoomsRepo() *RoomsRepo {
	return &RoomsRepo{t: newTable(func(r *model.Room) (string, string) { return r.ID, r.UserID })}
}

func roomUpdated(r *model.Room) time.Time { return r.UpdatedAt }

func (r *RoomsRepo) Create(_ context.Context, room *model.Room) error {
	return r.t.insert(room)
}

func (r *RoomsRepo) FindByID(_ context.Context, userID, id string) (*model.Room, error) {
	return r.t.get(userID, id)
}

func (r *RoomsRepo) List(_ context.Context, userID string) ([]*model.Room, error) {
	rooms := r.t.owned(userID, nil)
	sortByUpdated(rooms, roomUpdated)
	return rooms, nil
}

func (r *RoomsRepo) Recent(ctx context.Context, userID string, n int64) ([]*model.Room, error) {
	rooms, _ := r.List(ctx, userID)
	return limit(rooms, n), nil
}

func (r *RoomsRepo) Update(_ context.Context, userID, id string, patch model.RoomPatch) (*model.Room, error) {
	return r.t.update(userID, id, func(room *model.Room) {
		if patch.Title != nil {
			room.Title = *patch.Title
		}
		if patch.Content != nil {
			room.Content = *patch.Content
		}
		room.UpdatedAt = now()
	})
}

func (r *RoomsRepo) Delete(_ context.Context, userID, id string) (*model.Room, error) {
	return r.t.remove(userID, id)
}

func (r *RoomsRepo) Count(_ context.Context, userID string) (int64, error) {
	return r.t.count(userID), nil
}

type NotesRepo struct {
	t *table[model.Note]
}

func NewNotesRepo() *NotesRepo {
	t := newTable(func(n *model.Note) (string, string) { return n.ID, n.UserID })
	return &NotesRepo{t: t.withDetach(func(n *model.Note) { n.Tags = slices.Clone(n.Tags) })}
}

func noteUpdated(n *model.Note) time.Time { return n.UpdatedAt }

func (r *NotesRepo) Create(_ context.Context, note *model.Note) error {
	return r.t.insert(note)
}

func (r *NotesRepo) FindByID(_ context.Context, userID, id string) (*model.Note, error) {
	return r.t.get(userID, id)
}

func (r *NotesRepo) List(_ context.Context, userID string, f model.NoteFilter) ([]*model.Note, error) {
	notes := r.t.owned(userID, func(n *model.Note) bool {
		if f.RoomID != "" && n.RoomID != f.RoomID {
			return false
		}
		if f.Tag != "" && !slices.Contains(n.Tags, f.Tag) {
			return false
		}
		if f.Archived != nil && n.IsArchived != *f.Archived {
			return false
		}
		return true
	})
	slices.SortStableFunc(notes, func(a, b *model.Note) int {
		if a.IsPinned != b.IsPinned {
			if a.IsPinned {
				return -1
			}
			return 1
		}
		return newestFirst(a.UpdatedAt, b.UpdatedAt)
	})
	return notes, nil
}

func (r *NotesRepo) Recent(_ context.Context, userID string, n int64) ([]*model.Note, error) {
	notes := r.t.owned(userID, nil)
	sortByUpdated(notes, noteUpdated)
	return limit(notes, n), nil
}

func (r *NotesRepo) Update(_ context.Context, userID, id string, patch model.NotePatch) (*model.Note, error) {
	return r.t.update(userID, id, func(n *model.Note) {
		if patch.Title != nil {
			n.Title = *patch.Title
		}
		if patch.Content != nil {
			n.Content = *patch.Content
		}
		if patch.Tags != nil {
			n.Tags = slices.Clone(*patch.Tags)
		}
		if patch.IsPinned != nil {
			n.IsPinned = *patch.IsPinned
		}
		if patch.IsArchived != nil {
			n.IsArchived = *patch.IsArchived
		}
		n.UpdatedAt = now()
	})
}

func (r *NotesRepo) Delete(_ context.Context, userID, id string) (*model.Note, error) {
	return r.t.remove(userID, id)
}

func (r *NotesRepo) Count(_ context.Context, userID string) (int64, error) {
	return r.t.count(userID), nil
}

func (r *NotesRepo) Search(_ context.Context, userID string, q model.SearchQuery) ([]*model.Note, error) {
	notes := r.t.owned(userID, func(n *model.Note) bool {
		if q.Tag != "" && !slices.Contains(n.Tags, q.Tag) {
			return false
		}
		return anyContains(q.Text, n.Title, n.Content)
	})
	sortByUpdated(notes, noteUpdated)
	return limit(notes, q.Limit), nil
}

type MemoriesRepo struct {
	t *table[model.Memory]
}

func NewMemoriesRepo() *MemoriesRepo {
	t := newTable(func(m *model.Memory) (string, string) { return m.ID, m.UserID })
	return &MemoriesRepo{t: t.withDetach(func(m *model.Memory) { m.MediaURLs = slices.Clone(m.MediaURLs) })}
}

func memoryDate(m *model.Memory) time.Time    { return m.Date }
func memoryCreated(m *model.Memory) time.Time { return m.CreatedAt }

func (r *MemoriesRepo) Create(_ context.Context, memory *model.Memory) error {
	return r.t.insert(memory)
}

func (r *MemoriesRepo) FindByID(_ context.Context, userID, id string) (*model.Memory, error) {
	return r.t.get(userID, id)
}

func (r *MemoriesRepo) List(_ context.Context, userID string, f model.MemoryFilter) ([]*model.Memory, error) {
	memories := r.t.owned(userID, func(m *model.Memory) bool {
		if f.Mood != "" && m.Mood != f.Mood {
			return false
		}
		return inRange(m.Date, f.From, f.To)
	})
	sortByDate(memories, memoryDate, memoryCreated)
	return memories, nil
}

func (r *MemoriesRepo) Recent(_ context.Context, userID string, n int64) ([]*model.Memory, error) {
	memories := r.t.owned(userID, nil)
	sortByDate(memories, memoryDate, memoryCreated)
	return limit(memories, n), nil
}

func (r *MemoriesRepo) Update(_ context.Context, userID, id string, patch model.MemoryPatch) (*model.Memory, error) {
	return r.t.update(userID, id, func(m *model.Memory) {
		if patch.Text != nil {
			m.Text = *patch.Text
		}
		if patch.Mood != nil {
			m.Mood = *patch.Mood
		}
		if patch.Date != nil {
			m.Date = patch.Date.Time
		}
		if patch.MediaURLs != nil {
			m.MediaURLs = slices.Clone(*patch.MediaURLs)
		}
		m.UpdatedAt = now()
	})
}

func (r *MemoriesRepo) Delete(_ context.Context, userID, id string) (*model.Memory, error) {
	return r.t.remove(userID, id)
}

func (r *MemoriesRepo) Count(_ context.Context, userID string) (int64, error) {
	return r.t.count(userID), nil
}

func (r *MemoriesRepo) Search(_ context.Context, userID string, q model.SearchQuery) ([]*model.Memory, error) {
	memories := r.t.owned(userID, func(m *model.Memory) bool {
		return anyContains(q.Text, m.Text)
	})
	sortByDate(memories, memoryDate, memoryCreated)
	return limit(memories, q.Limit), nil
}
