// Package memory implements the repository interfaces in process memory. It
// backs STORE_DRIVER=memory and the handler and service tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"kacchi/model"
	"kacchi/repository"
)

// NewStore returns an empty store with every repository wired.
func NewStore() *repository.Store {
	return &repository.Store{
		Rooms:    NewRoomsRepo(),
		Notes:    NewNotesRepo(),
		Stories:  NewStoriesRepo(),
		Chapters: NewChaptersRepo(),
		Expenses: NewExpensesRepo(),
		Memories: NewMemoriesRepo(),
		Profiles: NewProfilesRepo(),
		Users:    NewUsersRepo(),
		Ping:     func(context.Context) error { return nil },
		Close:    func(context.Context) error { return nil },
	}
}

var now = func() time.Time { return time.Now().UTC() }

// table holds owner-scoped rows by value so callers never share memory with
// the stored copy. detach, when set, replaces a row's slice fields with
// fresh copies.
type table[T any] struct {
	mu     sync.RWMutex
	rows   map[string]T
	ident  func(*T) (id, owner string)
	detach func(*T)
}

func newTable[T any](ident func(*T) (string, string)) *table[T] {
	return &table[T]{rows: make(map[string]T), ident: ident}
}

func (t *table[T]) withDetach(detach func(*T)) *table[T] {
	t.detach = detach
	return t
}

// copyOf returns a copy of v that shares no slices with it.
func (t *table[T]) copyOf(v T) *T {
	if t.detach != nil {
		t.detach(&v)
	}
	return &v
}

func (t *table[T]) insert(v *T) error {
	id, _ := t.ident(v)

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; ok {
		return model.ErrConflict
	}
	t.rows[id] = *t.copyOf(*v)
	return nil
}

func (t *table[T]) get(owner, id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.rows[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if _, o := t.ident(&v); o != owner {
		return nil, model.ErrNotFound
	}
	return t.copyOf(v), nil
}

// where returns copies of the rows matching keep, or every row when keep is nil.
func (t *table[T]) where(keep func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*T, 0)
	for _, v := range t.rows {
		if keep == nil || keep(&v) {
			out = append(out, t.copyOf(v))
		}
	}
	return out
}

func (t *table[T]) owned(owner string, keep func(*T) bool) []*T {
	return t.where(func(v *T) bool {
		if _, o := t.ident(v); o != owner {
			return false
		}
		return keep == nil || keep(v)
	})
}

func (t *table[T]) update(owner, id string, apply func(*T)) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.rows[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if _, o := t.ident(&v); o != owner {
		return nil, model.ErrNotFound
	}
	apply(&v)
	t.rows[id] = *t.copyOf(v)
	return t.copyOf(v), nil
}

func (t *table[T]) remove(owner, id string) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.rows[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if _, o := t.ident(&v); o != owner {
		return nil, model.ErrNotFound
	}
	delete(t.rows, id)
	return &v, nil
}

func (t *table[T]) count(owner string) int64 {
	return int64(len(t.owned(owner, nil)))
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func anyContains(sub string, fields ...string) bool {
	if sub == "" {
		return true
	}
	for _, f := range fields {
		if containsFold(f, sub) {
			return true
		}
	}
	return false
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func newestFirst(a, b time.Time) int {
	return b.Compare(a)
}

func limit[T any](items []*T, n int64) []*T {
	if n > 0 && int64(len(items)) > n {
		return items[:n]
	}
	return items
}

func sortByUpdated[T any](items []*T, updated func(*T) time.Time) {
	slices.SortStableFunc(items, func(a, b *T) int {
		return newestFirst(updated(a), updated(b))
	})
}

func sortByDate[T any](items []*T, date, created func(*T) time.Time) {
	slices.SortStableFunc(items, func(a, b *T) int {
		return cmp.Or(newestFirst(date(a), date(b)), newestFirst(created(a), created(b)))
	})
}

var (
	_ repository.RoomRepository    = (*RoomsRepo)(nil)
	_ repository.NoteRepository    = (*NotesRepo)(nil)
	_ repository.StoryRepository   = (*StoriesRepo)(nil)
	_ repository.ChapterRepository = (*ChaptersRepo)(nil)
	_ repository.ExpenseRepository = (*ExpensesRepo)(nil)
	_ repository.MemoryRepository  = (*MemoriesRepo)(nil)
	_ repository.ProfileRepository = (*ProfilesRepo)(nil)
	_ repository.UserRepository    = (*UsersRepo)(nil)
)
