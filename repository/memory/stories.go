package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"kacchi/model"
)

type StoriesRepo struct {
	t *table[model.Story]
}

func NewStoriesRepo() *StoriesRepo {
	return &StoriesRepo{t: newTable(func(s *model.Story) (string, string) { return s.ID, s.UserID })}
}

func storyUpdated(s *model.Story) time.Time { return s.UpdatedAt }

func (r *StoriesRepo) Create(_ context.Context, story *model.Story) error {
	return r.t.insert(story)
}

func (r *StoriesRepo) FindByID(_ context.Context, userID, id string) (*model.Story, error) {
	return r.t.get(userID, id)
}

func (r *StoriesRepo) List(_ context.Context, userID string) ([]*model.Story, error) {
	stories := r.t.owned(userID, nil)
	sortByUpdated(stories, storyUpdated)
	return stories, nil
}

func (r *StoriesRepo) Recent(ctx context.Context, userID string, n int64) ([]*model.Story, error) {
	stories, _ := r.List(ctx, userID)
	return limit(stories, n), nil
}

func (r *StoriesRepo) Update(_ context.Context, userID, id string, patch model.StoryPatch) (*model.Story, error) {
	return r.t.update(userID, id, func(s *model.Story) {
		if patch.Title != nil {
			s.Title = *patch.Title
		}
		if patch.Description != nil {
			s.Description = *patch.Description
		}
		if patch.CoverImage != nil {
			s.CoverImage = *patch.CoverImage
		}
		s.UpdatedAt = now()
	})
}

func (r *StoriesRepo) Delete(_ context.Context, userID, id string) (*model.Story, error) {
	return r.t.remove(userID, id)
}

func (r *StoriesRepo) Count(_ context.Context, userID string) (int64, error) {
	return r.t.count(userID), nil
}

func (r *StoriesRepo) Search(_ context.Context, userID string, q model.SearchQuery) ([]*model.Story, error) {
	stories := r.t.owned(userID, func(s *model.Story) bool {
		return anyContains(q.Text, s.Title, s.Description)
	})
	sortByUpdated(stories, storyUpdated)
	return limit(stories, q.Limit), nil
}

type ChaptersRepo struct {
	t *table[model.Chapter]

	mu  sync.Mutex
	seq map[string]int
}

func NewChaptersRepo() *ChaptersRepo {
	return &ChaptersRepo{
		t:   newTable(func(c *model.Chapter) (string, string) { return c.ID, c.UserID }),
		seq: make(map[string]int),
	}
}

func (r *ChaptersRepo) Create(_ context.Context, chapter *model.Chapter) error {
	return r.t.insert(chapter)
}

func (r *ChaptersRepo) FindByID(_ context.Context, userID, id string) (*model.Chapter, error) {
	return r.t.get(userID, id)
}

func (r *ChaptersRepo) ListByStory(_ context.Context, storyID string) ([]*model.Chapter, error) {
	chapters := r.t.where(func(c *model.Chapter) bool { return c.StoryID == storyID })
	slices.SortStableFunc(chapters, func(a, b *model.Chapter) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return chapters, nil
}

func (r *ChaptersRepo) Update(_ context.Context, userID, id string, patch model.ChapterPatch) (*model.Chapter, error) {
	return r.t.update(userID, id, func(c *model.Chapter) {
		if patch.Title != nil {
			c.Title = *patch.Title
		}
		if patch.Content != nil {
			c.Content = *patch.Content
		}
		if patch.Order != nil {
			c.Order = *patch.Order
		}
		c.UpdatedAt = now()
	})
}

func (r *ChaptersRepo) Delete(_ context.Context, userID, id string) (*model.Chapter, error) {
	return r.t.remove(userID, id)
}

func (r *ChaptersRepo) DeleteByStory(_ context.Context, storyID string) (int64, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	var n int64
	for id, c := range r.t.rows {
		if c.StoryID == storyID {
			delete(r.t.rows, id)
			n++
		}
	}
	return n, nil
}

func (r *ChaptersRepo) Search(_ context.Context, userID string, q model.SearchQuery) ([]*model.Chapter, error) {
	chapters := r.t.owned(userID, func(c *model.Chapter) bool {
		return anyContains(q.Text, c.Title, c.Content)
	})
	sortByUpdated(chapters, func(c *model.Chapter) time.Time { return c.UpdatedAt })
	return limit(chapters, q.Limit), nil
}

func (r *ChaptersRepo) NextOrder(_ context.Context, storyID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq[storyID]++
	return r.seq[storyID], nil
}

func (r *ChaptersRepo) ObserveOrder(_ context.Context, storyID string, order int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order > r.seq[storyID] {
		r.seq[storyID] = order
	}
	return nil
}

func (r *ChaptersRepo) DropSequence(_ context.Context, storyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.seq, storyID)
	return nil
}
