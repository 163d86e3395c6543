package usecase

import (
	"context"
	"fmt"
	"strings"

	"kacchi/model"
	"kacchi/repository"

	"golang.org/x/sync/errgroup"
)

const searchLimit = 20

type SearchService struct {
	Notes    repository.NoteRepository
	Stories  repository.StoryRepository
	Chapters repository.ChapterRepository
	Expenses repository.ExpenseRepository
	Memories repository.MemoryRepository
}

func NewSearchService(store *repository.Store) *SearchService {
	return &SearchService{
		Notes:    store.Notes,
		Stories:  store.Stories,
		Chapters: store.Chapters,
		Expenses: store.Expenses,
		Memories: store.Memories,
	}
}

// Search looks for text across the caller's content. tag only applies to
// notes, so a tag-only query searches notes alone. An empty searchType means
// every collection.
func (svc *SearchService) Search(ctx context.Context, userID, text, tag string, searchType model.SearchType) (*model.SearchResults, error) {
	text = strings.TrimSpace(text)
	tag = strings.TrimSpace(tag)
	if text == "" && tag == "" {
		return nil, model.NewValidationError("Search query or tag is required")
	}
	if searchType != "" && !searchType.Valid() {
		return nil, model.NewValidationError("Invalid search type. Choose from: notes, stories, chapters, expenses, memories")
	}

	wants := func(t model.SearchType) bool {
		if text == "" && t != model.SearchNotes {
			return false
		}
		return searchType == "" || searchType == t
	}

	q := model.SearchQuery{Text: text, Limit: searchLimit}
	noteQuery := q
	noteQuery.Tag = tag

	results := &model.SearchResults{
		Notes:    []*model.Note{},
		Stories:  []*model.Story{},
		Chapters: []*model.Chapter{},
		Expenses: []*model.Expense{},
		Memories: []*model.Memory{},
	}

	g, gctx := errgroup.WithContext(ctx)
	if wants(model.SearchNotes) {
		g.Go(func() (err error) {
			results.Notes, err = svc.Notes.Search(gctx, userID, noteQuery)
			return err
		})
	}
	if wants(model.SearchStories) {
		g.Go(func() (err error) {
			results.Stories, err = svc.Stories.Search(gctx, userID, q)
			return err
		})
	}
	if wants(model.SearchChapters) {
		g.Go(func() (err error) {
			results.Chapters, err = svc.Chapters.Search(gctx, userID, q)
			return err
		})
	}
	if wants(model.SearchExpenses) {
		g.Go(func() (err error) {
			results.Expenses, err = svc.Expenses.Search(gctx, userID, q)
			return err
		})
	}
	if wants(model.SearchMemories) {
		g.Go(func() (err error) {
			results.Memories, err = svc.Memories.Search(gctx, userID, q)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return results, nil
}
