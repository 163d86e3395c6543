package usecase

import (
	"context"
	"fmt"
	"strings"

	"kacchi/model"
	"kacchi/repository"
	"kacchi/utils"

	"github.com/charmbracelet/log"
)

type StoriesService struct {
	Stories  repository.StoryRepository
	Chapters repository.ChapterRepository
	Profiles repository.ProfileRepository
}

func NewStoriesService(store *repository.Store) *StoriesService {
	return &StoriesService{Stories: store.Stories, Chapters: store.Chapters, Profiles: store.Profiles}
}

func (svc *StoriesService) Create(ctx context.Context, userID string, in model.StoryInput) (*model.Story, error) {
	if err := requireRoom(in.RoomID); err != nil {
		return nil, err
	}

	ts := now()
	story := &model.Story{
		ID:          utils.NewID(),
		UserID:      userID,
		RoomID:      in.RoomID,
		Title:       orDefault(in.Title, model.DefaultStoryTitle),
		Description: in.Description,
		CoverImage:  in.CoverImage,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := svc.Stories.Create(ctx, story); err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}

	bumpStat(ctx, svc.Profiles, userID, model.StatStories, 1)
	utils.TrackContentOperation("story", "create")
	return story, nil
}

func (svc *StoriesService) List(ctx context.Context, userID string) ([]*model.Story, error) {
	return svc.Stories.List(ctx, userID)
}

// Get returns the story with its chapters in reading order.
func (svc *StoriesService) Get(ctx context.Context, userID, id string) (*model.StoryWithChapters, error) {
	story, err := svc.Stories.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	chapters, err := svc.Chapters.ListByStory(ctx, story.ID)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	return &model.StoryWithChapters{Story: story, Chapters: nonNil(chapters)}, nil
}

func (svc *StoriesService) Update(ctx context.Context, userID, id string, patch model.StoryPatch) (*model.Story, error) {
	story, err := svc.Stories.Update(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}
	utils.TrackContentOperation("story", "update")
	return story, nil
}

// Delete removes the story, its chapters and its chapter sequence.
func (svc *StoriesService) Delete(ctx context.Context, userID, id string) (*model.Story, error) {
	story, err := svc.Stories.Delete(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	removed, err := svc.Chapters.DeleteByStory(ctx, story.ID)
	if err != nil {
		return nil, fmt.Errorf("delete chapters: %w", err)
	}
	if err := svc.Chapters.DropSequence(ctx, story.ID); err != nil {
		log.Warn("failed to drop chapter sequence", "story", story.ID, "err", err)
	}
	log.Debug("story deleted", "story", story.ID, "chapters", removed)

	bumpStat(ctx, svc.Profiles, userID, model.StatStories, -1)
	utils.TrackContentOperation("story", "delete")
	return story, nil
}

// CreateChapter appends a chapter to one of the caller's stories. A zero
// order takes the next value from the story's sequence.
func (svc *StoriesService) CreateChapter(ctx context.Context, userID string, in model.ChapterInput) (*model.Chapter, error) {
	if strings.TrimSpace(in.StoryID) == "" {
		return nil, model.NewValidationError("Story ID is required")
	}
	if in.Order < 0 {
		return nil, model.NewValidationError("Chapter order must be positive")
	}

	story, err := svc.Stories.FindByID(ctx, userID, in.StoryID)
	if err != nil {
		return nil, err
	}

	order := in.Order
	if order == 0 {
		order, err = svc.Chapters.NextOrder(ctx, story.ID)
	} else {
		err = svc.Chapters.ObserveOrder(ctx, story.ID, order)
	}
	if err != nil {
		return nil, fmt.Errorf("assign chapter order: %w", err)
	}

	ts := now()
	chapter := &model.Chapter{
		ID:        utils.NewID(),
		StoryID:   story.ID,
		UserID:    userID,
		Title:     orDefault(in.Title, model.DefaultChapterTitle),
		Content:   in.Content,
		Order:     order,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := svc.Chapters.Create(ctx, chapter); err != nil {
		return nil, fmt.Errorf("create chapter: %w", err)
	}

	utils.TrackContentOperation("chapter", "create")
	return chapter, nil
}

func (svc *StoriesService) UpdateChapter(ctx context.Context, userID, id string, patch model.ChapterPatch) (*model.Chapter, error) {
	if patch.Order != nil && *patch.Order < 1 {
		return nil, model.NewValidationError("Chapter order must be positive")
	}

	chapter, err := svc.Chapters.Update(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}
	if patch.Order != nil {
		if err := svc.Chapters.ObserveOrder(ctx, chapter.StoryID, chapter.Order); err != nil {
			return nil, fmt.Errorf("observe chapter order: %w", err)
		}
	}

	utils.TrackContentOperation("chapter", "update")
	return chapter, nil
}

func (svc *StoriesService) DeleteChapter(ctx context.Context, userID, id string) (*model.Chapter, error) {
	chapter, err := svc.Chapters.Delete(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	utils.TrackContentOperation("chapter", "delete")
	return chapter, nil
}
