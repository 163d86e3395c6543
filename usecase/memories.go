package usecase

import (
	"context"
	"fmt"

	"kacchi/model"
	"kacchi/repository"
	"kacchi/utils"
)

type MemoriesService struct {
	Memories repository.MemoryRepository
	Profiles repository.ProfileRepository
}

func NewMemoriesService(store *repository.Store) *MemoriesService {
	return &MemoriesService{Memories: store.Memories, Profiles: store.Profiles}
}

func (svc *MemoriesService) Create(ctx context.Context, userID string, in model.MemoryInput) (*model.Memory, error) {
	if err := requireRoom(in.RoomID); err != nil {
		return nil, err
	}

	mood := in.Mood
	if mood == "" {
		mood = model.DefaultMood
	}
	if !mood.Valid() {
		return nil, model.NewValidationError("Invalid mood")
	}

	ts := now()
	date := ts
	if in.Date != nil && !in.Date.IsZero() {
		date = in.Date.UTC()
	}

	memory := &model.Memory{
		ID:        utils.NewID(),
		UserID:    userID,
		RoomID:    in.RoomID,
		Text:      model.ComposeMemoryText(in.Text, in.Title, in.Content),
		Mood:      mood,
		Date:      date,
		MediaURLs: nonNil(in.MediaURLs),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := svc.Memories.Create(ctx, memory); err != nil {
		return nil, fmt.Errorf("create memory: %w", err)
	}

	bumpStat(ctx, svc.Profiles, userID, model.StatMemories, 1)
	utils.TrackContentOperation("memory", "create")
	return memory, nil
}

func (svc *MemoriesService) List(ctx context.Context, userID string, filter model.MemoryFilter) ([]*model.Memory, error) {
	if filter.Mood != "" && !filter.Mood.Valid() {
		return nil, model.NewValidationError("Invalid mood")
	}
	return svc.Memories.List(ctx, userID, filter)
}

func (svc *MemoriesService) Get(ctx context.Context, userID, id string) (*model.Memory, error) {
	return svc.Memories.FindByID(ctx, userID, id)
}

// Update folds a title/content pair into text when text itself is absent.
func (svc *MemoriesService) Update(ctx context.Context, userID, id string, patch model.MemoryPatch) (*model.Memory, error) {
	if patch.Mood != nil && !patch.Mood.Valid() {
		return nil, model.NewValidationError("Invalid mood")
	}
	if patch.Text == nil && (patch.Title != nil || patch.Content != nil) {
		var title, content string
		if patch.Title != nil {
			title = *patch.Title
		}
		if patch.Content != nil {
			content = *patch.Content
		}
		text := model.ComposeMemoryText("", title, content)
		patch.Text = &text
	}

	memory, err := svc.Memories.Update(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}
	utils.TrackContentOperation("memory", "update")
	return memory, nil
}

func (svc *MemoriesService) Delete(ctx context.Context, userID, id string) (*model.Memory, error) {
	memory, err := svc.Memories.Delete(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	bumpStat(ctx, svc.Profiles, userID, model.StatMemories, -1)
	utils.TrackContentOperation("memory", "delete")
	return memory, nil
}
