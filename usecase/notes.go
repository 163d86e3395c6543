package usecase

import (
	"context"
	"fmt"

	"kacchi/model"
	"kacchi/repository"
	"kacchi/utils"
)

type NotesService struct {
	Notes    repository.NoteRepository
	Profiles repository.ProfileRepository
}

func NewNotesService(store *repository.Store) *NotesService {
	return &NotesService{Notes: store.Notes, Profiles: store.Profiles}
}

func (svc *NotesService) Create(ctx context.Context, userID string, in model.NoteInput) (*model.Note, error) {
	if err := requireRoom(in.RoomID); err != nil {
		return nil, err
	}

	ts := now()
	note := &model.Note{
		ID:        utils.NewID(),
		UserID:    userID,
		RoomID:    in.RoomID,
		Title:     orDefault(in.Title, model.DefaultNoteTitle),
		Content:   in.Content,
		Tags:      nonNil(in.Tags),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := svc.Notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	bumpStat(ctx, svc.Profiles, userID, model.StatNotes, 1)
	utils.TrackContentOperation("note", "create")
	return note, nil
}

func (svc *NotesService) List(ctx context.Context, userID string, filter model.NoteFilter) ([]*model.Note, error) {
	return svc.Notes.List(ctx, userID, filter)
}

func (svc *NotesService) Get(ctx context.Context, userID, id string) (*model.Note, error) {
	return svc.Notes.FindByID(ctx, userID, id)
}

func (svc *NotesService) Update(ctx context.Context, userID, id string, patch model.NotePatch) (*model.Note, error) {
	note, err := svc.Notes.Update(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}
	utils.TrackContentOperation("note", "update")
	return note, nil
}

func (svc *NotesService) Delete(ctx context.Context, userID, id string) (*model.Note, error) {
	note, err := svc.Notes.Delete(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	bumpStat(ctx, svc.Profiles, userID, model.StatNotes, -1)
	utils.TrackContentOperation("note", "delete")
	return note, nil
}
