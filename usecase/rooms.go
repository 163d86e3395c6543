package usecase

import (
	"context"
	"fmt"

	"kacchi/model"
	"kacchi/repository"
	"kacchi/utils"
)

type RoomsService struct {
	Rooms repository.RoomRepository
	Notes repository.NoteRepository
}

func NewRoomsService(store *repository.Store) *RoomsService {
	return &RoomsService{Rooms: store.Rooms, Notes: store.Notes}
}

func (svc *RoomsService) Create(ctx context.Context, userID string, in model.RoomInput) (*model.Room, error) {
	if in.Type == "" {
		in.Type = model.RoomTypeFree
	}
	if !in.Type.Valid() {
		return nil, model.NewValidationError("Invalid room type. Choose from: note, journal, story, free")
	}

	ts := now()
	room := &model.Room{
		ID:        utils.NewID(),
		UserID:    userID,
		Type:      in.Type,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := svc.Rooms.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	utils.TrackContentOperation("room", "create")
	return room, nil
}

func (svc *RoomsService) List(ctx context.Context, userID string) ([]*model.Room, error) {
	return svc.Rooms.List(ctx, userID)
}

func (svc *RoomsService) Get(ctx context.Context, userID, id string) (*model.Room, error) {
	return svc.Rooms.FindByID(ctx, userID, id)
}

func (svc *RoomsService) Update(ctx context.Context, userID, id string, patch model.RoomPatch) (*model.Room, error) {
	room, err := svc.Rooms.Update(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}
	utils.TrackContentOperation("room", "update")
	return room, nil
}

// Delete removes only the room; notes and other content keep their roomId.
func (svc *RoomsService) Delete(ctx context.Context, userID, id string) (*model.Room, error) {
	room, err := svc.Rooms.Delete(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	utils.TrackContentOperation("room", "delete")
	return room, nil
}

// ListNotes lists the caller's notes filed under one of their rooms.
func (svc *RoomsService) ListNotes(ctx context.Context, userID, roomID string) ([]*model.Note, error) {
	if _, err := svc.Rooms.FindByID(ctx, userID, roomID); err != nil {
		return nil, err
	}
	return svc.Notes.List(ctx, userID, model.NoteFilter{RoomID: roomID})
}
