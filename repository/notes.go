package repository

import (
	"context"

	"kacchi/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(db *mongo.Database) *NotesRepo {
	return &NotesRepo{MongoCollection: db.Collection(NotesCollection)}
}

// CreateNote creates a new note
func (r *NotesRepo) Create(ctx context.Context, note *model.Note) error {
	return insertOne(ctx, r.MongoCollection, note)
}

// FindByID retrieves a specific note
func (r *NotesRepo) FindByID(ctx context.Context, userID, id string) (*model.Note, error) {
	return findOne[model.Note](ctx, r.MongoCollection, ownedBy(userID, id))
}

// List retrieves the user's notes, pinned ones first
func (r *NotesRepo) List(ctx context.Context, userID string, f model.NoteFilter) ([]*model.Note, error) {
	filter := bson.M{"user_id": userID}
	if f.RoomID != "" {
		filter["room_id"] = f.RoomID
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	if f.Archived != nil {
		filter["is_archived"] = *f.Archived
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "is_pinned", Value: -1},
		{Key: "updated_at", Value: -1},
	})
	return findAll[model.Note](ctx, r.MongoCollection, "find", filter, opts)
}

func (r *NotesRepo) Recent(ctx context.Context, userID string, limit int64) ([]*model.Note, error) {
	return findAll[model.Note](ctx, r.MongoCollection, "recent", bson.M{"user_id": userID},
		options.Find().SetSort(byRecency).SetLimit(limit))
}

// Update applies the non-nil fields of patch
func (r *NotesRepo) Update(ctx context.Context, userID, id string, patch model.NotePatch) (*model.Note, error) {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.IsPinned != nil {
		set["is_pinned"] = *patch.IsPinned
	}
	if patch.IsArchived != nil {
		set["is_archived"] = *patch.IsArchived
	}
	return updateOwned[model.Note](ctx, r.MongoCollection, userID, id, set)
}

// Delete deletes a specific note and returns it
func (r *NotesRepo) Delete(ctx context.Context, userID, id string) (*model.Note, error) {
	return deleteOwned[model.Note](ctx, r.MongoCollection, userID, id)
}

// Count counts the number of notes for a user
func (r *NotesRepo) Count(ctx context.Context, userID string) (int64, error) {
	return countOwned(ctx, r.MongoCollection, userID)
}

// Search matches title or content, optionally restricted to a tag
func (r *NotesRepo) Search(ctx context.Context, userID string, q model.SearchQuery) ([]*model.Note, error) {
	filter := bson.M{"user_id": userID}
	if q.Text != "" {
		filter["$or"] = anyFieldContains(q.Text, "title", "content")
	}
	if q.Tag != "" {
		filter["tags"] = q.Tag
	}

	opts := options.Find().
		SetProjection(bson.M{"title": 1, "content": 1, "tags": 1, "user_id": 1, "created_at": 1, "updated_at": 1}).
		SetSort(byRecency).
		SetLimit(q.Limit)
	return findAll[model.Note](ctx, r.MongoCollection, "search", filter, opts)
}
