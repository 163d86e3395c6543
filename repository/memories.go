package repository

import (
	"context"

	"kacchi/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MemoriesRepo struct {
	MongoCollection *mongo.Collection
}

func GetMemoriesRepo(db *mongo.Database) *MemoriesRepo {
	return &MemoriesRepo{MongoCollection: db.Collection(MemoriesCollection)}
}

func (r *MemoriesRepo) Create(ctx context.Context, memory *model.Memory) error {
	return insertOne(ctx, r.MongoCollection, memory)
}

func (r *MemoriesRepo) FindByID(ctx context.Context, userID, id string) (*model.Memory, error) {
	return findOne[model.Memory](ctx, r.MongoCollection, ownedBy(userID, id))
}

func (r *MemoriesRepo) List(ctx context.Context, userID string, f model.MemoryFilter) ([]*model.Memory, error) {
	filter := bson.M{"user_id": userID}
	if rng := dateRange(f.From, f.To); rng != nil {
		filter["date"] = rng
	}
	if f.Mood != "" {
		filter["mood"] = f.Mood
	}
	return findAll[model.Memory](ctx, r.MongoCollection, "find", filter, options.Find().SetSort(byDate))
}

func (r *MemoriesRepo) Recent(ctx context.Context, userID string, limit int64) ([]*model.Memory, error) {
	return findAll[model.Memory](ctx, r.MongoCollection, "recent", bson.M{"user_id": userID},
		options.Find().SetSort(byDate).SetLimit(limit))
}

// Update expects the service to have already folded title/content into Text.
func (r *MemoriesRepo) Update(ctx context.Context, userID, id string, patch model.MemoryPatch) (*model.Memory, error) {
	set := bson.M{}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}
	if patch.Mood != nil {
		set["mood"] = *patch.Mood
	}
	if patch.Date != nil {
		set["date"] = patch.Date.Time
	}
	if patch.MediaURLs != nil {
		set["media_urls"] = *patch.MediaURLs
	}
	return updateOwned[model.Memory](ctx, r.MongoCollection, userID, id, set)
}

func (r *MemoriesRepo) Delete(ctx context.Context, userID, id string) (*model.Memory, error) {
	return deleteOwned[model.Memory](ctx, r.MongoCollection, userID, id)
}

func (r *MemoriesRepo) Count(ctx context.Context, userID string) (int64, error) {
	return countOwned(ctx, r.MongoCollection, userID)
}

func (r *MemoriesRepo) Search(ctx context.Context, userID string, q model.SearchQuery) ([]*model.Memory, error) {
	filter := bson.M{"user_id": userID}
	if q.Text != "" {
		filter["text"] = containsPattern(q.Text)
	}
	opts := options.Find().
		SetProjection(bson.M{"text": 1, "mood": 1, "date": 1, "user_id": 1, "created_at": 1, "updated_at": 1}).
		SetSort(byDate).
		SetLimit(q.Limit)
	return findAll[model.Memory](ctx, r.MongoCollection, "search", filter, opts)
}
