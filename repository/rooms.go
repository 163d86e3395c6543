package repository

import (
	"context"

	"kacchi/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RoomsRepo struct {
	MongoCollection *mongo.Collection
}

func GetRoomsRepo(db *mongo.Database) *RoomsRepo {
	return &RoomsRepo{MongoCollection: db.Collection(RoomsCollection)}
}

func (r *RoomsRepo) Create(ctx context.Context, room *model.Room) error {
	return insertOne(ctx, r.MongoCollection, room)
}

func (r *RoomsRepo) FindByID(ctx context.Context, userID, id string) (*model.Room, error) {
	return findOne[model.Room](ctx, r.MongoCollection, ownedBy(userID, id))
}

func (r *RoomsRepo) List(ctx context.Context, userID string) ([]*model.Room, error) {
	return findAll[model.Room](ctx, r.MongoCollection, "find", bson.M{"user_id": userID},
		options.Find().SetSort(byRecency))
}

func (r *RoomsRepo) Recent(ctx context.Context, userID string, limit int64) ([]*model.Room, error) {
	return findAll[model.Room](ctx, r.MongoCollection, "recent", bson.M{"user_id": userID},
		options.Find().SetSort(byRecency).SetLimit(limit))
}

func (r *RoomsRepo) Update(ctx context.Context, userID, id string, patch model.RoomPatch) (*model.Room, error) {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	return updateOwned[model.Room](ctx, r.MongoCollection, userID, id, set)
}

func (r *RoomsRepo) Delete(ctx context.Context, userID, id string) (*model.Room, error) {
	return deleteOwned[model.Room](ctx, r.MongoCollection, userID, id)
}

func (r *RoomsRepo) Count(ctx context.Context, userID string) (int64, error) {
	return countOwned(ctx, r.MongoCollection, userID)
}
