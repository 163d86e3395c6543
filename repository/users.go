package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kacchi/model"
	"kacchi/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UsersRepo struct {
	MongoCollection *mongo.Collection
}

func GetUsersRepo(db *mongo.Database) *UsersRepo {
	return &UsersRepo{MongoCollection: db.Collection(UsersCollection)}
}

// Create inserts the user. A taken email surfaces as model.ErrConflict.
func (r *UsersRepo) Create(ctx context.Context, user *model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := insertOne(ctx, r.MongoCollection, user); err != nil {
		utils.TrackError("database")
		return err
	}
	return nil
}

func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return findOne[model.User](ctx, r.MongoCollection, bson.M{"email": email})
}

func (r *UsersRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return findOne[model.User](ctx, r.MongoCollection, bson.M{"_id": id})
}

func (r *UsersRepo) RecordLogin(ctx context.Context, id string, at time.Time, device string) error {
	defer utils.TrackDBOperation("update", UsersCollection).ObserveDuration()

	res, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"last_login_at":     at,
			"last_login_device": device,
			"updated_at":        at,
		}},
	)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
