package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kacchi/model"
	"kacchi/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProfilesRepo struct {
	MongoCollection *mongo.Collection
}

func GetProfilesRepo(db *mongo.Database) *ProfilesRepo {
	return &ProfilesRepo{MongoCollection: db.Collection(ProfilesCollection)}
}

// profileDefaults is the $setOnInsert document for a fresh profile. The
// stats subdocument is left out so callers can $inc into it.
func profileDefaults(userID string, now time.Time) bson.M {
	return bson.M{
		"_id":          utils.NewID(),
		"user_id":      userID,
		"display_name": "",
		"bio":          "",
		"avatar_url":   "",
		"preferences":  model.DefaultPreferences(),
		"created_at":   now,
	}
}

func (r *ProfilesRepo) GetOrCreate(ctx context.Context, userID string) (*model.UserProfile, error) {
	defer utils.TrackDBOperation("get_or_create", ProfilesCollection).ObserveDuration()

	now := time.Now().UTC()
	insert := profileDefaults(userID, now)
	insert["stats"] = model.UserStats{}
	insert["updated_at"] = now

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var profile model.UserProfile
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$setOnInsert": insert},
		opts,
	).Decode(&profile)
	if err != nil {
		// A concurrent upsert lost the unique index race; the winner's
		// document is there now.
		if mongo.IsDuplicateKeyError(err) {
			return findOne[model.UserProfile](ctx, r.MongoCollection, bson.M{"user_id": userID})
		}
		return nil, fmt.Errorf("get or create profile: %w", err)
	}
	return &profile, nil
}

func (r *ProfilesRepo) Update(ctx context.Context, userID string, patch model.ProfilePatch) (*model.UserProfile, error) {
	if _, err := r.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	defer utils.TrackDBOperation("update", ProfilesCollection).ObserveDuration()

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.DisplayName != nil {
		set["display_name"] = *patch.DisplayName
	}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}
	if patch.AvatarURL != nil {
		set["avatar_url"] = *patch.AvatarURL
	}
	if patch.Preferences != nil {
		set["preferences"] = *patch.Preferences
	}

	var profile model.UserProfile
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &profile, nil
}

func (r *ProfilesRepo) IncrementStat(ctx context.Context, userID string, field model.StatField, delta int64) error {
	defer utils.TrackDBOperation("increment", ProfilesCollection).ObserveDuration()

	key := "stats." + string(field)
	now := time.Now().UTC()

	var err error
	if delta > 0 {
		_, err = r.MongoCollection.UpdateOne(ctx,
			bson.M{"user_id": userID},
			bson.M{
				"$inc":         bson.M{key: delta},
				"$set":         bson.M{"updated_at": now},
				"$setOnInsert": profileDefaults(userID, now),
			},
			options.Update().SetUpsert(true),
		)
	} else {
		// Only decrement counters that can absorb it.
		_, err = r.MongoCollection.UpdateOne(ctx,
			bson.M{"user_id": userID, key: bson.M{"$gte": -delta}},
			bson.M{
				"$inc": bson.M{key: delta},
				"$set": bson.M{"updated_at": now},
			},
		)
	}
	if err != nil {
		return fmt.Errorf("increment %s: %w", key, err)
	}
	return nil
}

func (r *ProfilesRepo) SetStats(ctx context.Context, userID string, stats model.UserStats) error {
	defer utils.TrackDBOperation("set_stats", ProfilesCollection).ObserveDuration()

	now := time.Now().UTC()
	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set":         bson.M{"stats": stats, "updated_at": now},
			"$setOnInsert": profileDefaults(userID, now),
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("set stats: %w", err)
	}
	return nil
}
