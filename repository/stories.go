package repository

import (
	"context"
	"errors"
	"fmt"

	"kacchi/model"
	"kacchi/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StoriesRepo struct {
	MongoCollection *mongo.Collection
}

func GetStoriesRepo(db *mongo.Database) *StoriesRepo {
	return &StoriesRepo{MongoCollection: db.Collection(StoriesCollection)}
}

func (r *StoriesRepo) Create(ctx context.Context, story *model.Story) error {
	return insertOne(ctx, r.MongoCollection, story)
}

func (r *StoriesRepo) FindByID(ctx context.Context, userID, id string) (*model.Story, error) {
	return findOne[model.Story](ctx, r.MongoCollection, ownedBy(userID, id))
}

func (r *StoriesRepo) List(ctx context.Context, userID string) ([]*model.Story, error) {
	return findAll[model.Story](ctx, r.MongoCollection, "find", bson.M{"user_id": userID},
		options.Find().SetSort(byRecency))
}

func (r *StoriesRepo) Recent(ctx context.Context, userID string, limit int64) ([]*model.Story, error) {
	return findAll[model.Story](ctx, r.MongoCollection, "recent", bson.M{"user_id": userID},
		options.Find().SetSort(byRecency).SetLimit(limit))
}

func (r *StoriesRepo) Update(ctx context.Context, userID, id string, patch model.StoryPatch) (*model.Story, error) {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.CoverImage != nil {
		set["cover_image"] = *patch.CoverImage
	}
	return updateOwned[model.Story](ctx, r.MongoCollection, userID, id, set)
}

func (r *StoriesRepo) Delete(ctx context.Context, userID, id string) (*model.Story, error) {
	return deleteOwned[model.Story](ctx, r.MongoCollection, userID, id)
}

func (r *StoriesRepo) Count(ctx context.Context, userID string) (int64, error) {
	return countOwned(ctx, r.MongoCollection, userID)
}

func (r *StoriesRepo) Search(ctx context.Context, userID string, q model.SearchQuery) ([]*model.Story, error) {
	filter := bson.M{"user_id": userID}
	if q.Text != "" {
		filter["$or"] = anyFieldContains(q.Text, "title", "description")
	}
	opts := options.Find().
		SetProjection(bson.M{"title": 1, "description": 1, "user_id": 1, "created_at": 1, "updated_at": 1}).
		SetSort(byRecency).
		SetLimit(q.Limit)
	return findAll[model.Story](ctx, r.MongoCollection, "search", filter, opts)
}

// ChaptersRepo stores chapters plus a per-story order sequence in the
// counters collection.
type ChaptersRepo struct {
	MongoCollection *mongo.Collection
	Counters        *mongo.Collection
}

func GetChaptersRepo(db *mongo.Database) *ChaptersRepo {
	return &ChaptersRepo{
		MongoCollection: db.Collection(ChaptersCollection),
		Counters:        db.Collection(CountersCollection),
	}
}

func sequenceKey(storyID string) string {
	return "story:" + storyID
}

func (r *ChaptersRepo) Create(ctx context.Context, chapter *model.Chapter) error {
	return insertOne(ctx, r.MongoCollection, chapter)
}

func (r *ChaptersRepo) FindByID(ctx context.Context, userID, id string) (*model.Chapter, error) {
	return findOne[model.Chapter](ctx, r.MongoCollection, ownedBy(userID, id))
}

func (r *ChaptersRepo) ListByStory(ctx context.Context, storyID string) ([]*model.Chapter, error) {
	return findAll[model.Chapter](ctx, r.MongoCollection, "find", bson.M{"story_id": storyID},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}}))
}

func (r *ChaptersRepo) Update(ctx context.Context, userID, id string, patch model.ChapterPatch) (*model.Chapter, error) {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Order != nil {
		set["order"] = *patch.Order
	}
	return updateOwned[model.Chapter](ctx, r.MongoCollection, userID, id, set)
}

func (r *ChaptersRepo) Delete(ctx context.Context, userID, id string) (*model.Chapter, error) {
	return deleteOwned[model.Chapter](ctx, r.MongoCollection, userID, id)
}

func (r *ChaptersRepo) DeleteByStory(ctx context.Context, storyID string) (int64, error) {
	defer utils.TrackDBOperation("delete_many", ChaptersCollection).ObserveDuration()

	res, err := r.MongoCollection.DeleteMany(ctx, bson.M{"story_id": storyID})
	if err != nil {
		return 0, fmt.Errorf("delete chapters of story %s: %w", storyID, err)
	}
	return res.DeletedCount, nil
}

func (r *ChaptersRepo) Search(ctx context.Context, userID string, q model.SearchQuery) ([]*model.Chapter, error) {
	filter := bson.M{"user_id": userID}
	if q.Text != "" {
		filter["$or"] = anyFieldContains(q.Text, "title", "content")
	}
	opts := options.Find().
		SetProjection(bson.M{"title": 1, "content": 1, "story_id": 1, "order": 1, "user_id": 1, "created_at": 1, "updated_at": 1}).
		SetSort(byRecency).
		SetLimit(q.Limit)
	return findAll[model.Chapter](ctx, r.MongoCollection, "search", filter, opts)
}

func (r *ChaptersRepo) NextOrder(ctx context.Context, storyID string) (int, error) {
	defer utils.TrackDBOperation("increment", CountersCollection).ObserveDuration()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int `bson:"seq"`
	}
	inc := func() error {
		return r.Counters.FindOneAndUpdate(ctx,
			bson.M{"_id": sequenceKey(storyID)},
			bson.M{"$inc": bson.M{"seq": 1}},
			opts,
		).Decode(&counter)
	}
	err := inc()
	// Two first-time upserts can race on _id; the loser retries as an update.
	if mongo.IsDuplicateKeyError(err) {
		err = inc()
	}
	if err != nil {
		return 0, fmt.Errorf("next chapter order for story %s: %w", storyID, err)
	}
	return counter.Seq, nil
}

func (r *ChaptersRepo) ObserveOrder(ctx context.Context, storyID string, order int) error {
	defer utils.TrackDBOperation("max", CountersCollection).ObserveDuration()

	_, err := r.Counters.UpdateOne(ctx,
		bson.M{"_id": sequenceKey(storyID)},
		bson.M{"$max": bson.M{"seq": order}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("observe chapter order for story %s: %w", storyID, err)
	}
	return nil
}

func (r *ChaptersRepo) DropSequence(ctx context.Context, storyID string) error {
	_, err := r.Counters.DeleteOne(ctx, bson.M{"_id": sequenceKey(storyID)})
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("drop chapter sequence for story %s: %w", storyID, err)
	}
	return nil
}
