package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"kacchi/model"
	"kacchi/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	RoomsCollection    = "rooms"
	NotesCollection    = "notes"
	StoriesCollection  = "stories"
	ChaptersCollection = "chapters"
	ExpensesCollection = "expenses"
	MemoriesCollection = "memories"
	ProfilesCollection = "user_profiles"
	UsersCollection    = "users"
	CountersCollection = "counters"
)

var byRecency = bson.D{{Key: "updated_at", Value: -1}}

// NewMongoStore wires every repository to one database.
func NewMongoStore(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		Rooms:    GetRoomsRepo(db),
		Notes:    GetNotesRepo(db),
		Stories:  GetStoriesRepo(db),
		Chapters: GetChaptersRepo(db),
		Expenses: GetExpensesRepo(db),
		Memories: GetMemoriesRepo(db),
		Profiles: GetProfilesRepo(db),
		Users:    GetUsersRepo(db),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		Close: client.Disconnect,
	}
}

func ownedBy(userID, id string) bson.M {
	return bson.M{"_id": id, "user_id": userID}
}

// containsPattern matches text literally, ignoring case.
func containsPattern(text string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}
}

// anyFieldContains builds an $or over fields for a substring match.
func anyFieldContains(text string, fields ...string) []bson.M {
	or := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: containsPattern(text)})
	}
	return or
}

// dateRange returns an inclusive range filter, or nil when unbounded.
func dateRange(from, to *time.Time) bson.M {
	if from == nil && to == nil {
		return nil
	}
	r := bson.M{}
	if from != nil {
		r["$gte"] = *from
	}
	if to != nil {
		r["$lte"] = *to
	}
	return r
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, op string, filter any, opts ...*options.FindOptions) ([]*T, error) {
	defer utils.TrackDBOperation(op, coll.Name()).ObserveDuration()

	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, coll.Name(), err)
	}
	defer cursor.Close(ctx)

	items := make([]*T, 0)
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("%s %s: decode: %w", op, coll.Name(), err)
	}
	return items, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any) (*T, error) {
	defer utils.TrackDBOperation("find_one", coll.Name()).ObserveDuration()

	var item T
	if err := coll.FindOne(ctx, filter).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	return &item, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any) error {
	defer utils.TrackDBOperation("insert", coll.Name()).ObserveDuration()

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrConflict
		}
		return fmt.Errorf("insert %s: %w", coll.Name(), err)
	}
	return nil
}

// updateOwned applies set to the owned document and returns the result.
func updateOwned[T any](ctx context.Context, coll *mongo.Collection, userID, id string, set bson.M) (*T, error) {
	defer utils.TrackDBOperation("update", coll.Name()).ObserveDuration()

	set["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item T
	err := coll.FindOneAndUpdate(ctx, ownedBy(userID, id), bson.M{"$set": set}, opts).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("update %s: %w", coll.Name(), err)
	}
	return &item, nil
}

func deleteOwned[T any](ctx context.Context, coll *mongo.Collection, userID, id string) (*T, error) {
	defer utils.TrackDBOperation("delete", coll.Name()).ObserveDuration()

	var item T
	if err := coll.FindOneAndDelete(ctx, ownedBy(userID, id)).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("delete %s: %w", coll.Name(), err)
	}
	return &item, nil
}

func countOwned(ctx context.Context, coll *mongo.Collection, userID string) (int64, error) {
	defer utils.TrackDBOperation("count", coll.Name()).ObserveDuration()

	n, err := coll.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", coll.Name(), err)
	}
	return n, nil
}

var (
	_ RoomRepository    = (*RoomsRepo)(nil)
	_ NoteRepository    = (*NotesRepo)(nil)
	_ StoryRepository   = (*StoriesRepo)(nil)
	_ ChapterRepository = (*ChaptersRepo)(nil)
	_ ExpenseRepository = (*ExpensesRepo)(nil)
	_ MemoryRepository  = (*MemoriesRepo)(nil)
	_ ProfileRepository = (*ProfilesRepo)(nil)
	_ UserRepository    = (*UsersRepo)(nil)
)
