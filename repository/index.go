package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ownerRecency is the index every owner-scoped listing relies on.
func ownerRecency(name string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "updated_at", Value: -1},
		},
		Options: options.Index().SetName(name),
	}
}

func ownerDate(name string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "date", Value: -1},
		},
		Options: options.Index().SetName(name),
	}
}

func SetupIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		RoomsCollection: {
			ownerRecency("user_rooms_recent"),
		},
		NotesCollection: {
			ownerRecency("user_notes_recent"),
			// Pinned notes first
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "is_pinned", Value: -1},
					{Key: "updated_at", Value: -1},
				},
				Options: options.Index().SetName("user_pinned_notes"),
			},
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "room_id", Value: 1},
				},
				Options: options.Index().SetName("user_room_notes"),
			},
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "tags", Value: 1},
				},
				Options: options.Index().SetName("user_tags"),
			},
		},
		StoriesCollection: {
			ownerRecency("user_stories_recent"),
		},
		ChaptersCollection: {
			ownerRecency("user_chapters_recent"),
			{
				Keys: bson.D{
					{Key: "story_id", Value: 1},
					{Key: "order", Value: 1},
				},
				Options: options.Index().SetName("story_chapter_order"),
			},
		},
		ExpensesCollection: {
			ownerRecency("user_expenses_recent"),
			ownerDate("user_expenses_date"),
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "category", Value: 1},
				},
				Options: options.Index().SetName("user_expense_category"),
			},
		},
		MemoriesCollection: {
			ownerRecency("user_memories_recent"),
			ownerDate("user_memories_date"),
		},
		ProfilesCollection: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetName("user_id_unique").SetUnique(true),
			},
		},
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_unique").SetUnique(true),
			},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}

	log.Info("Successfully created all indexes", "collections", len(indexes))
	return nil
}
