package repository

import (
	"context"
	"fmt"
	"time"

	"kacchi/model"
	"kacchi/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var byDate = bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}

type ExpensesRepo struct {
	MongoCollection *mongo.Collection
}

func GetExpensesRepo(db *mongo.Database) *ExpensesRepo {
	return &ExpensesRepo{MongoCollection: db.Collection(ExpensesCollection)}
}

func (r *ExpensesRepo) Create(ctx context.Context, expense *model.Expense) error {
	return insertOne(ctx, r.MongoCollection, expense)
}

func (r *ExpensesRepo) FindByID(ctx context.Context, userID, id string) (*model.Expense, error) {
	return findOne[model.Expense](ctx, r.MongoCollection, ownedBy(userID, id))
}

func (r *ExpensesRepo) List(ctx context.Context, userID string, f model.ExpenseFilter) ([]*model.Expense, error) {
	filter := bson.M{"user_id": userID}
	if rng := dateRange(f.From, f.To); rng != nil {
		filter["date"] = rng
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	return findAll[model.Expense](ctx, r.MongoCollection, "find", filter, options.Find().SetSort(byDate))
}

func (r *ExpensesRepo) Recent(ctx context.Context, userID string, limit int64) ([]*model.Expense, error) {
	return findAll[model.Expense](ctx, r.MongoCollection, "recent", bson.M{"user_id": userID},
		options.Find().SetSort(byDate).SetLimit(limit))
}

func (r *ExpensesRepo) Update(ctx context.Context, userID, id string, patch model.ExpensePatch) (*model.Expense, error) {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Amount != nil {
		set["amount"] = *patch.Amount
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Date != nil {
		set["date"] = patch.Date.Time
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	return updateOwned[model.Expense](ctx, r.MongoCollection, userID, id, set)
}

func (r *ExpensesRepo) Delete(ctx context.Context, userID, id string) (*model.Expense, error) {
	return deleteOwned[model.Expense](ctx, r.MongoCollection, userID, id)
}

func (r *ExpensesRepo) Count(ctx context.Context, userID string) (int64, error) {
	return countOwned(ctx, r.MongoCollection, userID)
}

func (r *ExpensesRepo) Search(ctx context.Context, userID string, q model.SearchQuery) ([]*model.Expense, error) {
	filter := bson.M{"user_id": userID}
	if q.Text != "" {
		filter["$or"] = anyFieldContains(q.Text, "title", "description", "category")
	}
	opts := options.Find().
		SetProjection(bson.M{"title": 1, "amount": 1, "category": 1, "date": 1, "description": 1, "user_id": 1, "created_at": 1, "updated_at": 1}).
		SetSort(byDate).
		SetLimit(q.Limit)
	return findAll[model.Expense](ctx, r.MongoCollection, "search", filter, opts)
}

func (r *ExpensesRepo) CategoryTotals(ctx context.Context, userID string, from, until time.Time) ([]model.CategoryTotal, error) {
	defer utils.TrackDBOperation("aggregate", ExpensesCollection).ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id": userID,
			"date":    bson.M{"$gte": from, "$lt": until},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate expenses: %w", err)
	}
	defer cursor.Close(ctx)

	totals := make([]model.CategoryTotal, 0)
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("aggregate expenses: decode: %w", err)
	}
	return totals, nil
}
