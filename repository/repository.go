// Package repository defines the owner-scoped entity stores and their
// MongoDB implementations. Every lookup filters on both _id and user_id so a
// record owned by someone else is indistinguishable from a missing one.
package repository

import (
	"context"
	"time"

	"kacchi/model"
)

type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	FindByID(ctx context.Context, userID, id string) (*model.Room, error)
	List(ctx context.Context, userID string) ([]*model.Room, error)
	Recent(ctx context.Context, userID string, limit int64) ([]*model.Room, error)
	Update(ctx context.Context, userID, id string, patch model.RoomPatch) (*model.Room, error)
	Delete(ctx context.Context, userID, id string) (*model.Room, error)
	Count(ctx context.Context, userID string) (int64, error)
}

type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	FindByID(ctx context.Context, userID, id string) (*model.Note, error)
	// List orders pinned notes first, then by most recent update.
	List(ctx context.Context, userID string, filter model.NoteFilter) ([]*model.Note, error)
	Recent(ctx context.Context, userID string, limit int64) ([]*model.Note, error)
	Update(ctx context.Context, userID, id string, patch model.NotePatch) (*model.Note, error)
	Delete(ctx context.Context, userID, id string) (*model.Note, error)
	Count(ctx context.Context, userID string) (int64, error)
	Search(ctx context.Context, userID string, q model.SearchQuery) ([]*model.Note, error)
}

type StoryRepository interface {
	Create(ctx context.Context, story *model.Story) error
	FindByID(ctx context.Context, userID, id string) (*model.Story, error)
	List(ctx context.Context, userID string) ([]*model.Story, error)
	Recent(ctx context.Context, userID string, limit int64) ([]*model.Story, error)
	Update(ctx context.Context, userID, id string, patch model.StoryPatch) (*model.Story, error)
	Delete(ctx context.Context, userID, id string) (*model.Story, error)
	Count(ctx context.Context, userID string) (int64, error)
	Search(ctx context.Context, userID string, q model.SearchQuery) ([]*model.Story, error)
}

type ChapterRepository interface {
	Create(ctx context.Context, chapter *model.Chapter) error
	FindByID(ctx context.Context, userID, id string) (*model.Chapter, error)
	// ListByStory orders chapters by ascending order.
	ListByStory(ctx context.Context, storyID string) ([]*model.Chapter, error)
	Update(ctx context.Context, userID, id string, patch model.ChapterPatch) (*model.Chapter, error)
	Delete(ctx context.Context, userID, id string) (*model.Chapter, error)
	DeleteByStory(ctx context.Context, storyID string) (int64, error)
	Search(ctx context.Context, userID string, q model.SearchQuery) ([]*model.Chapter, error)

	// NextOrder atomically reserves the next order value for a story.
	NextOrder(ctx context.Context, storyID string) (int, error)
	// ObserveOrder raises the story sequence to at least order.
	ObserveOrder(ctx context.Context, storyID string, order int) error
	DropSequence(ctx context.Context, storyID string) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	FindByID(ctx context.Context, userID, id string) (*model.Expense, error)
	// List orders by expense date, newest first.
	List(ctx context.Context, userID string, filter model.ExpenseFilter) ([]*model.Expense, error)
	// Recent uses the same date order as List.
	Recent(ctx context.Context, userID string, limit int64) ([]*model.Expense, error)
	Update(ctx context.Context, userID, id string, patch model.ExpensePatch) (*model.Expense, error)
	Delete(ctx context.Context, userID, id string) (*model.Expense, error)
	Count(ctx context.Context, userID string) (int64, error)
	Search(ctx context.Context, userID string, q model.SearchQuery) ([]*model.Expense, error)
	// CategoryTotals sums amounts per category for from <= date < until.
	CategoryTotals(ctx context.Context, userID string, from, until time.Time) ([]model.CategoryTotal, error)
}

type MemoryRepository interface {
	Create(ctx context.Context, memory *model.Memory) error
	FindByID(ctx context.Context, userID, id string) (*model.Memory, error)
	List(ctx context.Context, userID string, filter model.MemoryFilter) ([]*model.Memory, error)
	// Recent orders by memory date, newest first.
	Recent(ctx context.Context, userID string, limit int64) ([]*model.Memory, error)
	Update(ctx context.Context, userID, id string, patch model.MemoryPatch) (*model.Memory, error)
	Delete(ctx context.Context, userID, id string) (*model.Memory, error)
	Count(ctx context.Context, userID string) (int64, error)
	Search(ctx context.Context, userID string, q model.SearchQuery) ([]*model.Memory, error)
}

type ProfileRepository interface {
	// GetOrCreate returns the profile, inserting a default one if absent.
	GetOrCreate(ctx context.Context, userID string) (*model.UserProfile, error)
	Update(ctx context.Context, userID string, patch model.ProfilePatch) (*model.UserProfile, error)
	// IncrementStat upserts on positive deltas and never drops below zero.
	IncrementStat(ctx context.Context, userID string, field model.StatField, delta int64) error
	SetStats(ctx context.Context, userID string, stats model.UserStats) error
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	RecordLogin(ctx context.Context, id string, at time.Time, device string) error
}

// Store bundles every repository behind one backend.
type Store struct {
	Rooms    RoomRepository
	Notes    NoteRepository
	Stories  StoryRepository
	Chapters ChapterRepository
	Expenses ExpenseRepository
	Memories MemoryRepository
	Profiles ProfileRepository
	Users    UserRepository

	Ping  func(ctx context.Context) error
	Close func(ctx context.Context) error
}
