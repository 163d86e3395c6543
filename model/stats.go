package model

// UserStats is a cache of per-user entity counts.
type UserStats struct {
	CreatedRooms  int64 `bson:"created_rooms" json:"createdRooms"`
	NotesCount    int64 `bson:"notes_count" json:"notesCount"`
	StoriesCount  int64 `bson:"stories_count" json:"storiesCount"`
	ExpensesCount int64 `bson:"expenses_count" json:"expensesCount"`
	MemoriesCount int64 `bson:"memories_count" json:"memoriesCount"`
}

// StatField names a counter inside UserStats by its stored key.
type StatField string

const (
	StatNotes    StatField = "notes_count"
	StatStories  StatField = "stories_count"
	StatExpenses StatField = "expenses_count"
	StatMemories StatField = "memories_count"
)
