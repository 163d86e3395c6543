package model

import "time"

type ActivityType string

const (
	ActivityNote    ActivityType = "note"
	ActivityStory   ActivityType = "story"
	ActivityExpense ActivityType = "expense"
	ActivityMemory  ActivityType = "memory"
)

type ActivityItem struct {
	ID    string       `json:"id"`
	Type  ActivityType `json:"type"`
	Title string       `json:"title"`
	Date  time.Time    `json:"date"`
}

type DashboardStats struct {
	NotesCount    int64 `json:"notesCount"`
	StoriesCount  int64 `json:"storiesCount"`
	ExpensesCount int64 `json:"expensesCount"`
	MemoriesCount int64 `json:"memoriesCount"`
	RoomsCount    int64 `json:"roomsCount"`
}

type Dashboard struct {
	Rooms          []*Room        `json:"rooms"`
	RecentActivity []ActivityItem `json:"recentActivity"`
	Stats          DashboardStats `json:"stats"`
}
