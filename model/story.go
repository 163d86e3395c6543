package model

import "time"

type Story struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"userId"`
	RoomID      string    `bson:"room_id" json:"roomId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	CoverImage  string    `bson:"cover_image" json:"coverImage"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// Chapter belongs to a Story. Order is unique per story when assigned
// automatically.
type Chapter struct {
	ID        string    `bson:"_id" json:"id"`
	StoryID   string    `bson:"story_id" json:"storyId"`
	UserID    string    `bson:"user_id" json:"userId"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Order     int       `bson:"order" json:"order"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

const (
	DefaultStoryTitle   = "Untitled Story"
	DefaultChapterTitle = "Untitled Chapter"
)

type StoryInput struct {
	RoomID      string `json:"roomId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
}

type StoryPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CoverImage  *string `json:"coverImage"`
}

type ChapterInput struct {
	StoryID string `json:"storyId"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order" binding:"gte=0"`
}

type ChapterPatch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Order   *int    `json:"order" binding:"omitempty,gte=1"`
}

// StoryWithChapters is the single-story read model.
type StoryWithChapters struct {
	*Story
	Chapters []*Chapter `json:"chapters"`
}
