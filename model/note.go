package model

import (
	"time"
)

type Note struct {
	ID         string    `bson:"_id" json:"id"`
	UserID     string    `bson:"user_id" json:"userId"`
	RoomID     string    `bson:"room_id" json:"roomId"`
	Title      string    `bson:"title" json:"title"`
	Content    string    `bson:"content" json:"content"`
	Tags       []string  `bson:"tags" json:"tags"`
	IsPinned   bool      `bson:"is_pinned" json:"isPinned"`
	IsArchived bool      `bson:"is_archived" json:"isArchived"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

const DefaultNoteTitle = "Untitled Note"

type NoteInput struct {
	RoomID  string   `json:"roomId"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type NotePatch struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags"`
	IsPinned   *bool     `json:"isPinned"`
	IsArchived *bool     `json:"isArchived"`
}

type NoteFilter struct {
	RoomID   string
	Tag      string
	Archived *bool
}
