package model

import "time"

type RoomType string

const (
	RoomTypeNote    RoomType = "note"
	RoomTypeJournal RoomType = "journal"
	RoomTypeStory   RoomType = "story"
	RoomTypeFree    RoomType = "free"
)

var RoomTypes = []RoomType{RoomTypeNote, RoomTypeJournal, RoomTypeStory, RoomTypeFree}

func (t RoomType) Valid() bool {
	for _, rt := range RoomTypes {
		if t == rt {
			return true
		}
	}
	return false
}

type Room struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Type      RoomType  `bson:"type" json:"type"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type RoomInput struct {
	Type    RoomType `json:"type" binding:"omitempty,roomtype"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
}

type RoomPatch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
