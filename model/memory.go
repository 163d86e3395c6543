package model

import "time"

type Mood string

const DefaultMood Mood = "neutral"

var Moods = []Mood{"happy", "sad", "excited", "anxious", "calm", "angry", "neutral"}

func (m Mood) Valid() bool {
	for _, v := range Moods {
		if m == v {
			return true
		}
	}
	return false
}

type Memory struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	RoomID    string    `bson:"room_id" json:"roomId"`
	Text      string    `bson:"text" json:"text"`
	Mood      Mood      `bson:"mood" json:"mood"`
	Date      time.Time `bson:"date" json:"date"`
	MediaURLs []string  `bson:"media_urls" json:"mediaUrls"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// MemoryInput accepts either text or a title/content pair.
type MemoryInput struct {
	RoomID    string   `json:"roomId"`
	Text      string   `json:"text"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Mood      Mood     `json:"mood" binding:"omitempty,mood"`
	Date      *Date    `json:"date"`
	MediaURLs []string `json:"mediaUrls"`
}

type MemoryPatch struct {
	Text      *string   `json:"text"`
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Mood      *Mood     `json:"mood" binding:"omitempty,mood"`
	Date      *Date     `json:"date"`
	MediaURLs *[]string `json:"mediaUrls"`
}

type MemoryFilter struct {
	From *time.Time
	To   *time.Time
	Mood Mood
}

// ComposeMemoryText joins a title and content the way memories store them.
func ComposeMemoryText(text, title, content string) string {
	switch {
	case text != "":
		return text
	case title != "" && content != "":
		return title + "\n\n" + content
	case title != "":
		return title
	default:
		return content
	}
}
