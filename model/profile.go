package model

import "time"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

type EditorSettings struct {
	FontSize   int     `bson:"font_size" json:"fontSize"`
	FontFamily string  `bson:"font_family" json:"fontFamily"`
	LineHeight float64 `bson:"line_height" json:"lineHeight"`
}

type Preferences struct {
	Theme           Theme          `bson:"theme" json:"theme" binding:"omitempty,oneof=light dark auto"`
	DefaultTemplate string         `bson:"default_template" json:"defaultTemplate"`
	EditorSettings  EditorSettings `bson:"editor_settings" json:"editorSettings"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme:           ThemeAuto,
		DefaultTemplate: "blank",
		EditorSettings: EditorSettings{
			FontSize:   16,
			FontFamily: "Inter",
			LineHeight: 1.6,
		},
	}
}

type UserProfile struct {
	ID          string      `bson:"_id" json:"id"`
	UserID      string      `bson:"user_id" json:"userId"`
	DisplayName string      `bson:"display_name" json:"displayName"`
	Bio         string      `bson:"bio" json:"bio"`
	AvatarURL   string      `bson:"avatar_url" json:"avatarUrl"`
	Preferences Preferences `bson:"preferences" json:"preferences"`
	Stats       UserStats   `bson:"stats" json:"stats"`
	CreatedAt   time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updated_at" json:"updatedAt"`
}

type ProfilePatch struct {
	DisplayName *string      `json:"displayName"`
	Bio         *string      `json:"bio"`
	AvatarURL   *string      `json:"avatarUrl"`
	Preferences *Preferences `json:"preferences"`
}
