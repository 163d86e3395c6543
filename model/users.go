package model

import "time"

type User struct {
	ID              string    `bson:"_id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email" json:"email"`
	PasswordHash    string    `bson:"password_hash" json:"-"`
	LastLoginAt     time.Time `bson:"last_login_at,omitempty" json:"lastLoginAt,omitempty"`
	LastLoginDevice string    `bson:"last_login_device,omitempty" json:"lastLoginDevice,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
