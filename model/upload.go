package model

import "time"

type UploadKind string

const (
	UploadMemoryMedia UploadKind = "memory"
	UploadStoryCover  UploadKind = "cover"
)

type PresignRequest struct {
	Kind        UploadKind `json:"kind" binding:"required,oneof=memory cover"`
	ContentType string     `json:"contentType" binding:"required"`
}

type PresignedUpload struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"uploadUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}
