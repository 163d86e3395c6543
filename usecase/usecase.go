// Package usecase holds the per-entity services. Every method takes the
// caller's user id and never returns records owned by anyone else.
package usecase

import (
	"context"
	"strings"
	"time"

	"kacchi/model"
	"kacchi/repository"

	"github.com/charmbracelet/log"
)

var now = func() time.Time { return time.Now().UTC() }

// bumpStat adjusts the cached profile counter. The cache is rebuilt on the
// next dashboard or profile read, so a failure here only logs.
func bumpStat(ctx context.Context, profiles repository.ProfileRepository, userID string, field model.StatField, delta int64) {
	if err := profiles.IncrementStat(ctx, userID, field, delta); err != nil {
		log.Warn("failed to update profile stats", "user", userID, "field", field, "delta", delta, "err", err)
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func requireRoom(roomID string) error {
	if strings.TrimSpace(roomID) == "" {
		return model.NewValidationError("Room ID is required")
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
