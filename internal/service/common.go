package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"project-hub-api/internal/response"
)

// userIDKey is the context key the auth middleware stores the caller id under
const userIDKey = "user_id"

// userIDFromContext extracts the authenticated user id from the request context
func userIDFromContext(ctx context.Context) (uuid.UUID, error) {
	v := ctx.Value(userIDKey)
	if v == nil {
		return uuid.Nil, response.NewUnauthorizedError("user not authenticated")
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, response.NewUnauthorizedError("user not authenticated")
	}
	return id, nil
}

// wrapNotFound converts gorm's record-not-found into an AppError
func wrapNotFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFoundError(message)
	}
	return err
}

// parseDate parses an optional yyyy-mm-dd or RFC3339 date string
func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, *raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, response.NewValidationError("invalid date format", *raw)
	}
	return &t, nil
}

// dedupeUUIDs returns the unique ids in first-seen order
func dedupeUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
