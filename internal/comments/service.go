// Package comments manages the discussion threads under feed activities.
package comments

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/ecotrack/backend/internal/errors"
	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/store"
)

// Service reads and mutates activity comments
type Service struct {
	store store.Store
}

// NewService creates a comments service over the given store
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// List returns an activity's comments oldest first
func (s *Service) List(ctx context.Context, activityID string) ([]models.ActivityComment, error) {
	return s.store.Comments(ctx, activityID)
}

// Add posts a comment on an activity and bumps its comment counter
func (s *Service) Add(ctx context.Context, activityID, userID, userName, text string) (*models.ActivityComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ValidationError("commentText", "Comment text is required")
	}

	comment := &models.ActivityComment{
		ActivityID:  activityID,
		UserID:      userID,
		UserName:    userName,
		CommentText: text,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("cleanup activity")
		}
		return nil, err
	}
	return comment, nil
}

// Delete removes the caller's own comment and decrements the activity's
// counter. Deleting someone else's comment is forbidden.
func (s *Service) Delete(ctx context.Context, commentID, userID string) error {
	comment, err := s.store.CommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("comment")
		}
		return err
	}
	if comment.UserID != userID {
		return apperrors.Forbidden("You can only delete your own comments")
	}

	if err := s.store.DeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("comment")
		}
		return err
	}
	return nil
}
