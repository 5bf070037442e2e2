// Package store is the persistence gateway. The Store interface is selected
// once at startup: a gorm-backed implementation when a database is
// configured, or the demo implementation returning canned fixtures when not.
// Callers never branch on availability themselves.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/ecotrack/backend/internal/models"
)

// ErrNotFound is returned when a referenced entity does not exist
var ErrNotFound = errors.New("record not found")

// ActivityQuery narrows and pages the activity feed. Ordering is always
// cleaned_at descending regardless of the filter.
type ActivityQuery struct {
	Offset   int
	Limit    int
	Verified bool       // only verified activities
	Since    *time.Time // only activities cleaned at or after this instant
}

// StatsAggregate holds the raw feed aggregates; the feed service derives
// the verification rate from them.
type StatsAggregate struct {
	Total        int64
	Verified     int64
	PhotosShared int64
	PointsEarned int64
}

// Store is the persistence gateway used by every service
type Store interface {
	// Available reports whether real persistence backs this store.
	// The demo store returns false.
	Available() bool

	// Users
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	EmailTakenByOther(ctx context.Context, email, userID string) (bool, error)

	// Waste reports
	Reports(ctx context.Context) ([]models.WasteReport, error)
	ReportsByUser(ctx context.Context, userID string) ([]models.WasteReport, error)
	ReportByID(ctx context.Context, id string) (*models.WasteReport, error)
	// CreateReport inserts the report and awards the reporter's points in
	// one transaction.
	CreateReport(ctx context.Context, r *models.WasteReport, awardPoints int) error
	UpdateReportStatus(ctx context.Context, id, status string) (*models.WasteReport, error)

	// Cleanup activities
	Activities(ctx context.Context, q ActivityQuery) ([]models.CleanupActivity, int64, error)
	ActivitiesByUser(ctx context.Context, userID string) ([]models.CleanupActivity, error)
	ActivityByID(ctx context.Context, id string) (*models.CleanupActivity, error)
	// CreateActivity inserts the activity and, in the same transaction,
	// increments the user's points when PointsEarned > 0 and completes the
	// linked waste report when the activity is verified.
	CreateActivity(ctx context.Context, a *models.CleanupActivity) error
	// ToggleLike likes the activity on the first call for a given user and
	// unlikes it on the second. Returns the new liked state and like count.
	ToggleLike(ctx context.Context, activityID, userID string) (liked bool, likes int, err error)
	StatsAggregate(ctx context.Context) (*StatsAggregate, error)
	// PruneActivities deletes activities cleaned strictly before the cutoff,
	// cascading their comments and likes. Returns the number removed.
	PruneActivities(ctx context.Context, cutoff time.Time) (int64, error)

	// Comments
	Comments(ctx context.Context, activityID string) ([]models.ActivityComment, error)
	CommentByID(ctx context.Context, id string) (*models.ActivityComment, error)
	// CreateComment inserts the comment and increments the activity's
	// counter in one transaction.
	CreateComment(ctx context.Context, c *models.ActivityComment) error
	// DeleteComment removes the comment and decrements the activity's
	// counter (floored at zero) in one transaction.
	DeleteComment(ctx context.Context, id string) error
}
