package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ecotrack/backend/internal/models"
)

// demoStore serves deterministic canned data when no database is
// configured. Writes are accepted and echoed back in the real response
// shapes but nothing is retained across calls.
type demoStore struct {
	seq atomic.Int64
}

// NewDemo creates the demo-mode Store
func NewDemo() Store {
	return &demoStore{}
}

func (s *demoStore) Available() bool { return false }

func (s *demoStore) nextID() string {
	return fmt.Sprintf("demo-%d", s.seq.Add(1))
}

func strPtr(v string) *string { return &v }

// DemoUserID is the identity every demo-mode token resolves to
const DemoUserID = "1"

func demoUser() *models.User {
	return &models.User{
		ID:         DemoUserID,
		Name:       "Demo User",
		Email:      "demo@ecotrack.com",
		Phone:      strPtr("+1 (555) 123-4567"),
		Location:   strPtr("New York, NY"),
		Points:     1250,
		JoinedDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func demoReports() []models.WasteReport {
	now := time.Now().UTC()
	return []models.WasteReport{
		{
			ID:       "1",
			UserID:   "1",
			UserName: "Demo User",
			Location: models.Location{
				Latitude:  40.7829,
				Longitude: -73.9654,
				Address:   "Central Park, Downtown",
			},
			WasteType:    "Plastic Bottles",
			Severity:     models.SeverityMedium,
			Description:  "Several plastic bottles scattered near the playground area.",
			Images:       models.StringArray{},
			Status:       models.StatusPending,
			ContactName:  "Demo User",
			ContactPhone: strPtr("+1 (555) 123-4567"),
			ReportedAt:   now.Add(-2 * time.Hour),
			UpdatedAt:    now.Add(-2 * time.Hour),
		},
		{
			ID:       "2",
			UserID:   "2",
			UserName: "Sarah Chen",
			Location: models.Location{
				Latitude:  40.7589,
				Longitude: -73.9851,
				Address:   "Main Street & 5th Ave",
			},
			WasteType:    "Food Waste",
			Severity:     models.SeverityHigh,
			Description:  "Large pile of food waste attracting pests.",
			Images:       models.StringArray{},
			Status:       models.StatusInProgress,
			ContactName:  "Sarah Chen",
			ContactPhone: strPtr("+1 (555) 987-6543"),
			ReportedAt:   now.Add(-4 * time.Hour),
			UpdatedAt:    now.Add(-1 * time.Hour),
		},
	}
}

// Users

func (s *demoStore) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = DemoUserID
	u.JoinedDate = time.Now().UTC()
	return nil
}

func (s *demoStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	u := demoUser()
	u.Email = email
	return u, nil
}

func (s *demoStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	return demoUser(), nil
}

func (s *demoStore) UpdateUser(ctx context.Context, u *models.User) error {
	return nil
}

func (s *demoStore) EmailTakenByOther(ctx context.Context, email, userID string) (bool, error) {
	return false, nil
}

// Waste reports

func (s *demoStore) Reports(ctx context.Context) ([]models.WasteReport, error) {
	return demoReports(), nil
}

func (s *demoStore) ReportsByUser(ctx context.Context, userID string) ([]models.WasteReport, error) {
	return demoReports(), nil
}

func (s *demoStore) ReportByID(ctx context.Context, id string) (*models.WasteReport, error) {
	report := demoReports()[0]
	report.ID = id
	return &report, nil
}

func (s *demoStore) CreateReport(ctx context.Context, r *models.WasteReport, awardPoints int) error {
	r.ID = s.nextID()
	now := time.Now().UTC()
	r.ReportedAt = now
	r.UpdatedAt = now
	if r.Status == "" {
		r.Status = models.StatusPending
	}
	return nil
}

func (s *demoStore) UpdateReportStatus(ctx context.Context, id, status string) (*models.WasteReport, error) {
	report, _ := s.ReportByID(ctx, id)
	report.Status = status
	report.UpdatedAt = time.Now().UTC()
	if status == models.StatusCompleted {
		now := time.Now().UTC()
		report.CompletedAt = &now
	}
	return report, nil
}

// Cleanup activities. The demo feed is empty, matching the original
// fallback routes; stats report the marketing numbers instead.

func (s *demoStore) Activities(ctx context.Context, q ActivityQuery) ([]models.CleanupActivity, int64, error) {
	return []models.CleanupActivity{}, 0, nil
}

func (s *demoStore) ActivitiesByUser(ctx context.Context, userID string) ([]models.CleanupActivity, error) {
	return []models.CleanupActivity{}, nil
}

func (s *demoStore) ActivityByID(ctx context.Context, id string) (*models.CleanupActivity, error) {
	return nil, ErrNotFound
}

func (s *demoStore) CreateActivity(ctx context.Context, a *models.CleanupActivity) error {
	a.ID = s.nextID()
	now := time.Now().UTC()
	a.CleanedAt = now
	a.CreatedAt = now
	return nil
}

func (s *demoStore) ToggleLike(ctx context.Context, activityID, userID string) (bool, int, error) {
	return true, 1, nil
}

func (s *demoStore) StatsAggregate(ctx context.Context) (*StatsAggregate, error) {
	// 139/156 rounds to the advertised 89% verification rate
	return &StatsAggregate{
		Total:        156,
		Verified:     139,
		PhotosShared: 2300,
		PointsEarned: 45000,
	}, nil
}

func (s *demoStore) PruneActivities(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

// Comments

func (s *demoStore) Comments(ctx context.Context, activityID string) ([]models.ActivityComment, error) {
	return []models.ActivityComment{}, nil
}

func (s *demoStore) CommentByID(ctx context.Context, id string) (*models.ActivityComment, error) {
	now := time.Now().UTC()
	return &models.ActivityComment{
		ID:          id,
		ActivityID:  "1",
		UserID:      DemoUserID,
		UserName:    "Demo User",
		CommentText: "Great work keeping the park clean!",
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s *demoStore) CreateComment(ctx context.Context, c *models.ActivityComment) error {
	c.ID = s.nextID()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func (s *demoStore) DeleteComment(ctx context.Context, id string) error {
	return nil
}
