// Package reports manages waste reports: citizen submissions of waste
// locations awaiting cleanup, and their status lifecycle.
package reports

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/ecotrack/backend/internal/errors"
	"github.com/ecotrack/backend/internal/logger"
	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/store"
)

// ReportAward is the flat point credit for submitting a waste report
const ReportAward = 50

// Service reads and mutates waste reports
type Service struct {
	store store.Store
}

// NewService creates a reports service over the given store
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// List returns all waste reports, newest first
func (s *Service) List(ctx context.Context) ([]models.WasteReport, error) {
	return s.store.Reports(ctx)
}

// ListByUser returns one user's waste reports, newest first
func (s *Service) ListByUser(ctx context.Context, userID string) ([]models.WasteReport, error) {
	return s.store.ReportsByUser(ctx, userID)
}

// CreateInput carries the fields of a waste report submission
type CreateInput struct {
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Address      string   `json:"address"`
	WasteType    string   `json:"wasteType"`
	Severity     string   `json:"severity"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	ContactName  string   `json:"contactName"`
	ContactPhone *string  `json:"contactPhone"`
}

func (in CreateInput) validate() error {
	switch {
	case in.Latitude == nil || in.Longitude == nil:
		return apperrors.ValidationError("location", "Location latitude and longitude are required")
	case in.WasteType == "":
		return apperrors.ValidationError("wasteType", "Waste type is required")
	case !models.ValidSeverity(in.Severity):
		return apperrors.ValidationError("severity",
			fmt.Sprintf("Severity must be one of: %s, %s, %s, %s",
				models.SeverityLow, models.SeverityMedium, models.SeverityHigh, models.SeverityCritical))
	case in.Description == "":
		return apperrors.ValidationError("description", "Description is required")
	case in.ContactName == "":
		return apperrors.ValidationError("contactName", "Contact name is required")
	}
	return nil
}

// Create records a waste report and credits the reporter 50 points. When
// the report carries photos, a zero-point unverified feed stub is derived
// from them so the report shows up in the cleanup feed; failure to create
// the stub never fails the report.
func (s *Service) Create(ctx context.Context, userID, userName string, in CreateInput) (*models.WasteReport, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	report := &models.WasteReport{
		UserID:   userID,
		UserName: userName,
		Location: models.Location{
			Latitude:  *in.Latitude,
			Longitude: *in.Longitude,
			Address:   in.Address,
		},
		WasteType:    in.WasteType,
		Severity:     in.Severity,
		Description:  in.Description,
		Images:       in.Images,
		Status:       models.StatusPending,
		ContactName:  in.ContactName,
		ContactPhone: in.ContactPhone,
	}

	if err := s.store.CreateReport(ctx, report, ReportAward); err != nil {
		return nil, err
	}

	if len(in.Images) > 0 {
		s.createFeedStub(ctx, report)
	}

	return report, nil
}

// createFeedStub mirrors a photographed report into the feed as an
// unverified zero-point activity
func (s *Service) createFeedStub(ctx context.Context, report *models.WasteReport) {
	beforeImage := report.Images[0]
	verificationImage := beforeImage
	var afterImage *string
	if len(report.Images) > 1 {
		img := report.Images[1]
		afterImage = &img
		verificationImage = img
	}

	stub := &models.CleanupActivity{
		UserID:            report.UserID,
		UserName:          report.UserName,
		WasteReportID:     &report.ID,
		WasteType:         report.WasteType,
		Location:          report.Location,
		Description:       report.Description,
		BeforeImage:       &beforeImage,
		AfterImage:        afterImage,
		VerificationImage: verificationImage,
		Verified:          false,
		PointsEarned:      0,
	}
	if err := s.store.CreateActivity(ctx, stub); err != nil {
		logger.WarnWithFields("feed stub creation failed for waste report "+report.ID, err)
	}
}

// UpdateStatus moves a report through pending -> in_progress -> completed.
// The completion timestamp is set only when the report first completes.
func (s *Service) UpdateStatus(ctx context.Context, reportID, status string) (*models.WasteReport, error) {
	if !models.ValidStatus(status) {
		return nil, apperrors.ValidationError("status",
			fmt.Sprintf("Status must be one of: %s, %s, %s",
				models.StatusPending, models.StatusInProgress, models.StatusCompleted))
	}

	report, err := s.store.UpdateReportStatus(ctx, reportID, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("waste report")
		}
		return nil, err
	}
	return report, nil
}
