// Package feed implements the cleanup-activity feed: listing and filtering,
// activity creation with point awards, like toggling, and aggregate stats.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ecotrack/backend/internal/cache"
	apperrors "github.com/ecotrack/backend/internal/errors"
	"github.com/ecotrack/backend/internal/logger"
	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/store"
)

const (
	// recentWindow bounds the "recent" feed filter and the prune cutoff
	recentWindow = 24 * time.Hour

	statsCacheKey = "feed:stats"
	statsCacheTTL = 30 * time.Second
)

// Service is the feed's source of truth
type Service struct {
	store store.Store
	cache *cache.RedisClient
}

// NewService creates a feed service over the given store
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// SetCache attaches an optional redis client for short-TTL stats caching
func (s *Service) SetCache(rc *cache.RedisClient) {
	s.cache = rc
}

// Pagination describes one page of the feed
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}

// List returns one page of the feed, newest cleanups first. filter is one
// of "all", "verified" or "recent" (cleaned within the last 24 hours);
// anything else behaves like "all".
//
// Offset pagination is best-effort under concurrent inserts: a new
// activity shifts later offsets, so a client paging through the feed can
// see a row twice or miss one. Acceptable for a social feed.
func (s *Service) List(ctx context.Context, page, limit int, filter string) ([]models.CleanupActivity, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	q := store.ActivityQuery{Offset: offset, Limit: limit}
	switch filter {
	case "verified":
		q.Verified = true
	case "recent":
		since := time.Now().UTC().Add(-recentWindow)
		q.Since = &since
	}

	activities, total, err := s.store.Activities(ctx, q)
	if err != nil {
		return nil, Pagination{}, err
	}

	return activities, Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasMore: int64(offset+limit) < total,
	}, nil
}

// ListByUser returns all of one user's activities, newest first
func (s *Service) ListByUser(ctx context.Context, userID string) ([]models.CleanupActivity, error) {
	return s.store.ActivitiesByUser(ctx, userID)
}

// CreateInput carries the fields of a cleanup verification request
type CreateInput struct {
	WasteReportID     *string  `json:"wasteReportId"`
	WasteType         string   `json:"wasteType"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Address           string   `json:"address"`
	Description       string   `json:"description"`
	BeforeImage       *string  `json:"beforeImage"`
	AfterImage        *string  `json:"afterImage"`
	VerificationImage string   `json:"verificationImage"`
}

// Create records a verified cleanup. It computes the point award from the
// waste type, backfills the before image from the linked report when one
// is referenced, and atomically inserts the activity, credits the user's
// points, and completes the linked report.
func (s *Service) Create(ctx context.Context, userID, userName string, in CreateInput) (*models.CleanupActivity, error) {
	if in.WasteType == "" || in.Latitude == nil || in.Longitude == nil || in.VerificationImage == "" {
		return nil, apperrors.ValidationError("",
			"Missing required fields: wasteType, latitude, longitude, verificationImage")
	}

	pointsEarned := CalculatePoints(in.WasteType)

	beforeImage := in.BeforeImage
	if in.WasteReportID != nil && beforeImage == nil {
		report, err := s.store.ReportByID(ctx, *in.WasteReportID)
		switch {
		case err == nil:
			if len(report.Images) > 0 {
				img := report.Images[0]
				beforeImage = &img
			}
		case errors.Is(err, store.ErrNotFound):
			// Stale reference; proceed without a before image
		default:
			return nil, err
		}
	}

	activity := &models.CleanupActivity{
		UserID:        userID,
		UserName:      userName,
		WasteReportID: in.WasteReportID,
		WasteType:     in.WasteType,
		Location: models.Location{
			Latitude:  *in.Latitude,
			Longitude: *in.Longitude,
			Address:   in.Address,
		},
		Description:       in.Description,
		BeforeImage:       beforeImage,
		AfterImage:        in.AfterImage,
		VerificationImage: in.VerificationImage,
		Verified:          true,
		PointsEarned:      pointsEarned,
	}

	if err := s.store.CreateActivity(ctx, activity); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return activity, nil
}

// LikeResult reports the caller's new like state for an activity
type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// ToggleLike likes the activity on the caller's first call and removes the
// like on the second; the count never goes below zero.
func (s *Service) ToggleLike(ctx context.Context, activityID, userID string) (*LikeResult, error) {
	liked, likes, err := s.store.ToggleLike(ctx, activityID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("cleanup activity")
		}
		return nil, err
	}
	return &LikeResult{Liked: liked, Likes: likes}, nil
}

// Stats are the aggregate numbers shown at the top of the feed
type Stats struct {
	AreasCleaned     int64 `json:"areasCleaned"`
	PhotosShared     int64 `json:"photosShared"`
	VerificationRate int   `json:"verificationRate"`
	PointsEarned     int64 `json:"pointsEarned"`
}

// Stats computes the feed aggregates, serving from the short-TTL cache
// when one is attached. Cache failures are logged and bypassed.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if cached, err := s.cache.Get(ctx, statsCacheKey); err == nil {
		var stats Stats
		if jsonErr := json.Unmarshal([]byte(cached), &stats); jsonErr == nil {
			return &stats, nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.WarnWithFields("feed stats cache read failed", err)
	}

	agg, err := s.store.StatsAggregate(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		AreasCleaned: agg.Total,
		PhotosShared: agg.PhotosShared,
		PointsEarned: agg.PointsEarned,
	}
	if agg.Total > 0 {
		stats.VerificationRate = int((float64(agg.Verified)/float64(agg.Total))*100 + 0.5)
	}

	if payload, jsonErr := json.Marshal(stats); jsonErr == nil {
		if err := s.cache.SetEx(ctx, statsCacheKey, payload, statsCacheTTL); err != nil {
			logger.WarnWithFields("feed stats cache write failed", err)
		}
	}

	return stats, nil
}

func (s *Service) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		logger.WarnWithFields("feed stats cache invalidation failed", err)
	}
}
