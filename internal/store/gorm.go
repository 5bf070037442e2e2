package store

import (
	"context"
	"errors"
	"time"

	"github.com/ecotrack/backend/internal/models"
	"gorm.io/gorm"
)

// gormStore backs the Store interface with a relational database
type gormStore struct {
	db *gorm.DB
}

// NewGorm creates a Store over an open gorm connection
func NewGorm(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Available() bool { return true }

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Users

func (s *gormStore) CreateUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *gormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormStore) UpdateUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Save(u).Error
}

func (s *gormStore) EmailTakenByOther(ctx context.Context, email, userID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, userID).
		Count(&count).Error
	return count > 0, err
}

// Waste reports

func (s *gormStore) Reports(ctx context.Context) ([]models.WasteReport, error) {
	var reports []models.WasteReport
	err := s.db.WithContext(ctx).Order("reported_at DESC").Find(&reports).Error
	return reports, err
}

func (s *gormStore) ReportsByUser(ctx context.Context, userID string) ([]models.WasteReport, error) {
	var reports []models.WasteReport
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("reported_at DESC").Find(&reports).Error
	return reports, err
}

func (s *gormStore) ReportByID(ctx context.Context, id string) (*models.WasteReport, error) {
	var r models.WasteReport
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *gormStore) CreateReport(ctx context.Context, r *models.WasteReport, awardPoints int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(r).Error; err != nil {
			return err
		}
		if awardPoints > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", r.UserID).
				UpdateColumn("points", gorm.Expr("points + ?", awardPoints)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *gormStore) UpdateReportStatus(ctx context.Context, id, status string) (*models.WasteReport, error) {
	var report models.WasteReport
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		report.Status = status
		if status == models.StatusCompleted && report.CompletedAt == nil {
			now := time.Now().UTC()
			report.CompletedAt = &now
		}
		return tx.Save(&report).Error
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Cleanup activities

// activityColumns joins the author's avatar onto each row for the feed
func (s *gormStore) activityQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.CleanupActivity{}).
		Select("cleanup_activities.*, users.avatar_url AS user_avatar").
		Joins("LEFT JOIN users ON users.id = cleanup_activities.user_id")
}

func applyActivityFilter(db *gorm.DB, q ActivityQuery) *gorm.DB {
	if q.Verified {
		db = db.Where("cleanup_activities.verified = ?", true)
	}
	if q.Since != nil {
		db = db.Where("cleanup_activities.cleaned_at >= ?", *q.Since)
	}
	return db
}

func (s *gormStore) Activities(ctx context.Context, q ActivityQuery) ([]models.CleanupActivity, int64, error) {
	var activities []models.CleanupActivity
	err := applyActivityFilter(s.activityQuery(ctx), q).
		Order("cleanup_activities.cleaned_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = applyActivityFilter(s.db.WithContext(ctx).Model(&models.CleanupActivity{}), q).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

func (s *gormStore) ActivitiesByUser(ctx context.Context, userID string) ([]models.CleanupActivity, error) {
	var activities []models.CleanupActivity
	err := s.activityQuery(ctx).
		Where("cleanup_activities.user_id = ?", userID).
		Order("cleanup_activities.cleaned_at DESC").
		Find(&activities).Error
	return activities, err
}

func (s *gormStore) ActivityByID(ctx context.Context, id string) (*models.CleanupActivity, error) {
	var a models.CleanupActivity
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *gormStore) CreateActivity(ctx context.Context, a *models.CleanupActivity) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		if a.PointsEarned > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", a.UserID).
				UpdateColumn("points", gorm.Expr("points + ?", a.PointsEarned)).Error; err != nil {
				return err
			}
		}
		// A verified cleanup closes out the report it was performed against.
		// Derived stubs (unverified) leave the report untouched.
		if a.WasteReportID != nil && a.Verified {
			now := time.Now().UTC()
			if err := tx.Model(&models.WasteReport{}).Where("id = ?", *a.WasteReportID).
				Updates(map[string]interface{}{
					"status":       models.StatusCompleted,
					"completed_at": now,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *gormStore) ToggleLike(ctx context.Context, activityID, userID string) (bool, int, error) {
	var liked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var activity models.CleanupActivity
		if err := tx.First(&activity, "id = ?", activityID).Error; err != nil {
			return translate(err)
		}

		var existing models.ActivityLike
		err := tx.Where("user_id = ? AND activity_id = ?", userID, activityID).First(&existing).Error
		switch {
		case err == nil:
			// Unlike: drop the record, decrement with a floor of zero
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.CleanupActivity{}).
				Where("id = ? AND likes > 0", activityID).
				UpdateColumn("likes", gorm.Expr("likes - 1")).Error; err != nil {
				return err
			}
			liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.ActivityLike{UserID: userID, ActivityID: activityID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.CleanupActivity{}).
				Where("id = ?", activityID).
				UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	activity, err := s.ActivityByID(ctx, activityID)
	if err != nil {
		return liked, 0, err
	}
	return liked, activity.Likes, nil
}

func (s *gormStore) StatsAggregate(ctx context.Context) (*StatsAggregate, error) {
	var agg StatsAggregate

	row := struct {
		Total    int64
		Verified int64
		Points   *int64
	}{}
	err := s.db.WithContext(ctx).Model(&models.CleanupActivity{}).
		Select("COUNT(*) AS total, COUNT(CASE WHEN verified THEN 1 END) AS verified, SUM(points_earned) AS points").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	agg.Total = row.Total
	agg.Verified = row.Verified
	if row.Points != nil {
		agg.PointsEarned = *row.Points
	}

	err = s.db.WithContext(ctx).Model(&models.CleanupActivity{}).
		Where("verification_image IS NOT NULL AND verification_image <> ''").
		Count(&agg.PhotosShared).Error
	if err != nil {
		return nil, err
	}

	return &agg, nil
}

func (s *gormStore) PruneActivities(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&models.CleanupActivity{}).
			Where("cleaned_at < ?", cutoff).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("activity_id IN ?", ids).Delete(&models.ActivityLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("activity_id IN ?", ids).Delete(&models.ActivityComment{}).Error; err != nil {
			return err
		}

		res := tx.Where("id IN ?", ids).Delete(&models.CleanupActivity{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	return removed, err
}

// Comments

func (s *gormStore) Comments(ctx context.Context, activityID string) ([]models.ActivityComment, error) {
	var comments []models.ActivityComment
	err := s.db.WithContext(ctx).Model(&models.ActivityComment{}).
		Select("activity_comments.*, users.avatar_url AS user_avatar").
		Joins("LEFT JOIN users ON users.id = activity_comments.user_id").
		Where("activity_comments.activity_id = ?", activityID).
		Order("activity_comments.created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (s *gormStore) CommentByID(ctx context.Context, id string) (*models.ActivityComment, error) {
	var c models.ActivityComment
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *gormStore) CreateComment(ctx context.Context, c *models.ActivityComment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var activity models.CleanupActivity
		if err := tx.First(&activity, "id = ?", c.ActivityID).Error; err != nil {
			return translate(err)
		}
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Model(&models.CleanupActivity{}).
			Where("id = ?", c.ActivityID).
			UpdateColumn("comments", gorm.Expr("comments + 1")).Error
	})
}

func (s *gormStore) DeleteComment(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.ActivityComment
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.CleanupActivity{}).
			Where("id = ? AND comments > 0", comment.ActivityID).
			UpdateColumn("comments", gorm.Expr("comments - 1")).Error
	})
}
