// Package seed fills a database with plausible demo content for local
// development.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecotrack/backend/internal/feed"
	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/reports"
	"github.com/ecotrack/backend/internal/store"
)

// Password every seeded account logs in with
const Password = "password123"

var wasteTypes = []string{
	"plastic bottles", "cigarette butts", "food packaging", "paper waste",
	"glass bottles", "metal cans", "electronic waste", "hazardous waste",
	"organic waste", "mixed waste",
}

var severities = []string{
	models.SeverityLow, models.SeverityMedium, models.SeverityHigh, models.SeverityCritical,
}

// Seeder writes generated users, reports and cleanup activities
type Seeder struct {
	store store.Store
	faker *gofakeit.Faker
}

// New creates a seeder; pass a non-zero seed for reproducible output
func New(st store.Store, seed uint64) *Seeder {
	return &Seeder{store: st, faker: gofakeit.New(seed)}
}

// Counts sizes a seeding run
type Counts struct {
	Users              int
	ReportsPerUser     int
	CleanupsPerUser    int
	CommentsPerCleanup int
}

// DefaultCounts is a small but lively data set
var DefaultCounts = Counts{
	Users:              8,
	ReportsPerUser:     2,
	CleanupsPerUser:    3,
	CommentsPerCleanup: 2,
}

// Run generates and stores the data set
func (s *Seeder) Run(ctx context.Context, counts Counts) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, counts.Users)
	for i := 0; i < counts.Users; i++ {
		phone := s.faker.Phone()
		location := fmt.Sprintf("%s, %s", s.faker.City(), s.faker.StateAbr())
		avatar := fmt.Sprintf("https://i.pravatar.cc/150?u=%d", i)

		u := &models.User{
			Name:         s.faker.Name(),
			Email:        fmt.Sprintf("user%d@%s", i, s.faker.DomainName()),
			PasswordHash: string(hash),
			Phone:        &phone,
			Location:     &location,
			AvatarURL:    &avatar,
		}
		if err := s.store.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, u)
	}

	for _, u := range users {
		for i := 0; i < counts.ReportsPerUser; i++ {
			if err := s.seedReport(ctx, u); err != nil {
				return err
			}
		}
		for i := 0; i < counts.CleanupsPerUser; i++ {
			activity, err := s.seedCleanup(ctx, u)
			if err != nil {
				return err
			}
			if err := s.seedEngagement(ctx, activity, users, counts.CommentsPerCleanup); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Seeder) seedReport(ctx context.Context, u *models.User) error {
	report := &models.WasteReport{
		UserID:      u.ID,
		UserName:    u.Name,
		Location:    s.location(),
		WasteType:   s.faker.RandomString(wasteTypes),
		Severity:    s.faker.RandomString(severities),
		Description: s.faker.Sentence(12),
		Images:      models.StringArray{s.imageURL(), s.imageURL()},
		ContactName: u.Name,
	}
	if err := s.store.CreateReport(ctx, report, reports.ReportAward); err != nil {
		return fmt.Errorf("seed report: %w", err)
	}
	return nil
}

func (s *Seeder) seedCleanup(ctx context.Context, u *models.User) (*models.CleanupActivity, error) {
	wasteType := s.faker.RandomString(wasteTypes)
	before := s.imageURL()
	after := s.imageURL()

	activity := &models.CleanupActivity{
		UserID:            u.ID,
		UserName:          u.Name,
		WasteType:         wasteType,
		Location:          s.location(),
		Description:       s.faker.Sentence(10),
		BeforeImage:       &before,
		AfterImage:        &after,
		VerificationImage: after,
		Verified:          true,
		PointsEarned:      feed.CalculatePoints(wasteType),
		CleanedAt:         time.Now().UTC().Add(-time.Duration(s.faker.Number(0, 23)) * time.Hour),
	}
	if err := s.store.CreateActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("seed cleanup: %w", err)
	}
	return activity, nil
}

func (s *Seeder) seedEngagement(ctx context.Context, activity *models.CleanupActivity, users []*models.User, commentCount int) error {
	for i := 0; i < commentCount; i++ {
		commenter := users[s.faker.Number(0, len(users)-1)]
		comment := &models.ActivityComment{
			ActivityID:  activity.ID,
			UserID:      commenter.ID,
			UserName:    commenter.Name,
			CommentText: s.faker.Sentence(6),
		}
		if err := s.store.CreateComment(ctx, comment); err != nil {
			return fmt.Errorf("seed comment: %w", err)
		}
	}

	liker := users[s.faker.Number(0, len(users)-1)]
	if _, _, err := s.store.ToggleLike(ctx, activity.ID, liker.ID); err != nil {
		return fmt.Errorf("seed like: %w", err)
	}
	return nil
}

func (s *Seeder) location() models.Location {
	return models.Location{
		Latitude:  s.faker.Float64Range(40.5, 40.9),
		Longitude: s.faker.Float64Range(-74.1, -73.7),
		Address:   s.faker.Street(),
	}
}

func (s *Seeder) imageURL() string {
	return fmt.Sprintf("https://picsum.photos/seed/%d/800/600", s.faker.Number(1, 100000))
}
