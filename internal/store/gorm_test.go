package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/store"
	"github.com/ecotrack/backend/internal/store/storetest"
)

type GormStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store store.Store
}

func TestGormStoreSuite(t *testing.T) {
	suite.Run(t, new(GormStoreSuite))
}

func (s *GormStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = storetest.New(s.T())
}

func (s *GormStoreSuite) createUser(name, email string) *models.User {
	u := &models.User{Name: name, Email: email, PasswordHash: "x"}
	s.Require().NoError(s.store.CreateUser(s.ctx, u))
	return u
}

func (s *GormStoreSuite) createActivity(u *models.User, verified bool, points int, cleanedAt time.Time) *models.CleanupActivity {
	a := &models.CleanupActivity{
		UserID:            u.ID,
		UserName:          u.Name,
		WasteType:         "plastic bottles",
		Location:          models.Location{Latitude: 40.78, Longitude: -73.97, Address: "Central Park"},
		VerificationImage: "https://img.example.com/after.jpg",
		Verified:          verified,
		PointsEarned:      points,
		CleanedAt:         cleanedAt,
	}
	s.Require().NoError(s.store.CreateActivity(s.ctx, a))
	return a
}

func (s *GormStoreSuite) createReport(u *models.User, images ...string) *models.WasteReport {
	r := &models.WasteReport{
		UserID:      u.ID,
		UserName:    u.Name,
		Location:    models.Location{Latitude: 40.78, Longitude: -73.97, Address: "Central Park"},
		WasteType:   "plastic bottles",
		Severity:    models.SeverityMedium,
		Description: "Bottles near the pond",
		Images:      images,
		ContactName: u.Name,
	}
	s.Require().NoError(s.store.CreateReport(s.ctx, r, 50))
	return r
}

func (s *GormStoreSuite) TestCreateReportAwardsPoints() {
	user := s.createUser("Alex", "alex@example.com")
	report := s.createReport(user)

	s.NotEmpty(report.ID)
	s.Equal(models.StatusPending, report.Status)

	fresh, err := s.store.UserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(50, fresh.Points)
}

func (s *GormStoreSuite) TestUpdateReportStatus() {
	user := s.createUser("Alex", "alex@example.com")
	report := s.createReport(user)

	updated, err := s.store.UpdateReportStatus(s.ctx, report.ID, models.StatusInProgress)
	s.Require().NoError(err)
	s.Equal(models.StatusInProgress, updated.Status)
	s.Nil(updated.CompletedAt)

	updated, err = s.store.UpdateReportStatus(s.ctx, report.ID, models.StatusCompleted)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, updated.Status)
	s.NotNil(updated.CompletedAt)

	_, err = s.store.UpdateReportStatus(s.ctx, "missing", models.StatusCompleted)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *GormStoreSuite) TestVerifiedCleanupCompletesReportAndCreditsPoints() {
	user := s.createUser("Alex", "alex@example.com")
	report := s.createReport(user, "https://img.example.com/before.jpg")

	activity := &models.CleanupActivity{
		UserID:            user.ID,
		UserName:          user.Name,
		WasteReportID:     &report.ID,
		WasteType:         "plastic bottles",
		VerificationImage: "https://img.example.com/after.jpg",
		Verified:          true,
		PointsEarned:      50,
	}
	s.Require().NoError(s.store.CreateActivity(s.ctx, activity))

	fresh, err := s.store.UserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(100, fresh.Points) // 50 for the report, 50 for the cleanup

	updatedReport, err := s.store.ReportByID(s.ctx, report.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, updatedReport.Status)
	s.NotNil(updatedReport.CompletedAt)
}

func (s *GormStoreSuite) TestUnverifiedStubLeavesReportUntouched() {
	user := s.createUser("Alex", "alex@example.com")
	report := s.createReport(user, "https://img.example.com/before.jpg")

	stub := &models.CleanupActivity{
		UserID:            user.ID,
		UserName:          user.Name,
		WasteReportID:     &report.ID,
		WasteType:         "plastic bottles",
		VerificationImage: "https://img.example.com/before.jpg",
		Verified:          false,
	}
	s.Require().NoError(s.store.CreateActivity(s.ctx, stub))

	fresh, err := s.store.ReportByID(s.ctx, report.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, fresh.Status)
	s.Nil(fresh.CompletedAt)

	freshUser, err := s.store.UserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(50, freshUser.Points) // only the report award
}

func (s *GormStoreSuite) TestToggleLike() {
	author := s.createUser("Alex", "alex@example.com")
	liker := s.createUser("Sam", "sam@example.com")
	activity := s.createActivity(author, true, 50, time.Now().UTC())

	liked, likes, err := s.store.ToggleLike(s.ctx, activity.ID, liker.ID)
	s.Require().NoError(err)
	s.True(liked)
	s.Equal(1, likes)

	liked, likes, err = s.store.ToggleLike(s.ctx, activity.ID, liker.ID)
	s.Require().NoError(err)
	s.False(liked)
	s.Equal(0, likes)

	// Toggling back on works after an unlike
	liked, likes, err = s.store.ToggleLike(s.ctx, activity.ID, liker.ID)
	s.Require().NoError(err)
	s.True(liked)
	s.Equal(1, likes)

	_, _, err = s.store.ToggleLike(s.ctx, "missing", liker.ID)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *GormStoreSuite) TestToggleLikeIsPerUser() {
	author := s.createUser("Alex", "alex@example.com")
	first := s.createUser("Sam", "sam@example.com")
	second := s.createUser("Riley", "riley@example.com")
	activity := s.createActivity(author, true, 50, time.Now().UTC())

	_, likes, err := s.store.ToggleLike(s.ctx, activity.ID, first.ID)
	s.Require().NoError(err)
	s.Equal(1, likes)

	_, likes, err = s.store.ToggleLike(s.ctx, activity.ID, second.ID)
	s.Require().NoError(err)
	s.Equal(2, likes)

	// First user's unlike leaves the second user's like in place
	liked, likes, err := s.store.ToggleLike(s.ctx, activity.ID, first.ID)
	s.Require().NoError(err)
	s.False(liked)
	s.Equal(1, likes)
}

func (s *GormStoreSuite) TestCommentsLifecycle() {
	author := s.createUser("Alex", "alex@example.com")
	commenter := s.createUser("Sam", "sam@example.com")
	activity := s.createActivity(author, true, 50, time.Now().UTC())

	first := &models.ActivityComment{
		ActivityID:  activity.ID,
		UserID:      commenter.ID,
		UserName:    commenter.Name,
		CommentText: "Great work!",
	}
	s.Require().NoError(s.store.CreateComment(s.ctx, first))

	second := &models.ActivityComment{
		ActivityID:  activity.ID,
		UserID:      author.ID,
		UserName:    author.Name,
		CommentText: "Thanks!",
	}
	s.Require().NoError(s.store.CreateComment(s.ctx, second))

	fresh, err := s.store.ActivityByID(s.ctx, activity.ID)
	s.Require().NoError(err)
	s.Equal(2, fresh.Comments)

	comments, err := s.store.Comments(s.ctx, activity.ID)
	s.Require().NoError(err)
	s.Require().Len(comments, 2)
	s.Equal("Great work!", comments[0].CommentText) // oldest first
	s.Equal("Thanks!", comments[1].CommentText)

	s.Require().NoError(s.store.DeleteComment(s.ctx, first.ID))

	fresh, err = s.store.ActivityByID(s.ctx, activity.ID)
	s.Require().NoError(err)
	s.Equal(1, fresh.Comments)

	s.ErrorIs(s.store.DeleteComment(s.ctx, first.ID), store.ErrNotFound)

	orphan := &models.ActivityComment{
		ActivityID:  "missing",
		UserID:      commenter.ID,
		UserName:    commenter.Name,
		CommentText: "hello?",
	}
	s.ErrorIs(s.store.CreateComment(s.ctx, orphan), store.ErrNotFound)
}

func (s *GormStoreSuite) TestActivitiesFilterAndPagination() {
	user := s.createUser("Alex", "alex@example.com")
	now := time.Now().UTC()

	old := s.createActivity(user, true, 50, now.Add(-48*time.Hour))
	unverified := s.createActivity(user, false, 0, now.Add(-2*time.Hour))
	newest := s.createActivity(user, true, 30, now.Add(-time.Hour))

	all, total, err := s.store.Activities(s.ctx, store.ActivityQuery{Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(all, 3)
	s.Equal(newest.ID, all[0].ID) // newest first
	s.Equal(old.ID, all[2].ID)

	verified, total, err := s.store.Activities(s.ctx, store.ActivityQuery{Limit: 10, Verified: true})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Require().Len(verified, 2)
	for _, a := range verified {
		s.True(a.Verified)
	}

	since := now.Add(-24 * time.Hour)
	recent, total, err := s.store.Activities(s.ctx, store.ActivityQuery{Limit: 10, Since: &since})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Require().Len(recent, 2)
	s.Equal(newest.ID, recent[0].ID)
	s.Equal(unverified.ID, recent[1].ID)

	page2, total, err := s.store.Activities(s.ctx, store.ActivityQuery{Offset: 2, Limit: 2})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(page2, 1)
	s.Equal(old.ID, page2[0].ID)
}

func (s *GormStoreSuite) TestActivitiesJoinAuthorAvatar() {
	user := s.createUser("Alex", "alex@example.com")
	avatar := "https://img.example.com/alex.png"
	user.AvatarURL = &avatar
	s.Require().NoError(s.store.UpdateUser(s.ctx, user))

	s.createActivity(user, true, 50, time.Now().UTC())

	activities, _, err := s.store.Activities(s.ctx, store.ActivityQuery{Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(activities, 1)
	s.Require().NotNil(activities[0].UserAvatar)
	s.Equal(avatar, *activities[0].UserAvatar)
}

func (s *GormStoreSuite) TestStatsAggregate() {
	user := s.createUser("Alex", "alex@example.com")
	now := time.Now().UTC()

	s.createActivity(user, true, 50, now)
	s.createActivity(user, true, 30, now)
	s.createActivity(user, false, 0, now)

	agg, err := s.store.StatsAggregate(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), agg.Total)
	s.Equal(int64(2), agg.Verified)
	s.Equal(int64(3), agg.PhotosShared)
	s.Equal(int64(80), agg.PointsEarned)
}

func (s *GormStoreSuite) TestStatsAggregateEmpty() {
	agg, err := s.store.StatsAggregate(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), agg.Total)
	s.Equal(int64(0), agg.PointsEarned)
}

func (s *GormStoreSuite) TestPruneActivitiesExclusiveCutoff() {
	user := s.createUser("Alex", "alex@example.com")
	cutoff := time.Now().UTC().Add(-24 * time.Hour)

	expired := s.createActivity(user, true, 50, cutoff.Add(-time.Second))
	atCutoff := s.createActivity(user, true, 50, cutoff)
	fresh := s.createActivity(user, true, 50, cutoff.Add(time.Second))

	// Dependents of the expired activity must go with it
	_, _, err := s.store.ToggleLike(s.ctx, expired.ID, user.ID)
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateComment(s.ctx, &models.ActivityComment{
		ActivityID:  expired.ID,
		UserID:      user.ID,
		UserName:    user.Name,
		CommentText: "gone soon",
	}))

	removed, err := s.store.PruneActivities(s.ctx, cutoff)
	s.Require().NoError(err)
	s.Equal(int64(1), removed)

	_, err = s.store.ActivityByID(s.ctx, expired.ID)
	s.ErrorIs(err, store.ErrNotFound)

	_, err = s.store.ActivityByID(s.ctx, atCutoff.ID)
	s.NoError(err)
	_, err = s.store.ActivityByID(s.ctx, fresh.ID)
	s.NoError(err)

	comments, err := s.store.Comments(s.ctx, expired.ID)
	s.Require().NoError(err)
	s.Empty(comments)

	removed, err = s.store.PruneActivities(s.ctx, cutoff)
	s.Require().NoError(err)
	s.Equal(int64(0), removed)
}

func (s *GormStoreSuite) TestEmailTakenByOther() {
	alex := s.createUser("Alex", "alex@example.com")
	sam := s.createUser("Sam", "sam@example.com")

	taken, err := s.store.EmailTakenByOther(s.ctx, "SAM@example.com", alex.ID)
	s.Require().NoError(err)
	s.True(taken)

	taken, err = s.store.EmailTakenByOther(s.ctx, "sam@example.com", sam.ID)
	s.Require().NoError(err)
	s.False(taken)

	taken, err = s.store.EmailTakenByOther(s.ctx, "new@example.com", alex.ID)
	s.Require().NoError(err)
	s.False(taken)
}

func (s *GormStoreSuite) TestUserByEmailCaseInsensitive() {
	s.createUser("Alex", "alex@example.com")

	u, err := s.store.UserByEmail(s.ctx, "Alex@Example.COM")
	s.Require().NoError(err)
	s.Equal("Alex", u.Name)

	_, err = s.store.UserByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, store.ErrNotFound)
}
