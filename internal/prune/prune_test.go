package prune_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/prune"
	"github.com/ecotrack/backend/internal/store"
	"github.com/ecotrack/backend/internal/store/storetest"
)

func seedActivity(t *testing.T, st store.Store, userID string, cleanedAt time.Time) *models.CleanupActivity {
	t.Helper()
	a := &models.CleanupActivity{
		UserID:            userID,
		UserName:          "Alex",
		WasteType:         "plastic bottles",
		VerificationImage: "https://img.example.com/after.jpg",
		Verified:          true,
		CleanedAt:         cleanedAt,
	}
	require.NoError(t, st.CreateActivity(context.Background(), a))
	return a
}

func TestSweepRemovesOnlyExpiredActivities(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)

	user := &models.User{Name: "Alex", Email: "alex@example.com", PasswordHash: "x"}
	require.NoError(t, st.CreateUser(ctx, user))

	now := time.Now().UTC()
	expired := seedActivity(t, st, user.ID, now.Add(-prune.RetentionWindow-time.Minute))
	unverifiedExpired := &models.CleanupActivity{
		UserID:            user.ID,
		UserName:          user.Name,
		WasteType:         "mixed waste",
		VerificationImage: "https://img.example.com/b.jpg",
		CleanedAt:         now.Add(-prune.RetentionWindow - time.Minute),
	}
	require.NoError(t, st.CreateActivity(ctx, unverifiedExpired))
	fresh := seedActivity(t, st, user.ID, now.Add(-time.Hour))

	svc := prune.NewService(st, time.Hour)
	svc.Sweep(ctx)

	_, err := st.ActivityByID(ctx, expired.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.ActivityByID(ctx, unverifiedExpired.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Inside the retention window survives
	_, err = st.ActivityByID(ctx, fresh.ID)
	require.NoError(t, err)
}

func TestSweepCascadesLikesAndComments(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)

	user := &models.User{Name: "Alex", Email: "alex@example.com", PasswordHash: "x"}
	require.NoError(t, st.CreateUser(ctx, user))

	expired := seedActivity(t, st, user.ID, time.Now().UTC().Add(-25*time.Hour))
	_, _, err := st.ToggleLike(ctx, expired.ID, user.ID)
	require.NoError(t, err)
	require.NoError(t, st.CreateComment(ctx, &models.ActivityComment{
		ActivityID:  expired.ID,
		UserID:      user.ID,
		UserName:    user.Name,
		CommentText: "nice",
	}))

	prune.NewService(st, time.Hour).Sweep(ctx)

	comments, err := st.Comments(ctx, expired.ID)
	require.NoError(t, err)
	require.Empty(t, comments)
}

func TestStartRunsImmediatelyAndStops(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)

	user := &models.User{Name: "Alex", Email: "alex@example.com", PasswordHash: "x"}
	require.NoError(t, st.CreateUser(ctx, user))
	expired := seedActivity(t, st, user.ID, time.Now().UTC().Add(-48*time.Hour))

	svc := prune.NewService(st, time.Hour)
	svc.Start()
	defer svc.Stop()

	require.Eventually(t, func() bool {
		_, err := st.ActivityByID(ctx, expired.ID)
		return err != nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNonPositiveIntervalFallsBack(t *testing.T) {
	svc := prune.NewService(storetest.New(t), 0)
	// Start/Stop must not spin with a zero ticker interval
	svc.Start()
	svc.Stop()
}
