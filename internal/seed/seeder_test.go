package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecotrack/backend/internal/seed"
	"github.com/ecotrack/backend/internal/store"
	"github.com/ecotrack/backend/internal/store/storetest"
)

func TestRunProducesConsistentData(t *testing.T) {
	ctx := context.Background()
	st := storetest.New(t)

	counts := seed.Counts{
		Users:              3,
		ReportsPerUser:     1,
		CleanupsPerUser:    2,
		CommentsPerCleanup: 1,
	}
	require.NoError(t, seed.New(st, 42).Run(ctx, counts))

	reports, err := st.Reports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	activities, total, err := st.Activities(ctx, store.ActivityQuery{Limit: 100})
	require.NoError(t, err)
	require.EqualValues(t, 6, total)

	for _, a := range activities {
		require.True(t, a.Verified)
		require.Positive(t, a.PointsEarned)
		require.Equal(t, 1, a.Comments)
		require.Equal(t, 1, a.Likes)
	}

	agg, err := st.StatsAggregate(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 6, agg.Total)
	require.EqualValues(t, 6, agg.Verified)
}
