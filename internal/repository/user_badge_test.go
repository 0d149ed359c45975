package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_userBadgeRepository_Create(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewUserBadgeRepository()

	inserted, err := repo.Create(ctx, &entity.UserBadge{
		ID:       uuid.NewString(),
		UserID:   testutil.User1,
		BadgeID:  "first_event",
		EarnedAt: time.Now(),
		IsNew:    true,
	})
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = repo.Create(ctx, &entity.UserBadge{
		ID:       uuid.NewString(),
		UserID:   testutil.User1,
		BadgeID:  "first_event",
		EarnedAt: time.Now(),
		IsNew:    true,
	})
	require.NoError(t, err)
	require.False(t, inserted)

	badges, err := repo.GetByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	require.True(t, badges[0].IsNew)

	require.NoError(t, repo.MarkSeen(ctx, testutil.User1))

	badge, err := repo.Get(ctx, testutil.User1, "first_event")
	require.NoError(t, err)
	require.False(t, badge.IsNew)
}
