package xp

import (
	"testing"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/testutil"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		total int
		step  int
		want  int
	}{
		{total: 0, step: 100, want: 1},
		{total: 99, step: 100, want: 1},
		{total: 100, step: 100, want: 2},
		{total: 399, step: 100, want: 2},
		{total: 400, step: 100, want: 3},
		{total: 900, step: 100, want: 4},
		{total: 100, step: 0, want: 2},
		{total: 50, step: 50, want: 2},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Level(tt.total, tt.step), "total=%d step=%d", tt.total, tt.step)
	}
}

func TestLedger_Grant(t *testing.T) {
	ctx := testutil.MockContext()
	ledger := NewLedger(repository.NewXPLedgerRepository())

	grant, err := ledger.Grant(ctx, testutil.User1, 60, "Attended an event", entity.XPCategoryAction)
	require.NoError(t, err)
	require.Equal(t, 60, grant.TotalXP)
	require.Equal(t, 1, grant.Level)
	require.False(t, grant.LevelUp)

	grant, err = ledger.Grant(ctx, testutil.User1, 50, "Earned badge First Event", entity.XPCategoryBadge)
	require.NoError(t, err)
	require.Equal(t, 110, grant.TotalXP)
	require.Equal(t, 2, grant.Level)
	require.True(t, grant.LevelUp)

	grant, err = ledger.Grant(ctx, testutil.User1, 0, "nothing", entity.XPCategoryAction)
	require.NoError(t, err)
	require.Equal(t, 0, grant.Amount)

	_, err = ledger.Grant(ctx, testutil.User1, -5, "negative", entity.XPCategoryAction)
	require.Equal(t, errorx.BadRequest, errorx.CodeOf(err))

	result, err := ledger.Get(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, 110, result.TotalXP)
	require.Equal(t, 2, result.Level)
	require.Len(t, result.XPHistory, 2)
	require.Equal(t, "action", result.XPHistory[0].Category)
	require.Equal(t, "badge", result.XPHistory[1].Category)

	empty, err := ledger.Get(ctx, testutil.User2)
	require.NoError(t, err)
	require.Equal(t, 0, empty.TotalXP)
	require.Equal(t, 1, empty.Level)
	require.Empty(t, empty.XPHistory)
}

func TestLedger_Grant_Rollback(t *testing.T) {
	ctx := testutil.MockContext()
	ledger := NewLedger(repository.NewXPLedgerRepository())

	txCtx := xcontext.WithDBTransaction(ctx)
	_, err := ledger.Grant(txCtx, testutil.User1, 10, "inside", entity.XPCategoryAction)
	require.NoError(t, err)
	xcontext.WithRollbackDBTransaction(txCtx)

	total, err := ledger.TotalXP(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, 0, total)
}

func TestLedger_Grant_Concurrent(t *testing.T) {
	ctx := testutil.MockContext()
	ledgerRepo := repository.NewXPLedgerRepository()
	ledger := NewLedger(ledgerRepo)

	eg, _ := errgroup.WithContext(ctx)
	for i := 1; i <= 20; i++ {
		amount := i
		eg.Go(func() error {
			_, err := ledger.Grant(ctx, testutil.User1, amount, "concurrent", entity.XPCategoryAction)
			return err
		})
	}
	require.NoError(t, eg.Wait())

	total, err := ledger.TotalXP(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, 210, total)

	sum, err := ledgerRepo.SumTransactions(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, total, sum)
}
