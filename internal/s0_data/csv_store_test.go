package s0_data

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/internal/strategyconfig"
	"github.com/wonny/fundwise/pkg/logger"
)

const sampleCSV = `fund_id,as_of_date,fund_name,category,aum_cr,expense_ratio,ann_return,ann_vol,sharpe,max_drawdown,pct_pos_months_36,ret_3m,ret_6m,ret_consistency
F1,2026-09-30,Old Snapshot Fund,Large Cap Fund,5000,1.1,0.12,0.15,0.9,-0.2,0.6,0.02,0.05,0.4
F1,2026-10-16,Alpha Large Cap Fund,Large Cap Fund,5000,1.1,0.12,0.15,0.9,-0.2,0.6,0.02,0.05,0.4
F2,2026-10-16,Beta Liquid Fund,Liquid Fund,,0.2,0.06,0.01,,,NaN,0.01,0.03,
F3,2026-10-16,,,,,0.10,0.20,0.5,-0.3,0.55,0.01,0.02,0.1
`

func TestReadFeatureCSV(t *testing.T) {
	canon := NewCanonicalizer(strategyconfig.Default())

	table, err := ReadFeatureCSV(strings.NewReader(sampleCSV), canon)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), table.AsOfDate)
	require.Len(t, table.Records, 3, "older snapshot rows are dropped")
	assert.Equal(t, 1, table.MissingMetadata)

	f1 := table.Records[0]
	assert.Equal(t, "Alpha Large Cap Fund", f1.Name())
	assert.Equal(t, contracts.CategoryLargeCap, f1.Canonical)
	require.NotNil(t, f1.AUM())
	assert.Equal(t, 5000.0, *f1.AUM())

	f2 := table.Records[1]
	assert.Equal(t, contracts.CategoryLiquid, f2.Canonical)
	assert.Nil(t, f2.AUM(), "empty cell is null")
	assert.Nil(t, f2.Sharpe)
	assert.Nil(t, f2.PctPosMonths36, "NaN is null")
	assert.Nil(t, f2.RetConsistency)
	require.NotNil(t, f2.Ret6M)
	assert.Equal(t, 0.03, *f2.Ret6M)

	f3 := table.Records[2]
	assert.False(t, f3.HasMetadata())
	assert.Equal(t, contracts.CategoryUnknown, f3.Canonical)
}

func TestReadFeatureCSV_Errors(t *testing.T) {
	canon := NewCanonicalizer(strategyconfig.Default())
	header := "fund_id,as_of_date,fund_name,category,aum_cr,expense_ratio,ann_return,ann_vol,sharpe,max_drawdown,pct_pos_months_36,ret_3m,ret_6m,ret_consistency\n"

	_, err := ReadFeatureCSV(strings.NewReader(header), canon)
	assert.True(t, errors.Is(err, ErrEmptyFeatureStore))

	_, err = ReadFeatureCSV(strings.NewReader(header+"F1,16/10/2026,A,Liquid,,,,,,,,,,\n"), canon)
	assert.Error(t, err)

	_, err = ReadFeatureCSV(strings.NewReader(header+"F1,2026-10-16,A,Liquid,lots,,,,,,,,,\n"), canon)
	assert.ErrorContains(t, err, "aum_cr")
}

func TestCSVStore_LoadLatestAndListFunds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	store := NewCSVStore(path, NewCanonicalizer(strategyconfig.Default()), logger.Nop())
	ctx := context.Background()

	table, err := store.LoadLatest(ctx)
	require.NoError(t, err)
	assert.Len(t, table.Records, 3)

	funds, err := store.ListFunds(ctx, 10)
	require.NoError(t, err)
	require.Len(t, funds, 2)
	assert.Equal(t, "F1", funds[0].FundID, "largest AUM first, null AUM last")

	funds, err = store.ListFunds(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, funds, 1)
}

func TestCSVStore_MissingFile(t *testing.T) {
	store := NewCSVStore("no/such/file.csv", NewCanonicalizer(strategyconfig.Default()), logger.Nop())
	_, err := store.LoadLatest(context.Background())
	assert.Error(t, err)
}
