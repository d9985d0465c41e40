package s0_data

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/pkg/logger"
)

// csvRow is one line of the joined feature export.
// Nullable numbers stay strings so that empty cells decode as null.
type csvRow struct {
	FundID         string `csv:"fund_id"`
	AsOfDate       string `csv:"as_of_date"`
	FundName       string `csv:"fund_name"`
	Category       string `csv:"category"`
	AUMCr          string `csv:"aum_cr"`
	ExpenseRatio   string `csv:"expense_ratio"`
	AnnReturn      string `csv:"ann_return"`
	AnnVol         string `csv:"ann_vol"`
	Sharpe         string `csv:"sharpe"`
	MaxDrawdown    string `csv:"max_drawdown"`
	PctPosMonths36 string `csv:"pct_pos_months_36"`
	Ret3M          string `csv:"ret_3m"`
	Ret6M          string `csv:"ret_6m"`
	RetConsistency string `csv:"ret_consistency"`
}

const csvDateLayout = "2006-01-02"

// CSVStore is a FeatureStore backed by a CSV export (offline CLI, fixtures)
type CSVStore struct {
	path   string
	canon  *Canonicalizer
	logger *logger.Logger
}

// NewCSVStore creates a CSV-backed feature store
func NewCSVStore(path string, canon *Canonicalizer, log *logger.Logger) *CSVStore {
	return &CSVStore{
		path:   path,
		canon:  canon,
		logger: log.WithStage(contracts.StageFeatures.String()),
	}
}

// LoadLatest reads the file and keeps rows of the latest as_of_date
func (s *CSVStore) LoadLatest(ctx context.Context) (*contracts.FeatureTable, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open feature csv: %w", err)
	}
	defer f.Close()

	table, err := ReadFeatureCSV(f, s.canon)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"path":             s.path,
		"as_of_date":       table.AsOfDate.Format(csvDateLayout),
		"rows":             len(table.Records),
		"missing_metadata": table.MissingMetadata,
	}).Info("feature snapshot loaded")

	return table, nil
}

// ListFunds returns metadata of the latest snapshot ordered by AUM
func (s *CSVStore) ListFunds(ctx context.Context, limit int) ([]contracts.FundMetadata, error) {
	table, err := s.LoadLatest(ctx)
	if err != nil {
		return nil, err
	}

	funds := make([]contracts.FundMetadata, 0, len(table.Records))
	for _, r := range table.Records {
		if r.HasMetadata() {
			funds = append(funds, *r.Metadata)
		}
	}

	sort.SliceStable(funds, func(i, j int) bool {
		return contracts.ValueOr(funds[i].AUMCr, -1) > contracts.ValueOr(funds[j].AUMCr, -1)
	})

	if limit > 0 && len(funds) > limit {
		funds = funds[:limit]
	}
	return funds, nil
}

// ReadFeatureCSV parses a joined export. A row with empty fund_name and
// category is treated as a failed metadata join.
func ReadFeatureCSV(r io.Reader, canon *Canonicalizer) (*contracts.FeatureTable, error) {
	var rows []*csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("decode feature csv: %w", err)
	}

	var latest time.Time
	parsed := make([]contracts.FundRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := row.record()
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i+2, row.FundID, err)
		}
		if rec.AsOfDate.After(latest) {
			latest = rec.AsOfDate
		}
		parsed = append(parsed, rec)
	}

	if len(parsed) == 0 {
		return nil, ErrEmptyFeatureStore
	}

	table := &contracts.FeatureTable{
		AsOfDate: latest,
		Records:  make([]contracts.FundRecord, 0, len(parsed)),
	}
	for _, rec := range parsed {
		if !rec.AsOfDate.Equal(latest) {
			continue
		}
		if !rec.HasMetadata() {
			table.MissingMetadata++
		}
		table.Records = append(table.Records, rec)
	}

	canon.Apply(table.Records)
	return table, nil
}

func (row *csvRow) record() (contracts.FundRecord, error) {
	var rec contracts.FundRecord

	if strings.TrimSpace(row.FundID) == "" {
		return rec, fmt.Errorf("fund_id is required")
	}
	asOf, err := time.Parse(csvDateLayout, strings.TrimSpace(row.AsOfDate))
	if err != nil {
		return rec, fmt.Errorf("as_of_date: %w", err)
	}

	rec.FundID = strings.TrimSpace(row.FundID)
	rec.AsOfDate = asOf

	fields := []struct {
		name string
		raw  string
		dst  **float64
	}{
		{"ann_return", row.AnnReturn, &rec.AnnReturn},
		{"ann_vol", row.AnnVol, &rec.AnnVol},
		{"sharpe", row.Sharpe, &rec.Sharpe},
		{"max_drawdown", row.MaxDrawdown, &rec.MaxDrawdown},
		{"pct_pos_months_36", row.PctPosMonths36, &rec.PctPosMonths36},
		{"ret_3m", row.Ret3M, &rec.Ret3M},
		{"ret_6m", row.Ret6M, &rec.Ret6M},
		{"ret_consistency", row.RetConsistency, &rec.RetConsistency},
	}
	for _, f := range fields {
		v, err := parseNullable(f.raw)
		if err != nil {
			return rec, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}

	if row.FundName == "" && row.Category == "" {
		return rec, nil
	}

	aum, err := parseNullable(row.AUMCr)
	if err != nil {
		return rec, fmt.Errorf("aum_cr: %w", err)
	}
	expense, err := parseNullable(row.ExpenseRatio)
	if err != nil {
		return rec, fmt.Errorf("expense_ratio: %w", err)
	}

	rec.Metadata = &contracts.FundMetadata{
		FundID:       rec.FundID,
		FundName:     row.FundName,
		Category:     row.Category,
		AUMCr:        aum,
		ExpenseRatio: expense,
	}
	return rec, nil
}

// parseNullable treats "", "NaN", "null" and "None" as missing
func parseNullable(raw string) (*float64, error) {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "nan", "null", "none":
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
