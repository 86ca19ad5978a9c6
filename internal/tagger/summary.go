package tagger

import (
	"fmt"

	"fjacquet/txtag/internal/logging"

	"github.com/shopspring/decimal"
)

// Summary counts what a run did. Total excludes the header row.
type Summary struct {
	Tagged  int
	Total   int
	Skipped int // rows written unchanged under the skip policy
}

// String renders the console summary, e.g. "12 / 40 tagged.".
func (s Summary) String() string {
	return fmt.Sprintf("%d / %d tagged.", s.Tagged, s.Total)
}

// Coverage is the tagged share of data rows as a percentage, two decimals.
func (s Summary) Coverage() decimal.Decimal {
	if s.Total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.Tagged)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(s.Total)), 2)
}

// LogSummary writes the counters as one structured entry.
func (s Summary) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}
	logger.Info("Tagging summary",
		logging.Field{Key: logging.FieldTagged, Value: s.Tagged},
		logging.Field{Key: logging.FieldTotal, Value: s.Total},
		logging.Field{Key: logging.FieldSkipped, Value: s.Skipped},
		logging.Field{Key: logging.FieldCoverage, Value: s.Coverage().StringFixed(2)},
	)
}
