// Package parse turns a raw Indonesian utterance into a structured
// transaction candidate: type, amount, category, description, date. It is a
// pure function of the input text plus small keyword tables; the only failure
// mode is ErrNoAmount.
package parse

import (
	"time"

	"go.uber.org/zap"

	"aureus/models"
	"aureus/pkg/logger"
)

// Candidate is the parser's output, pending user confirmation before it
// becomes a persisted Transaction.
type Candidate struct {
	Kind        models.TransactionKind `json:"type"`
	Amount      int64                  `json:"amount"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Date        time.Time              `json:"date"`
}

// Parse runs the full pipeline against ref as "today": preprocessing, type
// inference, amount extraction, description cleanup, category inference, and
// relative-date resolution, in that order.
func Parse(text string, ref time.Time) (Candidate, error) {
	pre := PreprocessNumbers(text)

	kind := InferKind(pre)

	amount, raw, err := ExtractAmount(pre)
	if err != nil {
		logger.Debug("parse: no amount", zap.String("text", snippet(text, 80)))
		return Candidate{}, err
	}

	c := Candidate{
		Kind:        kind,
		Amount:      amount,
		Description: CleanDescription(pre, raw),
		Category:    InferCategory(pre, kind),
		Date:        ResolveDate(pre, ref),
	}
	logger.Debug("parse: candidate",
		zap.String("kind", string(c.Kind)),
		zap.Int64("amount", c.Amount),
		zap.String("category", c.Category),
		zap.String("matched", raw))
	return c, nil
}

// snippet shortens text for diagnostics.
func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
