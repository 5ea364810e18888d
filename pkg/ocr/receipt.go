package ocr

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"aureus/models"
	"aureus/pkg/logger"
	"aureus/pkg/parse"
)

// ErrNotReceipt marks images that OCR to a logo-like blob with no digits.
var ErrNotReceipt = errors.New("image does not look like a receipt")

// ParseReceipt OCRs an image and extracts an expense candidate from its text.
// Receipts carry nothing reliable beyond the amount, so the description is
// derived from the file name while category falls out of whatever words the
// OCR did recover.
func ParseReceipt(path string, ref time.Time) (parse.Candidate, error) {
	text, err := ExtractText(path)
	if err != nil {
		return parse.Candidate{}, err
	}
	if LooksLikeNonReceipt(text) {
		return parse.Candidate{}, ErrNotReceipt
	}

	pre := parse.PreprocessNumbers(text)
	amount, raw, err := parse.ExtractAmount(pre)
	if err != nil {
		logger.Debug("receipt: no amount", zap.String("path", path))
		return parse.Candidate{}, err
	}
	logger.Info("receipt: amount extracted",
		zap.String("path", filepath.Base(path)),
		zap.Int64("amount", amount),
		zap.String("matched", raw))

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return parse.Candidate{
		Kind:        models.TxExpense,
		Amount:      amount,
		Category:    parse.InferCategory(pre, models.TxExpense),
		Description: "Struk " + name,
		Date:        ref,
	}, nil
}
