// Package ocr captures raw text from receipt images. It is the image sibling
// of the speech-to-text provider: both produce one best-guess transcript that
// the parser consumes. Amount selection lives in pkg/parse, not here.
package ocr

import (
	"fmt"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

const receiptWhitelist = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyzRpIDR.,:()/- "
const digitWhitelist = "0123456789Rp., "

// ExtractText OCRs a receipt image after light preprocessing and returns the
// merged, whitespace-normalized text of the passes. Two passes run: a full
// alphanumeric pass for description/category words and a digit-biased pass
// that recovers amounts the first pass mangles.
func ExtractText(path string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 15)
	gray = imaging.Sharpen(gray, 0.7)
	if gray.Bounds().Dy() < 900 {
		gray = imaging.Resize(gray, 0, 1300, imaging.Lanczos)
	}
	bin := binarize(gray, 210)

	tmp := path
	if f, err := os.CreateTemp("", "receipt-*.png"); err == nil {
		tmp = f.Name()
		_ = f.Close()
		if err := imaging.Save(bin, tmp); err != nil {
			tmp = path
		} else {
			defer os.Remove(tmp)
		}
	}

	var variants []string
	for _, wl := range []string{receiptWhitelist, digitWhitelist} {
		client := gosseract.NewClient()
		_ = client.SetLanguage("eng")
		_ = client.SetWhitelist(wl)
		if err := client.SetImage(tmp); err != nil {
			client.Close()
			continue
		}
		if t, err := client.Text(); err == nil {
			variants = append(variants, normalizeText(t))
		}
		client.Close()
	}
	if len(variants) == 0 {
		return "", fmt.Errorf("ocr produced no text for %s", path)
	}
	return strings.Join(variants, " "), nil
}

// LooksLikeNonReceipt reports whether OCR text resembles a logo or graphic
// rather than a receipt: a small amount of text with no digits at all.
// Callers use it to show a clearer message than "amount not found".
func LooksLikeNonReceipt(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len(trimmed) >= 40 {
		return false
	}
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}

// normalizeText collapses newlines, tabs, and runs of whitespace.
func normalizeText(t string) string {
	t = strings.ReplaceAll(t, "\n", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	return strings.Join(strings.Fields(t), " ")
}
