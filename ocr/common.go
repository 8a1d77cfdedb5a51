package ocr

import (
	"errors"
	"strings"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes, numbered as in Tesseract.
const (
	PSM_AUTO          PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK  PageSegMode = 6  // Single uniform block of text
	PSM_SPARSE_TEXT   PageSegMode = 11 // Find as much text as possible
)

// Options configures a new client.
type Options struct {
	// Language is a "+" separated list of Tesseract languages ("eng+fra").
	Language string
	// PageSegMode selects the layout analysis; 0 keeps the engine default.
	PageSegMode PageSegMode
}

// DefaultOptions reads English text with automatic page segmentation.
func DefaultOptions() Options {
	return Options{Language: "eng", PageSegMode: PSM_AUTO}
}

// SplitLines splits recognized text into right-trimmed lines, dropping
// blank ones.
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, strings.TrimRight(l, " \t"))
	}
	return lines
}
