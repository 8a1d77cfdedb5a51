//go:build ocr

// Package ocr provides OCR (Optical Character Recognition) capabilities
// for reading scanned band plan pages.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client with DefaultOptions.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a client configured with opts. Zero fields keep
// the Tesseract defaults.
func NewWithOptions(opts Options) (*Client, error) {
	c := &Client{client: gosseract.NewClient()}
	if opts.Language != "" {
		if err := c.SetLanguage(opts.Language); err != nil {
			c.Close()
			return nil, fmt.Errorf("setting OCR language %q: %w", opts.Language, err)
		}
	}
	if opts.PageSegMode != 0 {
		if err := c.SetPageSegMode(opts.PageSegMode); err != nil {
			c.Close()
			return nil, fmt.Errorf("setting page segmentation mode %d: %w", opts.PageSegMode, err)
		}
	}
	return c, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// RecognizeLines performs OCR on image data and returns its non-blank
// text lines in reading order.
func (c *Client) RecognizeLines(imageData []byte) ([]string, error) {
	text, err := c.RecognizeImage(imageData)
	if err != nil {
		return nil, err
	}
	return SplitLines(text), nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode.
// This affects how Tesseract analyzes the page layout.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}
