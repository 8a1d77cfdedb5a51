//go:build ocr

package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// blankPage renders a white page with a single black bar, roughly where a
// unit header would sit.
func blankPage(width, height int) []byte {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for x := 10; x < width/2; x++ {
		for y := 10; y < 20; y++ {
			img.Set(x, y, color.Black)
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func newClient(t *testing.T) *Client {
	t.Helper()
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRecognizeImage(t *testing.T) {
	client := newClient(t)

	// The bar is not text; only check that recognition runs.
	if _, err := client.RecognizeImage(blankPage(200, 100)); err != nil {
		t.Errorf("RecognizeImage failed: %v", err)
	}
}

func TestRecognizeLines(t *testing.T) {
	client := newClient(t)

	lines, err := client.RecognizeLines(blankPage(200, 100))
	if err != nil {
		t.Fatalf("RecognizeLines failed: %v", err)
	}
	for _, l := range lines {
		if l == "" {
			t.Error("RecognizeLines returned a blank line")
		}
	}
}

func TestClientSettings(t *testing.T) {
	client := newClient(t)

	if err := client.SetLanguage("eng"); err != nil {
		t.Errorf("SetLanguage failed: %v", err)
	}
	if err := client.SetPageSegMode(PSM_SINGLE_COLUMN); err != nil {
		t.Errorf("SetPageSegMode failed: %v", err)
	}
}

func TestNewWithOptions(t *testing.T) {
	client, err := NewWithOptions(Options{Language: "eng", PageSegMode: PSM_SINGLE_BLOCK})
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	if _, err := client.RecognizeImage(blankPage(200, 100)); err != nil {
		t.Errorf("RecognizeImage failed: %v", err)
	}
}

func TestCloseTwice(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	client.client = nil
	if err := client.Close(); err != nil {
		t.Errorf("Close on released client failed: %v", err)
	}
}
