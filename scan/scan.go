// Package scan reads scanned band plan pages through OCR.
//
// A source is either a single page image or a directory of them. In a
// directory, when every image name carries a number (page-112.png,
// 0113.tiff) that number is the physical page number; otherwise images are
// numbered in name order starting at 1. Pages without an image are empty.
//
// Scanned pages yield text lines only; no tables are detected. TIFF images
// are converted to PNG before recognition.
package scan

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"golang.org/x/image/tiff"

	"github.com/ciphernaut/acma-bandplan-db/format"
	"github.com/ciphernaut/acma-bandplan-db/lexer"
	"github.com/ciphernaut/acma-bandplan-db/model"
	"github.com/ciphernaut/acma-bandplan-db/ocr"
	"github.com/ciphernaut/acma-bandplan-db/source"
)

// Recognizer turns a PNG or TIFF image into text lines.
type Recognizer interface {
	RecognizeLines(imageData []byte) ([]string, error)
	Close() error
}

// Reader serves OCR'd pages. Pages are recognized on first access.
type Reader struct {
	images     map[int]string
	count      int
	recognizer Recognizer
	ownsRec    bool
	pages      map[int]*model.Page
}

var _ source.Provider = (*Reader)(nil)

var pageDigits = regexp.MustCompile(`(\d+)\D*$`)

// Open opens a page image or a directory of page images using the
// Tesseract client from package ocr.
func Open(path string) (*Reader, error) {
	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	r, err := OpenWith(path, client)
	if err != nil {
		client.Close()
		return nil, err
	}
	r.ownsRec = true
	return r, nil
}

// OpenWith opens path using the given recognizer. The caller keeps
// ownership of rec.
func OpenWith(path string, rec Recognizer) (*Reader, error) {
	f, err := format.DetectPath(path)
	if err != nil {
		return nil, fmt.Errorf("opening scan: %w", err)
	}

	var files []string
	switch f {
	case format.ImageDir:
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("reading scan directory: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if ff := format.Detect(e.Name()); ff == format.PNG || ff == format.TIFF {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
	case format.PNG, format.TIFF:
		files = []string{path}
	default:
		return nil, fmt.Errorf("opening scan %s: unsupported format %s", path, f)
	}
	sort.Strings(files)

	images := numberImages(files)
	count := 0
	for n := range images {
		if n > count {
			count = n
		}
	}

	return &Reader{
		images:     images,
		count:      count,
		recognizer: rec,
		pages:      make(map[int]*model.Page),
	}, nil
}

// numberImages assigns page numbers to sorted image paths.
func numberImages(files []string) map[int]string {
	numbered := make(map[int]string, len(files))
	for _, f := range files {
		base := filepath.Base(f)
		m := pageDigits.FindStringSubmatch(base[:len(base)-len(filepath.Ext(base))])
		if m == nil {
			numbered = nil
			break
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || numbered[n] != "" {
			numbered = nil
			break
		}
		numbered[n] = f
	}
	if numbered != nil {
		return numbered
	}

	ordinal := make(map[int]string, len(files))
	for i, f := range files {
		ordinal[i+1] = f
	}
	return ordinal
}

// PageCount returns the highest page number with an image
func (r *Reader) PageCount() int { return r.count }

// Page recognizes the image of the given page.
func (r *Reader) Page(number int) (*model.Page, error) {
	if err := source.CheckPage(r, number); err != nil {
		return nil, err
	}
	if p, ok := r.pages[number]; ok {
		return p, nil
	}

	page := model.NewPage(number)
	if path, ok := r.images[number]; ok {
		data, err := loadImage(path)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", number, err)
		}
		lines, err := r.recognizer.RecognizeLines(data)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", number, err)
		}
		for _, l := range lines {
			page.AddLine(lexer.NormalizeLine(l))
		}
	}
	r.pages[number] = page
	return page, nil
}

// Close releases the recognizer if the reader created it.
func (r *Reader) Close() error {
	if r.ownsRec && r.recognizer != nil {
		err := r.recognizer.Close()
		r.recognizer = nil
		return err
	}
	return nil
}

// loadImage reads an image file, converting TIFF to PNG.
func loadImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if format.DetectFromMagic(data) != format.TIFF {
		return data, nil
	}

	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding TIFF: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}
