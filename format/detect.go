// Package format detects which document provider can read a source.
package format

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a supported source format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JSON indicates a pre-extracted document in JSON.
	JSON
	// YAML indicates a pre-extracted document in YAML.
	YAML
	// HTML indicates an HTML export of the document.
	HTML
	// PNG indicates a single scanned page image.
	PNG
	// TIFF indicates a single scanned page image.
	TIFF
	// ImageDir indicates a directory of scanned page images.
	ImageDir
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case YAML:
		return "YAML"
	case HTML:
		return "HTML"
	case PNG:
		return "PNG"
	case TIFF:
		return "TIFF"
	case ImageDir:
		return "ImageDir"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case YAML:
		return ".yaml"
	case HTML:
		return ".html"
	case PNG:
		return ".png"
	case TIFF:
		return ".tiff"
	default:
		return ""
	}
}

// IsImage reports whether the format is read through OCR.
func (f Format) IsImage() bool {
	return f == PNG || f == TIFF || f == ImageDir
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".png":
		return PNG
	case ".tif", ".tiff":
		return TIFF
	default:
		return Unknown
	}
}

// DetectPath detects the format of a file or directory on disk. Directories
// are ImageDir; files are detected by extension first and by content when
// the extension is not recognized.
func DetectPath(path string) (Format, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Unknown, err
	}
	if info.IsDir() {
		return ImageDir, nil
	}
	if f := Detect(path); f != Unknown {
		return f, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer file.Close()

	magic := make([]byte, 512)
	n, err := io.ReadFull(file, magic)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

var (
	pngMagic     = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	tiffMagicLE  = []byte{'I', 'I', 0x2a, 0x00}
	tiffMagicBE  = []byte{'M', 'M', 0x00, 0x2a}
	utf8BOM      = []byte{0xef, 0xbb, 0xbf}
	yamlDocStart = []byte("---")
)

// DetectFromMagic checks leading bytes to determine format.
// Returns Unknown if the format cannot be determined from the data alone.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, pngMagic) {
		return PNG
	}
	if bytes.HasPrefix(data, tiffMagicLE) || bytes.HasPrefix(data, tiffMagicBE) {
		return TIFF
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return Unknown
	}

	if detectHTMLMagic(data) {
		return HTML
	}
	if data[0] == '{' || data[0] == '[' {
		return JSON
	}
	if bytes.HasPrefix(data, yamlDocStart) {
		return YAML
	}
	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	// Check for common HTML signatures (case-insensitive for DOCTYPE)
	upper := strings.ToUpper(string(data))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper[:min(500, len(upper))], "<HTML") {
		return true
	}

	return false
}
