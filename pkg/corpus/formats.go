package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for files whose format cannot be detected.
var ErrUnknownFormat = errors.New("unknown corpus format")

// FileFormat identifies how a corpus file is read.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // raw text, tokenized
	FormatFreq               // word and count per line
)

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// FormatInfo contains metadata about a corpus file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain text",
		Extensions:  []string{".txt", ".text"},
	},
	FormatFreq: {
		Format:      FormatFreq,
		Description: "Word frequency list",
		Extensions:  []string{".tsv", ".freq"},
	},
}

// DetectFormat picks a format from the file extension.
func DetectFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if ext == e {
				return format, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %s (supported: %s)", ErrUnknownFormat, filename, strings.Join(SupportedExtensions(), ", "))
}

// SupportedExtensions lists the file extensions DetectFormat recognises.
func SupportedExtensions() []string {
	var exts []string
	for _, f := range []FileFormat{FormatText, FormatFreq} {
		if info, ok := GetFormatInfo(f); ok {
			exts = append(exts, info.Extensions...)
		}
	}
	return exts
}

// ValidateFile checks that filename exists, is a regular file and is not
// larger than maxSize bytes. A maxSize <= 0 disables the size check.
func ValidateFile(filename string, maxSize int64) error {
	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", filename)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return fmt.Errorf("file %s is too large (%d bytes, limit %d)", filename, info.Size(), maxSize)
	}
	return nil
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
