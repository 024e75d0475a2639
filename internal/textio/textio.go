// Package textio reads export files into UTF-8 text, decompressing and
// detecting the encoding on the way.
package textio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrFileAccess wraps failures to open or read an input file.
	ErrFileAccess = errors.New("file access error")

	// ErrEmptyInput is returned for files without any content.
	ErrEmptyInput = errors.New("empty input")

	// ErrUndecodable is returned when the bytes are not text in any
	// supported encoding.
	ErrUndecodable = errors.New("input is not decodable text")
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ReadBytes returns the content of path, decompressed when the name ends in
// .gz or .zst.
func ReadBytes(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrFileAccess, path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: opening gzip stream %s: %w", ErrFileAccess, path, err)
		}
		defer zr.Close()
		r = zr
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: opening zstd stream %s: %w", ErrFileAccess, path, err)
		}
		defer zr.Close()
		r = zr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrFileAccess, path, err)
	}
	return data, nil
}

// ReadFile returns the content of path as UTF-8 text.
func ReadFile(path string) (string, error) {
	data, err := ReadBytes(path)
	if err != nil {
		return "", err
	}
	text, err := Decode(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// Decode converts data to UTF-8. A byte order mark selects UTF-8 or UTF-16;
// otherwise valid UTF-8 is taken as is and anything else is read as
// Windows-1252.
func Decode(data []byte) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", ErrEmptyInput
	}

	var text string
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		text = string(data[len(bomUTF8):])
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
		}
		text = string(out)
	case utf8.Valid(data):
		text = string(data)
	default:
		out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
		}
		text = string(out)
	}

	if strings.ContainsRune(text, 0) {
		return "", ErrUndecodable
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	return text, nil
}

// Lines splits text into lines without trailing carriage returns.
func Lines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}

// Ext returns the lower-cased extension of path, ignoring a trailing
// compression suffix: "export.csv.gz" yields ".csv".
func Ext(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" || ext == ".zst" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	return ext
}
