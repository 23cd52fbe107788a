package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FormatFromPath determines the serialization format based on file extension.
// Supported extensions:
//   - .json → FormatJSON
//   - .yaml, .yml → FormatYAML
//   - .table, .txt → FormatTable
//
// Returns FormatJSON as default for unknown extensions.
// Extension matching is case-insensitive.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".table"), strings.HasSuffix(lowerPath, ".txt"):
		return FormatTable
	default:
		slog.Warn("unknown file extension, defaulting to JSON", "filePath", filePath)
		return FormatJSON
	}
}

// Reader handles deserialization of structured data from JSON and YAML
// sources. It reads from any io.Reader including files, strings, and
// HTTP responses.
//
// Close must be called to release resources when the Reader was
// created with NewFileReader or NewFileReaderAuto. Close is idempotent
// and a no-op for non-closeable sources.
type Reader struct {
	format  Format
	input   io.Reader
	closer  io.Closer
	tmpPath string
}

// NewReader creates a new Reader for deserializing data from an
// io.Reader source. It fails when format is unknown or FormatTable
// (table output does not support deserialization).
//
// If input implements io.Closer it will be closed by Reader.Close.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

// NewFileReader creates a new Reader that reads from a local file path
// or an HTTP/HTTPS URL. Remote files are downloaded to a temporary
// file which Close removes.
func NewFileReader(format Format, filePath string) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	var (
		file    *os.File
		tmpPath string
		err     error
	)

	if strings.HasPrefix(filePath, "http://") || strings.HasPrefix(filePath, "https://") {
		name := fmt.Sprintf("vercmp-%d.tmp", time.Now().UnixNano())
		tmpPath = filepath.Join(os.TempDir(), name)
		httpReader := NewHTTPReader()
		if err = httpReader.Download(filePath, tmpPath); err != nil {
			return nil, fmt.Errorf("failed to download remote file: %w", err)
		}
		file, err = os.Open(tmpPath)
	} else {
		file, err = os.Open(filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return &Reader{
		format:  format,
		input:   file,
		closer:  file,
		tmpPath: tmpPath,
	}, nil
}

// NewFileReaderAuto creates a new Reader with the format detected from
// the file extension using FormatFromPath.
func NewFileReaderAuto(filePath string) (*Reader, error) {
	format := FormatFromPath(filePath)
	return NewFileReader(format, filePath)
}

// Deserialize reads data from the input source and unmarshals it into
// v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil

	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil

	case FormatTable:
		return fmt.Errorf("table format is not supported for deserialization")

	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases any resources held by the Reader. It closes the
// underlying file handle if one exists and removes any temporary file
// downloaded from a remote URL. Safe to call multiple times and on a
// nil Reader.
func (r *Reader) Close() error {
	if r == nil {
		return nil
	}

	var err error
	if r.closer != nil {
		err = r.closer.Close()
		r.closer = nil
	}
	if r.tmpPath != "" {
		if rmErr := os.Remove(r.tmpPath); rmErr != nil && err == nil {
			err = rmErr
		}
		r.tmpPath = ""
	}
	return err
}

// FromFile loads and deserializes a file path or HTTP/HTTPS URL into
// type T in one call. The format is detected from the path extension
// and the Reader lifecycle is handled internally.
//
// Example:
//
//	versions, err := serializer.FromFile[[]string]("versions.yaml")
func FromFile[T any](path string) (*T, error) {
	reader, err := NewFileReaderAuto(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	out := new(T)
	if err := reader.Deserialize(out); err != nil {
		return nil, err
	}
	return out, nil
}
