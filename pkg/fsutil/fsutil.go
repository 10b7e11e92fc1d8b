// Package fsutil reads documents from disk for adoclint and records enough
// metadata to tell whether a file changed while it was being linted.
package fsutil

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// DefaultMaxSize bounds the size of a document read by ReadFile.
const DefaultMaxSize int64 = 64 << 20

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilFileInfo is returned when a nil FileInfo is passed.
	ErrNilFileInfo = errors.New("nil FileInfo")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the file exceeds the configured size limit.
	ErrTooLarge = errors.New("file too large")
)

//nolint:gochecknoglobals // Constant byte sequence.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileInfo captures the state of a file at the moment it was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes, including any byte order mark.
	Size int64

	// Hash is the SHA-256 hash of the raw file content.
	Hash [32]byte

	// HadBOM is true when a UTF-8 byte order mark was stripped.
	HadBOM bool
}

// ReadFile reads a document with DefaultMaxSize as the size limit.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	return ReadFileLimit(ctx, path, DefaultMaxSize)
}

// ReadFileLimit reads a document and returns its content along with
// metadata. A leading UTF-8 byte order mark is removed from the returned
// content so that line 1 column 1 is the first visible character.
// A maxSize of zero or less disables the limit.
func ReadFileLimit(ctx context.Context, path string, maxSize int64) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if maxSize > 0 && stat.Size() > maxSize {
		return nil, nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, path, stat.Size(), maxSize)
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	content, hadBOM := StripBOM(raw)
	info := &FileInfo{
		Path:    path,
		ModTime: stat.ModTime(),
		Size:    int64(len(raw)),
		Hash:    sha256.Sum256(raw),
		HadBOM:  hadBOM,
	}

	return content, info, nil
}

// StripBOM removes a leading UTF-8 byte order mark.
func StripBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, utf8BOM) {
		return content[len(utf8BOM):], true
	}
	return content, false
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// Changed reports whether the file differs from info. A deleted file counts
// as changed. The quick check compares mod time and size; when strict is
// set, the content is re-hashed as well.
func Changed(ctx context.Context, info *FileInfo, strict bool) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check changed: %w", err)
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}

	if !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size {
		return true, nil
	}
	if !strict {
		return false, nil
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}
	return sha256.Sum256(content) != info.Hash, nil
}
