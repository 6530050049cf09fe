package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxFileSize matches the inline payload limit of the generation API.
const MaxFileSize = 20 << 20

var (
	ErrFileNotFound = errors.New("file not found")
	ErrFileTooLarge = errors.New("file too large")
)

// FileStorage reads reference attachments by the path stored on the reference.
type FileStorage interface {
	Read(ctx context.Context, path string) ([]byte, error)
}

type Config struct {
	Driver          string // "local" or "gcs"
	Root            string
	Bucket          string
	CredentialsFile string
}

func New(ctx context.Context, cfg Config) (FileStorage, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "local":
		return NewLocalStorage(cfg.Root), nil
	case "gcs":
		return NewGCSStorage(ctx, cfg.Bucket, cfg.CredentialsFile)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

// DetectMimeType sniffs the content. Parameters such as "; charset=utf-8" are dropped.
func DetectMimeType(data []byte) string {
	mt := mimetype.Detect(data).String()
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}
