// Package archive keeps copies of exported report files.
package archive

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/me/vertexdash/internal/config"
)

// PutInput describes the file being archived.
type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

// PutResult tells where the file ended up.
type PutResult struct {
	Key      string
	Location string
}

// Archiver stores export files.
type Archiver interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	String() string
}

// objectKey builds "<prefix><YYYY/MM/DD>/<uuid>-<filename>".
func objectKey(prefix, filename string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "export.xlsx"
	}
	key := now.UTC().Format("2006/01/02") + "/" + uuid.NewString() + "-" + name
	if p := strings.Trim(prefix, "/"); p != "" {
		key = p + "/" + key
	}
	return key
}

// FromConfig builds the configured archiver. It returns nil when archiving
// is disabled.
func FromConfig(ctx context.Context, cfg config.ArchiveConfig) (Archiver, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "local":
		dir := cfg.Dir
		if dir == "" {
			dir = "exports"
		}
		return NewLocal(dir, cfg.Prefix), nil
	case "s3":
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("archive: s3 driver requires a bucket")
		}
		return NewS3(ctx, S3Config{
			Region:   cfg.Region,
			Bucket:   cfg.Bucket,
			Prefix:   cfg.Prefix,
			Endpoint: cfg.Endpoint,
		})
	default:
		return nil, fmt.Errorf("archive: unknown driver %q", cfg.Driver)
	}
}
