package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Local writes exports below a base directory.
type Local struct {
	BaseDir string
	Prefix  string
	now     func() time.Time
}

// NewLocal creates a local archiver.
func NewLocal(baseDir, prefix string) *Local {
	return &Local{BaseDir: baseDir, Prefix: prefix, now: time.Now}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	if err := ctx.Err(); err != nil {
		return PutResult{}, err
	}

	key := objectKey(l.Prefix, in.Filename, l.now())
	dst := filepath.Join(l.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return PutResult{}, fmt.Errorf("create archive dir: %w", err)
	}

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return PutResult{}, fmt.Errorf("create archive file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return PutResult{}, fmt.Errorf("write archive file: %w", err)
	}
	if err := f.Close(); err != nil {
		return PutResult{}, fmt.Errorf("close archive file: %w", err)
	}

	return PutResult{Key: key, Location: "file://" + filepath.ToSlash(dst)}, nil
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
