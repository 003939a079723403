package store

import (
	"context"

	"github.com/me/vertexdash/pkg/model"
)

// Store defines the persistence layer for dashboard state. The sales data
// itself lives in the backend; only credentials and preferences are local.
type Store interface {
	// Sessions
	CreateSession(ctx context.Context, sess *model.Session) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
	ListSessionIDs(ctx context.Context) ([]string, error)

	// Table preferences
	GetTablePrefs(ctx context.Context, username, table string) (*model.TablePrefs, error)
	SaveTablePrefs(ctx context.Context, prefs *model.TablePrefs) error

	// Report export archive
	RecordExport(ctx context.Context, rec *model.ExportRecord) error
	ListExports(ctx context.Context, username string, limit int) ([]*model.ExportRecord, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
}
