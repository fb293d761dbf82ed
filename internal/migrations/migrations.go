// Package migrations embeds the schema so the binary can apply it
// regardless of the working directory.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

//go:embed *.up.sql
var files embed.FS

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Names returns the migration file names in apply order.
func Names() ([]string, error) {
	names, err := fs.Glob(files, "*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("fs.Glob: %w", err)
	}
	sort.Strings(names)

	return names, nil
}

// Apply runs every migration in order. Scripts are written to be re-runnable.
func Apply(ctx context.Context, db execer, logger *zap.Logger) error {
	names, err := Names()
	if err != nil {
		return err
	}

	for _, name := range names {
		sqlBytes, err := files.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration[%s]: %w", name, err)
		}

		if _, err := db.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("apply migration[%s]: %w", name, err)
		}

		logger.Info("migration applied", zap.String("name", name))
	}

	return nil
}
