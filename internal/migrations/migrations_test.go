package migrations

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingExecer struct {
	applied []string
	failOn  int
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if r.failOn > 0 && len(r.applied)+1 == r.failOn {
		return pgconn.CommandTag{}, errors.New("boom")
	}
	r.applied = append(r.applied, sql)
	return pgconn.CommandTag{}, nil
}

func TestNames(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"01_menu_items.up.sql",
		"02_cart_entries.up.sql",
		"03_users.up.sql",
		"04_payments.up.sql",
		"05_outbox.up.sql",
	}, names)
}

func TestApply(t *testing.T) {
	t.Run("all migrations: ok", func(t *testing.T) {
		db := &recordingExecer{}

		err := Apply(t.Context(), db, zap.NewNop())
		require.NoError(t, err)

		require.Len(t, db.applied, 5)
		assert.Contains(t, db.applied[3], "CREATE TABLE IF NOT EXISTS payments")
	})

	t.Run("failing migration: error", func(t *testing.T) {
		db := &recordingExecer{failOn: 2}

		err := Apply(t.Context(), db, zap.NewNop())
		require.EqualError(t, err, "apply migration[02_cart_entries.up.sql]: boom")
		assert.Len(t, db.applied, 1)
	})
}
