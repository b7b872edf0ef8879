package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPostgres_Driver_NotConnected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("close is a no-op", func(t *testing.T) {
		t.Parallel()
		d := New()
		require.NoError(t, d.Close(ctx))
		require.NoError(t, d.Close(ctx))
	})

	t.Run("ping fails", func(t *testing.T) {
		t.Parallel()
		d := New()
		require.ErrorIs(t, d.Ping(ctx), errNotConnected)
	})

	t.Run("get columns fails", func(t *testing.T) {
		t.Parallel()
		d := New()
		cols, err := d.GetColumns(ctx, "users")
		require.ErrorIs(t, err, errNotConnected)
		require.Nil(t, cols)
	})

	t.Run("invalid dsn is rejected before dialing", func(t *testing.T) {
		t.Parallel()
		d := New()
		err := d.Connect(ctx, "postgres://%zz")
		require.Error(t, err)
		require.Contains(t, err.Error(), "parse dsn")
	})
}

type ctxKey struct{}

func TestPostgres_StatementContext(t *testing.T) {
	t.Parallel()

	t.Run("ignores caller cancellation", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "v"))
		cancel()

		stmtCtx := statementContext(ctx)
		require.NoError(t, stmtCtx.Err())
		require.Nil(t, stmtCtx.Done())
		require.Equal(t, "v", stmtCtx.Value(ctxKey{}))
	})

	t.Run("ignores caller deadline", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()

		stmtCtx := statementContext(ctx)
		require.NoError(t, stmtCtx.Err())
		_, ok := stmtCtx.Deadline()
		require.False(t, ok)
	})
}
