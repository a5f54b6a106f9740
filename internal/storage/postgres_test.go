package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestPostgresProvider_Init(t *testing.T) {
	t.Run("pings configured database", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)

		mock.ExpectPing()
		mock.ExpectClose()

		p := NewPostgresProviderWithDB(db, zaptest.NewLogger(t))
		require.NoError(t, p.Init(context.Background()))
		require.NoError(t, p.Close())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreachable database does not fail", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		p := NewPostgresProviderWithDB(db, zaptest.NewLogger(t))
		require.NoError(t, p.Init(context.Background()))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without dsn", func(t *testing.T) {
		p, err := NewPostgresProvider("", zaptest.NewLogger(t))
		require.NoError(t, err)
		require.NoError(t, p.Init(context.Background()))
		require.NoError(t, p.Close())
	})
}

func TestPostgresProvider_Operations(t *testing.T) {
	ctx := context.Background()
	p := NewPostgresProviderWithDB(nil, zaptest.NewLogger(t))

	records, err := p.FindAll(ctx, "memberships")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	_, ok, err := p.FindByID(ctx, "memberships", 1)
	require.NoError(t, err)
	assert.False(t, ok)

	data := Record{"name": "Gold"}
	created, err := p.Create(ctx, "memberships", data)
	require.NoError(t, err)
	assert.Equal(t, Record{"name": "Gold", "id": int64(0)}, created)
	assert.NotContains(t, data, "id", "input is not modified")

	_, ok, err = p.Update(ctx, "memberships", 1, Record{"name": "Silver"})
	require.NoError(t, err)
	assert.False(t, ok)

	deleted, err := p.Delete(ctx, "memberships", 1)
	require.NoError(t, err)
	assert.False(t, deleted)
}
