package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_EnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_entries").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectQuery("SELECT value FROM kv_entries").
		WithArgs("wallet_w1").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`{"id":"w1"}`)))

	v, err := store.Get(context.Background(), "wallet_w1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"w1"}`), v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_Absent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectQuery("SELECT value FROM kv_entries").
		WithArgs("wallet_missing").
		WillReturnRows(pgxmock.NewRows([]string{"value"}))

	v, err := store.Get(context.Background(), "wallet_missing")
	require.NoError(t, err, "absent key must not be an error")
	assert.Nil(t, v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Put_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectExec("INSERT INTO kv_entries").
		WithArgs("user_u1", []byte(`{"id":"u1"}`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.Put(context.Background(), "user_u1", []byte(`{"id":"u1"}`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectExec("DELETE FROM kv_entries").
		WithArgs("wallet_w1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, store.Delete(context.Background(), "wallet_w1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Scan_FullPageKeepsCursor(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)

	rows := pgxmock.NewRows([]string{"key"}).
		AddRow("transaction_w1_a").
		AddRow("transaction_w1_b")
	mock.ExpectQuery("SELECT key FROM kv_entries").
		WithArgs("transaction_w1_", "", int64(2)).
		WillReturnRows(rows)

	page, err := store.Scan(context.Background(), "transaction_w1_", "", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"transaction_w1_a", "transaction_w1_b"}, page.Keys)
	assert.False(t, page.Complete)
	assert.Equal(t, "transaction_w1_b", page.Cursor, "cursor should be the last key of a full page")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Scan_ShortPageIsComplete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)

	rows := pgxmock.NewRows([]string{"key"}).AddRow("transaction_w1_c")
	mock.ExpectQuery("SELECT key FROM kv_entries").
		WithArgs("transaction_w1_", "transaction_w1_b", int64(2)).
		WillReturnRows(rows)

	page, err := store.Scan(context.Background(), "transaction_w1_", "transaction_w1_b", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"transaction_w1_c"}, page.Keys)
	assert.True(t, page.Complete)
	assert.Empty(t, page.Cursor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Scan_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectQuery("SELECT key FROM kv_entries").
		WithArgs("wallet_", "", int64(10)).
		WillReturnError(errors.New("connection reset"))

	_, err = store.Scan(context.Background(), "wallet_", "", 10)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	hc := NewHealthCheck(mock)
	assert.Equal(t, "postgresql", hc.Name())

	mock.ExpectPing()
	assert.NoError(t, hc.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
