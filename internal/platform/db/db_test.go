package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestParseDriver(t *testing.T) {
	d, err := ParseDriver("")
	require.NoError(t, err)
	require.Equal(t, SQLite, d)

	d, err = ParseDriver(" Postgres ")
	require.NoError(t, err)
	require.Equal(t, Postgres, d)

	_, err = ParseDriver("mysql")
	require.Error(t, err)
}

func TestConnectSQLite(t *testing.T) {
	conn, err := Connect(SQLite, filepath.Join(t.TempDir(), "app.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	var one int
	require.NoError(t, conn.QueryRow("SELECT 1").Scan(&one))
	require.Equal(t, 1, one)
}

func TestConnectPostgresNeedsURL(t *testing.T) {
	_, err := Connect(Postgres, "", " ")
	require.ErrorContains(t, err, "DATABASE_URL")
}
