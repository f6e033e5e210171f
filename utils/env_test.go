package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := GetDatabaseURL()
	assert.ErrorIs(t, err, ErrNoDatabaseURL)

	t.Setenv("DATABASE_URL", "postgres://localhost/sales")
	url, err := GetDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/sales", url)
}

func TestLoadEnv_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OLAPSCHEMA_TEST_VAR=from-dotenv\n"), 0600))

	t.Chdir(dir)
	t.Setenv("OLAPSCHEMA_TEST_VAR", "")
	require.NoError(t, os.Unsetenv("OLAPSCHEMA_TEST_VAR"))

	LoadEnv()
	assert.Equal(t, "from-dotenv", os.Getenv("OLAPSCHEMA_TEST_VAR"))
}
