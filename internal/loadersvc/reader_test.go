package loadersvc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadListingsFile_MissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := readListingsFile(dir, "nonexistent-job")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadListingsFile_NotAnArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job-1_jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))

	_, err := readListingsFile(dir, "job-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a JSON array")
}

func TestReadListingsFile_EmptyArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job-1_jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	listings, err := readListingsFile(dir, "job-1")
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestReadAndDeleteListingsFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job-1_jobs.json")
	body := `[{"title":"Engineer","company":"Acme","location":"Remote","url":"https://example.com/1"}]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	listings, err := readListingsFile(dir, "job-1")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Engineer", listings[0].Title)

	require.NoError(t, deleteListingsFile(dir, "job-1"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
