package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := New(path, nil)
	require.NoError(t, err)
	return s, path
}

func TestSetGetRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, s.Set("key", record{Name: "Pen", Count: 3}))

	var out record
	ok, err := s.Get("key", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, record{Name: "Pen", Count: 3}, out)
}

func TestGetMissingKey(t *testing.T) {
	s, _ := newTestStore(t)

	var out map[string]int
	ok, err := s.Get("nothing", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Set("key", 42))
	require.NoError(t, s.Remove("key"))

	var out int
	ok, err := s.Get("key", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Remove("key"), "removing an absent key is a no-op")
}

func TestReopenPreservesData(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, s.Set("key", "value"))

	reopened, err := New(path, nil)
	require.NoError(t, err)

	var out string
	ok, err := reopened.Get("key", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", out)
}

func TestMalformedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0o644))

	s, err := New(path, nil)
	require.NoError(t, err)

	var out string
	ok, err := s.Get("key", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetRawReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Set("key", map[string]int{"Pen": 3}))

	raw, ok := s.GetRaw("key")
	require.True(t, ok)

	raw[0] = 'X'
	again, _ := s.GetRaw("key")
	assert.True(t, json.Valid(again), "mutating the returned slice must not corrupt the store")
}

func TestSnapshot(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Set("key", "value"))

	dir := filepath.Join(t.TempDir(), "backups")
	path, err := s.Snapshot(dir)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "stationary-"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var data map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Contains(t, data, "key")
}
