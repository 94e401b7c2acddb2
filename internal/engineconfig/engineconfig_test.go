package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"snap_distance": 1.5, "grid_visible": false}`), 0644))
	p, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, p.SnapDistance, 1e-6)
	assert.False(t, p.GridVisible)
	assert.Equal(t, 50, p.HistoryCapacity)
	assert.Equal(t, []string{"house.json", "building.json"}, p.Sources)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))
	p, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Default(), p)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "editor.json")
	want := Default()
	want.Weather = "snowy"
	want.Sources = []string{"https://example.com/house.json"}
	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
