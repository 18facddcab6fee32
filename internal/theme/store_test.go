package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "theme.json")
	s := NewStore(path)

	require.NoError(t, s.Save("ocean"))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "ocean", got)
}

func TestLoadMissingFileYieldsDefault(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "theme.json"))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultName, got)
}

func TestLoadUnknownThemeYieldsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"lava-lamp"}`), 0o644))

	got, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultName, got)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	require.NoError(t, os.WriteFile(path, []byte(`{{{`), 0o644))

	got, err := NewStore(path).Load()
	assert.Error(t, err)
	assert.Equal(t, DefaultName, got, "corrupt file still yields a usable theme")
}

func TestNextCycles(t *testing.T) {
	seen := map[string]bool{}
	key := DefaultName
	for range Names {
		key = Next(key)
		_, ok := Lookup(key)
		require.True(t, ok, "cycle produced unknown theme %q", key)
		seen[key] = true
	}
	assert.Len(t, seen, len(Names), "cycle must visit every theme")
	assert.Equal(t, Names[0], Next(Names[len(Names)-1]), "cycle wraps")
	assert.Equal(t, Names[0], Next("no-such-theme"), "unknown keys restart the cycle")
}

func TestEveryNamedThemeExists(t *testing.T) {
	for _, name := range Names {
		th, ok := Lookup(name)
		require.True(t, ok, "theme %q listed but not registered", name)

		// Every color the UI draws must come from the palette; an empty
		// field would silently fall back to the terminal default.
		for field, c := range map[string]string{
			"Primary":  string(th.Primary),
			"Accent":   string(th.Accent),
			"Text":     string(th.Text),
			"Subtle":   string(th.Subtle),
			"Board":    string(th.Board),
			"PieceOne": string(th.PieceOne),
			"PieceTwo": string(th.PieceTwo),
			"Good":     string(th.Good),
			"Warn":     string(th.Warn),
			"Error":    string(th.Error),
		} {
			assert.NotEmpty(t, c, "theme %q is missing %s", name, field)
		}
	}
}
