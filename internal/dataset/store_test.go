package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rafa/digimon-searcher/internal/domain"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "digimons.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFoldsLegacyFields(t *testing.T) {
	path := writeDataset(t, `[
		{"id": 1, "name": "Numemon", "level": "Champion", "type": "Mollusk", "image": "nume.png"},
		{"id": 2, "name": "Agumon", "levels": ["Rookie"], "types": ["Reptile"]}
	]`)

	store, err := Load(path, zap.NewNop().Sugar())
	require.NoError(t, err)
	require.Equal(t, 2, store.Count())

	legacy := store.All()[0]
	assert.Equal(t, []string{"Champion"}, legacy.Levels, "singular folds into plural")
	assert.Equal(t, []string{"Mollusk"}, legacy.Types)
	assert.Equal(t, []string{"nume.png"}, legacy.Images)

	modern := store.All()[1]
	assert.Equal(t, "Rookie", modern.Level, "first plural value mirrors into singular")
	assert.Equal(t, "Reptile", modern.Type)
}

func TestLoadRejectsBadDatasets(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed json", content: `{"not": "an array"`},
		{name: "wrong shape", content: `{"digimons": []}`},
		{name: "record without name", content: `[{"id": 1, "levels": ["Rookie"]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDataset(t, tt.content)
			store, err := Load(path, zap.NewNop().Sugar())
			assert.Nil(t, store)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop().Sugar())
	assert.Error(t, err)
}

func TestSaveThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "digimons.json")
	digimons := []domain.Digimon{
		{ID: 1, Name: "Agumon", Levels: []string{"Rookie"}},
		{ID: 2, Name: "Numemon", Level: "Champion"},
	}

	require.NoError(t, Save(path, digimons))

	got, err := Read(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Agumon", got[0].Name)
	// Read folds on the way in even when Save wrote an unfolded record.
	assert.Equal(t, []string{"Champion"}, got[1].Levels)
}

func TestNewFoldsInPlace(t *testing.T) {
	store := New([]domain.Digimon{{ID: 1, Name: "Numemon", Level: "Champion"}})
	assert.Equal(t, []string{"Champion"}, store.All()[0].Levels)
}
