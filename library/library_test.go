package library

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"roastsim/conf"
	"roastsim/model"
	"roastsim/simulator"
)

func newRecord(t *testing.T, name string, dev float64) *model.RoastRecord {
	t.Helper()
	p := model.RoastParameters{
		BatchGrams:      500,
		ChargeTempC:     220,
		BeanDensity:     1.0,
		DryTimeMin:      4,
		MaillardTimeMin: 3.5,
		DevTimeMin:      dev,
		DropTempC:       208,
		Speed:           5,
	}
	series, err := simulator.Simulate(p, model.PhaseBased)
	require.NoError(t, err)
	return model.NewRecord(name, model.PhaseBased, p, series)
}

func stores(t *testing.T) map[string]Repository {
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "roasts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Repository{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestRepository(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a := newRecord(t, "Etiopien G1", 1.5)
			b := newRecord(t, "Kenya AA", 1.2)
			require.NoError(t, repo.Save(a))
			require.NoError(t, repo.Save(b))

			got, err := repo.Get("Etiopien G1")
			require.NoError(t, err)
			assert.Equal(t, a.ID, got.ID)
			assert.Equal(t, model.PhaseBased, got.Variant)
			assert.Equal(t, a.Parameters, got.Parameters)
			assert.Equal(t, a.Series.Values(), got.Series.Values())
			assert.Equal(t, a.Series.Start(), got.Series.Start())
			assert.InDelta(t, a.Metrics.DTR, got.Metrics.DTR, 1e-12)

			list, err := repo.List()
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "Etiopien G1", list[0].Name)

			// 同名记录整体覆盖
			replaced := newRecord(t, "Etiopien G1", 0.3)
			require.NoError(t, repo.Save(replaced))
			got, err = repo.Get("Etiopien G1")
			require.NoError(t, err)
			assert.Equal(t, replaced.ID, got.ID)
			assert.Equal(t, 0.3, got.Parameters.DevTimeMin)
			list, err = repo.List()
			require.NoError(t, err)
			assert.Len(t, list, 2)

			require.NoError(t, repo.Delete("Kenya AA"))
			assert.ErrorIs(t, repo.Delete("Kenya AA"), ErrNotFound)
			_, err = repo.Get("Kenya AA")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, repo.Clear())
			list, err = repo.List()
			require.NoError(t, err)
			assert.Empty(t, list)

			assert.ErrorIs(t, repo.Save(&model.RoastRecord{}), model.ErrInvalidParameter)
		})
	}
}

func TestCompare(t *testing.T) {
	repo := NewMemoryStore()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, repo.Save(newRecord(t, name, 1.5)))
	}

	selected, err := Compare(repo, nil, 0)
	require.NoError(t, err)
	require.Len(t, selected, 4)
	assert.Equal(t, "a", selected[0].Name)
	assert.Equal(t, "d", selected[3].Name)

	selected, err = Compare(repo, []string{"e", "e", "b"}, 4)
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, "e", selected[0].Name)

	_, err = Compare(repo, []string{"zz"}, 4)
	assert.ErrorIs(t, err, ErrNotFound)

	empty, err := Compare(NewMemoryStore(), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, empty)

	details := Details(selected)
	require.Len(t, details, 2)
	assert.Equal(t, 500.0, details[0].BatchGrams)
	assert.InDelta(t, 9.0, details[0].TotalTimeMin, 1e-9)
	assert.InDelta(t, 16.67, details[0].DTR, 0.01)
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, []*model.RoastRecord{newRecord(t, "Etiopien G1", 1.5)}))

	var doc struct {
		Roasts []struct {
			Name    string `yaml:"name"`
			Variant string `yaml:"variant"`
			Series  struct {
				Start   float64   `yaml:"start"`
				Samples []float64 `yaml:"samples"`
			} `yaml:"series"`
		} `yaml:"roasts"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Roasts, 1)
	assert.Equal(t, "Etiopien G1", doc.Roasts[0].Name)
	assert.Equal(t, "phase", doc.Roasts[0].Variant)
	assert.Equal(t, model.AmbientTemp, doc.Roasts[0].Series.Start)
	assert.Len(t, doc.Roasts[0].Series.Samples, 540)
}

func TestOpen(t *testing.T) {
	repo, err := Open(conf.LibraryConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, repo)

	repo, err = Open(conf.LibraryConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, repo)
	require.NoError(t, repo.Close())

	_, err = Open(conf.LibraryConfig{Driver: "mongo"})
	assert.Error(t, err)
}
