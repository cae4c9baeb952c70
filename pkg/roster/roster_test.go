package roster

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpqueue/pkg/entities"
	"helpqueue/pkg/utils"
)

var testRoster = entities.Roster{
	Students: []entities.Student{
		{ID: "ana#1234", Name: "Ana", Group: 1},
		{ID: "Beto", Name: "Beto", Group: 2},
	},
	Helpers: []entities.Helper{{ID: "ivan", Name: "Ivan"}},
}

func TestRosterLookups(t *testing.T) {
	assert := assert.New(t)
	r := New(SourceFunc(func(context.Context) (entities.Roster, error) { return testRoster, nil }), time.Minute)
	ctx := context.Background()

	s, err := r.Student(ctx, " ANA#1234 ")
	assert.NoError(err)
	assert.Equal(uint16(1), s.Group)

	s, err = r.Student(ctx, "beto")
	assert.NoError(err)
	assert.Equal("Beto", s.Name)

	_, err = r.Student(ctx, "carla")
	assert.ErrorIs(err, ErrNotRegistered)

	ok, err := r.IsHelper(ctx, "Ivan")
	assert.NoError(err)
	assert.True(ok)

	ok, err = r.IsHelper(ctx, "ana#1234")
	assert.NoError(err)
	assert.False(ok)
}

func TestRosterCachesAndReloads(t *testing.T) {
	var loads atomic.Int32
	r := New(SourceFunc(func(context.Context) (entities.Roster, error) {
		loads.Add(1)
		return testRoster, nil
	}), time.Hour)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = r.Student(ctx, "beto")
		_, _ = r.IsHelper(ctx, "ivan")
	}
	assert.Equal(t, int32(1), loads.Load())

	r.Reload()
	_, _ = r.Student(ctx, "beto")
	assert.Equal(t, int32(2), loads.Load())
}

func TestRosterSourceError(t *testing.T) {
	boom := errors.New("sheet unavailable")
	r := New(SourceFunc(func(context.Context) (entities.Roster, error) { return entities.Roster{}, boom }), time.Minute)

	_, err := r.Student(context.Background(), "ana")
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrNotRegistered))
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, utils.Save(path, testRoster))

	got, err := FileSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testRoster, got)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}.Load(context.Background())
	assert.Error(t, err)
}

type fakeValues map[string][][]string

func (f fakeValues) Values(_ context.Context, _ string, rng string) ([][]string, error) {
	rows, ok := f[rng]
	if !ok {
		return nil, errors.New("unknown range")
	}
	return rows, nil
}

func TestSheetsSource(t *testing.T) {
	src := SheetsSource{
		Client: fakeValues{
			"Alumnos!A2:C": {
				{"ana#1234", "Ana", "1"},
				{"", "blank id", "9"},
				{"short row"},
				{" beto ", "Beto", " 12 "},
			},
			"Ayudantes!A2:B": {{"ivan", "Ivan"}, {"lu"}, {}},
		},
		SpreadsheetID: "sheet",
		StudentsRange: "Alumnos!A2:C",
		HelpersRange:  "Ayudantes!A2:B",
	}

	got, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entities.Student{
		{ID: "ana#1234", Name: "Ana", Group: 1},
		{ID: "beto", Name: "Beto", Group: 12},
	}, got.Students)
	assert.Equal(t, []entities.Helper{{ID: "ivan", Name: "Ivan"}, {ID: "lu"}}, got.Helpers)
}

func TestSheetsSourceInvalidGroup(t *testing.T) {
	src := SheetsSource{
		Client:        fakeValues{"A": {{"ana", "Ana", "group one"}}},
		StudentsRange: "A",
	}
	_, err := src.Load(context.Background())
	assert.ErrorContains(t, err, "invalid group")
}
