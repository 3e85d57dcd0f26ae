package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markbook/internal/model"
	"markbook/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	return store.NewStore(filepath.Join(t.TempDir(), "students_data.json"))
}

func TestLoadMissingFile(t *testing.T) {
	st := newTestStore(t)

	ds := st.Load()

	assert.Equal(t, model.DefaultSubjects(), ds.Subjects)
	assert.Empty(t, ds.Students)
	assert.Empty(t, ds.Marks)

	// The default state must have been persisted immediately.
	_, err := os.Stat(st.Path())
	require.NoError(t, err)

	reloaded := st.Load()
	assert.Equal(t, ds, reloaded)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := newTestStore(t)

	ds := &model.Dataset{
		Subjects: []string{"English", "Maths"},
		Students: []string{"Alice", "Bob"},
		Marks:    [][]int{{70, 80}, {100, 0}},
	}
	require.NoError(t, st.Save(ds))

	loaded := st.Load()
	assert.Equal(t, ds.Subjects, loaded.Subjects)
	assert.Equal(t, ds.Students, loaded.Students)
	assert.Equal(t, ds.Marks, loaded.Marks)
}

func TestLoadFallsBackOnBadContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not JSON", "{this is not json"},
		{"ragged marks row", `{"subjects":["A","B"],"students":["x"],"marks":[[1]]}`},
		{"more students than rows", `{"subjects":["A"],"students":["x","y"],"marks":[[1]]}`},
		{"mark out of range", `{"subjects":["A"],"students":["x"],"marks":[[101]]}`},
		{"non-integer mark", `{"subjects":["A"],"students":["x"],"marks":[[80.5]]}`},
		{"no subjects", `{"subjects":[],"students":[],"marks":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t)
			require.NoError(t, os.WriteFile(st.Path(), []byte(tt.content), 0644))

			ds := st.Load()

			assert.Equal(t, model.DefaultSubjects(), ds.Subjects)
			assert.Empty(t, ds.Students)

			// The unreadable original is kept aside before the overwrite.
			backup, err := os.ReadFile(st.Path() + ".bak")
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(backup))
		})
	}
}

func TestSaveUnwritableStorage(t *testing.T) {
	st := store.NewStore(filepath.Join(t.TempDir(), "no", "such", "dir", "data.json"))

	err := st.Save(model.NewDataset())

	assert.Error(t, err)
}
