package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markbook/internal/handler"
	"markbook/internal/model"
	"markbook/internal/service"
	"markbook/internal/store"
)

func TestViewerResults(t *testing.T) {
	ds := &model.Dataset{
		Subjects: []string{"English", "Maths"},
		Students: []string{"Alice", "Bob"},
		Marks:    [][]int{{100, 100}, {0, 0}},
	}
	viewer := handler.NewViewer(ds, service.NewStatsService(), t.TempDir())

	req := httptest.NewRequest("GET", "/results", nil)
	rr := httptest.NewRecorder()
	viewer.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))

	assert.Equal(t, []interface{}{"Alice", "Bob"}, response["students"])
	assert.Equal(t, []interface{}{100.0, 0.0}, response["averages"])
	assert.Equal(t, []interface{}{50.0, 50.0}, response["subjectAverages"])
}

func TestViewerServesCharts(t *testing.T) {
	chartsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(chartsDir, "trend.png"), []byte("\x89PNGfake"), 0644))
	viewer := handler.NewViewer(model.NewDataset(), service.NewStatsService(), chartsDir)

	req := httptest.NewRequest("GET", "/charts/trend.png", nil)
	rr := httptest.NewRecorder()
	viewer.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "\x89PNGfake", rr.Body.String())
}

// The viewer serves from its own goroutine while the console session appends
// records; run with -race to verify the snapshot isolation.
func TestViewerResultsConcurrentWithAdds(t *testing.T) {
	st := store.NewStore(filepath.Join(t.TempDir(), "students_data.json"))
	ds := st.Load()
	records := service.NewRecordService(st)
	viewer := handler.NewViewer(ds, service.NewStatsService(), t.TempDir())
	router := viewer.Router()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest("GET", "/results", nil))
			assert.Equal(t, http.StatusOK, rr.Code)

			var response map[string]interface{}
			if !assert.NoError(t, json.NewDecoder(rr.Body).Decode(&response)) {
				return
			}
			// Each response is internally consistent even mid-session.
			students := response["students"].([]interface{})
			marks := response["marks"].([]interface{})
			assert.Len(t, marks, len(students))
		}
	}()
	for i := 0; i < 50; i++ {
		require.NoError(t, records.Add(ds, "Student", []int{70, 80, 90, 60, 100}))
	}
	<-done

	assert.Len(t, ds.Students, 50)
}

func TestViewerIsReadOnly(t *testing.T) {
	viewer := handler.NewViewer(model.NewDataset(), service.NewStatsService(), t.TempDir())

	req := httptest.NewRequest("POST", "/results", nil)
	rr := httptest.NewRecorder()
	viewer.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
