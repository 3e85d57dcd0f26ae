package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"markbook/internal/model"
	"markbook/internal/service"
)

// Viewer is the optional read-only HTTP surface: it serves rendered chart PNGs
// and a JSON results summary to a local browser. It never mutates the dataset.
type Viewer struct {
	ds        *model.Dataset
	stats     *service.StatsService
	chartsDir string
}

func NewViewer(ds *model.Dataset, stats *service.StatsService, chartsDir string) *Viewer {
	return &Viewer{ds: ds, stats: stats, chartsDir: chartsDir}
}

// Router mounts the viewer routes.
func (v *Viewer) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/results", v.Results).Methods("GET")
	r.PathPrefix("/charts/").Handler(
		http.StripPrefix("/charts/", http.FileServer(http.Dir(v.chartsDir)))).Methods("GET")
	return r
}

// Results returns the current dataset with per-student and per-subject
// averages. It works on a snapshot so the console can keep appending records
// while the response is built.
func (v *Viewer) Results(w http.ResponseWriter, r *http.Request) {
	ds := v.ds.Snapshot()
	response := map[string]interface{}{
		"subjects":        ds.Subjects,
		"students":        ds.Students,
		"marks":           ds.Marks,
		"averages":        v.stats.PerStudentAverages(ds.Marks),
		"subjectAverages": v.stats.PerSubjectAverages(ds.Subjects, ds.Marks),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Cannot write results response: %v", err)
	}
}
