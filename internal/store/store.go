package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"markbook/internal/model"
)

// Store persists the dataset as a single JSON file. Every save rewrites the
// whole file; there is no incremental or append mode.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the dataset from disk. An absent file, malformed JSON or a shape
// that fails validation all fall back to the default dataset, which is
// persisted immediately. Load never fails: a read problem is a recoverable
// condition with a defined fallback, not an error.
func (s *Store) Load() *model.Dataset {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Cannot read %s: %v; starting with defaults", s.path, err)
		}
		return s.resetToDefault(false)
	}

	ds := &model.Dataset{}
	if err := json.Unmarshal(raw, ds); err != nil {
		log.Printf("Discarding unparseable dataset %s: %v", s.path, err)
		return s.resetToDefault(true)
	}
	if ds.Students == nil {
		ds.Students = []string{}
	}
	if ds.Marks == nil {
		ds.Marks = [][]int{}
	}
	if err := ds.Validate(); err != nil {
		log.Printf("Discarding invalid dataset %s: %v", s.path, err)
		return s.resetToDefault(true)
	}
	return ds
}

// Save serializes the dataset to the store's file, fully overwriting prior
// content. The error is surfaced to the caller only when storage is unwritable.
func (s *Store) Save(ds *model.Dataset) error {
	raw, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// resetToDefault builds the default dataset and persists it. When the old file
// held data we could not decode it is copied aside first, so a corrupt dataset
// is recoverable by hand instead of silently overwritten.
func (s *Store) resetToDefault(backup bool) *model.Dataset {
	if backup {
		if raw, err := os.ReadFile(s.path); err == nil {
			if err := os.WriteFile(s.path+".bak", raw, 0644); err != nil {
				log.Printf("Cannot back up %s: %v", s.path, err)
			} else {
				log.Printf("Old contents of %s kept at %s.bak", s.path, s.path)
			}
		}
	}
	ds := model.NewDataset()
	if err := s.Save(ds); err != nil {
		log.Printf("Cannot persist default dataset: %v", err)
	}
	return ds
}
