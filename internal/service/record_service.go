package service

import (
	"fmt"

	"markbook/internal/model"
	"markbook/internal/store"
)

// RecordService appends complete mark rows to the dataset. Per-field retry on
// bad input is the prompt layer's job; this service only ever accepts a fully
// valid row, which is what keeps the marks table rectangular.
type RecordService struct {
	store *store.Store
}

func NewRecordService(st *store.Store) *RecordService {
	return &RecordService{store: st}
}

// ValidateMark reports whether a single mark is inside the accepted range.
func ValidateMark(v int) error {
	if v < model.MinMark || v > model.MaxMark {
		return fmt.Errorf("mark %d is outside [%d,%d]", v, model.MinMark, model.MaxMark)
	}
	return nil
}

// Add appends one student with one mark per subject, in subject order, and
// persists the dataset. The row is copied, so the caller's slice is not
// retained. A save failure is returned to the caller; the in-memory append
// still happened and the session may continue.
func (s *RecordService) Add(ds *model.Dataset, name string, marks []int) error {
	if len(marks) != len(ds.Subjects) {
		return fmt.Errorf("got %d marks, want one per subject (%d)", len(marks), len(ds.Subjects))
	}
	for _, v := range marks {
		if err := ValidateMark(v); err != nil {
			return err
		}
	}

	row := make([]int, len(marks))
	copy(row, marks)
	ds.Append(name, row)

	return s.store.Save(ds)
}
