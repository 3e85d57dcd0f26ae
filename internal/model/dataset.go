package model

import (
	"fmt"
	"sync"
)

// Mark bounds for a single exam score.
const (
	MinMark = 0
	MaxMark = 100
)

// DefaultSubjects is the subject list a fresh dataset starts with.
func DefaultSubjects() []string {
	return []string{"English", "Maths", "Science", "Social", "History"}
}

// Dataset is the full persisted state: an ordered subject list, an ordered
// student list and a rectangular marks table. Row i of Marks belongs to
// Students[i]; column j of every row belongs to Subjects[j].
//
// The console session is the only writer. The mutex exists for the optional
// HTTP viewer, which reads from its own goroutine: writers go through Append,
// readers through Snapshot.
type Dataset struct {
	mu sync.RWMutex

	Subjects []string `json:"subjects"`
	Students []string `json:"students"`
	Marks    [][]int  `json:"marks"`
}

// NewDataset returns the default empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		Subjects: DefaultSubjects(),
		Students: []string{},
		Marks:    [][]int{},
	}
}

// Append adds one student with their mark row. Callers validate the row
// first; Append only keeps the appends atomic with respect to Snapshot.
func (d *Dataset) Append(name string, row []int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Students = append(d.Students, name)
	d.Marks = append(d.Marks, row)
}

// Snapshot returns a copy of the three sequences that stays stable while the
// console keeps appending. Mark rows are shared: they are never mutated after
// Append, only the outer slices grow.
func (d *Dataset) Snapshot() *Dataset {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap := &Dataset{
		Subjects: make([]string, len(d.Subjects)),
		Students: make([]string, len(d.Students)),
		Marks:    make([][]int, len(d.Marks)),
	}
	copy(snap.Subjects, d.Subjects)
	copy(snap.Students, d.Students)
	copy(snap.Marks, d.Marks)
	return snap
}

// Validate checks the shape invariants: at least one subject, one mark row per
// student, every row exactly len(Subjects) wide, every value within mark bounds.
func (d *Dataset) Validate() error {
	if len(d.Subjects) == 0 {
		return fmt.Errorf("dataset has no subjects")
	}
	if len(d.Marks) != len(d.Students) {
		return fmt.Errorf("dataset has %d students but %d mark rows", len(d.Students), len(d.Marks))
	}
	for i, row := range d.Marks {
		if len(row) != len(d.Subjects) {
			return fmt.Errorf("mark row %d has %d values, want %d", i, len(row), len(d.Subjects))
		}
		for j, v := range row {
			if v < MinMark || v > MaxMark {
				return fmt.Errorf("mark row %d column %d is %d, outside [%d,%d]", i, j, v, MinMark, MaxMark)
			}
		}
	}
	return nil
}
