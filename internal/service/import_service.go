package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"markbook/internal/model"
	"markbook/internal/store"
)

// ImportService bulk-loads records from a CSV file. The expected layout is a
// header row "name,<subject>,<subject>,..." matching the dataset's subject
// list, then one row per student. Invalid rows are skipped and counted rather
// than aborting the whole import.
type ImportService struct {
	store *store.Store
}

func NewImportService(st *store.Store) *ImportService {
	return &ImportService{store: st}
}

// ImportCSV reads filePath and appends every valid row to ds, persisting the
// dataset once after the whole file is read. It returns the number of
// imported and skipped rows.
func (s *ImportService) ImportCSV(ds *model.Dataset, filePath string) (imported, skipped int, err error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, 0, fmt.Errorf("open %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("read header of %s: %w", filePath, err)
	}
	if err := checkHeader(header, ds.Subjects); err != nil {
		return 0, 0, err
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Printf("Skipping line %d: %v", line, err)
			skipped++
			continue
		}
		name, marks, err := parseRecord(record, len(ds.Subjects))
		if err != nil {
			log.Printf("Skipping line %d: %v", line, err)
			skipped++
			continue
		}
		ds.Append(name, marks)
		imported++
	}

	// One full-file write for the whole import, not one per row.
	if imported > 0 {
		if err := s.store.Save(ds); err != nil {
			return imported, skipped, err
		}
	}
	return imported, skipped, nil
}

func checkHeader(header, subjects []string) error {
	if len(header) != len(subjects)+1 {
		return fmt.Errorf("header has %d columns, want name plus %d subjects", len(header), len(subjects))
	}
	for i, subject := range subjects {
		if !strings.EqualFold(strings.TrimSpace(header[i+1]), subject) {
			return fmt.Errorf("header column %d is %q, want %q", i+1, header[i+1], subject)
		}
	}
	return nil
}

func parseRecord(record []string, subjectCount int) (string, []int, error) {
	if len(record) != subjectCount+1 {
		return "", nil, fmt.Errorf("row has %d columns, want %d", len(record), subjectCount+1)
	}
	name := strings.TrimSpace(record[0])
	if name == "" {
		return "", nil, fmt.Errorf("row has an empty student name")
	}
	marks := make([]int, 0, subjectCount)
	for _, field := range record[1:] {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return "", nil, fmt.Errorf("mark %q is not an integer", field)
		}
		if err := ValidateMark(v); err != nil {
			return "", nil, err
		}
		marks = append(marks, v)
	}
	return name, marks, nil
}
