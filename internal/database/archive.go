package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"markbook/internal/model"
)

// ArchiveRecord is the flat, queryable shape of one mark: one row per
// (student, subject) pair, in dataset order.
type ArchiveRecord struct {
	ID          uint `gorm:"primaryKey"`
	StudentName string
	Subject     string
	Mark        int
}

// ExportArchive writes the whole dataset into a SQLite file at dbPath so the
// data can be queried outside the program. The archive is rebuilt from scratch
// on every export, matching the full-overwrite semantics of the JSON store.
func ExportArchive(ds *model.Dataset, dbPath string) (int, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return 0, fmt.Errorf("open archive %s: %w", dbPath, err)
	}

	if err := db.AutoMigrate(&ArchiveRecord{}); err != nil {
		return 0, fmt.Errorf("migrate archive: %w", err)
	}
	if err := db.Where("1 = 1").Delete(&ArchiveRecord{}).Error; err != nil {
		return 0, fmt.Errorf("clear archive: %w", err)
	}

	records := make([]ArchiveRecord, 0, len(ds.Students)*len(ds.Subjects))
	for i, student := range ds.Students {
		for j, subject := range ds.Subjects {
			records = append(records, ArchiveRecord{
				StudentName: student,
				Subject:     subject,
				Mark:        ds.Marks[i][j],
			})
		}
	}
	if len(records) == 0 {
		return 0, nil
	}
	if err := db.Create(&records).Error; err != nil {
		return 0, fmt.Errorf("write archive: %w", err)
	}
	return len(records), nil
}
