package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timetracker/internal/core/model"
)

// ArchiveFileName is the default name of the SQLite archive.
const ArchiveFileName = "archive.db"

// ArchivedActivity is one activity record copied into the archive.
type ArchivedActivity struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	RecordID        string    `gorm:"index" json:"id"`
	Date            string    `gorm:"not null;index" json:"date"`
	Category        string    `gorm:"not null;index" json:"category"`
	Name            string    `gorm:"not null" json:"name"`
	Start           string    `gorm:"not null" json:"start"`
	End             string    `gorm:"not null" json:"end"`
	DurationSeconds float64   `gorm:"not null;default:0" json:"duration_seconds"`
	Notes           string    `json:"notes"`
	SyncedAt        time.Time `gorm:"autoCreateTime" json:"synced_at"`
}

// CategoryTotal is the summed time of one category over a date range.
type CategoryTotal struct {
	Category      string  `json:"category"`
	TotalSeconds  float64 `json:"total_seconds"`
	ActivityCount int     `json:"activity_count"`
}

// Archive is a SQLite mirror of the data file used for multi-day summaries.
type Archive struct {
	db *gorm.DB
}

// OpenArchive opens or creates the archive at path and migrates its schema.
func OpenArchive(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create archive directory")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	if err := db.AutoMigrate(&ArchivedActivity{}); err != nil {
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close releases the database handle.
func (archive *Archive) Close() error {
	sqlDB, err := archive.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Sync replaces the archive contents with activities. The data file stays
// the source of truth, so edits and deletions there are mirrored.
func (archive *Archive) Sync(activities map[string][]model.ActivityRecord) (int, error) {
	rows := make([]ArchivedActivity, 0)
	for date, records := range activities {
		for _, record := range records {
			rows = append(rows, ArchivedActivity{
				RecordID:        record.ID,
				Date:            date,
				Category:        record.Category,
				Name:            record.Name,
				Start:           record.Start.String(),
				End:             record.End.String(),
				DurationSeconds: record.DurationSeconds,
				Notes:           record.Notes,
			})
		}
	}

	err := archive.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM archived_activities").Error; err != nil {
			return errors.Wrap(err, "failed to clear archive")
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 200).Error; err != nil {
			return errors.Wrap(err, "failed to insert archived activities")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// CategoryTotals sums durations per category for dates in [from, to).
func (archive *Archive) CategoryTotals(from, to time.Time) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	result := archive.db.Model(&ArchivedActivity{}).
		Select("category, SUM(duration_seconds) as total_seconds, COUNT(*) as activity_count").
		Where("date >= ? AND date < ?", model.DateKey(from), model.DateKey(to)).
		Group("category").
		Order("total_seconds DESC, category ASC").
		Scan(&totals)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query category totals")
	}
	return totals, nil
}

// Activities returns the archived records for dates in [from, to), ordered
// by date and start time.
func (archive *Archive) Activities(from, to time.Time) ([]ArchivedActivity, error) {
	var rows []ArchivedActivity
	result := archive.db.
		Where("date >= ? AND date < ?", model.DateKey(from), model.DateKey(to)).
		Order("date ASC, start ASC").
		Find(&rows)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query archived activities")
	}
	return rows, nil
}
