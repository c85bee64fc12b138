package storage

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"timetracker/internal/core/model"
)

// DataFileName is the default name of the JSON data file.
const DataFileName = "time_tracker_data.json"

const corruptSuffixLayout = "20060102-150405"

// DefaultCategories seeds a data file that does not exist yet.
func DefaultCategories() []string {
	return []string{"Study", "Work", "Personal", "Lunch Break"}
}

// Document is the on-disk layout of the data file.
type Document struct {
	Categories []string                          `json:"categories"`
	Activities map[string][]model.ActivityRecord `json:"activities"`
	Settings   model.DisplaySettings             `json:"settings"`
}

// NewDocument returns the document written for a fresh install.
func NewDocument() Document {
	return Document{
		Categories: DefaultCategories(),
		Activities: map[string][]model.ActivityRecord{},
		Settings:   model.DefaultDisplaySettings(),
	}
}

// DataFile reads and writes the JSON data file. Writes are atomic.
type DataFile struct {
	path string
	now  func() time.Time
}

// NewDataFile returns a store for the data file at path.
func NewDataFile(path string) *DataFile {
	return &DataFile{path: path, now: time.Now}
}

// Path returns the data file location.
func (file *DataFile) Path() string { return file.path }

// Exists reports whether the data file is present.
func (file *DataFile) Exists() bool {
	_, err := os.Stat(file.path)
	return err == nil
}

// Load reads the data file. A missing file is seeded with the default
// categories and written immediately. A malformed file is copied aside as
// <file>.corrupt-<timestamp> and reported as ErrPersistenceCorrupt together
// with whatever part of it could be decoded.
func (file *DataFile) Load() (Document, error) {
	raw, err := os.ReadFile(file.path)
	if err != nil {
		if os.IsNotExist(err) {
			document := NewDocument()
			return document, file.Save(document)
		}
		return NewDocument(), &model.PersistenceError{
			Kind: model.ErrPersistenceCorrupt,
			Op:   "load",
			Path: file.path,
			Err:  errors.WithStack(err),
		}
	}

	document, decodeErr := decodeDocument(raw)
	if decodeErr == nil {
		return document, nil
	}

	loadErr := &model.PersistenceError{
		Kind: model.ErrPersistenceCorrupt,
		Op:   "load",
		Path: file.path,
		Err:  decodeErr,
	}
	preserved := file.path + ".corrupt-" + file.now().Format(corruptSuffixLayout)
	if err := os.WriteFile(preserved, raw, 0o644); err != nil {
		loadErr.Err = errors.Wrapf(decodeErr, "preserve corrupt copy failed: %v", err)
	}
	return document, loadErr
}

// Save writes document to a temporary file next to the data file and renames
// it into place.
func (file *DataFile) Save(document Document) error {
	payload, err := encodeDocument(document)
	if err != nil {
		return file.writeFailure("save", err)
	}
	if err := writeAtomic(file.path, payload); err != nil {
		return file.writeFailure("save", err)
	}
	return nil
}

// Backup copies the data file to destination.
func (file *DataFile) Backup(destination string) error {
	source, err := os.Open(file.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.PersistenceError{Kind: model.ErrNoDataFile, Op: "backup", Path: file.path}
		}
		return file.writeFailure("backup", err)
	}
	defer source.Close()

	payload, err := io.ReadAll(source)
	if err != nil {
		return file.writeFailure("backup", err)
	}
	if err := writeAtomic(destination, payload); err != nil {
		return &model.PersistenceError{
			Kind: model.ErrPersistenceWriteFailure,
			Op:   "backup",
			Path: destination,
			Err:  err,
		}
	}
	return nil
}

// Restore validates the backup at source and overwrites the data file with
// it. The running application must be restarted afterwards; a successful
// restore therefore returns ErrRestartRequired.
func (file *DataFile) Restore(source string) error {
	raw, err := os.ReadFile(source)
	if err != nil {
		return &model.PersistenceError{
			Kind: model.ErrPersistenceCorrupt,
			Op:   "restore",
			Path: source,
			Err:  errors.WithStack(err),
		}
	}
	if !json.Valid(raw) {
		return &model.PersistenceError{
			Kind: model.ErrPersistenceCorrupt,
			Op:   "restore",
			Path: source,
			Err:  errors.New("not a JSON document"),
		}
	}
	if _, err := decodeDocument(raw); err != nil {
		return &model.PersistenceError{Kind: model.ErrPersistenceCorrupt, Op: "restore", Path: source, Err: err}
	}
	if err := writeAtomic(file.path, raw); err != nil {
		return file.writeFailure("restore", err)
	}
	return model.ErrRestartRequired
}

// BackupFileName is the suggested name for a backup taken on day.
func BackupFileName(day time.Time) string {
	return "time_tracker_backup_" + day.Format("20060102") + ".json"
}

func (file *DataFile) writeFailure(op string, err error) error {
	return &model.PersistenceError{
		Kind: model.ErrPersistenceWriteFailure,
		Op:   op,
		Path: file.path,
		Err:  err,
	}
}

func encodeDocument(document Document) ([]byte, error) {
	if document.Categories == nil {
		document.Categories = []string{}
	}
	if document.Activities == nil {
		document.Activities = map[string][]model.ActivityRecord{}
	}
	document.Settings = document.Settings.Normalize()

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(document); err != nil {
		return nil, errors.Wrap(err, "encode data file")
	}
	return buffer.Bytes(), nil
}

// decodeDocument decodes each top-level section on its own so a damaged
// section does not discard the rest. Activities are kept per date.
func decodeDocument(raw []byte) (Document, error) {
	document := Document{
		Activities: map[string][]model.ActivityRecord{},
		Settings:   model.DefaultDisplaySettings(),
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return document, errors.Wrap(err, "decode data file")
	}

	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if section, ok := sections["categories"]; ok {
		if err := json.Unmarshal(section, &document.Categories); err != nil {
			keep(errors.Wrap(err, "decode categories"))
			document.Categories = nil
		}
	}

	if section, ok := sections["activities"]; ok {
		var days map[string]json.RawMessage
		if err := json.Unmarshal(section, &days); err != nil {
			keep(errors.Wrap(err, "decode activities"))
		}
		for date, rawDay := range days {
			var records []model.ActivityRecord
			if err := json.Unmarshal(rawDay, &records); err != nil {
				keep(errors.Wrapf(err, "decode activities for %s", date))
				continue
			}
			document.Activities[date] = records
		}
	}

	if section, ok := sections["settings"]; ok {
		settings := model.DefaultDisplaySettings()
		if err := json.Unmarshal(section, &settings); err != nil {
			keep(errors.Wrap(err, "decode settings"))
			settings = model.DefaultDisplaySettings()
		}
		document.Settings = settings
	}
	document.Settings = document.Settings.Normalize()

	return document, firstErr
}

func writeAtomic(path string, payload []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create data directory")
	}

	temp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temporary file")
	}
	tempPath := temp.Name()
	cleanup := func() { _ = os.Remove(tempPath) }

	if _, err := temp.Write(payload); err != nil {
		_ = temp.Close()
		cleanup()
		return errors.Wrap(err, "write temporary file")
	}
	if err := temp.Sync(); err != nil {
		_ = temp.Close()
		cleanup()
		return errors.Wrap(err, "sync temporary file")
	}
	if err := temp.Close(); err != nil {
		cleanup()
		return errors.Wrap(err, "close temporary file")
	}
	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return errors.Wrap(err, "replace data file")
	}
	return nil
}
