package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/gstdraft-dev/gstdraft/internal/model"
)

// DraftFile is the versioned key for the persisted draft. Bump the version
// suffix on incompatible schema changes; an older file is then simply never
// read and the default draft takes over.
const DraftFile = "invoice-draft.v2.json"

// FileStore keeps the draft as a JSON file under dir.
type FileStore struct {
	dir string
	log *logrus.Logger
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string, log *logrus.Logger) *FileStore {
	if log == nil {
		log = logrus.New()
	}
	return &FileStore{dir: dir, log: log}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, DraftFile)
}

// Load reads the persisted draft, falling back to the default draft on any
// failure.
func (s *FileStore) Load() model.InvoiceDraft {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.WithError(err).Debug("reading draft file")
		}
		return model.DefaultDraft()
	}

	var d model.InvoiceDraft
	if err := json.Unmarshal(data, &d); err != nil {
		s.log.WithError(err).Debug("parsing draft file, using default")
		return model.DefaultDraft()
	}
	if len(d.Items) == 0 {
		// An empty item list cannot come from the engine; treat it as a
		// foreign payload.
		return model.DefaultDraft()
	}
	return d
}

// Save writes the full serialized draft.
func (s *FileStore) Save(d model.InvoiceDraft) error {
	return s.writeJSON(DraftFile, d)
}

// Clear removes the persisted draft. Missing file is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clearing draft: %w", err)
	}
	return nil
}
