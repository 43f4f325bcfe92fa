package store

import (
	"fmt"
	"io"
)

// Backup streams a full snapshot of the database to w in Badger's backup
// format. since=0 means everything.
func (s *Store) Backup(w io.Writer) error {
	if _, err := s.db.Backup(w, 0); err != nil {
		return fmt.Errorf("backup database: %w", err)
	}
	return nil
}

// Restore loads a backup stream into the database. Existing keys present
// in the stream are overwritten; keys not in the stream are left alone.
func (s *Store) Restore(r io.Reader) error {
	// maxPendingWrites per badger docs; 256 is the documented default.
	if err := s.db.Load(r, 256); err != nil {
		return fmt.Errorf("restore database: %w", err)
	}
	return nil
}
