package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore persists history in a SQLite database so it survives restarts.
// The size limit and unique mode are per-process settings and are not stored.
type SQLiteStore struct {
	db *gorm.DB

	// cursorID is the ID of the entry the cursor is on; 0 when unset.
	cursorID uint
	size     int
	unique   bool
}

type HistoryEntry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	Line string
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates the database at dbFilePath.
func NewSQLiteStore(dbFilePath string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening history database: %w", err)
	}

	// A second connection to ":memory:" would see a different database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error opening history database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&HistoryEntry{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error migrating history schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Newest() (string, bool, error) {
	entry, ok, err := s.first(s.db)
	if err != nil || !ok {
		s.cursorID = 0
		return "", false, err
	}
	s.cursorID = entry.ID
	return entry.Line, true, nil
}

func (s *SQLiteStore) Older() (string, bool, error) {
	if s.cursorID == 0 {
		return "", false, nil
	}
	entry, ok, err := s.first(s.db.Where("id < ?", s.cursorID))
	if err != nil || !ok {
		return "", false, err
	}
	s.cursorID = entry.ID
	return entry.Line, true, nil
}

func (s *SQLiteStore) first(db *gorm.DB) (HistoryEntry, bool, error) {
	var entries []HistoryEntry
	result := db.Order("id desc").Limit(1).Find(&entries)
	if result.Error != nil {
		return HistoryEntry{}, false, result.Error
	}
	if len(entries) == 0 {
		return HistoryEntry{}, false, nil
	}
	return entries[0], true, nil
}

func (s *SQLiteStore) Enter(line string) error {
	if s.unique {
		newest, ok, err := s.first(s.db)
		if err != nil {
			return err
		}
		if ok && newest.Line == line {
			return nil
		}
	}

	entry := HistoryEntry{Line: line}
	if result := s.db.Create(&entry); result.Error != nil {
		return result.Error
	}

	s.cursorID = 0
	return s.trim()
}

func (s *SQLiteStore) Clear() error {
	result := s.db.Exec("DELETE FROM history_entries")
	if result.Error != nil {
		return result.Error
	}

	s.cursorID = 0
	return nil
}

func (s *SQLiteStore) SetSize(size int) error {
	if size < 0 {
		return errors.New("history size must not be negative")
	}
	s.size = size
	return s.trim()
}

func (s *SQLiteStore) SetUnique(on bool) error {
	s.unique = on
	return nil
}

// Entries returns every stored entry with its timestamp, most recent first.
func (s *SQLiteStore) Entries() ([]HistoryEntry, error) {
	var entries []HistoryEntry
	result := s.db.Order("id desc").Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("error closing history database: %w", err)
	}
	return sqlDB.Close()
}

func (s *SQLiteStore) trim() error {
	if s.size <= 0 {
		return nil
	}

	result := s.db.Exec(
		"DELETE FROM history_entries WHERE id NOT IN (SELECT id FROM history_entries ORDER BY id DESC LIMIT ?)",
		s.size,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		s.cursorID = 0
	}
	return nil
}
