package history

import (
	"errors"
)

// MemoryStore keeps history in process memory.
type MemoryStore struct {
	// entries is ordered oldest first.
	entries []string
	// cursor indexes entries; -1 when unset.
	cursor int
	size   int
	unique bool
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cursor: -1}
}

func (s *MemoryStore) Newest() (string, bool, error) {
	if len(s.entries) == 0 {
		s.cursor = -1
		return "", false, nil
	}
	s.cursor = len(s.entries) - 1
	return s.entries[s.cursor], true, nil
}

func (s *MemoryStore) Older() (string, bool, error) {
	if s.cursor <= 0 {
		return "", false, nil
	}
	s.cursor--
	return s.entries[s.cursor], true, nil
}

func (s *MemoryStore) Enter(line string) error {
	if s.unique && len(s.entries) > 0 && s.entries[len(s.entries)-1] == line {
		return nil
	}
	s.entries = append(s.entries, line)
	s.trim()
	s.cursor = -1
	return nil
}

func (s *MemoryStore) Clear() error {
	s.entries = nil
	s.cursor = -1
	return nil
}

func (s *MemoryStore) SetSize(size int) error {
	if size < 0 {
		return errors.New("history size must not be negative")
	}
	s.size = size
	s.trim()
	return nil
}

func (s *MemoryStore) SetUnique(on bool) error {
	s.unique = on
	return nil
}

func (s *MemoryStore) Close() error {
	s.entries = nil
	return nil
}

func (s *MemoryStore) trim() {
	if s.size > 0 && len(s.entries) > s.size {
		s.entries = append([]string(nil), s.entries[len(s.entries)-s.size:]...)
		s.cursor = -1
	}
}
