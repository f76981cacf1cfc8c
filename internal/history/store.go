// Package history records previously entered lines. Stores only support
// walking from the newest entry towards the oldest; Snapshot turns that walk
// into an indexable, newest-first slice.
package history

// Store is an append-oriented record of entered lines with a traversal
// cursor. There is no length and no random access: callers reset the cursor
// with Newest and step towards older entries with Older. Both return ok=false
// once there is nothing more to visit.
type Store interface {
	// Newest moves the cursor to the most recently entered line and returns it.
	Newest() (entry string, ok bool, err error)
	// Older moves the cursor one entry towards the oldest line and returns it.
	Older() (entry string, ok bool, err error)

	// Enter appends a line.
	Enter(line string) error
	// Clear removes every entry.
	Clear() error
	// SetSize bounds the number of entries kept; 0 means unlimited.
	SetSize(size int) error
	// SetUnique, when on, drops a line equal to the most recent entry.
	SetUnique(on bool) error

	// Close releases the store.
	Close() error
}
