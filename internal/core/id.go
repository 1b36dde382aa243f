package core

import (
	"strconv"
	"sync"
	"time"
)

var idMu sync.Mutex
var lastID int64

// NewID returns a millisecond-timestamp-derived identifier, bumped when two
// calls land on the same millisecond so IDs stay unique and monotonic within
// a process.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}
