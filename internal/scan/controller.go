package scan

import (
	"database/sql"
	"sync"
)

// Controller hands out one scan session per device, so two phones
// scanning at once do not share candidate state.
type Controller struct {
	db     *sql.DB
	lookup Lookup

	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewController creates a controller backed by the given store handle
// and lookup collaborator.
func NewController(db *sql.DB, lookup Lookup) *Controller {
	return &Controller{
		db:       db,
		lookup:   lookup,
		sessions: make(map[int64]*Session),
	}
}

// Session returns the scan session for a device, creating it on first use.
func (c *Controller) Session(deviceID int64) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, ok := c.sessions[deviceID]
	if !ok {
		session = NewSession(c.db, c.lookup)
		c.sessions[deviceID] = session
	}
	return session
}
