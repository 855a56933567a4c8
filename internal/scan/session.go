// Package scan turns a decoded barcode plus looked-up product data into
// a stored product, behind a pending/confirm/cancel protocol. Nothing is
// persisted until the user confirms the candidate.
package scan

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// State is the scan session state.
type State string

// Session states. A session cycles idle → awaiting_lookup →
// candidate/not_found → confirmed/cancelled, and a new scan may begin
// from idle or either terminal state.
const (
	StateIdle           State = "idle"
	StateAwaitingLookup State = "awaiting_lookup"
	StateCandidate      State = "candidate"
	StateNotFound       State = "not_found"
	StateConfirmed      State = "confirmed"
	StateCancelled      State = "cancelled"
)

// ErrNoCandidate is returned by Confirm when the session holds no
// candidate: nothing was scanned, the lookup is still pending, or the
// candidate was already confirmed or cancelled.
var ErrNoCandidate = errors.New("no candidate to confirm")

// Lookup fetches product metadata for a barcode from an external
// service. Unknown barcodes and transport failures both surface as an
// error; the session resolves either into its not-found state rather
// than propagating a fault.
type Lookup interface {
	Fetch(ctx context.Context, barcode string) (*model.ProductInfo, error)
}

// DefaultLookupTimeout bounds a single lookup call. Expiry is treated
// the same as a failed lookup.
const DefaultLookupTimeout = 15 * time.Second

// Session is a single scan session. While a lookup is pending or a
// candidate is awaiting confirmation, further scan input is ignored.
// All methods are safe for concurrent use.
type Session struct {
	db      *sql.DB
	lookup  Lookup
	timeout time.Duration

	mu        sync.Mutex
	state     State
	token     uint64
	barcode   string
	candidate *model.ProductInfo
	inserted  *model.Product
}

// NewSession creates an idle scan session backed by the given store
// handle and lookup collaborator.
func NewSession(db *sql.DB, lookup Lookup) *Session {
	return &Session{
		db:      db,
		lookup:  lookup,
		timeout: DefaultLookupTimeout,
		state:   StateIdle,
	}
}

// Snapshot is a point-in-time view of a session for presentation.
type Snapshot struct {
	State     State              `json:"state"`
	Barcode   string             `json:"barcode,omitempty"`
	Candidate *model.ProductInfo `json:"candidate,omitempty"`
	Inserted  *model.Product     `json:"inserted,omitempty"`
}

// Snapshot returns the session's current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:     s.state,
		Barcode:   s.barcode,
		Candidate: s.candidate,
		Inserted:  s.inserted,
	}
}

// Begin starts a lookup for a freshly scanned barcode. It reports
// whether the scan was accepted: input is ignored while a lookup is
// pending, a candidate awaits confirmation, or a failed lookup has not
// been dismissed yet.
func (s *Session) Begin(barcode string) bool {
	s.mu.Lock()
	switch s.state {
	case StateAwaitingLookup, StateCandidate, StateNotFound:
		s.mu.Unlock()
		return false
	}

	// The token identifies this scan; a response carrying an older
	// token is stale and gets dropped.
	s.token++
	token := s.token
	s.state = StateAwaitingLookup
	s.barcode = barcode
	s.candidate = nil
	s.inserted = nil
	s.mu.Unlock()

	go s.runLookup(token, barcode)
	return true
}

// runLookup performs the external lookup and resolves the session,
// unless the session moved on in the meantime.
func (s *Session) runLookup(token uint64, barcode string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	info, err := s.lookup.Fetch(ctx, barcode)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Stale response: the session was cancelled or a new scan began.
	if token != s.token || s.state != StateAwaitingLookup {
		return
	}

	if err != nil {
		// Not-found and transport errors both resolve into explicit
		// state; the user retries by dismissing and scanning again.
		s.state = StateNotFound
		return
	}

	s.state = StateCandidate
	s.candidate = info
}

// Confirm persists the candidate with amount 1 and returns the stored
// record. Confirmation is single-use: once a confirm is in flight the
// session leaves the candidate state, so a double tap cannot insert a
// duplicate. Returns ErrNoCandidate if there is nothing to confirm.
func (s *Session) Confirm(ctx context.Context) (*model.Product, error) {
	s.mu.Lock()
	if s.state != StateCandidate || s.candidate == nil {
		s.mu.Unlock()
		return nil, ErrNoCandidate
	}
	candidate := s.candidate
	token := s.token
	s.state = StateConfirmed
	s.mu.Unlock()

	product, err := store.InsertProduct(ctx, s.db, candidate.Name, candidate.Brands, candidate.ImageURL)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A new scan may have begun while the insert was in flight; leave
	// the superseding session's state alone and only report the outcome.
	if token != s.token || s.state != StateConfirmed {
		return product, err
	}

	if err != nil {
		// The insert failed; put the candidate back so the user can
		// retry once the storage fault clears.
		s.state = StateCandidate
		return nil, err
	}
	s.inserted = product
	return product, nil
}

// Cancel discards the current scan, returning the session to idle.
// Valid while a lookup is pending, a candidate is shown, or a failed
// lookup is displayed; otherwise a no-op. A lookup response arriving
// after Cancel is dropped.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateAwaitingLookup, StateCandidate, StateNotFound:
		// Bump the token so an in-flight lookup response is ignored;
		// the network call itself is not cancelled.
		s.token++
		s.state = StateCancelled
		s.barcode = ""
		s.candidate = nil
	}
}
