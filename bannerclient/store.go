package bannerclient

import (
	"sync"
	"time"
)

// Names of the persisted browser artifacts. The cookie is a simple "consent
// was given" marker with its own expiry; the details key holds the full
// decision blob.
const (
	ConsentCookieName = "dsgvo_consent"
	ConsentDetailsKey = "dsgvo_consent_details"
)

// ConsentDetails is the locally cached decision, the Go equivalent of the
// localStorage blob the browser script writes.
type ConsentDetails struct {
	Timestamp          time.Time `json:"timestamp"`
	AcceptedCategories []string  `json:"accepted_categories"`
	IsAcceptAll        bool      `json:"is_accept_all"`
	ExpiresAt          time.Time `json:"expires_at"`
	Version            string    `json:"version"`
}

// Store abstracts the visitor-local persistence (cookie flag plus detail
// blob) so the session can run without a DOM.
type Store interface {
	// ConsentGiven reports whether the consent marker exists and has not
	// expired at the given instant.
	ConsentGiven(now time.Time) bool
	// SetConsentGiven writes the marker with an expiry.
	SetConsentGiven(expiresAt time.Time)
	// Details returns the cached decision blob, if any.
	Details() (ConsentDetails, bool)
	SetDetails(d ConsentDetails)
	// Clear removes both the marker and the blob (consent withdrawal).
	Clear()
}

// MemoryStore is an in-memory Store for headless use and tests.
type MemoryStore struct {
	mu          sync.Mutex
	given       bool
	flagExpires time.Time
	details     *ConsentDetails
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) ConsentGiven(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.given && now.Before(m.flagExpires)
}

func (m *MemoryStore) SetConsentGiven(expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.given = true
	m.flagExpires = expiresAt
}

func (m *MemoryStore) Details() (ConsentDetails, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.details == nil {
		return ConsentDetails{}, false
	}
	return *m.details, true
}

func (m *MemoryStore) SetDetails(d ConsentDetails) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.details = &d
}

func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.given = false
	m.flagExpires = time.Time{}
	m.details = nil
}
