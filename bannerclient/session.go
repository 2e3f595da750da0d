// Package bannerclient implements the visitor side of the consent protocol
// as an explicit session object: load the project config, replay a stored
// consent when it is still valid, otherwise prompt, and persist new
// decisions. It mirrors what the embedded banner script does in a browser,
// minus the DOM, so the protocol can be exercised headlessly.
package bannerclient

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"consent-backend/consent"
)

// State of a banner session.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateConfigLoading State = "config-loading"
	StateReplaying     State = "replaying"
	StatePrompting     State = "prompting"
	StateDecided       State = "decided"
	StateReopened      State = "reopened"
)

var (
	// ErrConfigNotLoaded is returned when a decision action arrives before
	// the project config finished loading. Actions fail fast instead of
	// proceeding with an empty model.
	ErrConfigNotLoaded = errors.New("bannerclient: configuration not loaded")

	// ErrSubmissionInFlight guards against duplicate clicks: only one
	// consent submission may be in flight per session.
	ErrSubmissionInFlight = errors.New("bannerclient: consent submission already in flight")
)

// Activator receives the services the visitor consented to, in catalog
// order. In a browser this is where script_code gets injected.
type Activator func(services []consent.Service)

// Session drives one page-load's worth of the consent protocol.
type Session struct {
	mu       sync.Mutex
	api      *apiClient
	store    Store
	activate Activator
	now      func() time.Time

	projectID uint
	state     State
	config    *Config
	catalog   *consent.Catalog
	inFlight  bool
}

// Option customizes a Session.
type Option func(*Session)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) { s.api.http = c }
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession creates a session for one project against one backend origin.
func NewSession(baseURL string, projectID uint, store Store, activate Activator, opts ...Option) *Session {
	s := &Session{
		api:       &apiClient{baseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}},
		store:     store,
		activate:  activate,
		now:       time.Now,
		projectID: projectID,
		state:     StateUninitialized,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Config returns the loaded project config, or nil before Load succeeded.
func (s *Session) Config() *Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Load fetches the project config and resolves the session into either
// Replaying (a valid stored consent exists and its services were activated)
// or Prompting (the decision UI must be shown). A fetch failure resets the
// session to Uninitialized and renders nothing, leaving the host page
// untouched.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateConfigLoading
	s.mu.Unlock()

	cfg, err := s.api.fetchConfig(ctx, s.projectID)
	if err != nil {
		s.mu.Lock()
		s.state = StateUninitialized
		s.mu.Unlock()
		return err
	}

	catalog, err := consent.NewCatalog(cfg.Categories, cfg.Services)
	if err != nil {
		s.mu.Lock()
		s.state = StateUninitialized
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.config = cfg
	s.catalog = catalog

	details, haveDetails := s.store.Details()
	if s.store.ConsentGiven(s.now()) && haveDetails && details.Version == cfg.Version() {
		s.state = StateReplaying
		activate := s.activate
		toActivate := catalog.ServicesForCategoryNames(details.AcceptedCategories)
		s.mu.Unlock()
		if activate != nil {
			activate(toActivate)
		}
		return nil
	}

	s.state = StatePrompting
	s.mu.Unlock()
	return nil
}

// Submit runs a decision action end to end: compute the canonical selection,
// persist it, cache the detail blob locally and activate the granted
// services. On a persistence failure nothing is cached and the in-flight
// guard is released so the visitor can retry.
func (s *Session) Submit(ctx context.Context, action consent.Action, checkedCategoryIDs []uint) (ConsentDetails, error) {
	s.mu.Lock()
	if s.config == nil || s.catalog == nil {
		s.mu.Unlock()
		return ConsentDetails{}, ErrConfigNotLoaded
	}
	if s.inFlight {
		s.mu.Unlock()
		return ConsentDetails{}, ErrSubmissionInFlight
	}
	s.inFlight = true
	catalog := s.catalog
	cfg := s.config
	s.mu.Unlock()

	selection, err := consent.Decide(catalog, action, checkedCategoryIDs)
	if err != nil {
		s.clearInFlight()
		return ConsentDetails{}, err
	}

	resp, err := s.api.submitConsent(ctx, ConsentRequest{
		ProjectID:             s.projectID,
		AcceptedServices:      selection.AcceptedServices,
		AcceptedCategoryNames: selection.AcceptedCategoryNames,
		IsAcceptAll:           selection.IsAcceptAll,
	})
	if err != nil {
		s.clearInFlight()
		return ConsentDetails{}, err
	}

	details := ConsentDetails{
		Timestamp:          s.now().UTC(),
		AcceptedCategories: selection.AcceptedCategoryNames,
		IsAcceptAll:        selection.IsAcceptAll,
		ExpiresAt:          resp.ExpiresAt,
		Version:            cfg.Version(),
	}

	s.mu.Lock()
	s.store.SetConsentGiven(resp.ExpiresAt)
	s.store.SetDetails(details)
	s.state = StateDecided
	s.inFlight = false
	activate := s.activate
	toActivate := catalog.ServicesForCategoryNames(details.AcceptedCategories)
	s.mu.Unlock()

	if activate != nil {
		activate(toActivate)
	}
	return details, nil
}

func (s *Session) clearInFlight() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// HandleAction dispatches a raw data-action string ("acceptAll",
// "acceptSelection", "necessaryOnly", "rejectAll") to Submit.
func (s *Session) HandleAction(ctx context.Context, rawAction string, checkedCategoryIDs []uint) (ConsentDetails, error) {
	action, err := consent.ParseAction(rawAction)
	if err != nil {
		return ConsentDetails{}, err
	}
	return s.Submit(ctx, action, checkedCategoryIDs)
}

// Reopen re-enters the decision UI prefilled with the last saved selection
// without clearing the stored consent. A new Submit moves the session back
// to Decided.
func (s *Session) Reopen() (ConsentDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config == nil {
		return ConsentDetails{}, ErrConfigNotLoaded
	}
	s.state = StateReopened
	details, _ := s.store.Details()
	return details, nil
}

// Withdraw clears the stored consent and records a necessary-only decision,
// implementing the "revoke consent" banner action.
func (s *Session) Withdraw(ctx context.Context) (ConsentDetails, error) {
	s.mu.Lock()
	if s.config == nil {
		s.mu.Unlock()
		return ConsentDetails{}, ErrConfigNotLoaded
	}
	s.store.Clear()
	s.mu.Unlock()
	return s.Submit(ctx, consent.ActionNecessaryOnly, nil)
}
