package snipdeck

import (
	"context"
	"sync"

	"github.com/agentstation/snipdeck/pkg/clipboard"
	"github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/query"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// LoadState is the catalog state of a Session.
type LoadState int

const (
	// StateIdle means no load has been triggered yet.
	StateIdle LoadState = iota
	// StateLoading means a load is pending.
	StateLoading
	// StateReady means the latest load has completed.
	StateReady
)

// String returns the state name.
func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "idle"
	}
}

// View is what a Session currently shows.
type View struct {
	Snippets []snippets.Snippet   `json:"snippets"`
	Total    int                  `json:"total"`
	Showing  int                  `json:"showing"`
	Search   string               `json:"search"`
	Category snippets.CategoryKey `json:"category"`
	// Empty marks the no-results branch.
	Empty bool `json:"empty"`
}

// Stats returns the view's footer counts.
func (v View) Stats() query.Stats {
	return query.Stats{Total: v.Total, Showing: v.Showing}
}

// Session holds the state of one interactive user: search term, selected
// category, loaded catalog, open detail and copy feedback. Sessions share
// nothing with each other.
type Session struct {
	client   *client
	feedback *clipboard.Feedback

	mu       sync.Mutex
	search   string
	category snippets.CategoryKey
	catalog  []snippets.Snippet
	state    LoadState
	gen      uint64
	ready    chan struct{}
	detail   *snippets.Snippet
}

func newSession(c *client) *Session {
	return &Session{
		client:   c,
		feedback: clipboard.NewFeedback(c.config.clipboard, c.config.copyFeedback),
		category: snippets.All,
		ready:    make(chan struct{}),
	}
}

// State returns the current load state.
func (s *Session) State() LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetSearch sets the search term.
func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = term
}

// Search returns the search term.
func (s *Session) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// Category returns the selected category.
func (s *Session) Category() snippets.CategoryKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// Start loads the selected category. It returns immediately.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	key := s.category
	s.mu.Unlock()
	_ = s.SelectCategory(ctx, key)
}

// SelectCategory selects key and loads its snippets asynchronously. Only the
// most recent selection publishes its result; earlier loads still run to
// completion but are discarded.
func (s *Session) SelectCategory(ctx context.Context, key snippets.CategoryKey) error {
	parsed, err := s.client.Registry().Parse(string(key))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.category = parsed
	s.gen++
	gen := s.gen
	if s.state == StateReady {
		s.ready = make(chan struct{})
	}
	s.state = StateLoading
	s.mu.Unlock()

	go s.load(context.WithoutCancel(ctx), gen, parsed)
	return nil
}

func (s *Session) load(ctx context.Context, gen uint64, key snippets.CategoryKey) {
	var list []snippets.Snippet
	if s.client.isStatic() {
		// The single-array variant filters the full catalog at view time.
		list, _ = s.client.Catalog(ctx)
	} else {
		list = s.client.loader.LoadByCategory(ctx, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.client.logger.Debug().
			Str("category", key.String()).
			Uint64("generation", gen).
			Msg("Discarding superseded load")
		return
	}
	s.catalog = list
	s.state = StateReady
	close(s.ready)
}

// Wait blocks until the latest load has completed or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.state == StateReady {
			s.mu.Unlock()
			return nil
		}
		ch := s.ready
		s.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Visible returns the filtered view. While a load is pending it returns
// errors.ErrLoading and never filters a partial catalog.
func (s *Session) Visible() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return View{}, errors.ErrLoading
	}

	result := query.Apply(s.catalog, s.search, s.category)
	return View{
		Snippets: snippets.CloneAll(result),
		Total:    len(s.catalog),
		Showing:  len(result),
		Search:   s.search,
		Category: s.category,
		Empty:    len(result) == 0,
	}, nil
}

// Open shows the detail view of the loaded snippet with the given id.
func (s *Session) Open(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return errors.ErrLoading
	}
	sn, ok := snippets.FindByID(s.catalog, id)
	if !ok {
		return errors.NewNotFoundError("snippet", id)
	}
	sn = sn.Clone()
	s.detail = &sn
	return nil
}

// Detail returns the open snippet, if any.
func (s *Session) Detail() (snippets.Snippet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail == nil {
		return snippets.Snippet{}, false
	}
	return s.detail.Clone(), true
}

// Close dismisses the detail view.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = nil
}

// Copy writes the code of snippet id to the clipboard and returns the
// resulting feedback. A clipboard failure is reported only as StatusFailed.
func (s *Session) Copy(ctx context.Context, id string) (clipboard.Status, error) {
	s.mu.Lock()
	sn, ok := snippets.FindByID(s.catalog, id)
	s.mu.Unlock()

	if !ok {
		var err error
		sn, err = s.client.Find(ctx, id)
		if err != nil {
			return clipboard.StatusIdle, err
		}
	}

	status := s.feedback.Copy(id, sn.Code)
	if status == clipboard.StatusFailed {
		s.client.logger.Warn().Str("snippet_id", id).Msg("Copy to clipboard failed")
	}
	return status, nil
}

// CopyStatus returns the copy feedback for snippet id.
func (s *Session) CopyStatus(id string) clipboard.Status {
	return s.feedback.Status(id)
}

// OnCopyStatus registers fn to be called when any copy feedback changes.
func (s *Session) OnCopyStatus(fn clipboard.ChangeFunc) {
	s.feedback.OnChange(fn)
}
