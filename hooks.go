package snipdeck

import (
	"reflect"
	"sync"

	"github.com/agentstation/snipdeck/pkg/snippets"
)

// Hook function types for catalog events
type (
	// CatalogLoadedHook is called after every completed full load
	CatalogLoadedHook func(snap Snapshot)

	// SnippetAddedHook is called when a reload adds a snippet
	SnippetAddedHook func(s snippets.Snippet)

	// SnippetUpdatedHook is called when a reload changes a snippet
	SnippetUpdatedHook func(old, new snippets.Snippet)

	// SnippetRemovedHook is called when a reload removes a snippet
	SnippetRemovedHook func(s snippets.Snippet)
)

// hooks manages event callbacks for catalog changes
type hooks struct {
	mu               sync.RWMutex
	onCatalogLoaded  []CatalogLoadedHook
	onSnippetAdded   []SnippetAddedHook
	onSnippetUpdated []SnippetUpdatedHook
	onSnippetRemoved []SnippetRemovedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnCatalogLoaded registers a callback for every completed load
func (c *client) OnCatalogLoaded(fn CatalogLoadedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onCatalogLoaded = append(c.hooks.onCatalogLoaded, fn)
}

// OnSnippetAdded registers a callback for when snippets are added
func (c *client) OnSnippetAdded(fn SnippetAddedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onSnippetAdded = append(c.hooks.onSnippetAdded, fn)
}

// OnSnippetUpdated registers a callback for when snippets are updated
func (c *client) OnSnippetUpdated(fn SnippetUpdatedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onSnippetUpdated = append(c.hooks.onSnippetUpdated, fn)
}

// OnSnippetRemoved registers a callback for when snippets are removed
func (c *client) OnSnippetRemoved(fn SnippetRemovedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onSnippetRemoved = append(c.hooks.onSnippetRemoved, fn)
}

// triggerCatalogLoaded calls every CatalogLoadedHook with its own copy of snap
func (h *hooks) triggerCatalogLoaded(snap Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onCatalogLoaded {
		hook(snap.Clone())
	}
}

// triggerCatalogUpdate compares old and new catalogs by id and triggers appropriate hooks.
// The first load has no old catalog and reports no changes.
func (h *hooks) triggerCatalogUpdate(oldList, newList []snippets.Snippet) {
	if oldList == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	oldMap := make(map[string]snippets.Snippet, len(oldList))
	for _, s := range oldList {
		oldMap[s.ID] = s
	}
	newMap := make(map[string]snippets.Snippet, len(newList))
	for _, s := range newList {
		newMap[s.ID] = s
	}

	for _, s := range newList {
		if old, exists := oldMap[s.ID]; exists {
			if !reflect.DeepEqual(old, s) {
				for _, hook := range h.onSnippetUpdated {
					hook(old.Clone(), s.Clone())
				}
			}
			continue
		}
		for _, hook := range h.onSnippetAdded {
			hook(s.Clone())
		}
	}

	for _, s := range oldList {
		if _, exists := newMap[s.ID]; !exists {
			for _, hook := range h.onSnippetRemoved {
				hook(s.Clone())
			}
		}
	}
}
