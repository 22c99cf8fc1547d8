package snippets

import (
	"fmt"
	"strings"

	"github.com/agentstation/snipdeck/pkg/errors"
)

// CategoryKey identifies a category of snippets.
type CategoryKey string

// All is the reserved sentinel meaning "no category filter". It has a
// display label but is never the category of a record.
const All CategoryKey = "all"

// Default category keys.
const (
	JavaScript CategoryKey = "javascript"
	React      CategoryKey = "react"
	SpringBoot CategoryKey = "spring-boot"
	Java       CategoryKey = "java"
	Svelte     CategoryKey = "svelte"
	Python     CategoryKey = "python"
)

// String returns the key as a string.
func (k CategoryKey) String() string {
	return string(k)
}

// IsAll reports whether k is the sentinel or empty.
func (k CategoryKey) IsAll() bool {
	return k == All || k == ""
}

// Category pairs a key with its display label.
type Category struct {
	Key   CategoryKey `json:"key" yaml:"key"`
	Label string      `json:"label" yaml:"label"`
}

// Registry is an ordered, immutable mapping of category keys to labels.
type Registry struct {
	categories []Category
	labels     map[CategoryKey]string
}

var defaultRegistry = mustRegistry(
	Category{Key: JavaScript, Label: "JavaScript"},
	Category{Key: React, Label: "React"},
	Category{Key: SpringBoot, Label: "Spring Boot"},
	Category{Key: Java, Label: "Java"},
	Category{Key: Svelte, Label: "Svelte"},
	Category{Key: Python, Label: "Python"},
)

// DefaultRegistry returns the built-in category registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// NewRegistry builds a registry from categories in declaration order.
func NewRegistry(categories ...Category) (*Registry, error) {
	r := &Registry{
		categories: make([]Category, 0, len(categories)),
		labels:     make(map[CategoryKey]string, len(categories)),
	}
	for _, c := range categories {
		switch {
		case strings.TrimSpace(string(c.Key)) == "":
			return nil, errors.NewValidationError("key", c.Key, "category key cannot be empty")
		case c.Key == All:
			return nil, errors.NewValidationError("key", c.Key, "\"all\" is reserved")
		}
		if _, dup := r.labels[c.Key]; dup {
			return nil, errors.NewValidationError("key", c.Key, fmt.Sprintf("duplicate category %q", c.Key))
		}
		r.categories = append(r.categories, c)
		r.labels[c.Key] = c.Label
	}
	return r, nil
}

func mustRegistry(categories ...Category) *Registry {
	r, err := NewRegistry(categories...)
	if err != nil {
		panic(err)
	}
	return r
}

// Keys returns the concrete category keys in declaration order.
func (r *Registry) Keys() []CategoryKey {
	keys := make([]CategoryKey, len(r.categories))
	for i, c := range r.categories {
		keys[i] = c.Key
	}
	return keys
}

// Categories returns the concrete categories in declaration order.
func (r *Registry) Categories() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Len returns the number of concrete categories.
func (r *Registry) Len() int {
	return len(r.categories)
}

// Has reports whether key is a concrete category of the registry.
func (r *Registry) Has(key CategoryKey) bool {
	_, ok := r.labels[key]
	return ok
}

// Label returns the display label for key. The All sentinel resolves to "All".
func (r *Registry) Label(key CategoryKey) (string, bool) {
	if key == All {
		return "All", true
	}
	label, ok := r.labels[key]
	return label, ok
}

// Parse trims s and checks it against the registry. The All sentinel is accepted.
func (r *Registry) Parse(s string) (CategoryKey, error) {
	key := CategoryKey(strings.TrimSpace(s))
	if key == "" || key == All {
		return All, nil
	}
	if !r.Has(key) {
		return "", errors.NewValidationError("category", s, fmt.Sprintf("unknown category %q", s))
	}
	return key, nil
}

// ParseCategory parses s against the default registry.
func ParseCategory(s string) (CategoryKey, error) {
	return defaultRegistry.Parse(s)
}
