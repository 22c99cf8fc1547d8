// Package snippets defines the snippet record, the category registry and
// catalog validation shared by every snipdeck component.
package snippets

// Snippet is a single catalog record. Code is carried verbatim and is never
// executed or rewritten.
type Snippet struct {
	ID       string      `json:"id,omitempty" yaml:"id,omitempty"`
	RefID    int         `json:"ref_id,omitempty" yaml:"ref_id,omitempty"`
	Title    string      `json:"title" yaml:"title" validate:"required,max=256"`
	Language string      `json:"language" yaml:"language"`
	Category CategoryKey `json:"category" yaml:"category" validate:"required"`
	Code     string      `json:"code" yaml:"code" validate:"required"`
	Tags     []string    `json:"tags" yaml:"tags"`
}

// Clone returns a copy of the snippet that shares no mutable state with s.
func (s Snippet) Clone() Snippet {
	out := s
	if s.Tags != nil {
		out.Tags = make([]string, len(s.Tags))
		copy(out.Tags, s.Tags)
	}
	return out
}

// CloneAll copies every snippet in list. A nil list yields an empty slice.
func CloneAll(list []Snippet) []Snippet {
	out := make([]Snippet, len(list))
	for i, s := range list {
		out[i] = s.Clone()
	}
	return out
}

// IDs returns the ids of list in order.
func IDs(list []Snippet) []string {
	ids := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	return ids
}

// FindByID returns the first snippet with the given id.
func FindByID(list []Snippet, id string) (Snippet, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return Snippet{}, false
}
