// Package focus decides whether keystrokes should be ignored because the user
// is typing into a text-editing element.
package focus

import (
	"strings"
	"sync"
)

// Element is the subset of a focused UI element the predicate inspects.
type Element interface {
	// TagName returns the element's tag, in any case.
	TagName() string

	// Attribute returns the value of the named attribute and whether it is set.
	Attribute(name string) (string, bool)
}

// Source reports the currently focused element.
type Source interface {
	// ActiveElement returns nil when nothing is focused.
	ActiveElement() Element
}

// defaultTextTags are the tags that always accept text input.
var defaultTextTags = []string{"input", "textarea"}

// ShouldReject reports whether keystrokes should be ignored: the focused
// element is an input, a textarea or one of the extra tags (compared without
// case), has role="textbox", or is contenteditable ("true" or
// "plaintext-only"). A nil source or no focused element never rejects.
func ShouldReject(src Source, ignoreWhenFocused []string) bool {
	if src == nil {
		return false
	}
	el := src.ActiveElement()
	if el == nil {
		return false
	}

	tag := strings.ToLower(el.TagName())
	for _, t := range defaultTextTags {
		if tag == t {
			return true
		}
	}
	for _, t := range ignoreWhenFocused {
		if tag == strings.ToLower(t) {
			return true
		}
	}

	if role, ok := el.Attribute("role"); ok && role == "textbox" {
		return true
	}
	if ce, ok := el.Attribute("contenteditable"); ok && (ce == "true" || ce == "plaintext-only") {
		return true
	}
	return false
}

// Predicate reports whether keystrokes should currently be ignored.
type Predicate func() bool

// NewPredicate binds a source and extra tag names into a Predicate.
func NewPredicate(src Source, ignoreWhenFocused []string) Predicate {
	extra := append([]string(nil), ignoreWhenFocused...)
	return func() bool {
		return ShouldReject(src, extra)
	}
}

// Node is a plain Element value for hosts without a document model.
type Node struct {
	Tag   string
	Attrs map[string]string
}

// NewNode creates a node with the given tag and attribute pairs
// ("role", "textbox", ...). A trailing odd name is ignored.
func NewNode(tag string, attrs ...string) *Node {
	n := &Node{Tag: tag, Attrs: make(map[string]string, len(attrs)/2)}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attrs[attrs[i]] = attrs[i+1]
	}
	return n
}

// TagName implements Element.
func (n *Node) TagName() string {
	return n.Tag
}

// Attribute implements Element.
func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// Tracker holds the focused element for hosts that manage focus themselves.
// It is safe for concurrent use.
type Tracker struct {
	mu     sync.RWMutex
	active Element
}

// NewTracker creates a tracker with nothing focused.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Focus sets the focused element.
func (t *Tracker) Focus(el Element) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = el
}

// Blur clears the focus.
func (t *Tracker) Blur() {
	t.Focus(nil)
}

// ActiveElement implements Source.
func (t *Tracker) ActiveElement() Element {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}
