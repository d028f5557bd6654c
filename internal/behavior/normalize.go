package behavior

import (
	"fmt"
	"sort"
)

// Normalizer rewrites alias spellings to their canonical label
type Normalizer struct {
	canonical map[string]string // alias -> canonical
}

// NewNormalizer builds a Normalizer from an alias table.
// Returns a ConfigurationError if one alias is claimed by two canonical labels.
func NewNormalizer(aliases AliasTable) (*Normalizer, error) {
	n := &Normalizer{canonical: make(map[string]string)}

	// Iterate canonicals in sorted order so the reported conflict is stable
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, canonical := range keys {
		if canonical == "" {
			return nil, &ConfigurationError{Reason: "canonical label cannot be empty"}
		}
		for _, alias := range aliases[canonical] {
			if alias == "" || alias == canonical {
				continue
			}
			if prev, ok := n.canonical[alias]; ok && prev != canonical {
				return nil, &ConfigurationError{Alias: alias, Canonicals: []string{prev, canonical}}
			}
			n.canonical[alias] = canonical
		}
	}

	// A label that is canonical for one entry must not be rewritten by another
	for _, canonical := range keys {
		if other, ok := n.canonical[canonical]; ok {
			return nil, &ConfigurationError{
				Reason: fmt.Sprintf("canonical label %q is also listed as an alias of %q", canonical, other),
			}
		}
	}

	return n, nil
}

// Canonical returns the canonical spelling of label
func (n *Normalizer) Canonical(label string) string {
	if c, ok := n.canonical[label]; ok {
		return c
	}
	return label
}

// Normalize rewrites the Behavior field of every event in place
func (n *Normalizer) Normalize(events []Event) {
	for i := range events {
		events[i].Behavior = n.Canonical(events[i].Behavior)
	}
}
