// Package voc implements an RDF namespace (vocabulary) registry and
// expansion of bare terms into absolute IRIs.
package voc

import (
	"strings"
	"sync"
)

// DefaultBase is the vocabulary IRI bare terms expand against unless
// SetBase was called.
const DefaultBase = `app:/terms#`

var (
	mu       sync.RWMutex
	base     = DefaultBase
	prefixes map[string]string
)

// SetBase replaces the base vocabulary IRI used by Expand.
func SetBase(ns string) {
	mu.Lock()
	base = ns
	mu.Unlock()
}

// Base returns the current base vocabulary IRI.
func Base() string {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// RegisterPrefix associates a given prefix with a base vocabulary IRI.
func RegisterPrefix(pref string, ns string) {
	mu.Lock()
	if prefixes == nil {
		prefixes = make(map[string]string)
	}
	prefixes[pref] = ns
	mu.Unlock()
}

// ShortIRI replaces a base IRI of a known vocabulary with its prefix.
//
//	ShortIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type") // returns "rdf:type"
func ShortIRI(iri string) string {
	mu.RLock()
	defer mu.RUnlock()
	for pref, ns := range prefixes {
		if strings.HasPrefix(iri, ns) {
			return pref + iri[len(ns):]
		}
	}
	return iri
}

// FullIRI replaces a known prefix in IRI with its full vocabulary IRI.
//
//	FullIRI("rdf:type") // returns "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
func FullIRI(iri string) string {
	mu.RLock()
	defer mu.RUnlock()
	for pref, ns := range prefixes {
		if strings.HasPrefix(iri, pref) {
			return ns + iri[len(pref):]
		}
	}
	return iri
}

// Expand turns a term into an absolute IRI: prefixed names expand against
// the registered vocabularies, bare terms against the base IRI.
func Expand(term string) string {
	if strings.Contains(term, ":") {
		return FullIRI(term)
	}
	mu.RLock()
	defer mu.RUnlock()
	return base + term
}

// List enumerates all registered prefix-IRI pairs.
func List() (out [][2]string) {
	mu.RLock()
	defer mu.RUnlock()
	out = make([][2]string, 0, len(prefixes))
	for pref, ns := range prefixes {
		out = append(out, [2]string{pref, ns})
	}
	return
}
