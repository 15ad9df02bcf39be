// Package rdf contains constants of the RDF Concepts Vocabulary (RDF).
package rdf

import "github.com/glazegraph/glaze/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://www.w3.org/1999/02/22-rdf-syntax-ns#`
	Prefix = `rdf:`
)

const (
	// Types

	// The datatype of language-tagged string values.
	LangString = Prefix + `langString`
	// The class of RDF properties.
	Property = Prefix + `Property`

	// Properties

	// The subject is an instance of a class.
	Type = Prefix + `type`
	// Idiomatic property used for structured values.
	Value = Prefix + `value`
)
