// Package rdfs contains constants of the RDF Schema vocabulary (RDFS).
package rdfs

import "github.com/glazegraph/glaze/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://www.w3.org/2000/01/rdf-schema#`
	Prefix = `rdfs:`
)

const (
	// Types

	// The class of classes.
	Class = Prefix + `Class`
	// The class of RDF datatypes.
	Datatype = Prefix + `Datatype`
	// The class of literal values, eg. textual strings and integers.
	Literal = Prefix + `Literal`
	// The class of resources, everything.
	Resource = Prefix + `Resource`

	// Properties

	// A description of the subject resource.
	Comment = Prefix + `comment`
	// A human-readable name for the subject.
	Label = Prefix + `label`
	// The subject is a subclass of a class.
	SubClassOf = Prefix + `subClassOf`
	// The subject is a subproperty of a property.
	SubPropertyOf = Prefix + `subPropertyOf`
)
