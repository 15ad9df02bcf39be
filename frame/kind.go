package frame

// Kind enumerates the concrete value kinds of the model.
type Kind int

const (
	KindInvalid Kind = iota
	KindNil
	KindBit
	KindIntegral
	KindFloating
	KindInteger
	KindDecimal
	KindString
	KindIRI
	KindInstant
	KindDate
	KindTimeOfDay
	KindDateTime
	KindDuration
	KindPeriod
	KindText
	KindData
	KindObject
	KindArray
)

var kindNames = map[Kind]string{
	KindInvalid:   "invalid",
	KindNil:       "null",
	KindBit:       "bit",
	KindIntegral:  "integral",
	KindFloating:  "floating",
	KindInteger:   "integer",
	KindDecimal:   "decimal",
	KindString:    "string",
	KindIRI:       "iri",
	KindInstant:   "instant",
	KindDate:      "date",
	KindTimeOfDay: "time",
	KindDateTime:  "datetime",
	KindDuration:  "duration",
	KindPeriod:    "period",
	KindText:      "text",
	KindData:      "data",
	KindObject:    "object",
	KindArray:     "array",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// KindOf returns the concrete kind of v, or KindInvalid for nil and foreign values.
func KindOf(v Value) Kind {
	switch v.(type) {
	case Nil:
		return KindNil
	case Bit:
		return KindBit
	case Integral:
		return KindIntegral
	case Floating:
		return KindFloating
	case Integer:
		return KindInteger
	case Decimal:
		return KindDecimal
	case String:
		return KindString
	case IRI:
		return KindIRI
	case Instant:
		return KindInstant
	case Date:
		return KindDate
	case TimeOfDay:
		return KindTimeOfDay
	case DateTime:
		return KindDateTime
	case Duration:
		return KindDuration
	case Period:
		return KindPeriod
	case Text:
		return KindText
	case Data:
		return KindData
	case Object:
		return KindObject
	case Array:
		return KindArray
	}
	return KindInvalid
}

// IsArray reports whether v is an Array value.
func IsArray(v Value) bool {
	_, ok := v.(Array)
	return ok
}

// IsObject reports whether v is an Object value.
func IsObject(v Value) bool {
	_, ok := v.(Object)
	return ok
}
