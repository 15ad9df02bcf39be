// Package frame defines the semi-structured value model shared by the shape
// and query constraint algebras.
//
// Values form an open set of small concrete kinds in the RDF tradition:
// scalars (booleans, numbers, strings, IRIs, temporals and temporal amounts),
// localized and typed text, and the two structured kinds Object and Array.
// All values are immutable; equality and hashing operate on a canonical
// string key.
package frame

import (
	"crypto/sha1"
	"hash"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Value is a single node of the value model.
type Value interface {
	String() string
}

// Equaler interface is implemented by values that need a special equality check.
type Equaler interface {
	Equal(v Value) bool
}

// HashSize is a size of the slice returned by HashOf.
const HashSize = sha1.Size

var hashPool = sync.Pool{
	New: func() interface{} { return sha1.New() },
}

// HashOf calculates a hash of value v.
func HashOf(v Value) []byte {
	key := make([]byte, HashSize)
	HashTo(v, key)
	return key
}

// HashTo calculates a hash of value v, storing it in a slice p.
func HashTo(v Value, p []byte) {
	h := hashPool.Get().(hash.Hash)
	h.Reset()
	defer hashPool.Put(h)
	if len(p) < HashSize {
		panic("buffer too small to fit the hash")
	}
	if v != nil {
		h.Write([]byte(v.String()))
	}
	h.Sum(p[:0])
}

// StringOf safely calls v.String, returning an empty string in case of nil Value.
func StringOf(v Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// Equal reports structural equality of two values.
//
// Kinds are never conflated: Integral(3) and Decimal("3") are different
// values even though they compare as equal numbers.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if eq, ok := a.(Equaler); ok {
		return eq.Equal(b)
	}
	if KindOf(a) != KindOf(b) {
		return false
	}
	return a.String() == b.String()
}

const (
	nsXSD = `http://www.w3.org/2001/XMLSchema#`

	iriBoolean  = nsXSD + `boolean`
	iriLong     = nsXSD + `long`
	iriDouble   = nsXSD + `double`
	iriInteger  = nsXSD + `integer`
	iriDecimal  = nsXSD + `decimal`
	iriInstant  = nsXSD + `dateTimeStamp`
	iriDate     = nsXSD + `date`
	iriTime     = nsXSD + `time`
	iriDateTime = nsXSD + `dateTime`
	iriDuration = nsXSD + `duration`
	iriPeriod   = nsXSD + `yearMonthDuration`
)

func typed(val, dt string) string {
	return `"` + val + `"^^<` + dt + `>`
}

// Nil is the null value.
type Nil struct{}

func (Nil) String() string { return `null` }

// Bit is a boolean value.
type Bit bool

func (v Bit) String() string {
	if bool(v) {
		return typed(`true`, iriBoolean)
	}
	return typed(`false`, iriBoolean)
}

// Integral is a native wrapper for the int64 type.
type Integral int64

func (v Integral) String() string {
	return typed(strconv.FormatInt(int64(v), 10), iriLong)
}

// Floating is a native wrapper for the float64 type.
type Floating float64

func (v Floating) String() string {
	return typed(strconv.FormatFloat(float64(v), 'E', -1, 64), iriDouble)
}

// Integer is an arbitrary-precision integer value.
type Integer struct {
	Int *big.Int
}

// NewInteger returns an Integer value for i.
func NewInteger(i int64) Integer { return Integer{Int: big.NewInt(i)} }

// ParseInteger parses a base-10 arbitrary-precision integer.
func ParseInteger(s string) (Integer, bool) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Integer{}, false
	}
	return Integer{Int: i}, true
}

func (v Integer) String() string {
	if v.Int == nil {
		return typed(`0`, iriInteger)
	}
	return typed(v.Int.String(), iriInteger)
}

func (v Integer) Equal(o Value) bool {
	w, ok := o.(Integer)
	if !ok {
		return false
	}
	if v.Int == nil || w.Int == nil {
		return (v.Int == nil || v.Int.Sign() == 0) && (w.Int == nil || w.Int.Sign() == 0)
	}
	return v.Int.Cmp(w.Int) == 0
}

// Decimal is an arbitrary-precision decimal value.
type Decimal decimal.Decimal

// NewDecimal returns a Decimal value for the given coefficient and exponent.
func NewDecimal(value int64, exp int32) Decimal {
	return Decimal(decimal.New(value, exp))
}

// ParseDecimal parses a decimal literal such as "3.14".
func ParseDecimal(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	return Decimal(d), err
}

func (v Decimal) String() string {
	return typed(decimal.Decimal(v).String(), iriDecimal)
}

func (v Decimal) Equal(o Value) bool {
	w, ok := o.(Decimal)
	if !ok {
		return false
	}
	return decimal.Decimal(v).Equal(decimal.Decimal(w))
}

// String is a plain string value.
type String string

func (v String) String() string { return strconv.Quote(string(v)) }

// IRI is an Internationalized Resource Identifier (ex: <name>).
type IRI string

func (v IRI) String() string { return `<` + string(v) + `>` }

// Instant is an absolute point on the time line.
type Instant time.Time

func (v Instant) String() string {
	return typed(time.Time(v).UTC().Format(time.RFC3339Nano), iriInstant)
}

func (v Instant) Equal(o Value) bool {
	w, ok := o.(Instant)
	if !ok {
		return false
	}
	return time.Time(v).Equal(time.Time(w))
}

// Date is a civil calendar date with no time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (v Date) String() string {
	return typed(v.text(), iriDate)
}

func (v Date) text() string {
	t := time.Date(v.Year, v.Month, v.Day, 0, 0, 0, 0, time.UTC)
	return t.Format("2006-01-02")
}

// TimeOfDay is a civil clock time with no date and no time zone.
type TimeOfDay struct {
	Hour, Min, Sec, Nsec int
}

func (v TimeOfDay) String() string {
	return typed(v.text(), iriTime)
}

func (v TimeOfDay) text() string {
	t := time.Date(2000, 1, 1, v.Hour, v.Min, v.Sec, v.Nsec, time.UTC)
	return t.Format("15:04:05.999999999")
}

// DateTime is a civil date-time with no time zone.
type DateTime struct {
	Date Date
	Time TimeOfDay
}

func (v DateTime) String() string {
	return typed(v.Date.text()+"T"+v.Time.text(), iriDateTime)
}

// Duration is an exact amount of time.
type Duration time.Duration

func (v Duration) String() string {
	return typed(time.Duration(v).String(), iriDuration)
}

// Period is a calendar-based amount of time.
type Period struct {
	Years, Months, Days int
}

func (v Period) String() string {
	return typed("P"+strconv.Itoa(v.Years)+"Y"+strconv.Itoa(v.Months)+"M"+strconv.Itoa(v.Days)+"D", iriPeriod)
}

// Text is a localized string value (ex: "name"@en).
type Text struct {
	Value string
	Lang  language.Tag
}

func (v Text) String() string {
	return strconv.Quote(v.Value) + `@` + v.Lang.String()
}

// Data is a string value tagged with a datatype IRI (ex: "name"^^<type>).
type Data struct {
	Value string
	Type  IRI
}

func (v Data) String() string {
	return typed(v.Value, string(v.Type))
}

// Object is a structured value mapping field names to nested values.
type Object map[string]Value

func (v Object) String() string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(name))
		b.WriteByte(':')
		b.WriteString(StringOf(v[name]))
	}
	b.WriteByte('}')
	return b.String()
}

func (v Object) Equal(o Value) bool {
	w, ok := o.(Object)
	if !ok || len(v) != len(w) {
		return false
	}
	for name, a := range v {
		b, ok := w[name]
		if !ok || !Equal(a, b) {
			return false
		}
	}
	return true
}

// Array is an ordered collection of values.
type Array []Value

func (v Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(StringOf(e))
	}
	b.WriteByte(']')
	return b.String()
}

func (v Array) Equal(o Value) bool {
	w, ok := o.(Array)
	if !ok || len(v) != len(w) {
		return false
	}
	for i, e := range v {
		if !Equal(e, w[i]) {
			return false
		}
	}
	return true
}

// finite reports whether a float is an ordinary number.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
