package frame

import (
	"math/big"
	"testing"
	"time"

	"golang.org/x/text/language"
)

var casesEqual = []struct {
	a, b Value
	eq   bool
}{
	{Nil{}, Nil{}, true},
	{Bit(true), Bit(true), true},
	{Bit(true), Bit(false), false},
	{Integral(3), Integral(3), true},
	{Integral(3), Floating(3), false}, // kinds are never conflated
	{Integral(3), NewInteger(3), false},
	{NewInteger(42), NewInteger(42), true},
	{NewDecimal(30, -1), NewDecimal(3, 0), true}, // 3.0 == 3 as decimals
	{String("a"), String("a"), true},
	{String("a"), IRI("a"), false},
	{IRI("http://example.com/x"), IRI("http://example.com/x"), true},
	{
		Instant(time.Date(2023, 7, 1, 10, 0, 0, 0, time.UTC)),
		Instant(time.Date(2023, 7, 1, 12, 0, 0, 0, time.FixedZone("X", 2*60*60))),
		true, // same instant, different zones
	},
	{Date{2023, time.July, 1}, Date{2023, time.July, 1}, true},
	{Text{"name", language.English}, Text{"name", language.English}, true},
	{Text{"name", language.English}, Text{"name", language.French}, false},
	{Data{"a", IRI("http://example.com/t")}, Data{"a", IRI("http://example.com/t")}, true},
	{Object{"a": Integral(1)}, Object{"a": Integral(1)}, true},
	{Object{"a": Integral(1)}, Object{"a": Integral(2)}, false},
	{Array{Integral(1), Integral(2)}, Array{Integral(1), Integral(2)}, true},
	{Array{Integral(1)}, Array{Integral(1), Integral(2)}, false},
	{nil, nil, true},
	{Integral(1), nil, false},
}

func TestEqual(t *testing.T) {
	for i, c := range casesEqual {
		if eq := Equal(c.a, c.b); eq != c.eq {
			t.Errorf("case %d: Equal(%s, %s) = %v", i+1, StringOf(c.a), StringOf(c.b), eq)
		}
	}
}

func TestHashOf(t *testing.T) {
	a := HashOf(String("abc"))
	b := HashOf(String("abc"))
	if string(a) != string(b) {
		t.Fatal("hash is not stable")
	}
	if string(a) == string(HashOf(IRI("abc"))) {
		t.Fatal("kinds must hash differently")
	}
	if len(a) != HashSize {
		t.Fatal("unexpected hash size:", len(a))
	}
}

var casesKind = []struct {
	val  Value
	kind Kind
}{
	{Nil{}, KindNil},
	{Bit(false), KindBit},
	{Integral(1), KindIntegral},
	{Floating(1), KindFloating},
	{Integer{Int: big.NewInt(1)}, KindInteger},
	{NewDecimal(1, 0), KindDecimal},
	{String("a"), KindString},
	{IRI("a"), KindIRI},
	{Instant{}, KindInstant},
	{Date{}, KindDate},
	{TimeOfDay{}, KindTimeOfDay},
	{DateTime{}, KindDateTime},
	{Duration(0), KindDuration},
	{Period{}, KindPeriod},
	{Text{}, KindText},
	{Data{}, KindData},
	{Object{}, KindObject},
	{Array{}, KindArray},
}

func TestKindOf(t *testing.T) {
	for i, c := range casesKind {
		if k := KindOf(c.val); k != c.kind {
			t.Errorf("case %d: KindOf(%s) = %v, expected %v", i+1, c.val, k, c.kind)
		}
	}
}

func TestStructured(t *testing.T) {
	if !IsArray(Array{}) || IsArray(Object{}) || IsArray(String("a")) {
		t.Fatal("unexpected IsArray result")
	}
	if !IsObject(Object{}) || IsObject(Array{}) {
		t.Fatal("unexpected IsObject result")
	}
}

func TestParse(t *testing.T) {
	i, ok := ParseInteger("123456789012345678901234567890")
	if !ok {
		t.Fatal("integer did not parse")
	}
	if i.Int.String() != "123456789012345678901234567890" {
		t.Fatal("unexpected integer:", i.Int)
	}
	if _, ok := ParseInteger("12.5"); ok {
		t.Fatal("fractional integer parsed")
	}
	if _, err := ParseDecimal("3.14"); err != nil {
		t.Fatal("decimal did not parse:", err)
	}
	if _, err := ParseDecimal("abc"); err == nil {
		t.Fatal("malformed decimal parsed")
	}
}
