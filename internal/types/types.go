// Package types is the catalog of Sable's primitive types. The set is
// closed: int, float, double, string, void. Type names in source match
// case-insensitively; Resolve is the only way in.
package types

import (
	"fmt"
	"strings"
)

// Primitive identifies one of the built-in types.
type Primitive uint8

const (
	Invalid Primitive = iota
	Int
	Float
	Double
	String
	Void
)

func (p Primitive) String() string {
	switch p {
	case Invalid:
		return "invalid"
	case Int:
		return "int"
	case Float:
		return "float"
	case Double:
		return "double"
	case String:
		return "string"
	case Void:
		return "void"
	default:
		return fmt.Sprintf("Primitive(%d)", p)
	}
}

// IsNumeric reports whether values of p parse as numbers.
func (p Primitive) IsNumeric() bool {
	return p == Int || p == Float || p == Double
}

var byName = map[string]Primitive{
	"int":    Int,
	"float":  Float,
	"double": Double,
	"string": String,
	"void":   Void,
}

// Resolve maps a source spelling to its primitive, ignoring case.
// An unknown name is an error: the caller is expected to stop analyzing
// the file, since every later check would be built on a broken type.
func Resolve(name string) (Primitive, error) {
	if p, ok := byName[name]; ok {
		return p, nil
	}
	if p, ok := byName[strings.ToLower(name)]; ok {
		return p, nil
	}
	return Invalid, fmt.Errorf("unknown type '%s'", name)
}

// MustResolve is Resolve for spellings already validated by the parser.
func MustResolve(name string) Primitive {
	p, err := Resolve(name)
	if err != nil {
		panic(err)
	}
	return p
}
