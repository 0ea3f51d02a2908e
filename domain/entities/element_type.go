package entities

import "fmt"

// ElementType is the host's runtime discriminator for an object.
type ElementType uint8

const (
	TypeNull ElementType = iota
	TypeLogical
	TypeInteger
	TypeReal
	TypeComplex
	// TypeText is a vector whose elements are TypeChar objects.
	TypeText
	// TypeChar is a single host string. Failure messages are TypeChar objects.
	TypeChar
	TypeList
	TypeRaw
)

var elementTypeNames = [...]string{
	TypeNull:    "NULL",
	TypeLogical: "logical",
	TypeInteger: "integer",
	TypeReal:    "double",
	TypeComplex: "complex",
	TypeText:    "character",
	TypeChar:    "char",
	TypeList:    "list",
	TypeRaw:     "raw",
}

// String returns the host-facing name of the tag.
func (t ElementType) String() string {
	if int(t) < len(elementTypeNames) {
		return elementTypeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// IsVector reports whether objects of this type have a length and elements.
func (t ElementType) IsVector() bool {
	switch t {
	case TypeLogical, TypeInteger, TypeReal, TypeComplex, TypeText, TypeList, TypeRaw:
		return true
	}
	return false
}

// ParseElementType resolves a host-facing name (or a common alias) to a tag.
func ParseElementType(name string) (ElementType, error) {
	switch name {
	case "NULL", "null":
		return TypeNull, nil
	case "logical", "bool":
		return TypeLogical, nil
	case "integer", "int":
		return TypeInteger, nil
	case "double", "real", "numeric":
		return TypeReal, nil
	case "complex":
		return TypeComplex, nil
	case "character", "text", "string":
		return TypeText, nil
	case "char":
		return TypeChar, nil
	case "list":
		return TypeList, nil
	case "raw":
		return TypeRaw, nil
	}
	return TypeNull, fmt.Errorf("unknown element type %q", name)
}

// CharEncoding is the declared encoding of a host string object.
type CharEncoding uint8

const (
	// EncodingNative is the host's native encoding, taken to be UTF-8. Bytes
	// that are not valid UTF-8 fail to decode.
	EncodingNative CharEncoding = iota
	EncodingUTF8
	EncodingLatin1
	// EncodingBytes marks raw bytes that are not text.
	EncodingBytes
)

func (e CharEncoding) String() string {
	switch e {
	case EncodingNative:
		return "native"
	case EncodingUTF8:
		return "UTF-8"
	case EncodingLatin1:
		return "latin1"
	case EncodingBytes:
		return "bytes"
	}
	return fmt.Sprintf("encoding(%d)", uint8(e))
}
