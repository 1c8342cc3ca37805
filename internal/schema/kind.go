package schema

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind identifies a schema node variant.
type Kind int

const (
	_ Kind = iota // skip zero value, use it as a default (invalid) value for Kind

	KindString  // string
	KindNumber  // number
	KindInteger // integer
	KindBoolean // boolean
	KindArray   // array
	KindObject  // object
	KindEnum    // enum
	KindRef     // ref
	KindNull    // null
	KindAny     // any

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsScalar reports whether k describes a single non-container value.
func (k Kind) IsScalar() bool {
	switch k {
	case KindString, KindNumber, KindInteger, KindBoolean, KindNull:
		return true
	default:
		return false
	}
}

// KindFromType maps a JSON Schema "type" name to a Kind.
func KindFromType(name string) (Kind, bool) {
	switch name {
	case "string":
		return KindString, true
	case "number":
		return KindNumber, true
	case "integer":
		return KindInteger, true
	case "boolean":
		return KindBoolean, true
	case "array":
		return KindArray, true
	case "object":
		return KindObject, true
	case "null":
		return KindNull, true
	case "any":
		return KindAny, true
	default:
		return 0, false
	}
}
