package metamodel

import (
	"fmt"
	"math"

	"github.com/mandelsoft/ecore/pkg/ecore"
)

type Kind string

const (
	KIND_STRING = Kind("string")
	KIND_INT    = Kind("int")
	KIND_BOOL   = Kind("bool")
	KIND_FLOAT  = Kind("float")
	KIND_ANY    = Kind("any")
)

// DataType describes the value domain of attributes.
type DataType struct {
	kind Kind
}

var _ ecore.EDataType = (*DataType)(nil)

var (
	String = &DataType{KIND_STRING}
	Int    = &DataType{KIND_INT}
	Bool   = &DataType{KIND_BOOL}
	Float  = &DataType{KIND_FLOAT}
	Any    = &DataType{KIND_ANY}
)

var dataTypes = map[string]*DataType{
	string(KIND_STRING): String,
	string(KIND_INT):    Int,
	string(KIND_BOOL):   Bool,
	string(KIND_FLOAT):  Float,
	string(KIND_ANY):    Any,
}

// LookupDataType returns the data type for a type name or nil.
func LookupDataType(name string) *DataType {
	return dataTypes[name]
}

func (t *DataType) Name() string {
	return string(t.kind)
}

func (t *DataType) Kind() Kind {
	return t.kind
}

func (t *DataType) IsInstance(v any) bool {
	switch t.kind {
	case KIND_STRING:
		_, ok := v.(string)
		return ok
	case KIND_INT:
		_, ok := v.(int)
		return ok
	case KIND_BOOL:
		_, ok := v.(bool)
		return ok
	case KIND_FLOAT:
		_, ok := v.(float64)
		return ok
	default:
		return true
	}
}

// Convert maps compatible Go values to the canonical
// representation: string, int, bool and float64.
func (t *DataType) Convert(v any) (any, error) {
	if v == nil || t.IsInstance(v) {
		return v, nil
	}
	switch t.kind {
	case KIND_INT:
		switch n := v.(type) {
		case int8:
			return int(n), nil
		case int16:
			return int(n), nil
		case int32:
			return int(n), nil
		case int64:
			return int(n), nil
		case uint:
			return int(n), nil
		case uint8:
			return int(n), nil
		case uint16:
			return int(n), nil
		case uint32:
			return int(n), nil
		case float64:
			if n == math.Trunc(n) {
				return int(n), nil
			}
		}
	case KIND_FLOAT:
		switch n := v.(type) {
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	}
	return nil, fmt.Errorf("%w: %T is no %s", ecore.ErrInvalidValue, v, t.kind)
}

// Zero returns the default value of the data type.
func (t *DataType) Zero() any {
	switch t.kind {
	case KIND_STRING:
		return ""
	case KIND_INT:
		return 0
	case KIND_BOOL:
		return false
	case KIND_FLOAT:
		return float64(0)
	default:
		return nil
	}
}
