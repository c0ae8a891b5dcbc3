package settings

import (
	"fmt"
	"strconv"
)

// Field identifies one AppSettings field.
type Field int

const (
	FieldDarkMode Field = iota
	FieldPromptCount
	FieldIncludeEthnicity
	FieldEthnicity
	FieldIncludeGender
	FieldGender
	FieldIncludeAspectRatio
	FieldAspectRatio
	FieldIncludeVersion
	FieldVersion
	FieldIncludeStylize
	FieldStylize
	FieldCustomSuffix

	fieldCount
)

var fieldNames = [fieldCount]string{
	"darkMode",
	"promptCount",
	"includeEthnicity",
	"ethnicity",
	"includeGender",
	"gender",
	"includeAspectRatio",
	"aspectRatio",
	"includeVersion",
	"version",
	"includeStylize",
	"stylize",
	"customSuffix",
}

// Fields returns every field in declaration order.
func Fields() []Field {
	out := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// ParseField maps a camelCase field name back to its Field.
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// ParseValue converts text into a Value of the kind f holds. Booleans accept
// the strconv.ParseBool spellings; strings are taken verbatim.
func ParseValue(f Field, text string) (Value, error) {
	switch f.Kind() {
	case KindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s wants a bool, got %q", ErrKindMismatch, f, text)
		}
		return BoolValue(b), nil
	case KindInt:
		n, err := strconv.Atoi(text)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s wants an int, got %q", ErrKindMismatch, f, text)
		}
		return IntValue(n), nil
	case KindString:
		return StringValue(text), nil
	}
	return Value{}, fmt.Errorf("%w: %d", ErrUnknownField, int(f))
}

func (f Field) Valid() bool { return f >= 0 && f < fieldCount }

func (f Field) String() string {
	if !f.Valid() {
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

// Kind reports the value type the field holds.
func (f Field) Kind() Kind {
	switch f {
	case FieldDarkMode, FieldIncludeEthnicity, FieldIncludeGender,
		FieldIncludeAspectRatio, FieldIncludeVersion, FieldIncludeStylize:
		return KindBool
	case FieldPromptCount:
		return KindInt
	case FieldEthnicity, FieldGender, FieldAspectRatio, FieldVersion,
		FieldStylize, FieldCustomSuffix:
		return KindString
	}
	return KindInvalid
}

// Kind is the type tag carried by a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	}
	return "invalid"
}

// Value is a field value tagged with its kind.
type Value struct {
	kind Kind
	b    bool
	i    int
	s    string
}

func BoolValue(b bool) Value     { return Value{kind: KindBool, b: b} }
func IntValue(i int) Value       { return Value{kind: KindInt, i: i} }
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) Bool() bool   { return v.b }
func (v Value) Int() int     { return v.i }
func (v Value) Text() string { return v.s }

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.Itoa(v.i)
	case KindString:
		return strconv.Quote(v.s)
	}
	return "<invalid>"
}
