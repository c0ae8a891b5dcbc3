// Package settings defines the AppSettings record shared by the settings
// panel, the prompt generator and the settings store.
//
// AppSettings is a plain value. Every change goes through With, which returns
// a copy with exactly one field replaced; the receiver is never modified.
package settings

import (
	"errors"
	"fmt"
)

const (
	MinPromptCount = 1
	MaxPromptCount = 50
)

var (
	ErrUnknownField = errors.New("settings: unknown field")
	ErrKindMismatch = errors.New("settings: value kind does not match field")
)

// AppSettings is the persisted generation configuration.
//
// The Include* flags only gate their paired value. Switching a flag off keeps
// the paired value so the previous selection comes back when it is re-enabled.
type AppSettings struct {
	DarkMode           bool   `json:"darkMode"`
	PromptCount        int    `json:"promptCount"`
	IncludeEthnicity   bool   `json:"includeEthnicity"`
	Ethnicity          string `json:"ethnicity"`
	IncludeGender      bool   `json:"includeGender"`
	Gender             string `json:"gender"`
	IncludeAspectRatio bool   `json:"includeAspectRatio"`
	AspectRatio        string `json:"aspectRatio"`
	IncludeVersion     bool   `json:"includeVersion"`
	Version            string `json:"version"`
	IncludeStylize     bool   `json:"includeStylize"`
	Stylize            string `json:"stylize"`
	CustomSuffix       string `json:"customSuffix"`
}

// Defaults returns the record used when nothing has been stored yet.
func Defaults() AppSettings {
	return AppSettings{
		PromptCount: 10,
		Ethnicity:   "any",
		Gender:      "any",
		AspectRatio: "1:1",
		Version:     "6.1",
		Stylize:     "100",
	}
}

// ClampPromptCount keeps n inside [MinPromptCount, MaxPromptCount].
func ClampPromptCount(n int) int {
	if n < MinPromptCount {
		return MinPromptCount
	}
	if n > MaxPromptCount {
		return MaxPromptCount
	}
	return n
}

// With returns a copy of s with field f set to v.
func (s AppSettings) With(f Field, v Value) (AppSettings, error) {
	if !f.Valid() {
		return s, fmt.Errorf("%w: %d", ErrUnknownField, int(f))
	}
	if v.Kind() != f.Kind() {
		return s, fmt.Errorf("%w: %s wants %s, got %s", ErrKindMismatch, f, f.Kind(), v.Kind())
	}
	switch f {
	case FieldDarkMode:
		s.DarkMode = v.b
	case FieldPromptCount:
		s.PromptCount = v.i
	case FieldIncludeEthnicity:
		s.IncludeEthnicity = v.b
	case FieldEthnicity:
		s.Ethnicity = v.s
	case FieldIncludeGender:
		s.IncludeGender = v.b
	case FieldGender:
		s.Gender = v.s
	case FieldIncludeAspectRatio:
		s.IncludeAspectRatio = v.b
	case FieldAspectRatio:
		s.AspectRatio = v.s
	case FieldIncludeVersion:
		s.IncludeVersion = v.b
	case FieldVersion:
		s.Version = v.s
	case FieldIncludeStylize:
		s.IncludeStylize = v.b
	case FieldStylize:
		s.Stylize = v.s
	case FieldCustomSuffix:
		s.CustomSuffix = v.s
	}
	return s, nil
}

// Get returns the current value of field f. Unknown fields yield the zero Value.
func (s AppSettings) Get(f Field) Value {
	switch f {
	case FieldDarkMode:
		return BoolValue(s.DarkMode)
	case FieldPromptCount:
		return IntValue(s.PromptCount)
	case FieldIncludeEthnicity:
		return BoolValue(s.IncludeEthnicity)
	case FieldEthnicity:
		return StringValue(s.Ethnicity)
	case FieldIncludeGender:
		return BoolValue(s.IncludeGender)
	case FieldGender:
		return StringValue(s.Gender)
	case FieldIncludeAspectRatio:
		return BoolValue(s.IncludeAspectRatio)
	case FieldAspectRatio:
		return StringValue(s.AspectRatio)
	case FieldIncludeVersion:
		return BoolValue(s.IncludeVersion)
	case FieldVersion:
		return StringValue(s.Version)
	case FieldIncludeStylize:
		return BoolValue(s.IncludeStylize)
	case FieldStylize:
		return StringValue(s.Stylize)
	case FieldCustomSuffix:
		return StringValue(s.CustomSuffix)
	}
	return Value{}
}

// Diff lists the fields whose values differ between s and other, in field order.
func (s AppSettings) Diff(other AppSettings) []Field {
	var out []Field
	for _, f := range Fields() {
		if s.Get(f) != other.Get(f) {
			out = append(out, f)
		}
	}
	return out
}
