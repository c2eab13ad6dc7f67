package entities

import "encoding/json"

// ValueState tells whether an extract cell was missing, unreadable or usable
type ValueState int

const (
	Absent ValueState = iota
	Invalid
	Valid
)

// String method for ValueState enum
func (s ValueState) String() string {
	switch s {
	case Absent:
		return "Absent"
	case Invalid:
		return "Invalid"
	case Valid:
		return "Valid"
	default:
		return "Unknown"
	}
}

// Value is an optional cell value. Invalid values keep the raw text so that
// callers can report what could not be parsed.
type Value[T any] struct {
	state ValueState
	value T
	raw   string
}

// Missing returns a value for an absent column or an empty cell
func Missing[T any]() Value[T] {
	return Value[T]{state: Absent}
}

// Unparsed returns a value for a cell whose text could not be parsed
func Unparsed[T any](raw string) Value[T] {
	return Value[T]{state: Invalid, raw: raw}
}

// Known returns a valid value
func Known[T any](v T) Value[T] {
	return Value[T]{state: Valid, value: v}
}

func (v Value[T]) State() ValueState {
	return v.state
}

func (v Value[T]) IsValid() bool {
	return v.state == Valid
}

// Get returns the value and whether it is valid
func (v Value[T]) Get() (T, bool) {
	return v.value, v.state == Valid
}

// OrElse returns the value when valid and def otherwise
func (v Value[T]) OrElse(def T) T {
	if v.state != Valid {
		return def
	}
	return v.value
}

// Raw returns the original text of an invalid value
func (v Value[T]) Raw() string {
	return v.raw
}

// MarshalJSON renders valid values as themselves and everything else as null
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.state != Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
