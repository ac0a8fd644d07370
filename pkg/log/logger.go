package log

import "time"

// Logger is the structured logger every oraclient component writes to.
// The CLI backs it with zerolog; embedders can route it anywhere.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is a key-value pair attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field, used for attempt counters, byte counts and
// HTTP statuses.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a duration field, rendered by zerolog in milliseconds.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field with key "error". A nil error adds nothing.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// Any creates a field with any value. Stringers are logged via String().
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
