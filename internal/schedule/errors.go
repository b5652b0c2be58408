package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/preston-bernstein/nhl-schedule-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-service/internal/timeutil"
)

// ErrInvalidGameID is returned when a requested game id is not a 10-digit number.
var ErrInvalidGameID = errors.New("invalid game id")

// InvalidRangeError is returned when a date range ends before it starts.
type InvalidRangeError struct {
	From time.Time
	To   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: %s is after %s", timeutil.FormatDate(e.From), timeutil.FormatDate(e.To))
}

// AsInvalidRangeError attempts to unwrap an error into an InvalidRangeError.
func AsInvalidRangeError(err error) (*InvalidRangeError, bool) {
	var rangeErr *InvalidRangeError
	if errors.As(err, &rangeErr) {
		return rangeErr, true
	}
	return nil, false
}

// FetchError wraps a page fetcher failure for one chunk.
type FetchError struct {
	Range games.DateRange
	URL   string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch schedule %s: %v", e.Range, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr, true
	}
	return nil, false
}

// ParseError is returned when a schedule page is not JSON or lacks a dates array.
type ParseError struct {
	Range games.DateRange
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse schedule %s: %v", e.Range, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// AsParseError attempts to unwrap an error into a ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr, true
	}
	return nil, false
}

// SchemaError reports a game object missing a field the normalizer reads.
// GameID is zero when the id itself could not be read.
type SchemaError struct {
	GameID int64
	Field  string
	Err    error
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("game %d: missing or invalid %s", e.GameID, e.Field)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SchemaError) Unwrap() error { return e.Err }

// AsSchemaError attempts to unwrap an error into a SchemaError.
func AsSchemaError(err error) (*SchemaError, bool) {
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr, true
	}
	return nil, false
}
