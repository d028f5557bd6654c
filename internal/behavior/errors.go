package behavior

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is
var (
	ErrConfiguration = errors.New("invalid behavior configuration")
	ErrAttribution   = errors.New("trophallaxis attribution failed")
	ErrDivision      = errors.New("no observations to average over")
	ErrSchema        = errors.New("invalid event row")
)

// ConfigurationError reports an alias table or target list that cannot be used
type ConfigurationError struct {
	Alias      string
	Canonicals []string
	Reason     string
}

func (e *ConfigurationError) Error() string {
	if e.Alias != "" {
		return fmt.Sprintf("alias %q is claimed by multiple canonical labels %q", e.Alias, e.Canonicals)
	}
	return e.Reason
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// AttributionError reports a Trophallaxis event with no preceding
// Social interaction event in the same file
type AttributionError struct {
	Index         int
	ObservationID string
}

func (e *AttributionError) Error() string {
	return fmt.Sprintf("trophallaxis event at row %d (observation %s) has no preceding %q event",
		e.Index+1, e.ObservationID, SocialInteraction)
}

func (e *AttributionError) Is(target error) bool { return target == ErrAttribution }

// DivisionError reports a file that contributes no observations
type DivisionError struct {
	Treatment string
}

func (e *DivisionError) Error() string {
	return fmt.Sprintf("treatment %s has zero observations, means are undefined", e.Treatment)
}

func (e *DivisionError) Is(target error) bool { return target == ErrDivision }

// SchemaError reports a row that is missing a field or holds an unusable value.
// Row is 1-based; 0 means the error is not tied to one row.
type SchemaError struct {
	File   string
	Row    int
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Field, e.Reason)
	if e.Row > 0 {
		msg = fmt.Sprintf("row %d: %s", e.Row, msg)
	}
	if e.File != "" {
		msg = fmt.Sprintf("%s: %s", e.File, msg)
	}
	return msg
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }
