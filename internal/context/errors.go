package context

import (
	"errors"
	"fmt"
)

// ArgParseError reports a failure parsing the live invocation tokens:
// unknown flag, malformed value, stray positional.
type ArgParseError struct {
	Err error
}

func (e *ArgParseError) Error() string {
	return fmt.Sprintf("invalid arguments: %v", e.Err)
}

func (e *ArgParseError) Unwrap() error { return e.Err }

// ConfigError reports a failure attributable to configuration: malformed
// config file content, or a grammar/dependency violation detected on the
// final merged re-parse.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

var (
	// ErrRegexDisabled is returned when a regex predicate is requested
	// while glob matching is active.
	ErrRegexDisabled = errors.New("regex match is disabled while glob matching is enabled")

	// ErrPatternNotProvided is returned when a predicate is requested but
	// no pattern was supplied.
	ErrPatternNotProvided = errors.New("no pattern was provided")
)

// PatternError reports a pattern that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }
