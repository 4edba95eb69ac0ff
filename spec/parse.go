package spec

import (
	"fmt"
	"io/ioutil"
	"math"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// MaxSleepMs is the longest sleep, in milliseconds, a time.Duration can hold.
const MaxSleepMs = int64(math.MaxInt64 / int64(time.Millisecond))

type (
	// ParseError is returned when a spec file is not valid YAML or misses a required field.
	ParseError struct {
		Path string
		Err  error
	}

	// UnsupportedKindError is returned for well formed files whose kind is not KindEndpoint.
	UnsupportedKindError struct {
		Path string
		Kind string
	}
)

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid spec: %s", e.Err)
	}
	return fmt.Sprintf("invalid spec %s: %s", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Error implements the error interface
func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported kind %q in %s, expected %q", e.Kind, e.Path, KindEndpoint)
}

// Parse decodes a single spec document. path is only used to annotate errors.
func Parse(path string, data []byte) (*File, error) {
	f := &File{}

	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if f.Kind != KindEndpoint {
		return nil, &UnsupportedKindError{Path: path, Kind: f.Kind}
	}

	for i, r := range f.Spec.Requests {
		if strings.TrimSpace(r.Method) == "" {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("spec.requests[%d].method is required", i)}
		}
		if r.SleepMs < 0 {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("spec.requests[%d].sleep must not be negative", i)}
		}
		if int64(r.SleepMs) > MaxSleepMs {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("spec.requests[%d].sleep must not exceed %d", i, MaxSleepMs)}
		}
	}

	return f, nil
}

// ParseFile reads and parses the spec file at path.
func ParseFile(path string) (*File, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return Parse(path, data)
}
