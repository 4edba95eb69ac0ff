package route

import (
	"fmt"
	"sort"
	"time"

	"github.com/gofiber/utils"
	"github.com/metamemelord/Mockerino/spec"
	"golang.org/x/net/http/httpguts"
)

// Severity ranks a Diagnostic.
type Severity string

const (
	// SeverityError means a file or a response was left out of the table.
	SeverityError Severity = "error"
	// SeverityWarning means a response was registered with something dropped or replaced.
	SeverityWarning Severity = "warning"
	// SeverityNotice is informational.
	SeverityNotice Severity = "notice"
)

// Diagnostic is a non fatal problem found while building the route table.
type Diagnostic struct {
	File     string
	Key      Key
	Severity Severity
	Err      error
}

func (d Diagnostic) Error() string {
	if d.Key.Method == "" {
		return string(d.Severity) + ": " + d.File + ": " + d.Err.Error()
	}
	return string(d.Severity) + ": " + d.File + ": " + d.Key.String() + ": " + d.Err.Error()
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Compile turns the responses of one spec file into entries served on path,
// in declaration order. specFile is recorded on every entry and diagnostic.
func Compile(f *spec.File, specFile, path string) ([]Entry, []Diagnostic, error) {
	if f.Kind != spec.KindEndpoint {
		return nil, nil, &spec.UnsupportedKindError{Path: specFile, Kind: f.Kind}
	}

	var (
		entries     []Entry
		diagnostics []Diagnostic
		dynamic     = DynamicSegments(path)
	)

	report := func(key Key, severity Severity, err error) {
		diagnostics = append(diagnostics, Diagnostic{File: specFile, Key: key, Severity: severity, Err: err})
	}

	if len(dynamic) > 0 {
		report(Key{}, SeverityNotice, &DynamicPathError{Segments: dynamic})
	}

	for _, r := range f.Responses() {
		key := Key{Method: utils.ToUpper(r.Method), Path: path}

		entry := Entry{
			Key:         key,
			Description: r.Description,
			Sleep:       time.Duration(r.SleepMs) * time.Millisecond,
			Dynamic:     dynamic,
			SpecFile:    specFile,
		}

		if !httpguts.ValidHeaderFieldName(key.Method) {
			report(key, SeverityError, fmt.Errorf("method %q is not a valid HTTP method token", r.Method))
			continue
		}

		source, err := bodySource(r)
		if err != nil {
			report(key, SeverityError, err)
			continue
		}
		entry.Source = source
		if source == BodyRaw && r.File != nil && *r.File != "" {
			report(key, SeverityWarning, &AmbiguousBodyError{File: *r.File})
		}

		switch source {
		case BodyRaw:
			entry.RawBody = *r.RawBody
		case BodyFile:
			entry.File = *r.File
		}

		entry.Status, err = status(r.StatusCode)
		if err != nil {
			report(key, SeverityWarning, err)
		}

		headers, errs := validHeaders(r.Headers)
		for _, err := range errs {
			report(key, SeverityWarning, err)
		}
		entry.Headers = headers

		entries = append(entries, entry)
	}

	return entries, diagnostics, nil
}

// bodySource picks rawBody over file. A response with neither is not served.
func bodySource(r spec.Response) (BodySource, error) {
	switch {
	case r.RawBody != nil:
		return BodyRaw, nil
	case r.File != nil && *r.File != "":
		return BodyFile, nil
	default:
		return "", ErrMissingBody
	}
}

func status(code int) (int, error) {
	if code == 0 {
		return DefaultStatus, nil
	}

	if code < 100 || code > 511 || utils.StatusMessage(code) == "" {
		return DefaultStatus, &InvalidStatusError{Code: code}
	}

	return code, nil
}

// validHeaders keeps the entries representable on the wire, sorted by name.
func validHeaders(in map[string]string) ([]Header, []error) {
	var (
		out  []Header
		errs []error
	)

	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := in[name]
		if !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
			errs = append(errs, &HeaderEncodingError{Name: name, Value: value})
			continue
		}
		out = append(out, Header{Name: name, Value: value})
	}

	return out, errs
}
