package encode

import (
	"encoding/json"
	"io"
)

// JSONIndented encodes a value into a writer with a single space indentation
func JSONIndented(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")
	encoder.SetEscapeHTML(false)

	return encoder.Encode(v)
}

// Route is the rendering of a compiled route shared by the admin app and the CLI.
type Route struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Description string            `json:"description,omitempty"`
	Status      int               `json:"status"`
	Source      string            `json:"source"`
	File        string            `json:"file,omitempty"`
	SleepMs     int64             `json:"sleepMs,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Dynamic     []string          `json:"dynamicSegments,omitempty"`
	SpecFile    string            `json:"specFile"`
}

// Diagnostic is the rendering of a load diagnostic.
type Diagnostic struct {
	Severity string `json:"severity"`
	File     string `json:"file"`
	Route    string `json:"route,omitempty"`
	Error    string `json:"error"`
}
