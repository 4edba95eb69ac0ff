package route

import "time"

// DefaultStatus is served when a response sets no status, or an unknown one.
const DefaultStatus = 200

// BodySource tells where the body of an entry comes from.
type BodySource string

const (
	BodyRaw  BodySource = "raw"
	BodyFile BodySource = "file"
)

type (
	// Key identifies an entry in a Table.
	Key struct {
		Method string
		Path   string
	}

	// Header is a validated response header.
	Header struct {
		Name  string
		Value string
	}

	// Entry is a compiled route: everything needed to answer a request,
	// computed once at load time.
	Entry struct {
		Key
		Description string
		Headers     []Header
		Status      int
		Source      BodySource
		RawBody     string
		File        string
		Sleep       time.Duration
		Dynamic     []string
		SpecFile    string
	}
)

// String renders the key the way routes are logged.
func (k Key) String() string {
	return k.Method + " " + k.Path
}
