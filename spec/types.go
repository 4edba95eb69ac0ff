package spec

// KindEndpoint is the only kind a spec file may declare.
const KindEndpoint = "Endpoint"

type (
	// File is one parsed spec file.
	File struct {
		APIVersion string `json:"apiVersion" yaml:"apiVersion"`
		Kind       string `json:"kind" yaml:"kind"`
		Spec       Body   `json:"spec" yaml:"spec"`
	}

	// Body holds the response definitions of a spec file, in declaration order.
	Body struct {
		Requests []Response `json:"requests" yaml:"requests"`
	}

	// Response describes a single mocked HTTP response.
	Response struct {
		Description string            `json:"description" yaml:"description"`
		Method      string            `json:"method" yaml:"method"`
		Headers     map[string]string `json:"headers" yaml:"headers"`
		RawBody     *string           `json:"rawBody" yaml:"rawBody"`
		File        *string           `json:"file" yaml:"file"`
		StatusCode  int               `json:"statusCode" yaml:"statusCode"`
		SleepMs     int               `json:"sleep" yaml:"sleep"`
	}
)

// Responses returns the response definitions declared by the file.
func (f *File) Responses() []Response {
	return f.Spec.Requests
}
