package spec_test

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/metamemelord/Mockerino/spec"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parse", func() {
	It("decodes every response field", func() {
		f, err := spec.Parse("users.yaml", []byte(`
apiVersion: v1
kind: Endpoint
spec:
  requests:
    - description: list users
      method: GET
      headers:
        Content-Type: application/json
      statusCode: 201
      rawBody: '[]'
      sleep: 50
    - description: user avatar
      method: post
      file: ./data/avatar.png
`))

		Expect(err).ShouldNot(HaveOccurred())
		Expect(f.APIVersion).To(Equal("v1"))
		Expect(f.Responses()).To(HaveLen(2))

		first := f.Responses()[0]
		Expect(first.Method).To(Equal("GET"))
		Expect(first.Headers).To(HaveKeyWithValue("Content-Type", "application/json"))
		Expect(first.StatusCode).To(Equal(201))
		Expect(first.RawBody).ToNot(BeNil())
		Expect(*first.RawBody).To(Equal("[]"))
		Expect(first.File).To(BeNil())
		Expect(first.SleepMs).To(Equal(50))

		second := f.Responses()[1]
		Expect(second.RawBody).To(BeNil())
		Expect(*second.File).To(Equal("./data/avatar.png"))
		Expect(second.StatusCode).To(BeZero())
		Expect(second.Headers).To(BeEmpty())
	})

	It("keeps an explicitly empty raw body", func() {
		f, err := spec.Parse("empty.yaml", []byte(`
kind: Endpoint
spec:
  requests:
    - method: DELETE
      rawBody: ""
`))

		Expect(err).ShouldNot(HaveOccurred())
		Expect(f.Responses()[0].RawBody).ToNot(BeNil())
		Expect(*f.Responses()[0].RawBody).To(BeEmpty())
	})

	Context("with an unknown kind", func() {
		It("returns an UnsupportedKindError", func() {
			_, err := spec.Parse("svc.yaml", []byte("kind: Service\nspec: {}\n"))

			var kindErr *spec.UnsupportedKindError
			Expect(errors.As(err, &kindErr)).To(BeTrue())
			Expect(kindErr.Kind).To(Equal("Service"))
			Expect(kindErr.Path).To(Equal("svc.yaml"))
		})
	})

	Context("with malformed input", func() {
		It("returns a ParseError for broken YAML", func() {
			_, err := spec.Parse("broken.yaml", []byte("kind: [Endpoint\n"))

			var parseErr *spec.ParseError
			Expect(errors.As(err, &parseErr)).To(BeTrue())
			Expect(parseErr.Path).To(Equal("broken.yaml"))
		})

		It("requires a method", func() {
			_, err := spec.Parse("nomethod.yaml", []byte(`
kind: Endpoint
spec:
  requests:
    - rawBody: hi
`))

			var parseErr *spec.ParseError
			Expect(errors.As(err, &parseErr)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("method is required"))
		})

		It("rejects a negative sleep", func() {
			_, err := spec.Parse("sleepy.yaml", []byte(`
kind: Endpoint
spec:
  requests:
    - method: GET
      rawBody: hi
      sleep: -1
`))

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("sleep must not be negative"))
		})

		It("rejects a sleep too long to be a duration", func() {
			_, err := spec.Parse("forever.yaml", []byte(`
kind: Endpoint
spec:
  requests:
    - method: GET
      rawBody: hi
      sleep: 10000000000000
`))

			var parseErr *spec.ParseError
			Expect(errors.As(err, &parseErr)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("sleep must not exceed"))
		})

		It("accepts the longest representable sleep", func() {
			f, err := spec.Parse("longest.yaml", []byte(fmt.Sprintf(`
kind: Endpoint
spec:
  requests:
    - method: GET
      rawBody: hi
      sleep: %d
`, spec.MaxSleepMs)))

			Expect(err).ShouldNot(HaveOccurred())
			Expect(int64(f.Responses()[0].SleepMs)).To(Equal(spec.MaxSleepMs))
		})
	})
})

var _ = Describe("ParseFile", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "mockerino-spec")
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("reads the file from disk", func() {
		path := filepath.Join(dir, "root.yaml")
		Expect(ioutil.WriteFile(path, []byte("kind: Endpoint\nspec:\n  requests:\n    - method: GET\n      rawBody: ok\n"), 0644)).To(Succeed())

		f, err := spec.ParseFile(path)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(f.Responses()).To(HaveLen(1))
	})

	It("wraps read failures in a ParseError", func() {
		_, err := spec.ParseFile(filepath.Join(dir, "missing.yaml"))

		var parseErr *spec.ParseError
		Expect(errors.As(err, &parseErr)).To(BeTrue())
		Expect(os.IsNotExist(errors.Unwrap(err))).To(BeTrue())
	})
})
