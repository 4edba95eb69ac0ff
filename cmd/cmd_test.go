package cmd

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/metamemelord/Mockerino/encode"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Commands", func() {
	var dir string

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		root := NewRootCommand()
		root.SetOut(&out)
		root.SetErr(ioutil.Discard)
		root.SetArgs(args)

		err := root.Execute()
		return out.String(), err
	}

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "mockerino-cmd")
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	Describe("init", func() {
		It("writes a project that compiles cleanly", func() {
			out, err := run("init", dir)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(out).To(ContainSubstring("config.yaml"))

			for name := range boilerplate {
				Expect(filepath.Join(dir, filepath.FromSlash(name))).To(BeARegularFile())
			}

			out, err = run("routes", "--json",
				"--config", filepath.Join(dir, "config.yaml"),
				"--base-dir", filepath.Join(dir, "spec"))
			Expect(err).ShouldNot(HaveOccurred())

			var listing struct {
				Routes      []encode.Route      `json:"routes"`
				Diagnostics []encode.Diagnostic `json:"diagnostics"`
			}
			Expect(json.Unmarshal([]byte(out), &listing)).To(Succeed())

			var keys []string
			for _, r := range listing.Routes {
				keys = append(keys, r.Method+" "+r.Path)
			}
			Expect(keys).To(Equal([]string{"GET /", "GET /hello/", "POST /hello/", "GET /users/", "GET /users/_id/"}))

			Expect(listing.Diagnostics).To(HaveLen(1))
			Expect(listing.Diagnostics[0].Severity).To(Equal("notice"))
		})

		It("refuses to overwrite without --force", func() {
			_, err := run("init", dir)
			Expect(err).ShouldNot(HaveOccurred())

			_, err = run("init", dir)
			Expect(err).To(MatchError(ContainSubstring("use --force")))

			_, err = run("init", dir, "--force")
			Expect(err).ShouldNot(HaveOccurred())
		})
	})

	Describe("routes", func() {
		write := func(rel, content string) {
			path := filepath.Join(dir, filepath.FromSlash(rel))
			Expect(os.MkdirAll(filepath.Dir(path), 0755)).To(Succeed())
			Expect(ioutil.WriteFile(path, []byte(content), 0644)).To(Succeed())
		}

		It("prints a table and the problems found", func() {
			write("spec/hello.yaml", "kind: Endpoint\nspec:\n  requests:\n    - method: GET\n      rawBody: hi\n      statusCode: 201\n")
			write("spec/broken.yaml", "kind: Service\n")

			out, err := run("routes", "--base-dir", filepath.Join(dir, "spec"))

			Expect(err).To(MatchError(errSpecErrors))
			Expect(out).To(ContainSubstring("GET"))
			Expect(out).To(ContainSubstring("/hello/"))
			Expect(out).To(ContainSubstring("201"))
			Expect(out).To(ContainSubstring(`error: ` + filepath.Join(dir, "spec", "broken.yaml")))
		})

		It("rejects an invalid config", func() {
			_, err := run("routes", "--base-dir", dir, "--log-format", "xml")
			Expect(err).To(MatchError(ContainSubstring("invalid config")))
		})
	})

	Describe("version", func() {
		It("prints the version", func() {
			out, err := run("version")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(out).To(Equal("mockerino dev\n"))
		})
	})
})
