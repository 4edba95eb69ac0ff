package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
)

// boilerplate is written by init, keyed by slash separated path.
var boilerplate = map[string]string{
	"config.yaml": `port: 3000
adminPort: 3001
baseDir: ./spec
logLevel: info
`,
	"spec/root.yaml": `apiVersion: v1
kind: Endpoint
spec:
  requests:
    - description: Index
      method: GET
      headers:
        Content-Type: application/json
      rawBody: '{"name": "mockerino"}'
`,
	"spec/hello.yaml": `apiVersion: v1
kind: Endpoint
spec:
  requests:
    - description: Greeting
      method: GET
      rawBody: hi
    - description: Slow greeting
      method: POST
      statusCode: 201
      rawBody: hello, eventually
      sleep: 500
`,
	"spec/users/root.yaml": `apiVersion: v1
kind: Endpoint
spec:
  requests:
    - description: List users
      method: GET
      headers:
        Content-Type: application/json
      file: ./data/users.json
`,
	"spec/users/_id/root.yaml": `apiVersion: v1
kind: Endpoint
spec:
  requests:
    - description: A single user, served at /users/_id/ until dynamic segments are bound
      method: GET
      headers:
        Content-Type: application/json
      rawBody: '{"id": 1, "name": "Ada"}'
`,
	"data/users.json": `[
 {"id": 1, "name": "Ada"},
 {"id": 2, "name": "Grace"}
]
`,
}

func newInitCommand() *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a boilerplate project with an example config",
		Long:  `Writes config.yaml, a spec directory with example endpoints and a data directory into dir (default: current directory).`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			written, err := writeBoilerplate(dir, force)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range written {
				fmt.Fprintf(out, "wrote %s\n", path)
			}
			fmt.Fprintf(out, "Next Steps:\n")
			if dir != "." {
				fmt.Fprintf(out, "  - cd %s\n", dir)
			}
			fmt.Fprintf(out, "  - mockerino\n")

			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return initCmd
}

func writeBoilerplate(dir string, force bool) ([]string, error) {
	names := make([]string, 0, len(boilerplate))
	for name := range boilerplate {
		names = append(names, name)
	}
	sort.Strings(names)

	if !force {
		for _, name := range names {
			path := filepath.Join(dir, filepath.FromSlash(name))
			if _, err := os.Stat(path); err == nil {
				return nil, fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
		}
	}

	written := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return written, err
		}
		if err := os.WriteFile(path, []byte(boilerplate[name]), 0644); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}
