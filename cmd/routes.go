package cmd

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/metamemelord/Mockerino/encode"
	"github.com/metamemelord/Mockerino/server"
	"github.com/spf13/cobra"
)

// errSpecErrors makes routes exit non-zero once the table has been printed.
var errSpecErrors = errors.New("spec files have errors")

func newRoutesCommand(f *flags) *cobra.Command {
	var asJSON bool

	routesCmd := &cobra.Command{
		Use:   "routes",
		Short: "Compile the spec tree and print the route table",
		Long: `Compiles every spec file below the base directory, prints the resulting routes
and any problems found, and exits non-zero if a file or response had to be left out.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			// Diagnostics are part of the output below.
			logger.SetOutput(io.Discard)

			res, err := loadRoutes(cfg, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			routes := server.Routes(res.Table)
			diagnostics := server.Diagnostics(res.Diagnostics)

			if asJSON {
				err = encode.JSONIndented(out, struct {
					Routes      []encode.Route      `json:"routes"`
					Diagnostics []encode.Diagnostic `json:"diagnostics"`
				}{routes, diagnostics})
			} else {
				err = printRoutes(out, routes, diagnostics)
			}
			if err != nil {
				return err
			}

			if res.HasErrors() {
				return errSpecErrors
			}
			return nil
		},
	}

	routesCmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return routesCmd
}

func printRoutes(w io.Writer, routes []encode.Route, diagnostics []encode.Diagnostic) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "METHOD\tPATH\tSTATUS\tBODY\tSLEEP\tSPEC")
	for _, r := range routes {
		body := r.Source
		if r.File != "" {
			body += ":" + r.File
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%dms\t%s\n", r.Method, r.Path, r.Status, body, r.SleepMs, r.SpecFile)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, d := range diagnostics {
		if d.Route != "" {
			fmt.Fprintf(w, "%s: %s: %s: %s\n", d.Severity, d.File, d.Route, d.Error)
			continue
		}
		fmt.Fprintf(w, "%s: %s: %s\n", d.Severity, d.File, d.Error)
	}

	return nil
}
