package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/licensegate/pkg/deps"
	"github.com/matzehuels/licensegate/pkg/errors"
	"github.com/matzehuels/licensegate/pkg/pipeline"
	"github.com/matzehuels/licensegate/pkg/report"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization
// with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// scanOpts holds the command-line flags for the scan.
type scanOpts struct {
	online    bool     // resolve missing licenses from registries
	workspace bool     // scan every project under the path
	config    string   // explicit policy file path
	format    string   // report format: terminal or json
	exclude   []string // ecosystems to skip
	verbose   bool     // debug logging, list passing deps
	quiet     bool     // one summary line per project
}

// Execute runs the licensegate CLI and returns an error if the scan
// fails or finds policy violations. This is the main entry point for
// the CLI application.
func Execute(ctx context.Context) error {
	var opts scanOpts

	root := &cobra.Command{
		Use:          "licensegate [path]",
		Short:        "Licensegate audits dependency licenses against a policy",
		Long:         `Licensegate scans a project's manifests, classifies every dependency's license, and applies a configurable policy. Any dependency with an error verdict fails the audit.`,
		Args:         cobra.MaximumNArgs(1),
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			if opts.quiet {
				level = charmlog.ErrorLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runScan(cmd.Context(), dir, opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("licensegate %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	flags := root.Flags()
	flags.BoolVar(&opts.online, "online", false, "resolve missing licenses from package registries")
	flags.BoolVar(&opts.workspace, "workspace", false, "scan every project found under the path")
	flags.StringVar(&opts.config, "config", "", "policy file (default: licensegate.toml next to the project)")
	flags.StringVar(&opts.format, "report", "terminal", "report format: terminal or json")
	flags.StringSliceVar(&opts.exclude, "exclude-lang", nil, "ecosystems to skip (rust, python, java, node, dotnet)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging and list passing dependencies")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "print one summary line per project")

	return root.ExecuteContext(ctx)
}

func runScan(ctx context.Context, dir string, opts scanOpts) error {
	logger := loggerFromContext(ctx)

	excluded, err := parseExcludes(opts.exclude)
	if err != nil {
		return err
	}
	switch opts.format {
	case "terminal", "json":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown report format %q (want terminal or json)", opts.format)
	}

	scanOpts := pipeline.Options{
		Online:     opts.online,
		ConfigPath: opts.config,
		Exclude:    excluded,
		Logf:       logger.Debugf,
	}
	if opts.online {
		// One HTTP client for the whole run, shared by every fetcher.
		scanOpts.Fetchers = pipeline.DefaultFetchers(nil)
		if !opts.quiet {
			scanOpts.Progress = func(done, total int) {
				logger.Debugf("resolved %d/%d licenses", done, total)
			}
		}
	}
	renderOpts := report.RenderOptions{Verbose: opts.verbose, Quiet: opts.quiet}

	if opts.workspace {
		return runWorkspaceScan(ctx, dir, scanOpts, renderOpts, opts.format, logger)
	}

	track := newProgress(logger)
	result, err := pipeline.Scan(ctx, dir, scanOpts)
	if err != nil {
		return err
	}
	track.done(fmt.Sprintf("Scanned %d dependencies", len(result.Dependencies)))

	if opts.format == "json" {
		if err := report.JSON(os.Stdout, result.Path, result.Dependencies); err != nil {
			return err
		}
	} else {
		report.Terminal(os.Stdout, result.Path, result.Dependencies, renderOpts)
	}

	if result.HasErrors() {
		return errors.New(errors.ErrCodePolicyViolation, "dependencies with error verdicts found")
	}
	return nil
}

func runWorkspaceScan(ctx context.Context, root string, scanOpts pipeline.Options, renderOpts report.RenderOptions, format string, logger *charmlog.Logger) error {
	track := newProgress(logger)
	scans, err := pipeline.ScanWorkspace(ctx, root, scanOpts)
	if err != nil {
		return err
	}
	track.done(fmt.Sprintf("Scanned %d projects", len(scans)))

	if format == "json" {
		if err := report.JSONWorkspace(os.Stdout, scans); err != nil {
			return err
		}
	} else {
		report.TerminalWorkspace(os.Stdout, scans, renderOpts)
	}

	var violations, failures int
	for _, scan := range scans {
		if scan.Err != nil {
			failures++
			continue
		}
		for _, d := range scan.Dependencies {
			if d.Verdict == deps.VerdictError {
				violations++
			}
		}
	}
	if violations > 0 || failures > 0 {
		return errors.New(errors.ErrCodePolicyViolation, "%d violations, %d failed projects", violations, failures)
	}
	return nil
}

func parseExcludes(names []string) ([]deps.Ecosystem, error) {
	var out []deps.Ecosystem
	for _, name := range names {
		eco, err := deps.ParseEcosystem(strings.TrimSpace(name))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidEcosystem, err, "bad --exclude-lang value %q", name)
		}
		out = append(out, eco)
	}
	return out, nil
}
