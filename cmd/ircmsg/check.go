package main

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"ircmsg/internal/diag"
	"ircmsg/internal/diagfmt"
	"ircmsg/internal/driver"
	"ircmsg/internal/observ"
	"ircmsg/internal/source"
	"ircmsg/internal/version"
)

// errCheckFailed is returned when a check found error diagnostics. The
// diagnostics themselves have already been printed.
var errCheckFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check [flags] [paths...]",
	Short: "Validate IRC log files",
	Long: `Check scans every line of the given files, and of the log files found
in the given directories, and reports malformed messages. Directories are
searched for the extensions listed in ircmsg.toml (.log, .irc, .txt by
default); "-" reads standard input. The exit status is 1 when any error
was reported.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Var(&checkUI, "ui", "progress view")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("encoding", "", "input charset, e.g. latin1, windows-1251, auto (default utf-8)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("strict-numeric", false, "report numerics that are not three digits as errors")
	checkCmd.Flags().Bool("stats", false, "print how often each command occurs")
}

var checkUI = uiModeAuto

type checkFlags struct {
	format           string
	withNotes        bool
	noWarnings       bool
	warningsAsErrors bool
	stats            bool
	pathMode         diagfmt.PathMode
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var (
		f   checkFlags
		err error
	)
	if f.format, err = stringSetting(cmd, "format", settings.DiagFormat); err != nil {
		return f, err
	}
	switch f.format {
	case "pretty", "short", "json", "sarif":
	default:
		return f, fmt.Errorf("unknown format %q (expected pretty|short|json|sarif)", f.format)
	}
	if f.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.noWarnings, err = cmd.Flags().GetBool("no-warnings"); err != nil {
		return f, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if f.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if f.noWarnings && f.warningsAsErrors {
		return f, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if f.stats, err = cmd.Flags().GetBool("stats"); err != nil {
		return f, fmt.Errorf("failed to get stats flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return f, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	f.pathMode = diagfmt.PathModeAuto
	if fullPath {
		f.pathMode = diagfmt.PathModeAbsolute
	}
	return f, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	opts := driver.OptionsFromConfig(settings)
	if opts.Jobs, err = intSetting(cmd, "jobs", settings.Jobs); err != nil {
		return err
	}
	if opts.Encoding, err = stringSetting(cmd, "encoding", settings.Encoding); err != nil {
		return err
	}
	if cmd.Flags().Changed("strict-numeric") {
		opts.Limits.StrictNumeric, _ = cmd.Flags().GetBool("strict-numeric")
	}
	opts.Timings = showTimings(cmd)
	opts.Stdin = cmd.InOrStdin()

	timer := observ.NewTimer()
	phases := make(map[string]int)
	opts.OnPhase = func(ev driver.PhaseEvent) {
		switch ev.Status {
		case driver.PhaseStart:
			phases[ev.Name] = timer.Begin(ev.Name)
		case driver.PhaseEnd:
			timer.End(phases[ev.Name], "")
		}
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var (
		fileSet *source.FileSet
		results []driver.FileResult
	)
	if useProgressView(checkUI, quiet(cmd), paths) {
		files, err := driver.ExpandPaths(paths, opts.Extensions)
		if err != nil {
			return err
		}
		fileSet, results, err = runCheckWithUI(cmd.Context(), "checking", files, opts)
		if err != nil {
			return err
		}
	} else {
		fileSet, results, err = driver.CheckPaths(cmd.Context(), paths, opts)
		if err != nil {
			return err
		}
	}

	lines, messages, _, _ := driver.Totals(results)
	if idx, ok := phases["check"]; ok {
		timer.SetLines(idx, lines)
	}

	items, errorsCount, warningsCount := collectDiagnostics(results, flags)

	out := bufio.NewWriter(cmd.OutOrStdout())
	if err := writeDiagnostics(out, items, fileSet, flags); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if !quiet(cmd) {
		fmt.Fprintf(stderr, "checked %d files, %d lines (%d messages): %d errors, %d warnings\n",
			len(results), lines, messages, errorsCount, warningsCount)
	}
	if flags.stats {
		printCommandStats(stderr, results)
	}
	if showTimings(cmd) {
		printTimings(stderr, timer.Report())
	}

	if errorsCount > 0 {
		return errCheckFailed
	}
	return nil
}

// collectDiagnostics sorts every bag and flattens them in file order,
// applying the warning flags.
func collectDiagnostics(results []driver.FileResult, flags checkFlags) (items []diag.Diagnostic, errorsCount, warningsCount int) {
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		r.Bag.Sort()
		r.Bag.Dedup()
		for _, d := range r.Bag.Items() {
			if d.Severity == diag.SevWarning {
				if flags.noWarnings {
					continue
				}
				if flags.warningsAsErrors {
					d.Severity = diag.SevError
				}
			}
			switch d.Severity {
			case diag.SevError:
				errorsCount++
			case diag.SevWarning:
				warningsCount++
			}
			items = append(items, d)
		}
	}
	return items, errorsCount, warningsCount
}

func writeDiagnostics(w io.Writer, items []diag.Diagnostic, fileSet *source.FileSet, flags checkFlags) error {
	switch flags.format {
	case "pretty":
		diagfmt.Pretty(w, items, fileSet, diagfmt.PrettyOpts{
			Color:     useColor(os.Stdout),
			Context:   1,
			PathMode:  flags.pathMode,
			ShowNotes: flags.withNotes,
		})
	case "short":
		diagfmt.Short(w, items, fileSet, flags.pathMode)
	case "json":
		return diagfmt.JSON(w, items, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         flags.pathMode,
			IncludeNotes:     flags.withNotes,
		})
	case "sarif":
		return diagfmt.Sarif(w, items, fileSet, diagfmt.SarifRunMeta{
			ToolName:       "ircmsg",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	}
	return nil
}

func printCommandStats(w io.Writer, results []driver.FileResult) {
	total := make(map[string]int)
	for _, r := range results {
		for command, n := range r.Commands {
			total[command] += n
		}
	}
	commands := slices.SortedFunc(maps.Keys(total), func(a, b string) int {
		if c := cmp.Compare(total[b], total[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	fmt.Fprintln(w, "commands:")
	for _, command := range commands {
		fmt.Fprintf(w, "  %-12s %d\n", command, total[command])
	}
}
