package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ircmsg/internal/diagfmt"
	"ircmsg/internal/driver"
	"ircmsg/internal/lineio"
	"ircmsg/internal/message"
	"ircmsg/internal/observ"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [file|-]",
	Short: "Parse IRC lines and print their components",
	Long: `Parse reads IRC lines from a file or standard input and prints every
message in the chosen format: a readable breakdown (pretty), NDJSON (json),
a YAML document stream (yaml), concatenated msgpack values (msgpack) or
the lines themselves (raw).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|msgpack|raw)")
	parseCmd.Flags().String("encoding", "", "input charset, e.g. latin1, windows-1251, auto (default utf-8)")
	parseCmd.Flags().Int("max-line-bytes", lineio.DefaultMaxLineBytes, "longest accepted line, terminator excluded")
}

func runParse(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	format, err := stringSetting(cmd, "format", settings.ParseFormat)
	if err != nil {
		return err
	}
	encoding, err := stringSetting(cmd, "encoding", settings.Encoding)
	if err != nil {
		return err
	}
	maxLine, err := cmd.Flags().GetInt("max-line-bytes")
	if err != nil {
		return fmt.Errorf("failed to get max-line-bytes flag: %w", err)
	}

	in := cmd.InOrStdin()
	name := "<stdin>"
	if len(args) == 1 && args[0] != driver.StdinPath {
		// #nosec G304 -- path is provided by the user
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in, name = f, args[0]
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	writer, err := diagfmt.NewMessageWriter(out, format, format == "pretty" && useColor(os.Stdout))
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	phase := timer.Begin("parse")
	var lines, skipped int

	opts := driver.Options{Encoding: encoding, MaxLineBytes: maxLine}
	err = driver.ParseStream(cmd.Context(), in, opts, func(line lineio.Line, msg message.Message, lineErr error) error {
		lines++
		if lineErr != nil {
			skipped++
			if !quiet(cmd) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s:%d: skipped: %v\n", name, line.Number, lineErr)
			}
			return nil
		}
		return writer.WriteMessage(line, msg)
	})
	if cerr := writer.Close(); err == nil {
		err = cerr
	}
	timer.EndLines(phase, lines, fmt.Sprintf("%d skipped", skipped))
	if err != nil {
		return err
	}

	if showTimings(cmd) {
		printTimings(cmd.ErrOrStderr(), timer.Report())
	}
	return nil
}
