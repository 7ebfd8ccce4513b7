package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ircmsg/internal/diagfmt"
	"ircmsg/internal/lineio"
	"ircmsg/internal/message"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] COMMAND [params...]",
	Short: "Build an escaped IRC line",
	Long: `Build assembles a message from its parts, escapes tag values and adds
the ':' marker to the last parameter when it needs one. Tags are given as
--tag key=value (repeatable, a bare key makes a flag tag).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringArray("tag", nil, "message tag key=value (repeatable)")
	buildCmd.Flags().String("source", "", "message source, e.g. nick!user@host")
	buildCmd.Flags().String("trailing", "", "trailing parameter")
	buildCmd.Flags().String("format", "raw", "output format (raw|json|yaml|msgpack|pretty)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	b := message.NewBuilder(args[0]).Params(args[1:]...)

	tags, err := cmd.Flags().GetStringArray("tag")
	if err != nil {
		return fmt.Errorf("failed to get tag flag: %w", err)
	}
	for _, t := range tags {
		if key, value, ok := strings.Cut(t, "="); ok {
			b.Tag(key, value)
		} else {
			b.TagFlag(t)
		}
	}
	if cmd.Flags().Changed("source") {
		src, _ := cmd.Flags().GetString("source")
		b.Source(src)
	}
	if cmd.Flags().Changed("trailing") {
		trailing, _ := cmd.Flags().GetString("trailing")
		b.Trailing(trailing)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	msg, err := b.Message()
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	writer, err := diagfmt.NewMessageWriter(out, format, format == "pretty" && useColor(os.Stdout))
	if err != nil {
		return err
	}
	if err := writer.WriteMessage(lineio.Line{Number: 1, Text: msg.Raw()}, msg); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return out.Flush()
}
