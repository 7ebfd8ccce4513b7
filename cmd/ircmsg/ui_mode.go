package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"ircmsg/internal/driver"
)

// uiMode is the value of --ui. It implements pflag.Value so a bad value is
// rejected while flags are parsed.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

var _ pflag.Value = (*uiMode)(nil)

func (m *uiMode) String() string {
	if *m == "" {
		return string(uiModeAuto)
	}
	return string(*m)
}

func (m *uiMode) Set(value string) error {
	switch v := uiMode(strings.TrimSpace(strings.ToLower(value))); v {
	case "", uiModeAuto:
		*m = uiModeAuto
	case uiModeOn, uiModeOff:
		*m = v
	default:
		return fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return nil
}

func (m *uiMode) Type() string { return "auto|on|off" }

// useProgressView decides whether check draws the progress view. The view
// goes to stderr and cannot share stdin with the input, so standard input
// and --quiet turn it off; auto also needs stderr to be a terminal.
func useProgressView(mode uiMode, quiet bool, paths []string) bool {
	if quiet || slices.Contains(paths, driver.StdinPath) {
		return false
	}
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stderr)
	}
}
