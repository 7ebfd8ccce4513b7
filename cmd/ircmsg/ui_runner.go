package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ircmsg/internal/driver"
	"ircmsg/internal/source"
	"ircmsg/internal/ui"
)

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runCheckWithUI runs CheckPaths while a progress view follows its events.
// Quitting the view cancels the check.
func runCheckWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fileSet, results, err := driver.CheckPaths(ctx, files, optsCopy)
		outcomeCh <- checkOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()

	// после выхода из UI события больше никто не читает
	cancel()
	go func() {
		for range events {
		}
	}()

	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
