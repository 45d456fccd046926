package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lintel/internal/driver"
	"lintel/internal/ui"
)

// wantProgress resolves --ui. "auto" shows the view only for pretty output
// with a terminal on both stdout (report) and stderr (view).
func wantProgress(mode string, quiet bool, format string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on":
		return !quiet, nil
	case "off":
		return false, nil
	case "", "auto":
		return !quiet && format == "pretty" && isTerminal(os.Stdout) && isTerminal(os.Stderr), nil
	}
	return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", mode)
}

// progressFiles lists what the view will show, in the order the driver
// reports it.
func progressFiles(paths []string) ([]string, error) {
	files, err := driver.ListSources(paths)
	if err != nil {
		return nil, err
	}
	for i, f := range files {
		files[i] = filepath.ToSlash(f)
	}
	return files, nil
}

// runWithUI runs work in the background while the progress view consumes
// its events on stderr.
func runWithUI[T any](ctx context.Context, title string, paths []string, work func(context.Context, driver.ProgressSink) (T, error)) (T, error) {
	files, err := progressFiles(paths)
	if err != nil {
		var zero T
		return zero, err
	}
	type outcome struct {
		val T
		err error
	}
	events := make(chan driver.Event, 256)
	done := make(chan outcome, 1)
	go func() {
		val, err := work(ctx, driver.ChannelSink{Ch: events})
		close(events)
		done <- outcome{val, err}
	}()

	_, viewErr := tea.NewProgram(ui.NewProgressModel(title, files, events),
		tea.WithOutput(os.Stderr), tea.WithInput(nil)).Run()
	if viewErr != nil {
		// вид умер, но воркеры не должны блокироваться на канале
		go func() {
			for range events {
			}
		}()
	}
	res := <-done
	if viewErr != nil {
		return res.val, viewErr
	}
	return res.val, res.err
}
