package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"glslgen/internal/batch"
	"glslgen/internal/ui"
)

type batchOutcome struct {
	results []batch.FileResult
	err     error
}

// runBatchWithUI runs req in the background while a progress view consumes
// its events.
func runBatchWithUI(ctx context.Context, title string, files []string, req *batch.Request) ([]batch.FileResult, error) {
	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = batch.ChannelSink{Ch: events}
		results, err := batch.Run(ctx, &reqCopy)
		outcomeCh <- batchOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
