package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sable/internal/buildpipeline"
	"sable/internal/ui"
)

// runAnalyzeWithUI drives the analysis on a goroutine while the
// terminal model consumes its progress events. The model quits when
// the event channel closes, so the run result is ready by the time
// the program returns.
func runAnalyzeWithUI(ctx context.Context, title string, files []string, req *buildpipeline.AnalyzeRequest) (buildpipeline.AnalyzeResult, error) {
	if req == nil {
		return buildpipeline.AnalyzeResult{}, fmt.Errorf("missing analyze request")
	}

	events := make(chan buildpipeline.Event, 256)
	done := make(chan struct{})
	var (
		result buildpipeline.AnalyzeResult
		runErr error
	)
	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		result, runErr = buildpipeline.Analyze(ctx, &reqCopy)
		close(events)
		close(done)
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, files, events), tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	<-done

	if uiErr != nil {
		return result, uiErr
	}
	return result, runErr
}
