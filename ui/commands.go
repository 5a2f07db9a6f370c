package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/trendtui/types"
)

// fetchTimeout bounds one fetch, on top of the HTTP client's own timeout
const fetchTimeout = 45 * time.Second

// Message types for async operations

type fetchResultMsg struct {
	requestID int
	data      types.TrendsData
	err       error
}

type copiedMsg struct {
	err error
}

// fetchTrends returns a tea.Cmd that fetches the dashboard data asynchronously
func fetchTrends(source types.Source, keyword string, requestID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		data, err := source.Fetch(ctx, keyword)
		return fetchResultMsg{requestID: requestID, data: data, err: err}
	}
}

// copyText returns a tea.Cmd that writes text to the system clipboard
func copyText(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: write(text)}
	}
}

func writeClipboard(text string) error {
	return clipboard.WriteAll(text)
}
