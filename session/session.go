// Package session holds the dashboard's state machine. State is an immutable
// value; every transition goes through Reduce and yields a new State, so a
// renderer holding a State never observes a half-applied update.
package session

import (
	"github.com/qyinm/trendtui/source"
	"github.com/qyinm/trendtui/types"
)

// Status is the fetch lifecycle of a session
type Status int

const (
	Loading Status = iota
	Ready
	Failed
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// State is one snapshot of the session. The zero value is not usable; build
// one with New.
type State struct {
	status     Status
	keyword    string
	mode       types.SourceMode
	data       types.TrendsData
	hasData    bool
	err        string
	themeIndex int
	themeCount int
	requestID  int
}

// New creates the initial loading state. themeCount must be positive; a
// non-positive count is treated as a single theme. themeIndex is wrapped into
// range.
func New(keyword string, mode types.SourceMode, themeIndex, themeCount int) State {
	if themeCount < 1 {
		themeCount = 1
	}
	return State{
		status:     Loading,
		keyword:    keyword,
		mode:       mode,
		themeIndex: wrap(themeIndex, themeCount),
		themeCount: themeCount,
		requestID:  1,
	}
}

// Getters for State fields
func (s State) Status() Status         { return s.status }
func (s State) Keyword() string        { return s.keyword }
func (s State) Mode() types.SourceMode { return s.mode }
func (s State) ThemeIndex() int        { return s.themeIndex }
func (s State) ThemeCount() int        { return s.themeCount }
func (s State) RequestID() int         { return s.requestID }
func (s State) Error() string          { return s.err }

// Data returns the fetched data and whether there is any
func (s State) Data() (types.TrendsData, bool) { return s.data, s.hasData }

// Event is an input to Reduce
type Event interface {
	isEvent()
}

// FetchSucceeded reports data for the request with the given ID
type FetchSucceeded struct {
	RequestID int
	Data      types.TrendsData
}

// FetchFailed reports an error for the request with the given ID
type FetchFailed struct {
	RequestID int
	Err       error
}

// CycleTheme moves the theme index one step in the sign of Direction,
// wrapping. A zero Direction leaves the state unchanged.
type CycleTheme struct {
	Direction int
}

// Retry re-enters loading from the error state with a fresh request ID
type Retry struct{}

func (FetchSucceeded) isEvent() {}
func (FetchFailed) isEvent()    {}
func (CycleTheme) isEvent()     {}
func (Retry) isEvent()          {}

// Reduce applies e to s and returns the resulting state. s is never modified.
// Fetch results for any request other than the current one are ignored, as
// are results arriving outside the loading state.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case FetchSucceeded:
		if s.status != Loading || ev.RequestID != s.requestID {
			return s
		}
		if len(ev.Data.Timeline()) == 0 {
			return fail(s, source.UserMessage(source.ErrEmptyTimeline))
		}
		next := s
		next.status = Ready
		next.data = ev.Data
		next.hasData = true
		next.err = ""
		return next

	case FetchFailed:
		if s.status != Loading || ev.RequestID != s.requestID {
			return s
		}
		msg := source.UserMessage(ev.Err)
		if msg == "" {
			msg = "Unknown error"
		}
		return fail(s, msg)

	case CycleTheme:
		if s.themeCount < 1 || ev.Direction == 0 {
			return s
		}
		dir := 1
		if ev.Direction < 0 {
			dir = -1
		}
		next := s
		next.themeIndex = wrap(s.themeIndex+dir, s.themeCount)
		return next

	case Retry:
		if s.status != Failed {
			return s
		}
		next := s
		next.status = Loading
		next.data = types.TrendsData{}
		next.hasData = false
		next.err = ""
		next.requestID = s.requestID + 1
		return next
	}
	return s
}

func fail(s State, msg string) State {
	next := s
	next.status = Failed
	next.data = types.TrendsData{}
	next.hasData = false
	next.err = msg
	return next
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
