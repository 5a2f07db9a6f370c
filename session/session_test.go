package session

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qyinm/trendtui/source"
	"github.com/qyinm/trendtui/types"
)

func sampleData() types.TrendsData {
	return types.NewTrendsData(
		[]types.TimelinePoint{types.NewTimelinePoint("2024-01-01", 40), types.NewTimelinePoint("2024-01-08", 100)},
		[]types.RankedItem{types.NewRankedItem("Jan '24 08", 100)},
		[]types.RankedItem{types.NewRankedItem("Jan '24", 100)},
	)
}

func TestNewStartsLoading(t *testing.T) {
	s := New("bitcoin", types.SearchTrends, 0, 6)
	assert.Equal(t, Loading, s.Status())
	assert.Equal(t, "bitcoin", s.Keyword())
	assert.Equal(t, types.SearchTrends, s.Mode())
	_, ok := s.Data()
	assert.False(t, ok)
	assert.Empty(t, s.Error())
	assert.Equal(t, 1, s.RequestID())
}

func TestNewWrapsThemeIndex(t *testing.T) {
	assert.Equal(t, 1, New("x", types.SearchTrends, 7, 6).ThemeIndex())
	assert.Equal(t, 5, New("x", types.SearchTrends, -1, 6).ThemeIndex())
	assert.Equal(t, 0, New("x", types.SearchTrends, 3, 0).ThemeIndex())
}

func TestLoadingToReady(t *testing.T) {
	s := New("react", types.PackageDownloads, 0, 6)
	next := Reduce(s, FetchSucceeded{RequestID: s.RequestID(), Data: sampleData()})

	assert.Equal(t, Ready, next.Status())
	data, ok := next.Data()
	require.True(t, ok)
	assert.Len(t, data.Timeline(), 2)

	// the previous snapshot is untouched
	assert.Equal(t, Loading, s.Status())
	_, ok = s.Data()
	assert.False(t, ok)
}

func TestLoadingToErrorNotFound(t *testing.T) {
	s := New("no-such-pkg", types.PackageDownloads, 0, 6)
	next := Reduce(s, FetchFailed{RequestID: 1, Err: &source.NotFoundError{Package: "no-such-pkg"}})

	assert.Equal(t, Failed, next.Status())
	assert.Contains(t, next.Error(), "no-such-pkg")
	_, ok := next.Data()
	assert.False(t, ok)
}

func TestLoadingToErrorRateLimited(t *testing.T) {
	s := New("bitcoin", types.SearchTrends, 0, 6)
	err := fmt.Errorf("fetch trends: %w", fmt.Errorf("%w: Error 429 (Too Many Requests)!!1", source.ErrRateLimited))
	next := Reduce(s, FetchFailed{RequestID: 1, Err: err})

	assert.Equal(t, Failed, next.Status())
	assert.Equal(t, source.RateLimitMessage, next.Error())
	assert.False(t, strings.Contains(next.Error(), "429"))
}

func TestEmptyTimelineIsError(t *testing.T) {
	s := New("bitcoin", types.SearchTrends, 0, 6)
	next := Reduce(s, FetchSucceeded{RequestID: 1, Data: types.NewTrendsData(nil, nil, nil)})
	assert.Equal(t, Failed, next.Status())
	assert.NotEmpty(t, next.Error())
}

func TestStaleResultsIgnored(t *testing.T) {
	s := New("bitcoin", types.SearchTrends, 0, 6)
	s = Reduce(s, FetchFailed{RequestID: 1, Err: errors.New("boom")})
	s = Reduce(s, Retry{})
	require.Equal(t, Loading, s.Status())
	require.Equal(t, 2, s.RequestID())

	stale := Reduce(s, FetchSucceeded{RequestID: 1, Data: sampleData()})
	assert.Equal(t, Loading, stale.Status())

	fresh := Reduce(s, FetchSucceeded{RequestID: 2, Data: sampleData()})
	assert.Equal(t, Ready, fresh.Status())
}

func TestReadyAndErrorAreStable(t *testing.T) {
	ready := Reduce(New("x", types.SearchTrends, 0, 6), FetchSucceeded{RequestID: 1, Data: sampleData()})
	assert.Equal(t, Ready, Reduce(ready, FetchFailed{RequestID: 1, Err: errors.New("late")}).Status())
	assert.Equal(t, Ready, Reduce(ready, Retry{}).Status(), "retry only applies to the error state")

	failed := Reduce(New("x", types.SearchTrends, 0, 6), FetchFailed{RequestID: 1, Err: errors.New("boom")})
	assert.Equal(t, Failed, Reduce(failed, FetchSucceeded{RequestID: 1, Data: sampleData()}).Status())
	assert.Equal(t, "boom", failed.Error())
}

func TestRetryClearsError(t *testing.T) {
	failed := Reduce(New("x", types.SearchTrends, 2, 6), FetchFailed{RequestID: 1, Err: errors.New("boom")})
	retried := Reduce(failed, Retry{})
	assert.Equal(t, Loading, retried.Status())
	assert.Empty(t, retried.Error())
	assert.Equal(t, 2, retried.ThemeIndex())
}

func TestThemeCycleIsClosed(t *testing.T) {
	const themes = 6
	s := New("x", types.SearchTrends, 0, themes)
	for i := 0; i < themes; i++ {
		s = Reduce(s, CycleTheme{Direction: 1})
	}
	assert.Equal(t, 0, s.ThemeIndex())

	back := Reduce(New("x", types.SearchTrends, 0, themes), CycleTheme{Direction: -1})
	assert.Equal(t, themes-1, back.ThemeIndex())
}

func TestThemeCycleLegalInEveryStatus(t *testing.T) {
	loading := New("x", types.SearchTrends, 0, 3)
	ready := Reduce(loading, FetchSucceeded{RequestID: 1, Data: sampleData()})
	failed := Reduce(loading, FetchFailed{RequestID: 1, Err: errors.New("boom")})

	for _, s := range []State{loading, ready, failed} {
		next := Reduce(s, CycleTheme{Direction: 1})
		assert.Equal(t, 1, next.ThemeIndex(), s.Status().String())
		assert.Equal(t, s.Status(), next.Status())
	}
}

func TestThemeCycleZeroDirectionIsNoop(t *testing.T) {
	s := New("x", types.SearchTrends, 2, 4)
	assert.Equal(t, s, Reduce(s, CycleTheme{}))

	assert.Equal(t, 3, Reduce(s, CycleTheme{Direction: 5}).ThemeIndex())
	assert.Equal(t, 1, Reduce(s, CycleTheme{Direction: -5}).ThemeIndex())
}

func TestZeroValueStateToleratesEvents(t *testing.T) {
	var s State
	require.NotPanics(t, func() {
		s = Reduce(s, CycleTheme{Direction: 1})
		s = Reduce(s, CycleTheme{Direction: -1})
	})
	assert.Equal(t, 0, s.ThemeIndex())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "error", Failed.String())
}
