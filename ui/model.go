package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qyinm/trendtui/format"
	"github.com/qyinm/trendtui/session"
	"github.com/qyinm/trendtui/types"
)

const bannerText = `  _____ _   _ ___    _____ ____  _____ _   _ ____  ____
 |_   _| | | |_ _|  |_   _|  _ \| ____| \ | |  _ \/ ___|
   | | | | | || |     | | | |_) |  _| |  \| | | | \___ \
   | | | |_| || |     | | |  _ <| |___| |\  | |_| |___) |
   |_|  \___/|___|    |_| |_| \_\_____|_| \_|____/|____/`

// Model is the main TUI model
type Model struct {
	source     types.Source
	state      session.State
	spinner    spinner.Model
	help       help.Model
	keys       keyMap
	width      int
	height     int
	axisLabels int
	copy       func(string) error
	statusMsg  string
	logger     *slog.Logger
}

// Option configures a Model
type Option func(*Model)

// WithTheme starts the dashboard on the theme at index i
func WithTheme(i int) Option {
	return func(m *Model) {
		m.state = session.New(m.state.Keyword(), m.state.Mode(), i, len(Themes))
	}
}

// WithAxisLabels sets how many x-axis labels the chart shows
func WithAxisLabels(n int) Option {
	return func(m *Model) {
		if n > 1 {
			m.axisLabels = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

func withClipboard(write func(string) error) Option {
	return func(m *Model) { m.copy = write }
}

// NewModel creates a Model that fetches keyword from source on Init
func NewModel(source types.Source, keyword string, mode types.SourceMode, opts ...Option) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		source:     source,
		state:      session.New(keyword, mode, 0, len(Themes)),
		spinner:    s,
		help:       help.New(),
		keys:       keys,
		axisLabels: format.DefaultAxisLabels,
		copy:       writeClipboard,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// State returns the current session snapshot
func (m Model) State() session.State {
	return m.state
}

// Init starts the spinner and the first fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m Model) fetch() tea.Cmd {
	m.logger.Debug("fetch started",
		"mode", m.state.Mode().String(),
		"keyword", m.state.Keyword(),
		"request_id", m.state.RequestID(),
	)
	return fetchTrends(m.source, m.state.Keyword(), m.state.RequestID())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case fetchResultMsg:
		if msg.requestID != m.state.RequestID() {
			m.logger.Debug("stale fetch result ignored", "request_id", msg.requestID)
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("fetch failed", "keyword", m.state.Keyword(), "error", msg.err)
			m.state = session.Reduce(m.state, session.FetchFailed{RequestID: msg.requestID, Err: msg.err})
			return m, nil
		}
		m.state = session.Reduce(m.state, session.FetchSucceeded{RequestID: msg.requestID, Data: msg.data})
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", "error", msg.err)
			m.statusMsg = "Copy failed: " + msg.err.Error()
		} else {
			m.statusMsg = "Summary copied to clipboard"
		}
		return m, nil

	case spinner.TickMsg:
		if m.state.Status() != session.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTheme):
		m.state = session.Reduce(m.state, session.CycleTheme{Direction: 1})

	case key.Matches(msg, m.keys.PrevTheme):
		m.state = session.Reduce(m.state, session.CycleTheme{Direction: -1})

	case key.Matches(msg, m.keys.Retry):
		if m.state.Status() != session.Failed {
			return m, nil
		}
		m.state = session.Reduce(m.state, session.Retry{})
		m.statusMsg = ""
		return m, tea.Batch(m.spinner.Tick, m.fetch())

	case key.Matches(msg, m.keys.Copy):
		if m.state.Status() != session.Ready {
			return m, nil
		}
		return m, copyText(m.copy, m.summary())

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// summary is the one-line text put on the clipboard
func (m Model) summary() string {
	data, _ := m.state.Data()
	stats := format.Summarize(data.Timeline())
	return fmt.Sprintf("%s (%s): peak %d, avg %d, current %d",
		m.state.Keyword(), m.state.Mode(), stats.Peak, stats.Average, stats.Current)
}

func (m Model) theme() Theme {
	return Themes[m.state.ThemeIndex()]
}

// View renders the current view
func (m Model) View() string {
	st := newStyles(m.theme())
	var body string
	switch m.state.Status() {
	case session.Loading:
		body = m.loadingView(st)
	case session.Failed:
		body = m.errorView(st)
	default:
		body = m.dashboardView(st)
	}
	return body + "\n\n" + m.footer(st)
}

func (m Model) loadingView(st styles) string {
	lines := strings.Split(bannerText, "\n")
	for i, line := range lines {
		if i%2 == 0 {
			lines[i] = st.Banner1.Render(line)
		} else {
			lines[i] = st.Banner2.Render(line)
		}
	}
	what := "trends"
	if m.state.Mode() == types.PackageDownloads {
		what = "npm downloads"
	}
	return strings.Join(lines, "\n") + "\n\n" +
		m.spinner.View() + " " + st.Loading.Render(fmt.Sprintf("Fetching %s for %q…", what, m.state.Keyword())) + "\n" +
		st.Dim.Render("This may take a few seconds")
}

func (m Model) header(st styles, subtitle string) string {
	return st.Title.Render("TUI TRENDS") + " " + st.Subtitle.Render(subtitle)
}

func (m Model) errorView(st styles) string {
	return m.header(st, strconv.Quote(m.state.Keyword())) + "\n\n" +
		st.Error.Render(m.state.Error()) + "\n\n" +
		st.Dim.Render("Press [q] to quit, [r] to retry")
}

type panelTitles struct {
	chart, ranking, breakdown string
	nameColumn, valueColumn   string
	subtitle                  string
}

func titlesFor(mode types.SourceMode) panelTitles {
	if mode == types.PackageDownloads {
		return panelTitles{
			chart:       "Weekly Downloads",
			ranking:     "Peak Weeks",
			breakdown:   "Monthly Breakdown",
			nameColumn:  "Month",
			valueColumn: "Index",
			subtitle:    "npm downloads (weekly index, 0–100)",
		}
	}
	return panelTitles{
		chart:       "Interest Over Time",
		ranking:     "Top Regions",
		breakdown:   "Related Queries",
		nameColumn:  "Query",
		valueColumn: "Score",
		subtitle:    "interest over the last 12 months",
	}
}

func (m Model) dashboardView(st styles) string {
	data, _ := m.state.Data()
	titles := titlesFor(m.state.Mode())

	width := chartWidth
	if m.width > 0 && m.width-6 < width {
		width = max(m.width-6, gutterWidth+30)
	}

	stats := format.Summarize(data.Timeline())
	chart := renderLineChart(data.Values(), width, chartHeight, st.Chart, st.Dim)
	axis := strings.Repeat(" ", gutterWidth) +
		renderAxis(format.AxisLabels(data.Timeline(), m.axisLabels), width-gutterWidth)
	statLine := st.Peak.Render(fmt.Sprintf("Peak: %d", stats.Peak)) + "  " +
		st.Avg.Render(fmt.Sprintf("Avg: %d", stats.Average)) + "  " +
		st.Current.Render(fmt.Sprintf("Current: %d", stats.Current))

	top := m.panel(st, titles.chart, chart+"\n"+st.Dim.Render(axis)+"\n"+statLine, width)

	// two bordered panels side by side span the same outer width as the chart panel
	outer := width + 4
	leftWidth := outer/2 - 4
	rightWidth := outer - outer/2 - 4
	left := m.panel(st, titles.ranking, renderBars(data.Ranking(), leftWidth, st.Bar, st.Dim), leftWidth)
	right := m.panel(st, titles.breakdown, m.breakdownTable(data.Breakdown(), titles, rightWidth), rightWidth)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	header := m.header(st, fmt.Sprintf("%q — %s", m.state.Keyword(), titles.subtitle))
	return lipgloss.JoinVertical(lipgloss.Left, header, top, bottom)
}

// panel frames body; width is the content width inside border and padding
func (m Model) panel(st styles, title, body string, width int) string {
	return st.Panel.Width(width + 2).Render(st.PanelTtl.Render("▸  "+title) + "\n" + body)
}

func (m Model) breakdownTable(items []types.RankedItem, titles panelTitles, width int) string {
	// each column carries one cell of padding on both sides
	valueWidth := 7
	nameWidth := max(width-valueWidth-4, 8)
	rows := make([]table.Row, len(items))
	for i, item := range items {
		rows[i] = table.Row{item.Name(), fmt.Sprintf("%*d", valueWidth, item.Value())}
	}

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme().Dim).
		BorderBottom(true).
		Foreground(m.theme().Accent2).
		Bold(true)
	ts.Selected = ts.Cell

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: titles.nameColumn, Width: nameWidth},
			{Title: titles.valueColumn, Width: valueWidth},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
		table.WithStyles(ts),
	)
	return t.View()
}

func (m Model) footer(st styles) string {
	t := m.theme()
	left := st.HelpKey.Render("[q]") + " " + st.HelpDesc.Render("quit") + "  " +
		st.HelpKey.Render("[← →]") + " " + st.HelpDesc.Render("cycle theme")
	right := st.Status.Render(fmt.Sprintf("%s  (%d/%d)", t.Name, m.state.ThemeIndex()+1, m.state.ThemeCount()))

	line := left + "    " + right
	if m.statusMsg != "" {
		line += "    " + st.Dim.Render(m.statusMsg)
	}
	if m.help.ShowAll {
		line += "\n" + m.help.View(m.keys)
	}
	return line
}
