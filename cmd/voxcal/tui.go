package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	orchestration "github.com/nvolchak/voxcal-core/core"
	"github.com/nvolchak/voxcal-core/core/calendar"
	"github.com/nvolchak/voxcal-core/core/events"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	standardStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	highlightStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	updateStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	destructiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	newStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	errorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("124")).Padding(0, 1)
	confirmStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type sessionEventMsg struct {
	event events.Event
}

type model struct {
	session  *session
	spinner  spinner.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	state          orchestration.SessionState
	transcript     string
	interim        string
	window         calendar.ScheduleWindow
	display        []calendar.DisplayEvent
	focus          *calendar.FocusEvent
	pendingSummary string
	notice         string
	errorText      string
}

func newModel(s *session) model {
	indicator := spinner.New()
	indicator.Spinner = spinner.Dot
	indicator.Style = highlightStyle

	return model{
		session: s,
		spinner: indicator,
		state:   orchestration.StateIdle,
	}
}

func waitForEvent(stream <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		return sessionEventMsg{event: <-stream}
	}
}

func loadInitialSchedule(s *session) tea.Cmd {
	return func() tea.Msg {
		s.loadInitialSchedule()
		return nil
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForEvent(m.session.events),
		loadInitialSchedule(m.session),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.state == orchestration.StateCapturing {
				m.session.orchestrator.StopCapture()
			} else {
				m.session.orchestrator.StartCapture()
			}
		case "y", "enter":
			m.session.orchestrator.Confirm()
		case "n", "esc":
			m.session.orchestrator.Cancel()
		case "d":
			m.session.orchestrator.DismissMessages()
		case "r":
			return m, loadInitialSchedule(m.session)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := msg.Height - 7
		if contentHeight < 3 {
			contentHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, contentHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = contentHeight
		}
		m.viewport.SetContent(m.renderSchedule())
		return m, nil

	case sessionEventMsg:
		m.applyEvent(msg.event)
		if m.ready {
			m.viewport.SetContent(m.renderSchedule())
			m.scrollToFocus()
		}
		return m, waitForEvent(m.session.events)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) applyEvent(event events.Event) {
	switch typedEvent := event.(type) {
	case events.SessionStateChanged:
		m.state = orchestration.SessionState(typedEvent.State)
	case events.TranscriptInterimUpdated:
		m.interim = typedEvent.Transcript
	case events.TranscriptFinal:
		m.transcript = typedEvent.Transcript
		m.interim = ""
	case events.ScheduleUpdated:
		m.window = typedEvent.Window
		m.display = typedEvent.Events
		m.focus = typedEvent.Focus
	case events.ActionProposed:
		m.pendingSummary = typedEvent.Summary
	case events.ActionConfirmed, events.ActionCancelled:
		m.pendingSummary = ""
	case events.NoticePosted:
		m.notice = typedEvent.Text
	case events.NoticeCleared:
		m.notice = ""
	case events.ErrorPosted:
		m.errorText = typedEvent.Text
	case events.ErrorCleared:
		m.errorText = ""
	}
}

// scrollToFocus keeps the focused event inside the viewport.
func (m *model) scrollToFocus() {
	if m.focus == nil {
		return
	}
	line := 0
	for _, entry := range m.display {
		if entry.IsHidden {
			continue
		}
		if entry.Event.ID == m.focus.EventID {
			if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
				m.viewport.SetYOffset(line)
			}
			return
		}
		line++
	}
}

func (m model) View() string {
	if !m.ready {
		return "starting..."
	}

	var view strings.Builder
	view.WriteString(m.renderHeader())
	view.WriteString("\n")
	view.WriteString(m.viewport.View())
	view.WriteString("\n")
	view.WriteString(m.renderStatus())
	return view.String()
}

func (m model) renderHeader() string {
	title := titleStyle.Render("voxcal")
	rangeLabel := ""
	if !m.window.Start.IsZero() {
		rangeLabel = dimStyle.Render(fmt.Sprintf("  %s — %s",
			m.window.Start.Format("Mon Jan 2"),
			m.window.End.Add(-time.Second).Format("Mon Jan 2")))
	}
	return title + rangeLabel
}

func (m model) renderSchedule() string {
	if len(m.display) == 0 {
		return dimStyle.Render("No events in this window.")
	}

	var lines []string
	for _, entry := range m.display {
		if entry.IsHidden {
			continue
		}
		lines = append(lines, m.renderEvent(entry))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderEvent(entry calendar.DisplayEvent) string {
	style := standardStyle
	marker := " "
	switch entry.Style {
	case calendar.StyleHighlight:
		style, marker = highlightStyle, ">"
	case calendar.StyleUpdate:
		style, marker = updateStyle, "~"
	case calendar.StyleDestructive:
		style, marker = destructiveStyle, "x"
	case calendar.StyleNew:
		style, marker = newStyle, "+"
	}

	title := entry.Event.Title
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("%s %s  %s", marker, eventTimeLabel(entry.Event), title)
	if entry.Event.Location != "" {
		line += dimStyle.Render("  @ " + entry.Event.Location)
	}
	return style.Render(line)
}

func eventTimeLabel(event calendar.CalendarEvent) string {
	if event.IsAllDay() {
		return "all day     "
	}
	start, ok := event.StartInstant()
	if !ok {
		return "            "
	}
	label := start.Format("Mon 15:04")
	if event.End != nil {
		if end, endOK := event.End.Instant(); endOK {
			label += "-" + end.Format("15:04")
		}
	}
	return fmt.Sprintf("%-12s", label)
}

func (m model) renderStatus() string {
	var lines []string

	switch {
	case m.errorText != "":
		lines = append(lines, errorStyle.Render(wordwrap.String(m.errorText, max(m.width-4, 20))))
	case m.notice != "":
		lines = append(lines, noticeStyle.Render(wordwrap.String(m.notice, max(m.width-4, 20))))
	}

	if m.pendingSummary != "" {
		lines = append(lines, confirmStyle.Render(fmt.Sprintf("%s — confirm? (y/n)", m.pendingSummary)))
	}

	switch m.state {
	case orchestration.StateCapturing:
		transcript := m.interim
		if transcript == "" {
			transcript = "listening..."
		}
		lines = append(lines, m.spinner.View()+highlightStyle.Render(" ● recording  ")+dimStyle.Render(transcript))
	case orchestration.StateIdle:
		status := dimStyle.Render("space: talk   y/n: confirm/cancel   r: reload   q: quit")
		if m.transcript != "" {
			status = dimStyle.Render(`heard: "`+m.transcript+`"`) + "\n" + status
		}
		lines = append(lines, status)
	case orchestration.StateAwaitingConfirmation:
		lines = append(lines, dimStyle.Render("review the proposed change above"))
	default:
		lines = append(lines, m.spinner.View()+dimStyle.Render(" "+string(m.state)))
	}

	return strings.Join(lines, "\n")
}
