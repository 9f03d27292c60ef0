package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/dashcal/internal/calendar"
	appLog "github.com/lululau/dashcal/internal/log"
	"github.com/lululau/dashcal/internal/render"
	"github.com/lululau/dashcal/internal/tasks"
)

type inputMode int

const (
	inputNone inputMode = iota
	inputYear
	inputMonth
)

// Run starts the interactive Bubble Tea UI.
func Run(svc *calendar.Service, idx *tasks.Index, req calendar.Request, opts render.Options) error {
	if svc == nil {
		svc = calendar.NewService()
	}
	if idx == nil {
		idx = tasks.NewIndex(svc.Config())
	}
	m := newModel(svc, idx, req.Normalize(), opts)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

type model struct {
	svc       *calendar.Service
	idx       *tasks.Index
	cfg       calendar.Config
	opts      render.Options
	request   calendar.Request
	cursor    time.Time
	selection calendar.Selection
	width     int
	inputMode inputMode
	input     textinput.Model
	statusMsg string
}

func newModel(svc *calendar.Service, idx *tasks.Index, req calendar.Request, opts render.Options) model {
	ti := textinput.New()
	ti.Placeholder = "number"
	ti.CharLimit = 16
	ti.Prompt = "> "

	cfg := svc.Config()
	opts.Config = cfg
	m := model{
		svc:     svc,
		idx:     idx,
		cfg:     cfg,
		opts:    opts,
		request: req,
		input:   ti,
	}
	m.cursor = m.cursorFor(req)
	return m
}

// cursorFor keeps today focused when it is in the requested month and
// otherwise focuses the first day of the month.
func (m model) cursorFor(req calendar.Request) time.Time {
	today := m.svc.Today()
	if today.Year() == req.Year && int(today.Month()) == req.Month {
		return today
	}
	return req.Anchor(m.cfg)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if m.inputMode != inputNone {
			return m.handleInputKey(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "k", "[":
			m.shiftMonths(-1)
		case "j", "]":
			m.shiftMonths(1)
		case "K", "{":
			m.shiftMonths(-12)
		case "J", "}":
			m.shiftMonths(12)
		case "left":
			m.moveCursor(-1)
		case "right":
			m.moveCursor(1)
		case "up":
			m.moveCursor(-7)
		case "down":
			m.moveCursor(7)
		case "enter", " ":
			m.selection = calendar.ToggleSelection(m.selection, m.cursor, m.cfg)
			appLog.Debug("selection toggled", "day", m.cfg.DayKey(m.cursor), "selected", m.hasSelection())
			m.statusMsg = ""
		case "esc":
			m.selection = m.selection.Clear()
			m.statusMsg = ""
		case "y":
			m.activateInput(inputYear, "")
		case "m":
			m.activateInput(inputMonth, "")
		case ".":
			m.request = calendar.RequestFor(m.svc.Today())
			m.cursor = m.svc.Today()
			m.statusMsg = ""
			m.logMonthError()
		}
	}
	return m, nil
}

func (m model) hasSelection() bool {
	_, ok := m.selection.Date()
	return ok
}

// shiftMonths moves the displayed month and carries the cursor along,
// clamping its day to the new month's length.
func (m *model) shiftMonths(n int) {
	m.cursor = calendar.ShiftMonth(m.cursor, n)
	m.request = calendar.RequestFor(m.cursor)
	m.statusMsg = ""
	m.logMonthError()
}

// moveCursor moves the focused day; leaving the month moves the view.
func (m *model) moveCursor(days int) {
	m.cursor = m.cfg.StartOfDay(m.cursor.AddDate(0, 0, days))
	if req := calendar.RequestFor(m.cursor); req != m.request {
		m.request = req
		m.logMonthError()
	}
	m.statusMsg = ""
}

// logMonthError records a month that cannot be drawn. It runs when the
// request changes so repeated redraws of the same month stay quiet.
func (m model) logMonthError() {
	if _, err := m.svc.Month(m.request.Year, m.request.Month); err != nil {
		appLog.Error("month grid failed", err, "year", m.request.Year, "month", m.request.Month)
	}
}

func (m model) View() string {
	if m.inputMode != inputNone {
		return m.inputView()
	}

	body, err := m.renderDashboard()
	status := m.statusMsg
	if err != nil {
		status = err.Error()
	}

	sb := strings.Builder{}
	sb.WriteString(body)
	sb.WriteString("\n\n")
	sb.WriteString(render.HelpLine(m.opts.NoColor))
	if status != "" {
		sb.WriteString("\n")
		if m.opts.NoColor {
			sb.WriteString(status)
		} else {
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")).Render(status))
		}
	}
	return sb.String()
}

// renderDashboard draws the current month. When the grid cannot be built
// it draws an empty grid and returns the error for the status line.
func (m model) renderDashboard() (string, error) {
	opts := m.opts
	opts.Today = m.svc.Today()
	opts.Selection = m.selection
	opts.Cursor = m.cursor
	visible := m.idx.Visible(m.selection)

	view, err := m.svc.Month(m.request.Year, m.request.Month)
	if err != nil {
		title := strconv.Itoa(m.request.Year) + "-" + strconv.Itoa(m.request.Month)
		return render.EmptyDashboard(title, visible, opts), err
	}
	return render.Dashboard(view, visible, opts), nil
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = inputNone
		m.statusMsg = ""
		return m, nil
	case tea.KeyEnter:
		m.applyInput()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) activateInput(mode inputMode, placeholder string) {
	m.inputMode = mode
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
	m.input.Focus()
	m.statusMsg = ""
}

func (m *model) applyInput() {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		m.statusMsg = "enter a number"
		return
	}
	req := m.request
	switch m.inputMode {
	case inputYear:
		fields := strings.Fields(value)
		if len(fields) == 0 || len(fields) > 2 {
			m.statusMsg = "format: year or year month"
			return
		}
		year, err := strconv.Atoi(fields[0])
		if err != nil {
			m.statusMsg = "invalid year"
			return
		}
		req.Year = year
		if len(fields) == 2 {
			month, err := strconv.Atoi(fields[1])
			if err != nil || month < 1 || month > 12 {
				m.statusMsg = "month must be between 1 and 12"
				return
			}
			req.Month = month
		}
	case inputMonth:
		num, err := strconv.Atoi(value)
		if err != nil {
			m.statusMsg = "invalid month"
			return
		}
		if num < 1 || num > 12 {
			m.statusMsg = "month must be between 1 and 12"
			return
		}
		req.Month = num
	}
	req.Mode = calendar.ModeMonth
	m.request = req.Normalize()
	m.cursor = m.cursorFor(m.request)
	m.statusMsg = ""
	m.inputMode = inputNone
	m.input.Blur()
	m.logMonthError()
}

func (m model) inputView() string {
	var label string
	switch m.inputMode {
	case inputYear:
		label = "Enter year, optionally followed by month (enter to confirm / esc to cancel)"
	case inputMonth:
		label = "Enter month 1-12 (enter to confirm / esc to cancel)"
	default:
		return ""
	}
	if m.opts.NoColor {
		return label + "\n\n" + m.input.View()
	}
	return lipgloss.NewStyle().
		Bold(true).
		Render(label) + "\n\n" + m.input.View()
}
