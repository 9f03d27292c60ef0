package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/dashcal/internal/calendar"
	"github.com/lululau/dashcal/internal/tasks"
	"github.com/lululau/dashcal/internal/textwidth"
)

const (
	cellPadding  = 1
	minCellWidth = 4
	blockGap     = 2
	taskDot      = "•"
	taskMark     = "○"

	// EmptyTasksMessage is shown when the task list has nothing to show.
	EmptyTasksMessage = "No tasks for the day."
)

// Options carries everything a render pass depends on besides the view.
type Options struct {
	Config    calendar.Config
	Theme     Theme
	MaxDots   int
	NoColor   bool
	Today     time.Time
	Selection calendar.Selection
	// Cursor is the focused day in the interactive UI. Zero means none.
	Cursor time.Time
}

func (o Options) withDefaults() Options {
	if o.MaxDots <= 0 {
		o.MaxDots = 5
	}
	if o.Theme.Name == "" {
		o.Theme = ThemeByName("")
	}
	return o
}

// MonthBlock packages rendered lines with their visual width/height.
type MonthBlock struct {
	Lines  []string
	Width  int
	Height int
}

// String joins the block's lines.
func (b MonthBlock) String() string {
	return strings.Join(b.Lines, "\n")
}

// Dashboard renders the header, weekday strip, month grid and task list.
func Dashboard(view calendar.MonthView, visible []tasks.Task, opts Options) string {
	opts = opts.withDefaults()
	block := buildMonthBlock(view, opts)
	list := TaskList(visible, block.Width, opts)
	return block.String() + "\n\n" + list
}

// EmptyDashboard is drawn when no grid could be built for the month.
func EmptyDashboard(title string, visible []tasks.Task, opts Options) string {
	opts = opts.withDefaults()
	width := 7 * (minCellWidth + 2*cellPadding + 2)
	return Header(title, width, opts) + "\n\n" + TaskList(visible, width, opts)
}

// BuildBlocks converts month views into renderable blocks.
func BuildBlocks(views []calendar.MonthView, opts Options) []MonthBlock {
	opts = opts.withDefaults()
	blocks := make([]MonthBlock, len(views))
	for i, view := range views {
		blocks[i] = buildMonthBlock(view, opts)
	}
	return blocks
}

// Layout places blocks side by side, wrapping to a new row when the next
// block would exceed width.
func Layout(blocks []MonthBlock, width int) string {
	if len(blocks) == 0 {
		return ""
	}
	gap := strings.Repeat(" ", blockGap)
	var rows []string
	var row []string
	used := 0
	for _, block := range blocks {
		if len(row) > 0 && used+blockGap+block.Width > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		if len(row) > 0 {
			row = append(row, gap)
			used += blockGap
		}
		row = append(row, block.String())
		used += block.Width
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	return strings.Join(rows, "\n\n")
}

func buildMonthBlock(view calendar.MonthView, opts Options) MonthBlock {
	colWidth := determineColumnWidth(view, opts)
	gridWidth := 7 * (colWidth + 2)

	body := lipgloss.JoinVertical(lipgloss.Left,
		Header(view.Title, gridWidth, opts),
		WeekdayStrip(view, colWidth, opts),
		Grid(view, colWidth, opts),
	)
	lines := strings.Split(body, "\n")

	width := 0
	for _, line := range lines {
		if w := textwidth.StringWidth(line); w > width {
			width = w
		}
	}
	return MonthBlock{
		Lines:  lines,
		Width:  width,
		Height: len(lines),
	}
}

// determineColumnWidth returns the inner cell width: wide enough for the
// day number, the dot row and any lunar label.
func determineColumnWidth(view calendar.MonthView, opts Options) int {
	width := max(minCellWidth, opts.MaxDots)
	for _, week := range view.Weeks {
		for _, day := range week {
			width = max(width, textwidth.StringWidth(day.SecondaryLabel()))
		}
	}
	return width + cellPadding*2
}

// Header renders "‹ Title ›" across width columns.
func Header(title string, width int, opts Options) string {
	style := lipgloss.NewStyle().Bold(true)
	if !opts.NoColor {
		style = style.Foreground(opts.Theme.Accent)
	}
	inner := max(width-2, textwidth.StringWidth(title))
	return "‹" + lipgloss.PlaceHorizontal(inner, lipgloss.Center, style.Render(title)) + "›"
}

// WeekdayStrip renders the weekday symbols, highlighting today's weekday.
func WeekdayStrip(view calendar.MonthView, colWidth int, opts Options) string {
	weekdays := opts.Config.Weekdays()
	cells := make([]string, len(view.Weekdays))
	for i, symbol := range view.Weekdays {
		isToday := !opts.Today.IsZero() && i < len(weekdays) && weekdays[i] == opts.Today.Weekday()
		style := lipgloss.NewStyle().Width(colWidth + 2).Align(lipgloss.Center)
		switch {
		case opts.NoColor && isToday:
			symbol = "[" + symbol + "]"
		case opts.NoColor:
		case isToday:
			style = style.Bold(true).Foreground(opts.Theme.Text).Background(opts.Theme.StripToday)
		default:
			style = style.Foreground(opts.Theme.Muted).Background(opts.Theme.Strip)
		}
		cells[i] = style.Render(symbol)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// Grid renders the weeks of view as rows of bordered cells.
func Grid(view calendar.MonthView, colWidth int, opts Options) string {
	rows := make([]string, len(view.Weeks))
	for i, week := range view.Weeks {
		cells := make([]string, len(week))
		for j, day := range week {
			cells[j] = renderCell(day, colWidth, opts)
		}
		rows[i] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(day calendar.Day, colWidth int, opts Options) string {
	selected := opts.Selection.IsSelected(day.Date, opts.Config)
	cursor := !opts.Cursor.IsZero() && opts.Config.SameDay(opts.Cursor, day.Date)

	number := fmt.Sprintf("%d", day.Date.Day())
	if opts.NoColor {
		switch {
		case selected:
			number = "[" + number + "]"
		case cursor:
			number = ">" + number
		}
	}
	lines := []string{number}
	if day.HasLunarData() {
		lines = append(lines, day.SecondaryLabel())
	}
	lines = append(lines, strings.Repeat(taskDot, min(day.TaskCount, opts.MaxDots)))

	border := lipgloss.HiddenBorder()
	if day.IsToday {
		border = opts.Theme.Border
	}
	style := lipgloss.NewStyle().
		Width(colWidth).
		Align(lipgloss.Center).
		Border(border)

	if !opts.NoColor {
		switch {
		case selected:
			style = style.Bold(true).Foreground(opts.Theme.OnAccent).Background(opts.Theme.Accent)
		case day.InMonth:
			style = style.Foreground(opts.Theme.Text).Background(opts.Theme.Surface)
		default:
			style = style.Foreground(opts.Theme.Muted).Background(opts.Theme.OutSurface)
		}
		if day.IsToday {
			style = style.BorderForeground(opts.Theme.Accent)
		}
		if cursor {
			style = style.Underline(true)
		}
	}
	return style.Render(strings.Join(lines, "\n"))
}

// TaskList renders tasks as a table, or the empty message.
func TaskList(list []tasks.Task, width int, opts Options) string {
	opts = opts.withDefaults()
	if len(list) == 0 {
		if opts.NoColor {
			return EmptyTasksMessage
		}
		return lipgloss.NewStyle().Foreground(opts.Theme.Muted).Render(EmptyTasksMessage)
	}

	const dateWidth, markWidth = 10, 1
	titleWidth := max(width-dateWidth-markWidth-6*cellPadding, 8)
	columns := []table.Column{
		{Title: "Date", Width: dateWidth},
		{Title: "Task", Width: titleWidth},
		{Title: "", Width: markWidth},
	}
	rows := make([]table.Row, len(list))
	for i, task := range list {
		rows[i] = table.Row{
			opts.Config.DayKey(task.Date),
			textwidth.Truncate(task.Title, titleWidth),
			taskMark,
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	t.SetStyles(tableStyles(opts))
	t.Blur()
	return strings.TrimRight(t.View(), " \n")
}

func tableStyles(opts Options) table.Styles {
	styles := table.DefaultStyles()
	styles.Header = lipgloss.NewStyle().Bold(true).Padding(0, cellPadding)
	if !opts.NoColor {
		styles.Header = styles.Header.Foreground(opts.Theme.Accent)
	}
	styles.Cell = lipgloss.NewStyle().Padding(0, cellPadding)
	styles.Selected = lipgloss.NewStyle()
	return styles
}

// HelpLine describes the interactive key bindings.
func HelpLine(noColor bool) string {
	helpText := "j/] next month  k/[ previous month  J/} next year  K/{ previous year  arrows move  enter select  esc clear  . today  y year  m month  q quit"
	if noColor {
		return helpText
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")).Render(helpText)
}
