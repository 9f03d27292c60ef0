package render

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/lululau/dashcal/internal/calendar"
	"github.com/lululau/dashcal/internal/tasks"
)

// PlainOptions controls how the non-interactive renderer behaves.
type PlainOptions struct {
	Writer  io.Writer
	Service *calendar.Service
	Tasks   *tasks.Index
	Request calendar.Request
	Width   int
	Render  Options
}

// RunPlain renders the requested view exactly once.
func RunPlain(opts PlainOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Service == nil {
		opts.Service = calendar.NewService()
	}
	if opts.Tasks == nil {
		opts.Tasks = tasks.NewIndex(opts.Service.Config())
	}
	ropts := opts.Render
	ropts.Config = opts.Service.Config()
	if ropts.Today.IsZero() {
		ropts.Today = opts.Service.Today()
	}

	req := opts.Request.Normalize()
	var output string
	if req.Mode == calendar.ModeYear {
		views, err := opts.Service.Year(req.Year)
		if err != nil {
			return err
		}
		width := opts.Width
		if width == 0 {
			width = DetectWidth()
		}
		output = Layout(BuildBlocks(views, ropts), width)
	} else {
		view, err := opts.Service.Month(req.Year, req.Month)
		if err != nil {
			return err
		}
		output = Dashboard(view, opts.Tasks.Visible(ropts.Selection), ropts)
	}

	_, err := fmt.Fprintln(opts.Writer, output)
	return err
}

// DetectWidth tries to determine the terminal width, falling back to 100 cols.
func DetectWidth() int {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) {
		if w, _, err := term.GetSize(int(fd)); err == nil {
			return w
		}
	}
	return 100
}
