package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lululau/dashcal/internal/calendar"
	"github.com/lululau/dashcal/internal/config"
	appLog "github.com/lululau/dashcal/internal/log"
	"github.com/lululau/dashcal/internal/render"
	"github.com/lululau/dashcal/internal/tasks"
	"github.com/lululau/dashcal/internal/tui"
)

var (
	yearFlag       = flag.Bool("y", false, "show the whole year")
	plain          = flag.Bool("n", false, "render once and exit (non-interactive)")
	noColor        = flag.Bool("N", false, "disable all color output")
	noColorLong    = flag.Bool("no-color", false, "disable all color output")
	configPath     = flag.String("c", "", "config file path (default $XDG_CONFIG_HOME/dashcal/config.yaml)")
	configPathLong = flag.String("config", "", "config file path")
	tasksFile      = flag.String("t", "", "tasks file (.yaml, .json or .ics); overrides the config")
	tasksFileLong  = flag.String("tasks", "", "tasks file (.yaml, .json or .ics)")
	weekStart      = flag.String("w", "", "first day of the week (sunday, monday, saturday)")
	selectDay      = flag.String("s", "", "preselect a day (YYYY-MM-DD) in plain output")
	logFile        = flag.String("log", "", "write debug logs to this file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options] [year] [month]\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), `
  no arguments  show the current month
  -y            show the current year
  9             show September of this year
  1983          show the year 1983
  2012 12       show December 2012
  -y 9          show the whole year 9

options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if *noColor || *noColorLong {
		conf.NoColor = true
	}
	if *weekStart != "" {
		conf.WeekStart = *weekStart
	}
	if path := firstNonEmpty(*tasksFile, *tasksFileLong); path != "" {
		conf.TasksFile = path
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))

	cal, err := conf.Calendar()
	if err != nil {
		return err
	}

	req, err := parseRequest(*yearFlag, flag.Args(), time.Now().In(cal.Location))
	if err != nil {
		return err
	}
	nonInteractive := *plain || req.Mode == calendar.ModeYear

	closeLog, err := setupLogging(nonInteractive)
	if err != nil {
		return err
	}
	defer closeLog()

	appLog.Info("dashcal starting",
		"locale", conf.Locale,
		"first_weekday", cal.FirstWeekday,
		"timezone", cal.Location,
		"theme", conf.Theme,
		"tasks_file", conf.TasksFile,
	)

	list, err := loadTasks(conf.TasksFile, cal.Location)
	if err != nil {
		return err
	}
	idx := tasks.NewIndex(cal, list...)
	svc := calendar.NewService(
		calendar.WithConfig(cal),
		calendar.WithTasks(idx),
		calendar.WithLunar(conf.Lunar),
	)
	opts := render.Options{
		Config:  cal,
		Theme:   render.ThemeByName(conf.Theme),
		MaxDots: conf.MaxDots,
		NoColor: conf.NoColor,
	}

	if nonInteractive {
		if *selectDay != "" {
			day, err := time.ParseInLocation(time.DateOnly, *selectDay, cal.Location)
			if err != nil {
				return fmt.Errorf("invalid -s date %q: %w", *selectDay, err)
			}
			opts.Selection = calendar.Select(day, cal)
		}
		return render.RunPlain(render.PlainOptions{
			Service: svc,
			Tasks:   idx,
			Request: req,
			Render:  opts,
		})
	}
	return tui.Run(svc, idx, req, opts)
}

func loadConfig() (*config.Config, error) {
	path := firstNonEmpty(*configPath, *configPathLong)
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	conf, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return conf, nil
}

// setupLogging keeps log lines off the alt screen: the interactive UI logs
// to -log when given and discards output otherwise.
func setupLogging(nonInteractive bool) (func(), error) {
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "")
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		appLog.SetOutput(f)
		appLog.SetLevel(appLog.LevelDebug)
		return func() { f.Close() }, nil
	}
	if !nonInteractive {
		appLog.SetOutput(io.Discard)
	}
	return func() {}, nil
}

// loadTasks reads the tasks file. The sample tasks stand in when no file is
// configured or the configured file does not exist; any other failure is
// returned.
func loadTasks(path string, loc *time.Location) ([]tasks.Task, error) {
	if path == "" {
		return tasks.Seed(loc), nil
	}
	list, err := tasks.LoadFile(path, loc)
	if errors.Is(err, fs.ErrNotExist) {
		appLog.Info("tasks file not found, using sample tasks", "path", path)
		return tasks.Seed(loc), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return list, nil
}

func parseRequest(showYear bool, args []string, now time.Time) (calendar.Request, error) {
	year := now.Year()
	month := int(now.Month())

	switch len(args) {
	case 0:
		// defaults
	case 1:
		if showYear {
			val, err := parseNumber(args[0], "year")
			if err != nil {
				return calendar.Request{}, err
			}
			year = val
		} else {
			val, err := parseNumber(args[0], "month/year")
			if err != nil {
				return calendar.Request{}, err
			}
			if val >= 1 && val <= 12 {
				month = val
			} else {
				year = val
				showYear = true
			}
		}
	case 2:
		if showYear {
			return calendar.Request{}, errors.New("-y takes at most one year argument")
		}
		y, err := parseNumber(args[0], "year")
		if err != nil {
			return calendar.Request{}, err
		}
		m, err := parseNumber(args[1], "month")
		if err != nil {
			return calendar.Request{}, err
		}
		if m < 1 || m > 12 {
			return calendar.Request{}, fmt.Errorf("month must be between 1 and 12 (got %d)", m)
		}
		year = y
		month = m
	default:
		return calendar.Request{}, errors.New("too many arguments, see --help")
	}

	req := calendar.Request{
		Year:  year,
		Month: month,
		Mode:  calendar.ModeMonth,
	}
	if showYear {
		req.Mode = calendar.ModeYear
	}
	return req.Normalize(), nil
}

func parseNumber(value string, field string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as %s", value, field)
	}
	return n, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
