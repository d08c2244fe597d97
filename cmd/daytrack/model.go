package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/benjamonnguyen/daytrack"
	"github.com/benjamonnguyen/daytrack/store"
	"github.com/benjamonnguyen/daytrack/views"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

const logo = `
	██████╗  █████╗ ██╗   ██╗████████╗██████╗  █████╗  ██████╗██╗  ██╗
	██╔══██╗██╔══██╗╚██╗ ██╔╝╚══██╔══╝██╔══██╗██╔══██╗██╔════╝██║ ██╔╝
	██║  ██║███████║ ╚████╔╝    ██║   ██████╔╝███████║██║     █████╔╝ 
	██║  ██║██╔══██║  ╚██╔╝     ██║   ██╔══██╗██╔══██║██║     ██╔═██╗ 
	██████╔╝██║  ██║   ██║      ██║   ██║  ██║██║  ██║╚██████╗██║  ██╗
	╚═════╝ ╚═╝  ╚═╝   ╚═╝      ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝`

const programUsage = `Usage:
  daytrack [--config FILE] [--seed]: open the task list
  daytrack /a <task>: add a task and exit

Flags:
`

const commandHelp = `COMMANDS:
  <task> or /a <task>: add a task; markers #category !priority ^due ~estimate
      e.g. "/a write report #work !2 ^tomorrow ~45"
      due accepts today, tomorrow, +N or YYYY-MM-DD
  /e <n> <title>: rename task n
  /m <n> <markers>: change category, priority, due (^none clears) or estimate
  /t <n>: cycle status of task n (to do, in progress, done)
  /s <n>: start the timer on task n; stops any other timer
  /p [n]: stop the running timer
  /x <n>: delete task n

  /f [#category] [!priority] [@status] [+field|-field]: filter and sort the list
      fields are priority, dueDate, createdAt; /f alone resets
  /v [list|agenda|stats]: switch view; /v alone cycles

  /q: quit
`

type viewMode int

const (
	viewList viewMode = iota
	viewAgenda
	viewStats
)

var viewNames = map[string]viewMode{
	"list":   viewList,
	"agenda": viewAgenda,
	"stats":  viewStats,
}

type model struct {
	// children
	vp        viewport.Model
	userinput textinput.Model

	// supplied
	l     daytrack.Logger
	store *store.Store

	// state
	mode     viewMode
	filter   views.Filter
	sort     views.Sort
	rows     []uuid.UUID
	content  string
	alerts   []string
	ticking  bool
	quitting bool
	h        int

	// configuration
	cmdTimeout time.Duration
	timeFormat string
}

func newModel(st *store.Store, logger daytrack.Logger, timeFormat string) model {
	userinput := textinput.New()
	userinput.Focus()
	userinput.CharLimit = 280
	userinput.Placeholder = `add a task or "/h" for help`
	userinput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))

	m := model{
		vp:         viewport.New(0, 0),
		userinput:  userinput,
		l:          logger,
		store:      st,
		sort:       views.DefaultSort,
		ticking:    st.ActiveTimerTaskID() != uuid.Nil,
		cmdTimeout: 3 * time.Second,
		timeFormat: timeFormat,
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	if m.ticking {
		return tea.Batch(textinput.Blink, tick())
	}
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var tiCmd, vpCmd, cmd tea.Cmd

	m, cmd = m.updateParent(msg)

	// update children

	m.userinput, tiCmd = m.userinput.Update(msg)

	switch msg.(type) {
	case tea.KeyMsg:
		// vp updates on KeyMsg cause flickering while typing
	default:
		m.vp, vpCmd = m.vp.Update(msg)
	}

	return m, tea.Batch(tiCmd, vpCmd, cmd)
}

func (m model) updateParent(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		m.addAlert(msg.err.Error(), colorRed)
		m.resizeViewport()
		return m, nil
	case tickMsg:
		if m.store.ActiveTimerTaskID() == uuid.Nil {
			m.ticking = false
			return m, nil
		}
		m.refresh()
		return m, tick()
	case tea.WindowSizeMsg:
		m.h = msg.Height
		m.userinput.Width = msg.Width
		m.vp.Width = msg.Width
		m.resizeViewport()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			input := strings.TrimSpace(m.userinput.Value())
			m.userinput.Reset()
			if input == "" {
				return m, nil
			}

			var cmd tea.Cmd
			m.alerts = nil
			m, cmd = m.handleInput(input)
			m.refresh()
			if !m.ticking && m.store.ActiveTimerTaskID() != uuid.Nil {
				m.ticking = true
				cmd = tea.Batch(cmd, tick())
			}
			return m, cmd
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	return lipgloss.JoinVertical(0, m.vp.View(), m.renderFooter())
}

func (m model) renderFooter() string {
	if m.quitting {
		return ""
	}

	var footer strings.Builder
	footer.WriteRune('\n')
	footer.WriteString(m.userinput.View())
	footer.WriteString("\n\n")

	if len(m.alerts) > 0 {
		footer.WriteString(strings.Join(m.alerts, "\n"))
		footer.WriteString("\n\n")
	} else {
		footer.WriteString(faintStyle.Render("(/h for help, ctrl+c to quit)"))
		footer.WriteRune('\n')
	}

	return footer.String()
}

func (m model) newTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.cmdTimeout)
}

func (m *model) addAlert(alert string, c color) {
	m.alerts = append(m.alerts, colorize(c, alert))
}

// refresh rebuilds the content and the row numbering for the current view.
func (m *model) refresh() {
	m.content, m.rows = m.render()
	m.vp.SetContent(m.content)
	m.resizeViewport()
}

func (m *model) resizeViewport() {
	contentHeight := lipgloss.Height(m.content)
	footerHeight := lipgloss.Height(m.renderFooter())
	m.vp.Height = max(0, min(contentHeight, m.h-footerHeight))
}

func (m model) render() (string, []uuid.UUID) {
	tasks := m.store.Tasks()
	now := m.store.Now()
	activeID := m.store.ActiveTimerTaskID()
	elapsed := m.store.Elapsed(activeID)

	lines := []string{
		headerStyle.Render(renderDashboard(views.Summarize(tasks, now))),
		faintStyle.Render(line(40)),
	}
	var rows []uuid.UUID
	addRows := func(ts []daytrack.Task) {
		for _, t := range ts {
			rows = append(rows, t.ID)
			lines = append(lines, renderTask(len(rows), t, now, elapsed, m.timeFormat))
		}
	}

	switch m.mode {
	case viewAgenda:
		agenda := views.Partition(tasks, now)
		sections := []struct {
			title string
			tasks []daytrack.Task
		}{
			{"Overdue", agenda.Overdue},
			{"Today", agenda.Today},
			{"Upcoming", agenda.Upcoming},
		}
		for _, sec := range sections {
			lines = append(lines, headerStyle.Render(fmt.Sprintf("%s (%d)", sec.title, len(sec.tasks))))
			if len(sec.tasks) == 0 {
				lines = append(lines, faintStyle.Render("  nothing here"))
			}
			addRows(sec.tasks)
		}
	case viewStats:
		lines = append(lines, headerStyle.Render("Time by category"))
		lines = append(lines, renderCategoryStats(views.ByCategory(tasks))...)
		lines = append(lines, headerStyle.Render("Last 7 days"))
		lines = append(lines, renderWeekly(views.WeeklyActivity(tasks, now))...)
		lines = append(lines, headerStyle.Render("Estimate vs actual"))
		lines = append(lines, renderEstimates(views.EstimateVsActual(tasks))...)
	default:
		lines = append(lines, faintStyle.Render(describeFilter(m.filter, m.sort)))
		shown := views.FilterSort(tasks, m.filter, m.sort)
		if len(shown) == 0 {
			lines = append(lines, faintStyle.Render("  no tasks"))
		}
		addRows(shown)
	}

	return strings.Join(lines, "\n"), rows
}

// mutate runs op against the store. The change is already applied in memory
// when op returns, so a persistence error only raises an alert.
func (m model) mutate(op func(ctx context.Context) error) tea.Cmd {
	timeout, cancel := m.newTimeout()
	defer cancel()
	if err := op(timeout); err != nil {
		return func() tea.Msg {
			return errorMsg("failed to save: %w", err)
		}
	}
	return nil
}

func (m model) handleInput(input string) (model, tea.Cmd) {
	if !strings.HasPrefix(input, "/") {
		return m.addTask(input)
	}

	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/a":
		if arg == "" {
			m.addAlert("usage: /a <task>", colorYellow)
			return m, nil
		}
		return m.addTask(arg)
	case "/e":
		id, title, err := parseRow(arg, m.rows)
		if err != nil || title == "" {
			m.addAlert("usage: /e <n> <title>", colorYellow)
			return m, nil
		}
		p := daytrack.TaskPatch{Title: &title}
		return m, m.mutate(func(ctx context.Context) error { return m.store.Update(ctx, id, p) })
	case "/m":
		id, rest, err := parseRow(arg, m.rows)
		if err != nil {
			m.addAlert("usage: /m <n> <markers>", colorYellow)
			return m, nil
		}
		p, err := patchFromInput(rest, m.store.Now())
		if err != nil {
			m.addAlert(err.Error(), colorRed)
			return m, nil
		}
		return m, m.mutate(func(ctx context.Context) error { return m.store.Update(ctx, id, p) })
	case "/t", "/s", "/x":
		id, _, err := parseRow(arg, m.rows)
		if err != nil {
			m.addAlert(err.Error(), colorRed)
			return m, nil
		}
		op := map[string]func(context.Context, uuid.UUID) error{
			"/t": m.store.ToggleStatus,
			"/s": m.store.StartTimer,
			"/x": m.store.Delete,
		}[cmd]
		return m, m.mutate(func(ctx context.Context) error { return op(ctx, id) })
	case "/p":
		id := m.store.ActiveTimerTaskID()
		if arg != "" {
			var err error
			if id, _, err = parseRow(arg, m.rows); err != nil {
				m.addAlert(err.Error(), colorRed)
				return m, nil
			}
		}
		if id == uuid.Nil {
			m.addAlert("no timer running", colorYellow)
			return m, nil
		}
		return m, m.mutate(func(ctx context.Context) error { return m.store.StopTimer(ctx, id) })
	case "/f":
		f, s, err := parseFilter(arg)
		if err != nil {
			m.addAlert(err.Error(), colorRed)
			return m, nil
		}
		m.filter, m.sort, m.mode = f, s, viewList
		return m, nil
	case "/v":
		if arg == "" {
			m.mode = (m.mode + 1) % viewMode(len(viewNames))
			return m, nil
		}
		mode, ok := viewNames[arg]
		if !ok {
			m.addAlert("usage: /v [list|agenda|stats]", colorYellow)
			return m, nil
		}
		m.mode = mode
		return m, nil
	case "/h":
		m.addAlert(commandHelp, colorYellow)
		return m, nil
	case "/q":
		m.quitting = true
		return m, tea.Quit
	}

	m.addAlert(fmt.Sprintf("unknown command %s, enter /h for help", cmd), colorYellow)
	return m, nil
}

func (m model) addTask(input string) (model, tea.Cmd) {
	d, err := taskDataFromInput(input, m.store.Now())
	if err != nil {
		m.addAlert(err.Error(), colorRed)
		return m, nil
	}
	var added daytrack.Task
	cmd := m.mutate(func(ctx context.Context) error {
		var err error
		added, err = m.store.Add(ctx, d)
		return err
	})
	m.addAlert(fmt.Sprintf("added %q", added.Title), colorCyan)
	return m, cmd
}
