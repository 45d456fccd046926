package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lintel/internal/driver"
)

// maxRows caps the file list; bigger runs show only files in flight.
const maxRows = 12

// stages maps a pipeline stage to its verb and the share of a file's work
// done once the stage has started.
var stages = map[driver.Stage]struct {
	verb   string
	weight float64
}{
	driver.StageLoad:     {"loading", 0.05},
	driver.StageParse:    {"parsing", 0.2},
	driver.StageBind:     {"binding", 0.5},
	driver.StageDispatch: {"checking", 0.7},
	driver.StageFix:      {"fixing", 0.9},
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cachedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

type fileState struct {
	path    string
	stage   driver.Stage
	status  driver.Status
	elapsed time.Duration
}

func (f *fileState) finished() bool {
	switch f.status {
	case driver.StatusDone, driver.StatusCached, driver.StatusError:
		return true
	}
	// fix снова переводит файл в working после dispatch
	return false
}

func (f *fileState) progress() float64 {
	if f.finished() {
		return 1
	}
	if f.status == driver.StatusWorking {
		return stages[f.stage].weight
	}
	return 0
}

func (f *fileState) label() (string, lipgloss.Style) {
	switch f.status {
	case driver.StatusWorking:
		return stages[f.stage].verb, workingStyle
	case driver.StatusDone:
		if f.stage == driver.StageFix {
			return "fixed", doneStyle
		}
		return "done", doneStyle
	case driver.StatusCached:
		return "cached", cachedStyle
	case driver.StatusError:
		return "error", errorStyle
	}
	return "queued", idleStyle
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	files   []fileState
	byPath  map[string]int
	width   int
	done    bool
}

type eventMsg driver.Event
type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model showing per-file progress
// of a run. It quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(workingStyle)),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		files:   make([]fileState, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, path := range files {
		m.files[i] = fileState{path: path, status: driver.StatusQueued}
		m.byPath[path] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next)
}

// next waits for the following driver event.
func (m *progressModel) next() tea.Msg {
	ev, ok := <-m.events
	if !ok {
		return closedMsg{}
	}
	return eventMsg(ev)
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.next)
	case closedMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// applyEvent records ev and animates the bar. Events about files the view
// was not told about are ignored.
func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	f := &m.files[i]
	// запоздавший queued не откатывает готовый файл
	if ev.Status != driver.StatusQueued || !f.finished() {
		f.stage, f.status = ev.Stage, ev.Status
	}
	if ev.Elapsed > 0 {
		f.elapsed = ev.Elapsed
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.files) == 0 {
		return 0
	}
	var sum float64
	for i := range m.files {
		sum += m.files[i].progress()
	}
	return sum / float64(len(m.files))
}

func (m *progressModel) View() string {
	if len(m.files) == 0 {
		return ""
	}
	var finished, cached, failed int
	for i := range m.files {
		f := &m.files[i]
		if f.finished() {
			finished++
		}
		switch f.status {
		case driver.StatusCached:
			cached++
		case driver.StatusError:
			failed++
		}
	}
	header := fmt.Sprintf("%s %d/%d", m.title, finished, len(m.files))
	if cached > 0 || failed > 0 {
		header += fmt.Sprintf(" (%d cached, %d failed)", cached, failed)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	nameWidth := max(m.width-26, 20)
	shown := 0
	for i := range m.files {
		f := &m.files[i]
		if len(m.files) > maxRows && (f.status != driver.StatusWorking || shown == maxRows) {
			continue
		}
		shown++
		label, style := f.label()
		fmt.Fprintf(&b, "  %s %s", style.Render(fmt.Sprintf("%10s", label)), truncate(f.path, nameWidth))
		if f.elapsed > 0 {
			fmt.Fprintf(&b, " %s", f.elapsed.Round(time.Millisecond))
		}
		b.WriteByte('\n')
	}
	if hidden := len(m.files) - shown; hidden > 0 && len(m.files) > maxRows {
		fmt.Fprintf(&b, "  ... %d more\n", hidden)
	}
	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate shortens value to width display cells, ending in "..." when
// there is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
