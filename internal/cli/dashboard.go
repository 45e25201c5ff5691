package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/petshow73/taskdesk/internal/core"
	"github.com/petshow73/taskdesk/pkg/models"
)

// Dashboard panel indices.
const (
	panelTasks = iota
	panelStatus
	panelMetrics
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	tasks       []models.Task
	counts      map[models.Status]int
	metricsData *metricsSnapshot

	// State.
	selected int
	err      error
}

type metricsSnapshot struct {
	tasksCreated   int
	tasksCompleted int
	tasksRemoved   int
	eventCount     int
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	tasks   []models.Task
	counts  map[models.Status]int
	metrics *metricsSnapshot
	err     error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230"))

	statusTodo       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusInProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	statusDone       = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel: panelTasks,
		counts:      make(map[models.Status]int),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			return m, loadData
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "s":
			return m, m.cycleSelectedStatus()
		case "d":
			return m, m.removeSelected()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.tasks = msg.tasks
		m.counts = msg.counts
		m.metricsData = msg.metrics
		m.err = nil
		if m.selected >= len(m.tasks) {
			m.selected = len(m.tasks) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, nil
	}

	return m, nil
}

// cycleSelectedStatus advances the selected task todo -> in_progress -> done
// -> todo and reloads.
func (m dashboardModel) cycleSelectedStatus() tea.Cmd {
	if m.selected >= len(m.tasks) {
		return nil
	}
	task := m.tasks[m.selected]

	var next models.Status
	switch task.Status {
	case models.StatusTodo:
		next = models.StatusInProgress
	case models.StatusInProgress:
		next = models.StatusDone
	default:
		next = models.StatusTodo
	}

	return func() tea.Msg {
		if _, err := Store.ChangeStatus(task.ID, next); err != nil {
			return dataLoadedMsg{err: fmt.Errorf("changing status of %s: %w", task.Code, err)}
		}
		return loadData()
	}
}

// removeSelected permanently removes the selected task and reloads.
func (m dashboardModel) removeSelected() tea.Cmd {
	if m.selected >= len(m.tasks) {
		return nil
	}
	task := m.tasks[m.selected]

	return func() tea.Msg {
		if err := Store.RemoveTask(task.ID); err != nil {
			return dataLoadedMsg{err: fmt.Errorf("removing %s: %w", task.Code, err)}
		}
		return loadData()
	}
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Taskdesk Dashboard ")
	help := helpStyle.Render("tab: switch panel | j/k: select | s: cycle status | d: remove | r: refresh | q: quit")

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	tasksPanel := m.renderTasksPanel()
	statusPanel := m.renderStatusPanel()
	metricsPanel := m.renderMetricsPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns, the task list twice as wide.
		colWidth := availableWidth / 4
		tasksPanel = m.applyPanelStyle(panelTasks, tasksPanel, colWidth*2-4)
		statusPanel = m.applyPanelStyle(panelStatus, statusPanel, colWidth-4)
		metricsPanel = m.applyPanelStyle(panelMetrics, metricsPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, tasksPanel, statusPanel, metricsPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		tasksPanel = m.applyPanelStyle(panelTasks, tasksPanel, panelWidth)
		statusPanel = m.applyPanelStyle(panelStatus, statusPanel, panelWidth)
		metricsPanel = m.applyPanelStyle(panelMetrics, metricsPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, tasksPanel, statusPanel, metricsPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderTasksPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Tasks"))
	b.WriteString("\n")

	if len(m.tasks) == 0 {
		b.WriteString("  No tasks in this session.")
		return b.String()
	}

	for i, task := range m.tasks {
		marker := "  "
		if i == m.selected {
			marker = "> "
		}
		row := fmt.Sprintf("%s%-10s %-8s %-12s %s", marker, task.Code, task.Priority, task.Status, task.Title)
		if i == m.selected {
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString(styleForStatus(task.Status).Render(row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m dashboardModel) renderStatusPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("By status"))
	b.WriteString("\n")

	total := 0
	for _, status := range models.Statuses {
		count := m.counts[status]
		total += count
		label := fmt.Sprintf("  %-14s %d", status, count)
		b.WriteString(styleForStatus(status).Render(label))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n  Total: %d", total))

	return b.String()
}

func (m dashboardModel) renderMetricsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Metrics (7d)"))
	b.WriteString("\n")

	if m.metricsData == nil {
		b.WriteString("  No metrics available.")
		return b.String()
	}

	md := m.metricsData
	lines := []struct {
		label string
		value int
	}{
		{"Events", md.eventCount},
		{"Created", md.tasksCreated},
		{"Completed", md.tasksCompleted},
		{"Removed", md.tasksRemoved},
	}

	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %-14s %d\n", l.label, l.value))
	}

	return b.String()
}

func styleForStatus(status models.Status) lipgloss.Style {
	switch status {
	case models.StatusTodo:
		return statusTodo
	case models.StatusInProgress:
		return statusInProgress
	case models.StatusDone:
		return statusDone
	default:
		return lipgloss.NewStyle()
	}
}

func loadData() tea.Msg {
	result := dataLoadedMsg{
		counts: make(map[models.Status]int),
	}

	if Store != nil {
		result.tasks = Store.ListTasks()
		result.counts = Store.CountByStatus()
	}

	if MetricsCalc != nil {
		since := time.Now().UTC().AddDate(0, 0, -7)
		metrics, err := MetricsCalc.Calculate(since)
		if err != nil {
			result.err = fmt.Errorf("loading metrics: %w", err)
			return result
		}
		result.metrics = &metricsSnapshot{
			tasksCreated:   metrics.TasksCreated,
			tasksCompleted: metrics.TasksCompleted,
			tasksRemoved:   metrics.TasksRemoved,
			eventCount:     metrics.EventCount,
		}
	}

	return result
}

// importedTask is one entry of a dashboard --import file.
type importedTask struct {
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Priority    models.Priority `yaml:"priority"`
	ProjectKey  string          `yaml:"project_key"`
}

type importFile struct {
	Tasks []importedTask `yaml:"tasks"`
}

// importTasks seeds the session store from a YAML file.
func importTasks(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading import file: %w", err)
	}

	var file importFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("parsing import file: %w", err)
	}

	for i, entry := range file.Tasks {
		_, err := Store.CreateTask(core.CreateTaskInput{
			Title:       entry.Title,
			Description: entry.Description,
			Priority:    entry.Priority,
			ProjectKey:  entry.ProjectKey,
		})
		if err != nil {
			return i, fmt.Errorf("importing task %d: %w", i+1, err)
		}
	}

	return len(file.Tasks), nil
}

var dashboardImport string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI over a session-scoped task store",
	Long: `Launch an interactive terminal dashboard over the in-memory task store.

Use --import to seed the session with tasks from a YAML file
(a top-level "tasks" list with title, description, priority, project_key).
Navigate with j/k, cycle the selected task's status with s, remove it
with d, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		if dashboardImport != "" {
			n, err := importTasks(dashboardImport)
			if err != nil {
				return fmt.Errorf("seeding session from %s: %w", dashboardImport, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d task(s)\n", n)
		}

		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardImport, "import", "", "YAML file of tasks to seed the session with")
	rootCmd.AddCommand(dashboardCmd)
}
