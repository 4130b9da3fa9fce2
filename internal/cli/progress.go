package cli

import (
	"context"
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/LyrineYang/dataset-download/internal/hub"
)

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// fetchProgressMsg carries a progress snapshot from the fetcher goroutine.
type fetchProgressMsg hub.Progress

// fetchDoneMsg signals the fetch run finished.
type fetchDoneMsg struct {
	stats hub.Stats
	err   error
}

// fetchModel is the bubbletea model for the fetch progress display.
type fetchModel struct {
	progress progress.Model
	current  hub.Progress
	stats    hub.Stats
	theme    Theme
	started  bool
	done     bool
	canceled bool
	err      error
	cancel   context.CancelFunc
}

func newFetchModel(cancel context.CancelFunc) fetchModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return fetchModel{
		progress: prog,
		theme:    defaultTheme,
		cancel:   cancel,
	}
}

// Init returns the initial command.
func (m fetchModel) Init() tea.Cmd {
	return m.progress.Init()
}

// Update handles messages and returns the updated model.
func (m fetchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.canceled = true
			m.cancel()
			return m, nil
		}

	case fetchProgressMsg:
		m.started = true
		m.current = hub.Progress(msg)
		return m, nil

	case fetchDoneMsg:
		m.done = true
		m.stats = msg.stats
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m fetchModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m fetchModel) renderContent() string {
	if m.done {
		return m.finalView()
	}
	if !m.started {
		return "Resolving tarballs...\n"
	}

	var pct float64
	if m.current.Total > 0 {
		pct = float64(m.current.Done) / float64(m.current.Total)
	}

	status := m.theme.statusStyle().Render(fmt.Sprintf("[%s]", m.current.File))
	bar := m.progress.ViewAs(pct)
	counts := fmt.Sprintf("%d/%d tarballs", m.current.FilesDone, m.current.FilesTotal)
	hint := m.theme.hintStyle().Render("Press Ctrl+C to cancel")

	return fmt.Sprintf("%s %s %s\n%s\n", status, bar, counts, hint)
}

func (m fetchModel) finalView() string {
	if m.err != nil {
		if m.canceled {
			return m.theme.hintStyle().Render("\nFetch canceled. Finished tarballs stay on disk.\n")
		}
		return m.theme.errorStyle().Render(fmt.Sprintf("\n✗ Fetch failed: %s\n", m.err))
	}

	var output string
	output += m.theme.completedStyle().Render("✓ Completed") + "\n\n"
	output += fmt.Sprintf("  Tarballs fetched:   %d\n", m.stats.TarballsFetched)
	if m.stats.TarballsMissing > 0 {
		output += fmt.Sprintf("  Tarballs missing:   %d\n", m.stats.TarballsMissing)
	}
	output += fmt.Sprintf("  Members extracted:  %d\n", m.stats.MembersExtracted)
	return output
}

// RunFetchProgress runs a fetch with the interactive progress UI. The
// fetcher runs in its own goroutine and streams snapshots into the program;
// Ctrl+C cancels the download context.
func RunFetchProgress(ctx context.Context, client *hub.Client, repoID, localDir string, logger *slog.Logger, groups []*hub.Group) (hub.Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newFetchModel(cancel))

	go func() {
		fetcher := hub.NewFetcher(client, repoID, localDir, logger, func(pr hub.Progress) {
			p.Send(fetchProgressMsg(pr))
		})
		stats, err := fetcher.Run(ctx, groups)
		p.Send(fetchDoneMsg{stats: stats, err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return hub.Stats{}, fmt.Errorf("progress UI error: %w", err)
	}

	if m, ok := finalModel.(fetchModel); ok {
		return m.stats, m.err
	}
	return hub.Stats{}, nil
}
