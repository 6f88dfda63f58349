package tui

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/loganmatson/playbook/internal/coaching"
	"github.com/loganmatson/playbook/internal/constants"
	"github.com/loganmatson/playbook/internal/generation"
	"github.com/loganmatson/playbook/internal/manager"
	"github.com/loganmatson/playbook/internal/models"
	"github.com/loganmatson/playbook/internal/storage"
)

// SetupFormModel holds the required setup answers while the form runs.
type SetupFormModel struct {
	Company  string
	Work     string
	Hours    string
	DataType string
	Access   string
	Models   string
	WorkExp  int
	AIExp    int
	Style    string
}

// CustomizeFormModel holds the optional customization answers.
type CustomizeFormModel struct {
	RecentTask string
	Tedious    string
	SkillFocus []string
}

// ProgressRelay carries progress updates from the orchestrator goroutine
// into whatever channel the current TUI generation run has installed.
type ProgressRelay struct {
	mu sync.Mutex
	ch chan int
}

func NewProgressRelay() *ProgressRelay {
	return &ProgressRelay{}
}

// Send is the orchestrator's progress observer.
func (r *ProgressRelay) Send(pct int) {
	r.mu.Lock()
	ch := r.ch
	r.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- pct:
	default:
	}
}

func (r *ProgressRelay) attach(ch chan int) {
	r.mu.Lock()
	r.ch = ch
	r.mu.Unlock()
}

type Model struct {
	mgr    *manager.Manager
	store  *storage.PlaybookStore
	engine *coaching.Engine
	orch   *generation.Orchestrator
	relay  *ProgressRelay

	keys KeyMap
	help help.Model

	playbooks []models.Playbook
	cursor    int

	form          *huh.Form
	setupForm     *SetupFormModel
	customizeForm *CustomizeFormModel
	reflectForm   *huh.Form
	reflectDraft  string
	reflectTarget int

	progressBar   progress.Model
	progressCh    chan int
	loadingQuote  models.Quote
	statusMsg     string
	showFirstHint bool

	quitting bool
	width    int
	height   int
}

func NewModel(store *storage.PlaybookStore, mgr *manager.Manager, engine *coaching.Engine, orch *generation.Orchestrator, relay *ProgressRelay) Model {
	playbooks, err := store.ListAll()
	if err != nil {
		playbooks = []models.Playbook{}
	}

	seen, _ := store.SeenFlag(constants.OnboardingSeenKey)

	m := Model{
		mgr:           mgr,
		store:         store,
		engine:        engine,
		orch:          orch,
		relay:         relay,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		playbooks:     playbooks,
		progressBar:   progress.New(progress.WithDefaultGradient()),
		showFirstHint: !seen,
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.showFirstHint {
		// Record the flag up front so the hint shows exactly once.
		store := m.store
		return func() tea.Msg {
			store.MarkSeen(constants.OnboardingSeenKey)
			return nil
		}
	}
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Quit, m.keys.Help}
	switch m.mgr.Screen() {
	case manager.ScreenLibrary:
		keys = append(keys, m.keys.New, m.keys.Enter)
	case manager.ScreenViewing:
		keys = append(keys, m.keys.Enter, m.keys.Back, m.keys.Delete)
	case manager.ScreenDetail:
		keys = append(keys, m.keys.Complete, m.keys.Reflect, m.keys.Coach, m.keys.Regen, m.keys.Back)
	case manager.ScreenError:
		keys = append(keys, m.keys.Retry, m.keys.Back)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Quit, m.keys.Help, m.keys.Back}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}
	actions := []key.Binding{m.keys.New, m.keys.Complete, m.keys.Reflect, m.keys.Coach, m.keys.Regen, m.keys.CopyPrompt, m.keys.Delete, m.keys.Retry}
	return [][]key.Binding{global, navigation, actions}
}

func randomQuote() models.Quote {
	return models.MotivationalQuotes[rand.Intn(len(models.MotivationalQuotes))]
}

// progressMsg carries one progress update from a running generation.
type progressMsg int

// generatedMsg concludes a full generation run.
type generatedMsg struct {
	playbook *models.Playbook
	err      error
}

// coachedMsg concludes a coaching run.
type coachedMsg struct {
	practiceID int
	result     *coaching.Result
	err        error
}

// regeneratedMsg concludes a practice regeneration.
type regeneratedMsg struct {
	practice *models.Practice
	err      error
}

// statusMsgMsg sets a transient status line.
type statusMsgMsg string

func listenProgress(ch chan int) tea.Cmd {
	return func() tea.Msg {
		pct, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg(pct)
	}
}

func (m *Model) startGeneration() tea.Cmd {
	ch := make(chan int, 8)
	m.progressCh = ch
	if m.relay != nil {
		m.relay.attach(ch)
	}
	m.loadingQuote = randomQuote()

	mgr := m.mgr
	generate := func() tea.Msg {
		pb, err := mgr.Generate(context.Background())
		close(ch)
		return generatedMsg{playbook: pb, err: err}
	}
	return tea.Batch(generate, listenProgress(ch))
}

func (m *Model) startCoaching(practiceID int, text string) tea.Cmd {
	engine := m.engine
	pb := m.mgr.Active()
	return func() tea.Msg {
		res, err := engine.Coach(context.Background(), pb, practiceID, text)
		return coachedMsg{practiceID: practiceID, result: res, err: err}
	}
}

func (m *Model) startRegeneration(practiceID int) tea.Cmd {
	orch := m.orch
	pb := m.mgr.Active()
	return func() tea.Msg {
		practice, err := orch.RegeneratePractice(context.Background(), pb, practiceID)
		return regeneratedMsg{practice: practice, err: err}
	}
}

func (m *Model) reloadPlaybooks() {
	playbooks, err := m.store.ListAll()
	if err != nil {
		return
	}
	m.playbooks = playbooks
	if m.cursor >= len(m.playbooks) {
		m.cursor = 0
	}
}

func status(format string, args ...interface{}) tea.Cmd {
	return func() tea.Msg {
		return statusMsgMsg(fmt.Sprintf(format, args...))
	}
}
