package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/loganmatson/playbook/internal/generation"
	"github.com/loganmatson/playbook/internal/logger"
	"github.com/loganmatson/playbook/internal/models"
	"github.com/loganmatson/playbook/internal/storage"
)

// Screen identifies one application screen.
type Screen int

const (
	// ScreenLibrary lists saved playbooks.
	ScreenLibrary Screen = iota
	// ScreenSetup collects the required config answers.
	ScreenSetup
	// ScreenCustomize collects the optional config answers.
	ScreenCustomize
	// ScreenGenerating shows progress while a playbook is generated.
	ScreenGenerating
	// ScreenViewing shows the active playbook's practice list.
	ScreenViewing
	// ScreenDetail shows a single practice.
	ScreenDetail
	// ScreenError shows a failed generation with the classified cause.
	ScreenError
)

func (s Screen) String() string {
	switch s {
	case ScreenLibrary:
		return "library"
	case ScreenSetup:
		return "setup"
	case ScreenCustomize:
		return "customize"
	case ScreenGenerating:
		return "generating"
	case ScreenViewing:
		return "viewing"
	case ScreenDetail:
		return "detail"
	case ScreenError:
		return "error"
	default:
		return "unknown"
	}
}

// transitions is the allowed screen graph. Every navigation goes through
// it; an edge that is not listed is a bug in the caller.
var transitions = map[Screen][]Screen{
	ScreenLibrary:    {ScreenSetup, ScreenViewing},
	ScreenSetup:      {ScreenCustomize, ScreenLibrary},
	ScreenCustomize:  {ScreenGenerating, ScreenSetup},
	ScreenGenerating: {ScreenViewing, ScreenError},
	ScreenViewing:    {ScreenDetail, ScreenLibrary, ScreenSetup},
	ScreenDetail:     {ScreenViewing},
	ScreenError:      {ScreenCustomize, ScreenSetup, ScreenLibrary},
}

// ErrBadTransition is returned for a navigation the screen graph does not
// allow.
var ErrBadTransition = errors.New("invalid screen transition")

// Manager owns the application state: the current screen, the draft
// config, the active playbook and the selected practice. All navigation
// and playbook mutation flows through it.
type Manager struct {
	store *storage.PlaybookStore
	orch  *generation.Orchestrator

	mu       sync.Mutex
	screen   Screen
	config   models.Config
	active   *models.Playbook
	selected int
	lastErr  error
}

func New(store *storage.PlaybookStore, orch *generation.Orchestrator) *Manager {
	return &Manager{
		store:  store,
		orch:   orch,
		screen: ScreenLibrary,
		config: models.DefaultConfig(),
	}
}

// Screen returns the current screen.
func (m *Manager) Screen() Screen {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.screen
}

// Config returns the current draft config.
func (m *Manager) Config() models.Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// SetConfig replaces the draft config.
func (m *Manager) SetConfig(cfg models.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = cfg
}

// Active returns the active playbook, or nil.
func (m *Manager) Active() *models.Playbook {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// SelectedPractice returns the practice shown on the detail screen, or
// nil when none is selected.
func (m *Manager) SelectedPractice() *models.Practice {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return nil
	}
	return m.active.PracticeByID(m.selected)
}

// LastError returns the failure shown on the error screen.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Manager) transition(to Screen) error {
	for _, allowed := range transitions[m.screen] {
		if allowed == to {
			m.screen = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrBadTransition, m.screen, to)
}

// Navigate moves to another screen through the allowed graph.
func (m *Manager) Navigate(to Screen) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transition(to)
}

// OpenPlaybook loads a saved playbook and moves to the viewing screen.
func (m *Manager) OpenPlaybook(id string) (*models.Playbook, error) {
	pb, err := m.store.Load(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("playbook %s not found: %w", id, err)
		}
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.transition(ScreenViewing); err != nil {
		return nil, err
	}
	m.active = pb
	m.config = pb.Config
	return pb, nil
}

// OpenPractice selects a practice and moves to the detail screen.
func (m *Manager) OpenPractice(practiceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil || !m.active.HasPractice(practiceID) {
		return fmt.Errorf("no practice %d in the active playbook", practiceID)
	}
	if err := m.transition(ScreenDetail); err != nil {
		return err
	}
	m.selected = practiceID
	return nil
}

// Generate runs full playbook generation from the draft config. On
// success the new playbook becomes active and the screen moves to
// viewing; on failure the screen moves to error with the classified
// cause retained.
func (m *Manager) Generate(ctx context.Context) (*models.Playbook, error) {
	m.mu.Lock()
	if err := m.transition(ScreenGenerating); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	cfg := m.config
	m.mu.Unlock()

	pb, err := m.orch.GeneratePlaybook(ctx, cfg)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.lastErr = err
		if terr := m.transition(ScreenError); terr != nil {
			logger.Error("failed to enter error screen", "error", terr)
		}
		return nil, err
	}
	m.active = pb
	m.lastErr = nil
	if terr := m.transition(ScreenViewing); terr != nil {
		return pb, terr
	}
	return pb, nil
}

// ToggleComplete flips a practice's completion state and persists it
// immediately.
func (m *Manager) ToggleComplete(practiceID int) error {
	m.mu.Lock()
	pb := m.active
	m.mu.Unlock()
	if pb == nil {
		return errors.New("no active playbook")
	}
	if !pb.HasPractice(practiceID) {
		return fmt.Errorf("no practice %d in the active playbook", practiceID)
	}

	next := !pb.Completed[practiceID]
	err := m.store.ApplyPatch(pb.ID, storage.Patch{
		Completed: map[int]bool{practiceID: next},
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil && m.active.ID == pb.ID {
		m.active.Completed[practiceID] = next
	}
	return nil
}

// SaveReflection stores reflection text for a practice. Existing coaching
// on the reflection is preserved; only the text changes.
func (m *Manager) SaveReflection(practiceID int, text string) error {
	m.mu.Lock()
	pb := m.active
	m.mu.Unlock()
	if pb == nil {
		return errors.New("no active playbook")
	}
	if !pb.HasPractice(practiceID) {
		return fmt.Errorf("no practice %d in the active playbook", practiceID)
	}

	refl := models.Reflection{Text: text}
	if existing, ok := pb.Reflections[practiceID]; ok {
		refl.Coaching = existing.Coaching
	}

	err := m.store.ApplyPatch(pb.ID, storage.Patch{
		Reflections: map[int]models.Reflection{practiceID: refl},
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil && m.active.ID == pb.ID {
		m.active.Reflections[practiceID] = refl
	}
	return nil
}

// SetCoaching records coaching feedback on the in-memory active playbook
// after the engine has persisted it.
func (m *Manager) SetCoaching(practiceID int, coaching models.Coaching) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return
	}
	refl := m.active.Reflections[practiceID]
	refl.Coaching = &coaching
	m.active.Reflections[practiceID] = refl
}

// ReplacePractice swaps the regenerated practice into the in-memory
// active playbook after the orchestrator has persisted it.
func (m *Manager) ReplacePractice(practice models.Practice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return
	}
	for i := range m.active.Practices {
		if m.active.Practices[i].ID == practice.ID {
			m.active.Practices[i] = practice
			return
		}
	}
}

// DeleteActive removes the active playbook and resets to a fresh setup
// with the default config. Deleting an already-gone playbook is treated
// as success.
func (m *Manager) DeleteActive() error {
	m.mu.Lock()
	pb := m.active
	m.mu.Unlock()
	if pb == nil {
		return errors.New("no active playbook")
	}

	if err := m.store.Delete(pb.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = nil
	m.selected = 0
	m.config = models.DefaultConfig()
	if err := m.transition(ScreenSetup); err != nil {
		// The graph allows setup from viewing, library and error; force
		// the reset if navigation came from anywhere else.
		m.screen = ScreenSetup
	}
	return nil
}
