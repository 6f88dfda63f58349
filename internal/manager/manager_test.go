package manager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/loganmatson/playbook/internal/generation"
	"github.com/loganmatson/playbook/internal/models"
	"github.com/loganmatson/playbook/internal/storage"
)

type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testPractices(t *testing.T) ([]models.Practice, string) {
	t.Helper()
	out := make([]models.Practice, 0, models.PracticeCount)
	for i := 1; i <= models.PracticeCount; i++ {
		out = append(out, models.Practice{
			ID:       i,
			Title:    fmt.Sprintf("Practice %d", i),
			Scale:    models.ScaleDeepDive,
			Time:     "45 min",
			Skill:    "Strategic Thinking",
			Quote:    models.Quote{Text: "Strategy is choice.", Source: "Unknown"},
			Bridge:   "Why it matters.",
			Protocol: []string{"Gather", "Prompt", "Review"},
			Prompt:   "Evaluate [SCENARIO]",
			Takeaway: []string{"A", "B"},
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("Failed to marshal practices: %v", err)
	}
	return out, string(data)
}

func testConfig() models.Config {
	cfg := models.DefaultConfig()
	cfg.Company = "Strategist at Helios Partners"
	cfg.WorkDescription = "Competitive analysis"
	cfg.WeeklyHours = "3-5"
	cfg.DataAccess = "Industry reports"
	cfg.AIModels = "Claude"
	return cfg
}

func newTestManager(t *testing.T, client generation.Completer) (*Manager, *storage.PlaybookStore) {
	t.Helper()
	gw := storage.NewFileGateway(filepath.Join(t.TempDir(), "playbook.json"))
	if err := gw.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	store := storage.NewPlaybookStore(gw)
	t.Cleanup(store.Close)
	orch := generation.NewOrchestrator(client, store, generation.WithTickInterval(time.Hour))
	return New(store, orch), store
}

func TestStartsAtLibrary(t *testing.T) {
	m, _ := newTestManager(t, &stubCompleter{})
	if m.Screen() != ScreenLibrary {
		t.Errorf("Expected library screen at start, got %s", m.Screen())
	}
}

func TestSetupFlowToViewing(t *testing.T) {
	_, payload := testPractices(t)
	m, _ := newTestManager(t, &stubCompleter{response: payload})

	if err := m.Navigate(ScreenSetup); err != nil {
		t.Fatalf("Navigate to setup failed: %v", err)
	}
	m.SetConfig(testConfig())
	if err := m.Navigate(ScreenCustomize); err != nil {
		t.Fatalf("Navigate to customize failed: %v", err)
	}

	pb, err := m.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if m.Screen() != ScreenViewing {
		t.Errorf("Expected viewing screen after generation, got %s", m.Screen())
	}
	if m.Active() == nil || m.Active().ID != pb.ID {
		t.Error("Generated playbook should be active")
	}
}

func TestGenerationFailureMovesToError(t *testing.T) {
	m, _ := newTestManager(t, &stubCompleter{
		err: &generation.Error{Kind: generation.KindHTTPStatus, Status: 500, Msg: "API request failed"},
	})

	m.Navigate(ScreenSetup)
	m.SetConfig(testConfig())
	m.Navigate(ScreenCustomize)

	_, err := m.Generate(context.Background())
	if err == nil {
		t.Fatal("Expected generation failure")
	}
	if m.Screen() != ScreenError {
		t.Errorf("Expected error screen, got %s", m.Screen())
	}
	if !generation.IsKind(m.LastError(), generation.KindHTTPStatus) {
		t.Errorf("Error screen should retain the classified cause, got %v", m.LastError())
	}

	// Retry path: back to customize and regenerate is allowed.
	if err := m.Navigate(ScreenCustomize); err != nil {
		t.Errorf("Navigate error -> customize failed: %v", err)
	}
}

func TestInvalidTransitionRejected(t *testing.T) {
	m, _ := newTestManager(t, &stubCompleter{})
	if err := m.Navigate(ScreenDetail); !errors.Is(err, ErrBadTransition) {
		t.Errorf("Expected ErrBadTransition for library -> detail, got %v", err)
	}
	if m.Screen() != ScreenLibrary {
		t.Errorf("Failed transition should not change screen, got %s", m.Screen())
	}
}

func TestOpenPlaybookAndPractice(t *testing.T) {
	practices, _ := testPractices(t)
	m, store := newTestManager(t, &stubCompleter{})
	pb, err := store.Create(testConfig(), practices)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	opened, err := m.OpenPlaybook(pb.ID)
	if err != nil {
		t.Fatalf("OpenPlaybook failed: %v", err)
	}
	if opened.ID != pb.ID || m.Screen() != ScreenViewing {
		t.Errorf("Expected viewing %s, got screen %s", pb.ID, m.Screen())
	}

	if err := m.OpenPractice(6); err != nil {
		t.Fatalf("OpenPractice failed: %v", err)
	}
	if m.Screen() != ScreenDetail {
		t.Errorf("Expected detail screen, got %s", m.Screen())
	}
	if sel := m.SelectedPractice(); sel == nil || sel.ID != 6 {
		t.Errorf("Expected practice 6 selected, got %+v", sel)
	}

	if err := m.Navigate(ScreenViewing); err != nil {
		t.Errorf("Detail -> viewing failed: %v", err)
	}
}

func TestOpenMissingPlaybook(t *testing.T) {
	m, _ := newTestManager(t, &stubCompleter{})
	if _, err := m.OpenPlaybook("1700000000000"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if m.Screen() != ScreenLibrary {
		t.Errorf("Failed open should not change screen, got %s", m.Screen())
	}
}

func TestToggleCompletePersists(t *testing.T) {
	practices, _ := testPractices(t)
	m, store := newTestManager(t, &stubCompleter{})
	pb, _ := store.Create(testConfig(), practices)
	m.OpenPlaybook(pb.ID)

	if err := m.ToggleComplete(2); err != nil {
		t.Fatalf("ToggleComplete failed: %v", err)
	}
	loaded, _ := store.Load(pb.ID)
	if !loaded.Completed[2] {
		t.Error("Completion not persisted")
	}
	if !m.Active().Completed[2] {
		t.Error("Completion not reflected in memory")
	}

	if err := m.ToggleComplete(2); err != nil {
		t.Fatalf("Second toggle failed: %v", err)
	}
	loaded, _ = store.Load(pb.ID)
	if loaded.Completed[2] {
		t.Error("Toggle back not persisted")
	}
}

func TestSaveReflectionPreservesCoaching(t *testing.T) {
	practices, _ := testPractices(t)
	m, store := newTestManager(t, &stubCompleter{})
	pb, _ := store.Create(testConfig(), practices)
	m.OpenPlaybook(pb.ID)

	if err := m.SaveReflection(1, "first draft"); err != nil {
		t.Fatalf("SaveReflection failed: %v", err)
	}
	coaching := models.Coaching{Feedback: "Solid start."}
	m.SetCoaching(1, coaching)
	if err := store.ApplyPatch(pb.ID, storage.Patch{
		Reflections: map[int]models.Reflection{1: {Text: "first draft", Coaching: &coaching}},
	}); err != nil {
		t.Fatalf("ApplyPatch failed: %v", err)
	}

	// Editing the text keeps the coaching.
	if err := m.SaveReflection(1, "revised draft"); err != nil {
		t.Fatalf("SaveReflection failed: %v", err)
	}
	loaded, _ := store.Load(pb.ID)
	refl := loaded.Reflections[1]
	if refl.Text != "revised draft" {
		t.Errorf("Expected revised text, got %q", refl.Text)
	}
	if refl.Coaching == nil || refl.Coaching.Feedback != "Solid start." {
		t.Errorf("Coaching lost on text edit: %+v", refl.Coaching)
	}
}

func TestDeleteActiveResetsToSetup(t *testing.T) {
	practices, _ := testPractices(t)
	m, store := newTestManager(t, &stubCompleter{})
	pb, _ := store.Create(testConfig(), practices)
	m.OpenPlaybook(pb.ID)

	if err := m.DeleteActive(); err != nil {
		t.Fatalf("DeleteActive failed: %v", err)
	}
	if m.Screen() != ScreenSetup {
		t.Errorf("Expected setup screen after delete, got %s", m.Screen())
	}
	if m.Active() != nil {
		t.Error("Active playbook should be cleared")
	}
	if m.Config().Company != "" {
		t.Error("Config should reset to defaults after delete")
	}
	if _, err := store.Load(pb.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Playbook should be gone, got %v", err)
	}
}

func TestReplacePracticeUpdatesMemory(t *testing.T) {
	practices, _ := testPractices(t)
	m, store := newTestManager(t, &stubCompleter{})
	pb, _ := store.Create(testConfig(), practices)
	m.OpenPlaybook(pb.ID)

	updated := practices[7]
	updated.Title = "Fresh Practice 8"
	m.ReplacePractice(updated)
	if m.Active().Practices[7].Title != "Fresh Practice 8" {
		t.Errorf("In-memory practice not replaced: %q", m.Active().Practices[7].Title)
	}
}
