package coaching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/loganmatson/playbook/internal/generation"
	"github.com/loganmatson/playbook/internal/models"
	"github.com/loganmatson/playbook/internal/storage"
)

type stubCompleter struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	block    chan struct{}
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	s.mu.Lock()
	s.calls++
	block := s.block
	s.mu.Unlock()
	if block != nil {
		<-block
	}
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubCompleter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testPractices() []models.Practice {
	out := make([]models.Practice, 0, models.PracticeCount)
	for i := 1; i <= models.PracticeCount; i++ {
		out = append(out, models.Practice{
			ID:       i,
			Title:    fmt.Sprintf("Practice %d", i),
			Scale:    models.ScaleMicroHabit,
			Time:     "10 min",
			Skill:    "Client Communication",
			Quote:    models.Quote{Text: "Practice makes progress.", Source: "Anonymous"},
			Bridge:   "Why it matters.",
			Protocol: []string{"Step one", "Step two"},
			Prompt:   "Do the thing with [DATA]",
			Takeaway: []string{"One", "Two"},
		})
	}
	return out
}

func fullCoaching() models.Coaching {
	return models.Coaching{
		Feedback:        "Nice work.",
		PromptTip:       "Ask for sources.",
		NextChallenge:   "Do it with a bigger dataset.",
		SkillConnection: "This builds review judgment.",
	}
}

func newTestEngine(t *testing.T, client generation.Completer) (*Engine, *storage.PlaybookStore, *models.Playbook) {
	t.Helper()
	gw := storage.NewFileGateway(filepath.Join(t.TempDir(), "playbook.json"))
	if err := gw.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	store := storage.NewPlaybookStore(gw)
	t.Cleanup(store.Close)

	cfg := models.DefaultConfig()
	cfg.Company = "Consultant at Northwind"
	cfg.WorkDescription = "Client strategy work"
	cfg.WeeklyHours = "2-3"
	pb, err := store.Create(cfg, testPractices())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return NewEngine(client, store), store, pb
}

func TestCoachPersistsFeedback(t *testing.T) {
	coaching := models.Coaching{
		Feedback:        "You noticed the model's bias toward recency. Great observation.",
		PromptTip:       "Add 'cite the row number for each claim' to your prompt.",
		NextChallenge:   "Run the same analysis on a dataset twice the size.",
		SkillConnection: "Spotting model bias is exactly what clients pay reviewers for.",
	}
	payload, _ := json.Marshal(coaching)
	client := &stubCompleter{response: "```json\n" + string(payload) + "\n```"}
	engine, store, pb := newTestEngine(t, client)

	res, err := engine.Coach(context.Background(), pb, 3, "The AI kept overweighting recent rows.")
	if err != nil {
		t.Fatalf("Coach failed: %v", err)
	}
	if res.Degraded {
		t.Error("Expected non-degraded result")
	}
	if res.Coaching.PromptTip != coaching.PromptTip {
		t.Errorf("Coaching mismatch: %+v", res.Coaching)
	}

	loaded, err := store.Load(pb.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	refl, ok := loaded.Reflections[3]
	if !ok {
		t.Fatal("Reflection not persisted")
	}
	if refl.Text != "The AI kept overweighting recent rows." {
		t.Errorf("Reflection text mismatch: %q", refl.Text)
	}
	if refl.Coaching == nil || refl.Coaching.Feedback != coaching.Feedback {
		t.Errorf("Persisted coaching mismatch: %+v", refl.Coaching)
	}
}

func TestCoachFallbackOnGenerationFailure(t *testing.T) {
	client := &stubCompleter{err: &generation.Error{Kind: generation.KindTimeout, Msg: "request timed out"}}
	engine, store, pb := newTestEngine(t, client)

	res, err := engine.Coach(context.Background(), pb, 5, "I tried the prompt twice.")
	if err != nil {
		t.Fatalf("Coach should degrade, not fail: %v", err)
	}
	if !res.Degraded {
		t.Error("Expected degraded result")
	}
	if res.Coaching.Feedback != FallbackCoaching.Feedback {
		t.Errorf("Expected fallback coaching, got %+v", res.Coaching)
	}

	// The reflection and the fallback are both persisted.
	loaded, _ := store.Load(pb.ID)
	refl, ok := loaded.Reflections[5]
	if !ok {
		t.Fatal("Reflection not persisted on fallback path")
	}
	if refl.Coaching == nil || refl.Coaching.Feedback != FallbackCoaching.Feedback {
		t.Errorf("Fallback coaching not persisted: %+v", refl.Coaching)
	}
}

func TestCoachFallbackOnUnparseablePayload(t *testing.T) {
	client := &stubCompleter{response: "Here are my thoughts, in no particular format."}
	engine, _, pb := newTestEngine(t, client)

	res, err := engine.Coach(context.Background(), pb, 1, "It went fine.")
	if err != nil {
		t.Fatalf("Coach should degrade, not fail: %v", err)
	}
	if !res.Degraded {
		t.Error("Expected degraded result for unparseable payload")
	}
}

func TestCoachRejectsEmptyReflection(t *testing.T) {
	client := &stubCompleter{response: "{}"}
	engine, store, pb := newTestEngine(t, client)

	for _, text := range []string{"", "   \n\t"} {
		if _, err := engine.Coach(context.Background(), pb, 4, text); err == nil {
			t.Errorf("Expected error for reflection %q", text)
		}
	}
	if client.callCount() != 0 {
		t.Errorf("Empty reflection should not reach the API, got %d calls", client.callCount())
	}

	loaded, _ := store.Load(pb.ID)
	if _, ok := loaded.Reflections[4]; ok {
		t.Error("Empty reflection should not be persisted")
	}
}

func TestCoachFallbackOnPartialPayload(t *testing.T) {
	payload, _ := json.Marshal(models.Coaching{Feedback: "Solid work.", PromptTip: "Try few-shot examples."})
	client := &stubCompleter{response: string(payload)}
	engine, _, pb := newTestEngine(t, client)

	res, err := engine.Coach(context.Background(), pb, 6, "It mostly worked.")
	if err != nil {
		t.Fatalf("Coach should degrade, not fail: %v", err)
	}
	if !res.Degraded {
		t.Error("Expected degraded result for payload missing fields")
	}
	if res.Coaching.Feedback != FallbackCoaching.Feedback {
		t.Errorf("Expected fallback coaching, got %+v", res.Coaching)
	}
}

func TestCoachUnknownPractice(t *testing.T) {
	client := &stubCompleter{response: "{}"}
	engine, _, pb := newTestEngine(t, client)

	if _, err := engine.Coach(context.Background(), pb, 99, "text"); err == nil {
		t.Error("Expected error for unknown practice id")
	}
	if client.callCount() != 0 {
		t.Errorf("Unknown practice should not reach the API, got %d calls", client.callCount())
	}
}

func TestCoachInFlightGuard(t *testing.T) {
	block := make(chan struct{})
	payload, _ := json.Marshal(fullCoaching())
	client := &stubCompleter{response: string(payload), block: block}
	engine, _, pb := newTestEngine(t, client)

	done := make(chan error, 1)
	go func() {
		_, err := engine.Coach(context.Background(), pb, 2, "first")
		done <- err
	}()
	for client.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	if _, err := engine.Coach(context.Background(), pb, 2, "second"); !errors.Is(err, generation.ErrInFlight) {
		t.Errorf("Expected ErrInFlight for same practice, got %v", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("Original coaching request failed: %v", err)
	}
}

func TestCoachPreservesCompletionState(t *testing.T) {
	payload, _ := json.Marshal(fullCoaching())
	client := &stubCompleter{response: string(payload)}
	engine, store, pb := newTestEngine(t, client)

	if err := store.ApplyPatch(pb.ID, storage.Patch{Completed: map[int]bool{3: true}}); err != nil {
		t.Fatalf("ApplyPatch failed: %v", err)
	}

	if _, err := engine.Coach(context.Background(), pb, 3, "done and dusted"); err != nil {
		t.Fatalf("Coach failed: %v", err)
	}

	loaded, _ := store.Load(pb.ID)
	if !loaded.Completed[3] {
		t.Error("Coaching write clobbered completion state")
	}
}
