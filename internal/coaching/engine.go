package coaching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/loganmatson/playbook/internal/constants"
	"github.com/loganmatson/playbook/internal/generation"
	"github.com/loganmatson/playbook/internal/logger"
	"github.com/loganmatson/playbook/internal/models"
	"github.com/loganmatson/playbook/internal/storage"
)

// FallbackCoaching is persisted when feedback generation fails. The
// reflection itself is never lost to a coaching failure.
var FallbackCoaching = models.Coaching{
	Feedback: "Couldn't generate coaching feedback right now. Your reflection has been saved. Try again later.",
}

// Result is the outcome of a coaching run. Degraded marks the fallback
// path: the reflection was saved but the coaching content is canned.
type Result struct {
	Coaching models.Coaching
	Degraded bool
}

// Engine turns saved reflections into structured coaching feedback.
// Coaching is best-effort: a generation failure degrades to a fixed
// fallback instead of erroring, while a storage failure is surfaced
// because it means the reflection state itself is at risk.
type Engine struct {
	client generation.Completer
	store  *storage.PlaybookStore

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewEngine(client generation.Completer, store *storage.PlaybookStore) *Engine {
	return &Engine{
		client:   client,
		store:    store,
		inFlight: make(map[string]bool),
	}
}

func (e *Engine) acquire(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight[key] {
		return false
	}
	e.inFlight[key] = true
	return true
}

func (e *Engine) release(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, key)
}

// Coach generates coaching feedback for the reflection saved against the
// given practice and persists it alongside the reflection text. A second
// request for the same practice while one is outstanding returns
// generation.ErrInFlight.
func (e *Engine) Coach(ctx context.Context, pb *models.Playbook, practiceID int, reflectionText string) (*Result, error) {
	practice := pb.PracticeByID(practiceID)
	if practice == nil {
		return nil, fmt.Errorf("playbook %s has no practice %d", pb.ID, practiceID)
	}
	if strings.TrimSpace(reflectionText) == "" {
		return nil, fmt.Errorf("reflection text is empty")
	}

	key := fmt.Sprintf("%s:%d", pb.ID, practiceID)
	if !e.acquire(key) {
		return nil, generation.ErrInFlight
	}
	defer e.release(key)

	coaching, degraded := e.generate(ctx, pb.Config, *practice, reflectionText)

	err := e.store.ApplyPatch(pb.ID, storage.Patch{
		Reflections: map[int]models.Reflection{
			practiceID: {Text: reflectionText, Coaching: &coaching},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save coaching feedback: %w", err)
	}
	return &Result{Coaching: coaching, Degraded: degraded}, nil
}

func (e *Engine) generate(ctx context.Context, cfg models.Config, practice models.Practice, reflectionText string) (models.Coaching, bool) {
	prompt := generation.BuildCoachingPrompt(cfg, practice, reflectionText)
	text, err := e.client.Complete(ctx, prompt, constants.CoachingMaxTokens)
	if err != nil {
		logger.Warn("coaching generation failed, using fallback", "practice", practice.ID, "error", err)
		return FallbackCoaching, true
	}

	var coaching models.Coaching
	if err := json.Unmarshal([]byte(generation.Normalize(text)), &coaching); err != nil {
		logger.Warn("coaching payload unparseable, using fallback", "practice", practice.ID, "error", err)
		return FallbackCoaching, true
	}
	// All four fields are required; a partial payload is treated like an
	// unparseable one rather than shown as real feedback.
	if coaching.Feedback == "" || coaching.PromptTip == "" ||
		coaching.NextChallenge == "" || coaching.SkillConnection == "" {
		logger.Warn("coaching payload incomplete, using fallback", "practice", practice.ID)
		return FallbackCoaching, true
	}
	return coaching, false
}
