package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/loganmatson/playbook/internal/constants"
	"github.com/loganmatson/playbook/internal/logger"
	"github.com/loganmatson/playbook/internal/models"
	"github.com/loganmatson/playbook/internal/storage"
	"github.com/loganmatson/playbook/internal/validation"
)

// Orchestrator runs full-playbook generation and single-practice
// regeneration end to end: prompt, completion, normalization, parsing,
// schema validation, persistence. Nothing is persisted until the payload
// has passed every check, so a failed attempt never leaves a partial
// record behind.
type Orchestrator struct {
	client Completer
	store  *storage.PlaybookStore

	// onProgress receives time-based progress estimates (0-100) during a
	// full generation run. Optional.
	onProgress   func(int)
	tickInterval time.Duration

	guard inFlightGuard
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithProgress installs a progress observer for full generation runs.
func WithProgress(fn func(int)) OrchestratorOption {
	return func(o *Orchestrator) { o.onProgress = fn }
}

// WithTickInterval overrides the progress tick interval, used by tests.
func WithTickInterval(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) { o.tickInterval = d }
}

func NewOrchestrator(client Completer, store *storage.PlaybookStore, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		client:       client,
		store:        store,
		tickInterval: constants.ProgressTickInterval,
		guard:        newInFlightGuard(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GeneratePlaybook generates a fresh ten-practice playbook from config and
// persists it. While a run is outstanding, further calls return
// ErrInFlight instead of fanning out into concurrent requests.
func (o *Orchestrator) GeneratePlaybook(ctx context.Context, config models.Config) (*models.Playbook, error) {
	if !o.guard.acquire("generate") {
		return nil, ErrInFlight
	}
	defer o.guard.release("generate")

	if res := validation.Config(config); !res.OK() {
		return nil, &Error{Kind: KindSchema, Msg: "invalid configuration:\n" + res.FormatReport()}
	}

	attempt := uuid.NewString()
	logger.Info("generating playbook", "attempt", attempt, "company", config.Company)

	tracker := newProgressTracker(o.tickInterval, o.onProgress)
	defer tracker.finish()

	text, err := o.client.Complete(ctx, BuildPlaybookPrompt(config), constants.GenerateMaxTokens)
	if err != nil {
		logger.Error("playbook generation request failed", "attempt", attempt, "error", err)
		return nil, err
	}

	var practices []models.Practice
	if err := json.Unmarshal([]byte(Normalize(text)), &practices); err != nil {
		logger.Error("playbook payload unparseable", "attempt", attempt, "error", err)
		return nil, &Error{Kind: KindParse, Msg: "response was not a valid practice array", Cause: err}
	}
	if res := validation.PracticeSet(practices); !res.OK() {
		logger.Error("playbook payload failed validation", "attempt", attempt, "violations", len(res.Violations))
		return nil, &Error{Kind: KindSchema, Msg: "generated practices failed validation:\n" + res.FormatReport()}
	}

	pb, err := o.store.Create(config, practices)
	if err != nil {
		return nil, fmt.Errorf("failed to save generated playbook: %w", err)
	}
	logger.Info("playbook generated", "attempt", attempt, "playbook", pb.ID)
	return pb, nil
}

// RegeneratePractice replaces one practice in an existing playbook with a
// freshly generated one. The replacement must come back with the requested
// id; anything else is a schema failure and the stored playbook is left
// untouched. Concurrent regeneration of the same slot returns ErrInFlight;
// different slots may regenerate in parallel.
func (o *Orchestrator) RegeneratePractice(ctx context.Context, pb *models.Playbook, practiceID int) (*models.Practice, error) {
	if !pb.HasPractice(practiceID) {
		return nil, &Error{Kind: KindSchema, Msg: fmt.Sprintf("playbook has no practice %d", practiceID)}
	}

	key := fmt.Sprintf("regen:%s:%d", pb.ID, practiceID)
	if !o.guard.acquire(key) {
		return nil, ErrInFlight
	}
	defer o.guard.release(key)

	logger.Info("regenerating practice", "playbook", pb.ID, "practice", practiceID)

	text, err := o.client.Complete(ctx, BuildRegeneratePrompt(pb.Config, practiceID), constants.RegenerateMaxTokens)
	if err != nil {
		logger.Error("practice regeneration request failed", "playbook", pb.ID, "practice", practiceID, "error", err)
		return nil, err
	}

	var practice models.Practice
	if err := json.Unmarshal([]byte(Normalize(text)), &practice); err != nil {
		return nil, &Error{Kind: KindParse, Msg: "response was not a valid practice object", Cause: err}
	}
	if res := validation.Practice(practice, "practice"); !res.OK() {
		return nil, &Error{Kind: KindSchema, Msg: "regenerated practice failed validation:\n" + res.FormatReport()}
	}
	if practice.ID != practiceID {
		return nil, &Error{Kind: KindSchema, Msg: fmt.Sprintf("regenerated practice came back with id %d, wanted %d", practice.ID, practiceID)}
	}

	if err := o.store.ReplacePractice(pb.ID, practice); err != nil {
		return nil, fmt.Errorf("failed to save regenerated practice: %w", err)
	}
	logger.Info("practice regenerated", "playbook", pb.ID, "practice", practiceID)
	return &practice, nil
}
