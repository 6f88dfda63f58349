package cli

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/loganmatson/playbook/internal/models"
	"github.com/loganmatson/playbook/internal/storage"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	gw := storage.NewFileGateway(filepath.Join(t.TempDir(), "playbook.json"))
	if err := gw.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	store := storage.NewPlaybookStore(gw)
	t.Cleanup(store.Close)
	return &Context{Store: store}
}

func seedConfig() models.Config {
	cfg := models.DefaultConfig()
	cfg.Company = "Consultant at Foundry"
	cfg.WorkDescription = "Operational reviews"
	cfg.WeeklyHours = "2-3"
	return cfg
}

func seedPractices() []models.Practice {
	out := make([]models.Practice, 0, models.PracticeCount)
	for i := 1; i <= models.PracticeCount; i++ {
		out = append(out, models.Practice{
			ID: i, Title: "Practice", Scale: models.ScaleMicroHabit, Time: "5 min",
			Skill: "Skill", Quote: models.Quote{Text: "q", Source: "s"},
			Bridge: "b", Protocol: []string{"p"}, Prompt: "x", Takeaway: []string{"t"},
		})
	}
	return out
}

func TestParsePracticeID(t *testing.T) {
	if _, err := parsePracticeID("0"); err == nil {
		t.Error("Expected error for 0")
	}
	if _, err := parsePracticeID("11"); err == nil {
		t.Error("Expected error for 11")
	}
	if _, err := parsePracticeID("abc"); err == nil {
		t.Error("Expected error for non-numeric input")
	}
	id, err := parsePracticeID("10")
	if err != nil || id != 10 {
		t.Errorf("Expected 10, got %d (%v)", id, err)
	}
}

func TestParseSkillFocus(t *testing.T) {
	got := parseSkillFocus(" Risk Assessment , Client Communication ,, ")
	want := []string{"Risk Assessment", "Client Communication"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got := parseSkillFocus("   "); got != nil {
		t.Errorf("Expected nil for blank input, got %v", got)
	}
}

func TestResolvePlaybookEmpty(t *testing.T) {
	ctx := newTestContext(t)
	if _, err := resolvePlaybook(ctx, ""); err == nil {
		t.Error("Expected error with no playbooks stored")
	}
}

func TestResolvePlaybookNewestByDefault(t *testing.T) {
	ctx := newTestContext(t)
	first, err := ctx.Store.Create(seedConfig(), seedPractices())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := ctx.Store.Create(seedConfig(), seedPractices())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	pb, err := resolvePlaybook(ctx, "")
	if err != nil {
		t.Fatalf("resolvePlaybook failed: %v", err)
	}
	if pb.ID != second.ID {
		t.Errorf("Expected newest playbook %s, got %s", second.ID, pb.ID)
	}

	pb, err = resolvePlaybook(ctx, first.ID)
	if err != nil {
		t.Fatalf("resolvePlaybook by id failed: %v", err)
	}
	if pb.ID != first.ID {
		t.Errorf("Expected %s, got %s", first.ID, pb.ID)
	}
}

func TestResolvePlaybookUnknownID(t *testing.T) {
	ctx := newTestContext(t)
	if _, err := resolvePlaybook(ctx, "12345"); err == nil {
		t.Error("Expected error for unknown id")
	}
}
