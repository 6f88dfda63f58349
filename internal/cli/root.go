package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/loganmatson/playbook/internal/constants"
	"github.com/loganmatson/playbook/internal/generation"
	"github.com/loganmatson/playbook/internal/keyring"
	"github.com/loganmatson/playbook/internal/models"
	"github.com/loganmatson/playbook/internal/storage"
)

type Context struct {
	Store *storage.PlaybookStore
}

// resolveAPIKey finds the Anthropic API key: environment first, then the
// system keyring.
func resolveAPIKey() (string, error) {
	if key := os.Getenv(constants.APIKeyEnvVar); key != "" {
		return key, nil
	}
	key, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) || errors.Is(err, keyring.ErrKeyringUnavailable) {
			return "", fmt.Errorf("no API key configured: set %s or run 'playbook key set'", constants.APIKeyEnvVar)
		}
		return "", err
	}
	return key, nil
}

func newCompleter() (generation.Completer, error) {
	apiKey, err := resolveAPIKey()
	if err != nil {
		return nil, err
	}
	return generation.NewClient(apiKey), nil
}

// resolvePlaybook loads the playbook with the given id, or the most
// recently created one when id is empty.
func resolvePlaybook(ctx *Context, id string) (*models.Playbook, error) {
	if id != "" {
		pb, err := ctx.Store.Load(id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("no playbook with id %s", id)
		}
		return pb, err
	}
	all, err := ctx.Store.ListAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, errors.New("no playbooks yet: run 'playbook new' first")
	}
	return ctx.Store.Load(all[0].ID)
}

func parsePracticeID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 || id > models.PracticeCount {
		return 0, fmt.Errorf("practice must be a number between 1 and %d", models.PracticeCount)
	}
	return id, nil
}

func formatCreated(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func summarize(pb models.Playbook) string {
	return fmt.Sprintf("%s  %s  %d/%d done  %s",
		pb.ID,
		formatCreated(pb.CreatedAt),
		pb.CompletedCount(), len(pb.Practices),
		pb.Config.Company)
}

func practiceLine(pb *models.Playbook, p models.Practice) string {
	mark := "[ ]"
	if pb.Completed[p.ID] {
		mark = "[x]"
	}
	note := ""
	if _, ok := pb.Reflections[p.ID]; ok {
		note = " *"
	}
	return fmt.Sprintf("%s %2d. %-40s %-12s %s%s", mark, p.ID, p.Title, p.Scale, p.Time, note)
}

func printPracticeDetail(pb *models.Playbook, p *models.Practice) {
	fmt.Printf("%d. %s\n", p.ID, p.Title)
	fmt.Printf("   %s · %s · %s\n\n", p.Scale, p.Time, p.Skill)
	fmt.Printf("   \"%s\" - %s\n\n", p.Quote.Text, p.Quote.Source)
	fmt.Printf("   %s\n\n", p.Bridge)
	fmt.Println("   Protocol:")
	for i, step := range p.Protocol {
		fmt.Printf("     %d. %s\n", i+1, step)
	}
	fmt.Printf("\n   Prompt:\n     %s\n\n", p.Prompt)
	fmt.Println("   Takeaways:")
	for _, tk := range p.Takeaway {
		fmt.Printf("     - %s\n", tk)
	}
	if refl, ok := pb.Reflections[p.ID]; ok {
		fmt.Printf("\n   Reflection:\n     %s\n", refl.Text)
		if refl.Coaching != nil {
			fmt.Printf("\n   Coaching:\n     %s\n", refl.Coaching.Feedback)
			if refl.Coaching.PromptTip != "" {
				fmt.Printf("     Tip: %s\n", refl.Coaching.PromptTip)
			}
			if refl.Coaching.NextChallenge != "" {
				fmt.Printf("     Next: %s\n", refl.Coaching.NextChallenge)
			}
			if refl.Coaching.SkillConnection != "" {
				fmt.Printf("     Connection: %s\n", refl.Coaching.SkillConnection)
			}
		}
	}
}

func parseSkillFocus(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
