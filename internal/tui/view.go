package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/loganmatson/playbook/internal/manager"
)

func formatCreated(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.mgr.Screen() {
	case manager.ScreenLibrary:
		content = m.viewLibrary()
	case manager.ScreenSetup, manager.ScreenCustomize:
		if m.form != nil {
			content = m.form.View()
		}
	case manager.ScreenGenerating:
		content = m.viewGenerating()
	case manager.ScreenViewing:
		content = m.viewPlaybook()
	case manager.ScreenDetail:
		content = m.viewDetail()
	case manager.ScreenError:
		content = m.viewError()
	}

	sections := []string{content}
	if m.statusMsg != "" {
		sections = append(sections, statusStyle.Render(m.statusMsg))
	}
	sections = append(sections, m.help.View(m))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewLibrary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your Playbooks"))
	b.WriteString("\n\n")

	if m.showFirstHint {
		b.WriteString(subtitleStyle.Render("Welcome! A playbook is a set of ten AI practice exercises built around your actual work."))
		b.WriteString("\n\n")
	}

	if len(m.playbooks) == 0 {
		b.WriteString("No playbooks yet. Press n to create one.\n")
		return b.String()
	}

	for i, pb := range m.playbooks {
		line := fmt.Sprintf("%s  %d/%d done  %s",
			formatCreated(pb.CreatedAt), pb.CompletedCount(), len(pb.Practices), pb.Config.Company)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewGenerating() string {
	quote := quoteStyle.Render(fmt.Sprintf("\"%s\"\n  %s", m.loadingQuote.Text, m.loadingQuote.Source))
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Building your playbook..."),
		"",
		m.progressBar.View(),
		"",
		quote,
	)
}

func (m Model) viewPlaybook() string {
	pb := m.mgr.Active()
	if pb == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(pb.Config.Company))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d of %d practices complete", pb.CompletedCount(), len(pb.Practices))))
	b.WriteString("\n\n")

	for i, p := range pb.Practices {
		mark := "[ ]"
		if pb.Completed[p.ID] {
			mark = doneStyle.Render("[x]")
		}
		note := ""
		if _, ok := pb.Reflections[p.ID]; ok {
			note = " *"
		}
		line := fmt.Sprintf("%s %2d. %s (%s, %s)%s", mark, p.ID, p.Title, p.Scale, p.Time, note)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewDetail() string {
	if m.reflectForm != nil {
		return m.reflectForm.View()
	}

	pb := m.mgr.Active()
	p := m.mgr.SelectedPractice()
	if pb == nil || p == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d. %s", p.ID, p.Title)))
	b.WriteString("\n")
	b.WriteString(skillBadge(p.Skill))
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("  %s · %s", p.Scale, p.Time)))
	b.WriteString("\n\n")
	b.WriteString(quoteStyle.Render(fmt.Sprintf("\"%s\"  %s", p.Quote.Text, p.Quote.Source)))
	b.WriteString("\n\n")
	b.WriteString(p.Bridge)
	b.WriteString("\n\nProtocol:\n")
	for i, step := range p.Protocol {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}
	b.WriteString("\nPrompt:\n  ")
	b.WriteString(p.Prompt)
	b.WriteString("\n\nTakeaways:\n")
	for _, tk := range p.Takeaway {
		fmt.Fprintf(&b, "  - %s\n", tk)
	}

	if refl, ok := pb.Reflections[p.ID]; ok {
		b.WriteString("\nReflection:\n  ")
		b.WriteString(refl.Text)
		b.WriteString("\n")
		if refl.Coaching != nil {
			b.WriteString("\nCoaching:\n  ")
			b.WriteString(refl.Coaching.Feedback)
			b.WriteString("\n")
			if refl.Coaching.PromptTip != "" {
				fmt.Fprintf(&b, "  Tip: %s\n", refl.Coaching.PromptTip)
			}
			if refl.Coaching.NextChallenge != "" {
				fmt.Fprintf(&b, "  Next: %s\n", refl.Coaching.NextChallenge)
			}
			if refl.Coaching.SkillConnection != "" {
				fmt.Fprintf(&b, "  Connection: %s\n", refl.Coaching.SkillConnection)
			}
		}
	}
	return b.String()
}

func (m Model) viewError() string {
	msg := "Something went wrong."
	if err := m.mgr.LastError(); err != nil {
		msg = err.Error()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		dangerStyle.Render("Generation failed"),
		"",
		msg,
		"",
		"[enter] retry    [esc] edit setup",
	)
}
