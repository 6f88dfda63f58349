package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/loganmatson/playbook/internal/constants"
	"github.com/loganmatson/playbook/internal/manager"
	"github.com/loganmatson/playbook/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progressBar.Width = min(msg.Width-8, 60)
		return m, nil

	case progressMsg:
		cmd := m.progressBar.SetPercent(float64(msg) / 100)
		return m, tea.Batch(cmd, listenProgress(m.progressCh))

	case progress.FrameMsg:
		bar, cmd := m.progressBar.Update(msg)
		m.progressBar = bar.(progress.Model)
		return m, cmd

	case generatedMsg:
		m.progressCh = nil
		if msg.err != nil {
			// Manager already moved to the error screen.
			return m, nil
		}
		m.reloadPlaybooks()
		return m, m.progressBar.SetPercent(1)

	case coachedMsg:
		if msg.err != nil {
			return m, status("Coaching failed: %v", msg.err)
		}
		m.mgr.SetCoaching(msg.practiceID, msg.result.Coaching)
		if msg.result.Degraded {
			return m, status("Coaching is temporarily unavailable; reflection saved.")
		}
		return m, status("Coaching feedback ready.")

	case regeneratedMsg:
		if msg.err != nil {
			return m, status("Regeneration failed: %v", msg.err)
		}
		m.mgr.ReplacePractice(*msg.practice)
		return m, status("Practice %d regenerated.", msg.practice.ID)

	case statusMsgMsg:
		m.statusMsg = string(msg)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.mgr.Screen() {
	case manager.ScreenSetup, manager.ScreenCustomize:
		return m.updateForm(msg)
	case manager.ScreenLibrary:
		return m.updateLibrary(msg)
	case manager.ScreenViewing:
		return m.updateViewing(msg)
	case manager.ScreenDetail:
		return m.updateDetail(msg)
	case manager.ScreenError:
		return m.updateError(msg)
	}
	return m, nil
}

// updateForm drives the setup/customize/reflection huh forms.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Back) {
		screen := m.mgr.Screen()
		m.form = nil
		if screen == manager.ScreenCustomize {
			m.mgr.Navigate(manager.ScreenSetup)
			form, fm := newSetupForm(m.mgr.Config())
			m.form, m.setupForm = form, fm
			return m, m.form.Init()
		}
		m.mgr.Navigate(manager.ScreenLibrary)
		return m, nil
	}

	next, cmd := m.form.Update(msg)
	if form, ok := next.(*huh.Form); ok {
		m.form = form
	}
	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.mgr.Screen() {
	case manager.ScreenSetup:
		cfg := applySetup(m.mgr.Config(), m.setupForm)
		m.mgr.SetConfig(cfg)
		if res := validation.Config(cfg); !res.OK() {
			// Incomplete answers: rebuild the form with what they typed.
			form, fm := newSetupForm(cfg)
			m.form, m.setupForm = form, fm
			m.statusMsg = "Some required answers are missing."
			return m, m.form.Init()
		}
		if err := m.mgr.Navigate(manager.ScreenCustomize); err != nil {
			return m, status("%v", err)
		}
		form, fm := newCustomizeForm(cfg)
		m.form, m.customizeForm = form, fm
		return m, m.form.Init()

	case manager.ScreenCustomize:
		m.mgr.SetConfig(applyCustomize(m.mgr.Config(), m.customizeForm))
		m.form = nil
		return m, m.startGeneration()
	}

	m.form = nil
	return m, cmd
}

func (m Model) updateLibrary(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.playbooks)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.New):
		if err := m.mgr.Navigate(manager.ScreenSetup); err != nil {
			return m, status("%v", err)
		}
		form, fm := newSetupForm(m.mgr.Config())
		m.form, m.setupForm = form, fm
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.Enter):
		if len(m.playbooks) == 0 {
			return m, nil
		}
		if _, err := m.mgr.OpenPlaybook(m.playbooks[m.cursor].ID); err != nil {
			m.reloadPlaybooks()
			return m, status("%v", err)
		}
		m.cursor = 0
		if seen, _ := m.store.SeenFlag(constants.PlaybookTourSeenKey); !seen {
			m.store.MarkSeen(constants.PlaybookTourSeenKey)
			return m, status("Tip: enter opens a practice, c toggles complete, r records a reflection.")
		}
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateViewing(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	pb := m.mgr.Active()
	if pb == nil {
		m.mgr.Navigate(manager.ScreenLibrary)
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(pb.Practices)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Enter):
		if err := m.mgr.OpenPractice(pb.Practices[m.cursor].ID); err != nil {
			return m, status("%v", err)
		}
	case key.Matches(keyMsg, m.keys.Complete):
		if err := m.mgr.ToggleComplete(pb.Practices[m.cursor].ID); err != nil {
			return m, status("%v", err)
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if err := m.mgr.DeleteActive(); err != nil {
			return m, status("%v", err)
		}
		m.reloadPlaybooks()
		form, fm := newSetupForm(m.mgr.Config())
		m.form, m.setupForm = form, fm
		m.cursor = 0
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.Back):
		if err := m.mgr.Navigate(manager.ScreenLibrary); err != nil {
			return m, status("%v", err)
		}
		m.reloadPlaybooks()
		m.cursor = 0
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	// A reflection form on top of the detail screen gets the input first.
	if m.reflectForm != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Back) {
			m.reflectForm = nil
			return m, nil
		}
		next, cmd := m.reflectForm.Update(msg)
		if form, ok := next.(*huh.Form); ok {
			m.reflectForm = form
		}
		if m.reflectForm.State != huh.StateCompleted {
			return m, cmd
		}
		m.reflectForm = nil
		text := m.reflectDraft
		pid := m.reflectTarget
		if strings.TrimSpace(text) == "" {
			return m, status("Reflection is empty; nothing saved.")
		}
		if err := m.mgr.SaveReflection(pid, text); err != nil {
			return m, status("%v", err)
		}
		return m, tea.Batch(status("Reflection saved."), m.startCoaching(pid, text))
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	practice := m.mgr.SelectedPractice()
	if practice == nil {
		m.mgr.Navigate(manager.ScreenViewing)
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		m.mgr.Navigate(manager.ScreenViewing)
	case key.Matches(keyMsg, m.keys.Complete):
		if err := m.mgr.ToggleComplete(practice.ID); err != nil {
			return m, status("%v", err)
		}
	case key.Matches(keyMsg, m.keys.Reflect):
		pb := m.mgr.Active()
		m.reflectDraft = pb.Reflections[practice.ID].Text
		m.reflectTarget = practice.ID
		m.reflectForm = newReflectForm(practice.Title, &m.reflectDraft)
		return m, m.reflectForm.Init()
	case key.Matches(keyMsg, m.keys.Coach):
		pb := m.mgr.Active()
		refl, ok := pb.Reflections[practice.ID]
		if !ok || strings.TrimSpace(refl.Text) == "" {
			return m, status("Save a reflection first (press r).")
		}
		return m, tea.Batch(status("Generating coaching feedback..."), m.startCoaching(practice.ID, refl.Text))
	case key.Matches(keyMsg, m.keys.Regen):
		return m, tea.Batch(status("Regenerating practice %d...", practice.ID), m.startRegeneration(practice.ID))
	case key.Matches(keyMsg, m.keys.CopyPrompt):
		if err := clipboard.WriteAll(practice.Prompt); err != nil {
			return m, status("Clipboard unavailable: %v", err)
		}
		return m, status("Prompt copied to clipboard.")
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Retry):
		if err := m.mgr.Navigate(manager.ScreenCustomize); err != nil {
			return m, status("%v", err)
		}
		return m, m.startGeneration()
	case key.Matches(keyMsg, m.keys.Back):
		if err := m.mgr.Navigate(manager.ScreenSetup); err != nil {
			return m, status("%v", err)
		}
		form, fm := newSetupForm(m.mgr.Config())
		m.form, m.setupForm = form, fm
		return m, m.form.Init()
	}
	return m, nil
}
