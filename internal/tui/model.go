// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package tui is the terminal front end of the guest list. The root model
// routes between the RSVP form and the guest list administration and
// forwards every asynchronous result to both workflows.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quixsi/guestlist/internal/model"
	"github.com/quixsi/guestlist/internal/workflow"
)

type Model struct {
	form  *workflow.RSVPForm
	list  *workflow.GuestList
	keys  KeyMap
	theme Theme

	route string
	width int

	rsvpInputs  []textinput.Model
	guestInputs []textinput.Model
	focus       int
	cursor      int
}

// New builds the root model starting at route.
func New(form *workflow.RSVPForm, list *workflow.GuestList, route string) *Model {
	return &Model{
		form:        form,
		list:        list,
		keys:        DefaultKeyMap,
		theme:       DefaultTheme,
		route:       Resolve(route),
		rsvpInputs:  nameInputs(),
		guestInputs: nameInputs(),
	}
}

func nameInputs() []textinput.Model {
	first := textinput.New()
	first.Placeholder = "First name"
	first.CharLimit = 64
	last := textinput.New()
	last.Placeholder = "Last name"
	last.CharLimit = 64
	return []textinput.Model{first, last}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.navigate(m.route))
}

func (m *Model) Route() string { return m.route }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case NavigateMsg:
		return m, m.navigate(msg.Route)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.SwitchView):
			if m.route == RouteGuestList {
				return m, m.navigate(RouteRSVP)
			}
			return m, m.navigate(RouteGuestList)
		}
		if m.route == RouteGuestList {
			return m, m.updateGuestList(msg)
		}
		return m, m.updateRSVP(msg)
	}

	cmds := []tea.Cmd{m.form.Update(msg), m.list.Update(msg)}
	m.clampCursor()

	cmds = append(cmds, m.updateInput(msg))
	return m, tea.Batch(cmds...)
}

func (m *Model) navigate(route string) tea.Cmd {
	m.route = Resolve(route)
	m.focus = 0
	focus := m.focusInputs()
	if m.route == RouteGuestList {
		return tea.Batch(focus, m.list.Load())
	}
	return focus
}

func (m *Model) updateRSVP(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextField):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevField):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.Confirm):
		return m.form.Search(criteria(m.rsvpInputs))
	case key.Matches(msg, m.keys.Coming):
		return m.form.Submit(true)
	case key.Matches(msg, m.keys.NotComing):
		return m.form.Submit(false)
	}
	return m.updateInput(msg)
}

func (m *Model) updateGuestList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextField):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevField):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.Confirm):
		m.list.SetForm(criteria(m.guestInputs))
		return m.list.Add()
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()
		return nil
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
		return nil
	case key.Matches(msg, m.keys.Delete):
		if guests := m.list.Guests(); m.cursor < len(guests) {
			return m.list.Delete(guests[m.cursor])
		}
		return nil
	case key.Matches(msg, m.keys.ClearForm):
		m.list.ClearForm()
		form := m.list.Form()
		m.guestInputs[0].SetValue(form.FirstName)
		m.guestInputs[1].SetValue(form.LastName)
		return nil
	case key.Matches(msg, m.keys.Reload):
		return m.list.Load()
	}
	cmd := m.updateInput(msg)
	m.list.SetForm(criteria(m.guestInputs))
	return cmd
}

func (m *Model) inputs() []textinput.Model {
	if m.route == RouteGuestList {
		return m.guestInputs
	}
	return m.rsvpInputs
}

func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	inputs := m.inputs()
	var cmd tea.Cmd
	inputs[m.focus], cmd = inputs[m.focus].Update(msg)
	return cmd
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	n := len(m.inputs())
	m.focus = ((m.focus+delta)%n + n) % n
	return m.focusInputs()
}

func (m *Model) focusInputs() tea.Cmd {
	for _, inputs := range [][]textinput.Model{m.rsvpInputs, m.guestInputs} {
		for i := range inputs {
			inputs[i].Blur()
		}
	}
	return m.inputs()[m.focus].Focus()
}

func (m *Model) clampCursor() {
	if n := len(m.list.Guests()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func criteria(inputs []textinput.Model) model.Criteria {
	return model.Criteria{
		FirstName: strings.TrimSpace(inputs[0].Value()),
		LastName:  strings.TrimSpace(inputs[1].Value()),
	}
}
