// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/quixsi/guestlist/internal/model"
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.route == RouteGuestList {
		b.WriteString(m.renderGuestList())
		b.WriteString(m.renderAlert(m.list.Alert(), m.list.Success()))
		b.WriteString(m.renderHelp(m.keys.NextField, m.keys.Confirm, m.keys.Up, m.keys.Down,
			m.keys.Delete, m.keys.ClearForm, m.keys.Reload, m.keys.SwitchView, m.keys.Quit))
	} else {
		b.WriteString(m.renderRSVPForm())
		b.WriteString(m.renderAlert(m.form.Alert(), m.form.Success()))
		b.WriteString(m.renderHelp(m.keys.NextField, m.keys.Confirm, m.keys.Coming, m.keys.NotComing,
			m.keys.SwitchView, m.keys.Quit))
	}
	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func (m *Model) renderTabs() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(m.theme.HeaderForeground).
		Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(m.theme.BorderColor)
	inactive := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	tab := func(label, route string) string {
		if m.route == route {
			return active.Render(label)
		}
		return inactive.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tab("RSVP", RouteRSVP), "   ", tab("Guest list", RouteGuestList))
}

func (m *Model) renderRSVPForm() string {
	var b strings.Builder
	for _, input := range m.rsvpInputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if guest := m.form.Result(); guest != nil {
		fmt.Fprintf(&b, "%s %s: %s\n", guest.FirstName, guest.LastName, m.renderStatus(m.form.Status()))
	}
	return b.String()
}

func (m *Model) renderGuestList() string {
	var b strings.Builder

	guests := m.list.Guests()
	header := lipgloss.NewStyle().Bold(true).Foreground(m.theme.HeaderForeground)
	fmt.Fprintf(&b, "%s\n", header.Render(fmt.Sprintf("%d guests, %d attending", len(guests), m.list.TotalRSVP())))
	if m.list.Loading() {
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("loading..."))
		b.WriteString("\n")
	}

	selected := lipgloss.NewStyle().Background(m.theme.SelectedBackground).Foreground(m.theme.SelectedForeground)
	normal := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	for i, guest := range guests {
		name := fmt.Sprintf("%-32s", guest.FirstName+" "+guest.LastName)
		if i == m.cursor {
			name = selected.Render(name)
		} else {
			name = normal.Render(name)
		}
		fmt.Fprintf(&b, "%s %s\n", name, m.renderStatus(guest.Status()))
	}

	b.WriteString("\nAdd guest\n")
	for _, input := range m.guestInputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderStatus(status model.Status) string {
	return lipgloss.NewStyle().Foreground(m.theme.StatusColor(status)).Render(string(status))
}

func (m *Model) renderAlert(msg string, success bool) string {
	if msg == "" {
		return "\n"
	}
	color := m.theme.AlertFailure
	if success {
		color = m.theme.AlertSuccess
	}
	style := lipgloss.NewStyle().Foreground(color).Border(lipgloss.RoundedBorder()).BorderForeground(color).Padding(0, 1)
	return "\n" + style.Render(msg) + "\n"
}

func (m *Model) renderHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return "\n" + lipgloss.NewStyle().Foreground(m.theme.HelpText).Render(strings.Join(parts, " · ")) + "\n"
}
