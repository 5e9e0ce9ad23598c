// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/quixsi/guestlist/internal/model"
)

type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	StatusComing       lipgloss.Color
	StatusNotComing    lipgloss.Color
	StatusNotSubmitted lipgloss.Color

	AlertSuccess lipgloss.Color
	AlertFailure lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
}

func (theme Theme) StatusColor(status model.Status) lipgloss.Color {
	switch status {
	case model.StatusComing:
		return theme.StatusComing
	case model.StatusNotComing:
		return theme.StatusNotComing
	default:
		return theme.StatusNotSubmitted
	}
}

var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusComing:       lipgloss.Color("114"), // green
	StatusNotComing:    lipgloss.Color("196"), // red
	StatusNotSubmitted: lipgloss.Color("245"), // gray

	AlertSuccess: lipgloss.Color("114"),
	AlertFailure: lipgloss.Color("196"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
}
