package main

import "github.com/charmbracelet/lipgloss"

var (
	boldStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
