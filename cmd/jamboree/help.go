package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f06595")).
		Bold(true).
		Render("J A M B O R E E")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Party planning for people who'd rather be partying.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"jamboree", "Open the planner (interactive TUI)"},
		{"jamboree create", "Plan a new party"},
		{"jamboree join <code>", "Join a party by its code"},
		{"jamboree admin <code>", "Open the admin zone by its secret code"},
		{"jamboree web", "Open the web app in your browser"},
		{"jamboree --version", "Show version"},
		{"jamboree help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}
	url := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("https://jamboree.party")
	fmt.Printf("\n  %s\n\n", url)
}
