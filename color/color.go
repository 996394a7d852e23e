// Package color provides the ANSI palette used by CLI output.
package color

import "github.com/charmbracelet/lipgloss"

var (
	Red    = lipgloss.Color("1")
	Green  = lipgloss.Color("2")
	Yellow = lipgloss.Color("3")
	Blue   = lipgloss.Color("4")
	Purple = lipgloss.Color("5")
	Cyan   = lipgloss.Color("6")
)

var (
	HiRed    = lipgloss.Color("9")
	HiBlue   = lipgloss.Color("12")
	HiPurple = lipgloss.Color("13")
	HiCyan   = lipgloss.Color("14")
)
