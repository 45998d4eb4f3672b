package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const banner = `
███████╗██████╗ ███████╗ ██████╗██╗███████╗██╗   ██╗
██╔════╝██╔══██╗██╔════╝██╔════╝██║██╔════╝╚██╗ ██╔╝
███████╗██████╔╝█████╗  ██║     ██║█████╗   ╚████╔╝ 
╚════██║██╔═══╝ ██╔══╝  ██║     ██║██╔══╝    ╚██╔╝  
███████║██║     ███████╗╚██████╗██║██║        ██║   
╚══════╝╚═╝     ╚══════╝ ╚═════╝╚═╝╚═╝        ╚═╝   
`

const tagline = "GitHub Spec Kit - Spec-Driven Development Toolkit"

// bannerColors produce a top-to-bottom gradient across the banner lines.
var bannerColors = []lipgloss.Color{
	lipgloss.Color("#60A5FA"),
	lipgloss.Color("#3B82F6"),
	lipgloss.Color("#22D3EE"),
	lipgloss.Color("#67E8F9"),
	lipgloss.Color("#F3F4F6"),
	lipgloss.Color("#FFFFFF"),
}

// PrintBanner writes the styled ASCII banner and tagline to w.
func PrintBanner(w io.Writer) {
	lines := strings.Split(strings.Trim(banner, "\n"), "\n")

	width := 0
	for _, line := range lines {
		if lw := ansi.StringWidth(line); lw > width {
			width = lw
		}
	}

	for i, line := range lines {
		style := lipgloss.NewStyle().Foreground(bannerColors[i%len(bannerColors)])
		fmt.Fprintln(w, style.Render(line))
	}

	styledTagline := lipgloss.NewStyle().
		Italic(true).
		Foreground(colorWarning).
		Render(tagline)
	pad := (width - ansi.StringWidth(tagline)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintln(w, strings.Repeat(" ", pad)+styledTagline)
	fmt.Fprintln(w)
}
