package cmd

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/dashgrab/dashgrab/color"
	"github.com/dashgrab/dashgrab/constant"
	"github.com/dashgrab/dashgrab/icon"
	"github.com/dashgrab/dashgrab/output"
	"github.com/dashgrab/dashgrab/style"
)

// outputDependencies names the executables an output starts itself.
var outputDependencies = map[string]func() string{
	"mpv": func() string { return output.MPVBinary },
}

// checkDependency reports a missing executable required by the named output
// before any request is made.
func checkDependency(w io.Writer, outputName string) error {
	binary, ok := outputDependencies[outputName]
	if !ok {
		return nil
	}

	dep := binary()
	if _, err := exec.LookPath(dep); err != nil {
		printMissingDependency(w, dep)
		return fmt.Errorf("%s is required by the %s output", dep, outputName)
	}
	return nil
}

func installHint(dep string) string {
	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install " + dep
	case constant.Linux:
		return "sudo apt install " + dep
	case constant.Windows:
		return "scoop install " + dep
	default:
		return ""
	}
}

func printMissingDependency(w io.Writer, dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Missing dependency", icon.Get(icon.Fail)))
	body := fmt.Sprintf("'%s' was not found in your PATH.", dep)

	if hint := installHint(dep); hint != "" {
		body += fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(color.Yellow).Bold(true).Render(hint))
	}

	_, _ = fmt.Fprintln(w, box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body)))
}
