package client

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Color palette, shared with the old teacher UI for a consistent terminal
// feel even though the client's own screen is now only a one-shot banner.
var (
	primaryColor = lipgloss.Color("#E8C4A0")
	successColor = lipgloss.Color("#B5D99C")
	errorColor   = lipgloss.Color("#E88A8A")
	mutedColor   = lipgloss.Color("#B8A890")
)

var (
	quitBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(successColor).
			Padding(1, 3).
			Align(lipgloss.Center)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(1, 3).
			Align(lipgloss.Center)

	bannerTitleStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	bannerMutedStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// bannerModel is a one-screen bubbletea program that prints the server's
// QUIT or ERROR text and exits on any keypress. It replaces the teacher's
// multi-screen onboarding flow, since this protocol has no lobby: the
// server decides admission, and the client's only job after that is to
// render DISPLAY frames until told to stop.
type bannerModel struct {
	title string
	body  string
	style lipgloss.Style
}

func newQuitBanner(text string) bannerModel {
	return bannerModel{title: "Thanks for playing!", body: text, style: quitBoxStyle}
}

func newErrorBanner(text string) bannerModel {
	return bannerModel{title: "Error", body: text, style: errorBoxStyle}
}

func (m bannerModel) Init() tea.Cmd { return nil }

func (m bannerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m bannerModel) View() string {
	content := bannerTitleStyle.Render(m.title) + "\n\n" + m.body + "\n\n" +
		bannerMutedStyle.Render("press any key to exit")
	return m.style.Render(content)
}

// ShowQuitBanner prints the server's QUIT text in a banner and waits for a
// keypress before returning.
func ShowQuitBanner(text string) error {
	_, err := tea.NewProgram(newQuitBanner(text)).Run()
	return err
}

// ShowErrorBanner prints the server's ERROR text in a banner and waits for
// a keypress before returning.
func ShowErrorBanner(text string) error {
	_, err := tea.NewProgram(newErrorBanner(text)).Run()
	return err
}

// PrintFatal writes a plain error line to stderr for failures that happen
// before a termloop/bubbletea screen could ever be started, such as a bad
// host:port argument.
func PrintFatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
