// Package ui implements the interactive worktree picker shown when a
// command needs a target branch and none was given on the command line.
package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/kioku/wt/internal/git"
)

var (
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
	unselectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)

// pickerSource adapts worktrees for fuzzy matching over both the
// branch name and the directory name.
type pickerSource []git.Worktree

func (s pickerSource) Len() int { return len(s) }

func (s pickerSource) String(i int) string {
	return s[i].Branch + " " + filepath.Base(s[i].Path)
}

// filterWorktrees returns the worktrees matching query, best match
// first. An empty query keeps the original order.
func filterWorktrees(worktrees []git.Worktree, query string) []git.Worktree {
	if query == "" {
		return worktrees
	}
	matches := fuzzy.FindFrom(query, pickerSource(worktrees))
	filtered := make([]git.Worktree, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, worktrees[m.Index])
	}
	return filtered
}

type pickerModel struct {
	prompt    string
	worktrees []git.Worktree
	filtered  []git.Worktree
	textInput textinput.Model
	cursor    int
	selected  *git.Worktree
	cancelled bool
	maxHeight int
}

func newPickerModel(prompt string, worktrees []git.Worktree) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40
	ti.PromptStyle = cursorStyle

	return pickerModel{
		prompt:    prompt,
		worktrees: worktrees,
		filtered:  worktrees,
		textInput: ti,
		maxHeight: 10,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				m.selected = &m.filtered[m.cursor]
			}
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)

	m.filtered = filterWorktrees(m.worktrees, m.textInput.Value())
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	return m, cmd
}

func (m pickerModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.prompt + "\n")
	sb.WriteString(m.textInput.View())
	sb.WriteString("\n\n")

	if len(m.filtered) == 0 {
		sb.WriteString(dimStyle.Render("  No matches found"))
		sb.WriteString("\n")
	} else {
		start := 0
		end := len(m.filtered)
		if end > m.maxHeight {
			// Keep the cursor centered once the list scrolls.
			start = m.cursor - m.maxHeight/2
			if start < 0 {
				start = 0
			}
			end = start + m.maxHeight
			if end > len(m.filtered) {
				end = len(m.filtered)
				start = max(0, end-m.maxHeight)
			}
		}

		for i := start; i < end; i++ {
			wt := m.filtered[i]
			branch := wt.Branch
			if branch == "" {
				branch = "(detached)"
			}
			line := fmt.Sprintf("%s (%s)", branch, filepath.Base(wt.Path))

			if i == m.cursor {
				sb.WriteString(cursorStyle.Render("> "))
				sb.WriteString(selectedStyle.Render(line))
			} else {
				sb.WriteString("  ")
				sb.WriteString(unselectedStyle.Render(line))
			}
			sb.WriteString("\n")
		}

		if len(m.filtered) > m.maxHeight {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  %d/%d", m.cursor+1, len(m.filtered))))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("↑/↓ navigate • enter select • esc cancel"))
	return sb.String()
}

// PickWorktree shows a fuzzy-filterable picker over worktrees.
// cancelled is true when the user backed out with esc or ctrl+c, or
// when there was nothing to pick.
func PickWorktree(prompt string, worktrees []git.Worktree) (wt *git.Worktree, cancelled bool, err error) {
	if len(worktrees) == 0 {
		return nil, true, nil
	}

	final, err := tea.NewProgram(newPickerModel(prompt, worktrees)).Run()
	if err != nil {
		return nil, false, err
	}

	m := final.(pickerModel)
	if m.cancelled || m.selected == nil {
		return nil, true, nil
	}
	return m.selected, false, nil
}
