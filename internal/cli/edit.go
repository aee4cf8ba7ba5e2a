package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/memestyle/pkg/storage"
	"github.com/matzehuels/memestyle/pkg/textstyle"
)

// editCommand creates the interactive "edit" command.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit KEY",
		Short: "Edit a style interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			key := args[0]
			return c.withStore(ctx, func(store storage.Store) error {
				s, err := loadStyle(ctx, store, key)
				if err != nil {
					return err
				}
				save := func(s *textstyle.TextStyle) error { return saveStyle(ctx, store, key, s) }

				m := newEditorModel(key, s, save)
				final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout())).Run()
				if err != nil {
					return err
				}
				if em, ok := final.(editorModel); ok && em.dirty() {
					printWarning(cmd.OutOrStdout(), "Unsaved changes to %s were discarded", key)
				}
				return nil
			})
		},
		ValidArgsFunction: c.completeKey,
	}
}

// =============================================================================
// editorModel - interactive style editor
// =============================================================================

// Editor styles
var (
	editorSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorLabelStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	editorHelpStyle     = lipgloss.NewStyle().Foreground(colorDim)
	editorErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	editorSampleStyle   = lipgloss.NewStyle().Width(44).Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

type editorField int

const (
	fieldText editorField = iota
	fieldUppercase
	fieldSize
	fieldAlign
	fieldStroke
	fieldOpacity
	fieldShadow
	fieldShadow3D
	fieldOffsetX
	fieldOffsetY
	fieldCount
)

var editorLabels = [fieldCount]string{
	"text", "uppercase", "size", "align", "stroke", "opacity", "shadow", "3d shadow", "offset x", "offset y",
}

// savedMsg reports the result of a save.
type savedMsg struct{ err error }

// editorModel is the bubbletea model of the edit command. The model is
// a value; the style is cloned on every change so older copies are never
// mutated.
type editorModel struct {
	key     string
	style   *textstyle.TextStyle
	saved   *textstyle.TextStyle
	save    func(*textstyle.TextStyle) error
	cursor  editorField
	input   textinput.Model
	typing  bool
	status  string
	err     error
	saving  bool
}

func newEditorModel(key string, s *textstyle.TextStyle, save func(*textstyle.TextStyle) error) editorModel {
	input := textinput.New()
	input.Prompt = ""
	input.Cursor.SetMode(cursor.CursorStatic)
	return editorModel{key: key, style: s.Clone(), saved: s.Clone(), save: save, input: input}
}

func (m editorModel) dirty() bool { return !m.style.Equal(m.saved) }

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		m.saving = false
		m.err = msg.err
		if msg.err == nil {
			m.status = "saved"
		}
		return m, nil
	case tea.KeyMsg:
		if m.typing {
			return m.updateTyping(msg)
		}
		return m.updateKey(msg)
	}
	if m.typing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateTyping feeds keys to the text input and mirrors its value into
// the style.
func (m editorModel) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.typing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if text := m.input.Value(); text != m.style.Text {
		m = m.with(func(s *textstyle.TextStyle) { s.Text = text })
	}
	return m, cmd
}

func (m editorModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < fieldCount-1 {
			m.cursor++
		}
	case "left", "h", "-":
		m = m.adjust(-1)
	case "right", "l", "+", "=":
		m = m.adjust(1)
	case "enter", " ":
		if m.cursor == fieldText {
			m.typing = true
			m.input.SetValue(m.style.Text)
			m.input.CursorEnd()
			return m, m.input.Focus()
		}
		m = m.adjust(1)
	case "a":
		m = m.with(func(s *textstyle.TextStyle) { s.SetAbsAlignment((s.AbsAlignment() + 1) % 4) })
	case "r":
		m = m.with((*textstyle.TextStyle).ResetOffset)
	case "d":
		m = m.with((*textstyle.TextStyle).SetDefault)
	case "s":
		if m.saving {
			return m, nil
		}
		m.saving = true
		m.status = "saving..."
		snapshot := m.style.Clone()
		m.saved = snapshot
		save := m.save
		return m, func() tea.Msg { return savedMsg{err: save(snapshot)} }
	}
	return m, nil
}

// with applies fn to a copy of the style.
func (m editorModel) with(fn func(*textstyle.TextStyle)) editorModel {
	s := m.style.Clone()
	fn(s)
	m.style = s
	m.status = ""
	m.err = nil
	return m
}

// adjust changes the selected field by one step in direction dir (-1 or 1).
func (m editorModel) adjust(dir int) editorModel {
	step := float64(dir)
	return m.with(func(s *textstyle.TextStyle) {
		switch m.cursor {
		case fieldUppercase:
			s.Uppercase = !s.Uppercase
		case fieldSize:
			if size := s.FontSize() + 2*step; size > 0 {
				_ = s.SetFontSize(size)
			}
		case fieldAlign:
			s.SetAbsAlignment((s.AbsAlignment() + 4 + dir) % 4)
		case fieldStroke:
			s.StrokeWidth += 0.5 * step
		case fieldOpacity:
			s.SetOpacity(s.Opacity() + 0.05*step)
		case fieldShadow:
			s.ShadowEnabled = !s.ShadowEnabled
		case fieldShadow3D:
			s.Shadow3D = !s.Shadow3D
		case fieldOffsetX:
			s.Offset.X += step
		case fieldOffsetY:
			s.Offset.Y += step
		}
	})
}

func (m editorModel) View() string {
	var b strings.Builder

	title := "Edit " + m.key
	if m.dirty() {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.sample())
	b.WriteString("\n\n")

	for f := fieldText; f < fieldCount; f++ {
		cursor := "  "
		value := m.value(f)
		if f == m.cursor {
			cursor = editorSelectedStyle.Render("▸ ")
			value = editorSelectedStyle.Render(value)
		}
		b.WriteString(cursor + editorLabelStyle.Render(editorLabels[f]) + " " + value + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(editorErrorStyle.Render("save failed: "+m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(StyleSuccess.Render(m.status) + "\n")
	}
	if m.typing {
		b.WriteString(editorHelpStyle.Render("type to edit  ⏎ done"))
	} else {
		b.WriteString(editorHelpStyle.Render("↑/↓ field  ←/→ adjust  ⏎ toggle/edit  a align  r reset offset  d defaults  s save  q quit"))
	}
	return b.String()
}

func (m editorModel) value(f editorField) string {
	s := m.style
	switch f {
	case fieldText:
		if m.typing {
			return m.input.View()
		}
		return fmt.Sprintf("%q", s.Text)
	case fieldUppercase:
		return boolLabel(s.Uppercase)
	case fieldSize:
		return formatNumber(s.FontSize())
	case fieldAlign:
		return s.Alignment().String()
	case fieldStroke:
		return formatNumber(s.StrokeWidth)
	case fieldOpacity:
		return formatNumber(s.Opacity())
	case fieldShadow:
		return boolLabel(s.ShadowEnabled)
	case fieldShadow3D:
		return boolLabel(s.Shadow3D)
	case fieldOffsetX:
		return formatNumber(s.Offset.X)
	case fieldOffsetY:
		return formatNumber(s.Offset.Y)
	}
	return ""
}

// sample renders the caption in its colors and alignment.
func (m editorModel) sample() string {
	s := m.style
	text := s.DisplayText()
	if text == "" {
		text = "(empty)"
	}
	st := editorSampleStyle.
		Foreground(lipgloss.Color(s.TextColor().Hex())).
		Background(lipgloss.Color(s.OutlineColor().Hex())).
		Align(sampleAlign(s.Alignment()))
	return st.Render(text)
}

func sampleAlign(a textstyle.Alignment) lipgloss.Position {
	switch a {
	case textstyle.AlignLeft, textstyle.AlignJustify:
		return lipgloss.Left
	case textstyle.AlignRight:
		return lipgloss.Right
	}
	return lipgloss.Center
}

func boolLabel(b bool) string {
	if b {
		return iconOn
	}
	return iconOff
}
