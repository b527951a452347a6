package tui

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trknhr/hmmtag/internal/model/entity"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	// One stable color per tag, picked by hash so a tag keeps its color
	// across sentences.
	tagPalette = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
	}
)

func tagStyle(tag string) lipgloss.Style {
	h := fnv.New32a()
	h.Write([]byte(tag))
	return tagPalette[int(h.Sum32())%len(tagPalette)]
}

type tuiModel struct {
	input     textinput.Model
	engine    entity.TagModel
	lastInput string
	words     []string
	result    *entity.TagResult
	err       error
	width     int
	height    int
}

func NewTuiModel(engine entity.TagModel, initialInput string) *tuiModel {
	input := textinput.New()
	input.Placeholder = "Type a sentence..."
	input.SetValue(initialInput)
	input.Focus()

	return &tuiModel{
		input:  input,
		engine: engine,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

type taggedMsg struct {
	sentence string
	words    []string
	result   *entity.TagResult
	err      error
}

func tagSentenceCmd(engine entity.TagModel, sentence string) tea.Cmd {
	return func() tea.Msg {
		words := strings.Fields(sentence)
		if len(words) == 0 {
			return taggedMsg{sentence: sentence}
		}
		result, err := engine.Predict(words)
		return taggedMsg{sentence: sentence, words: words, result: result, err: err}
	}
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			sentence := strings.TrimSpace(m.input.Value())
			m.lastInput = sentence
			return m, tagSentenceCmd(m.engine, sentence)

		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case taggedMsg:
		if msg.sentence != m.lastInput {
			// discard outdated results
			return m, nil
		}
		m.words = msg.words
		m.result = msg.result
		m.err = msg.err
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("hmmtag"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render(fmt.Sprintf("no valid tag sequence: %v", m.err)))
	case m.result != nil:
		parts := make([]string, len(m.words))
		for i, w := range m.words {
			tag := m.result.Tags[i]
			parts[i] = w + "/" + tagStyle(tag).Render(tag)
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")
		b.WriteString(faintStyle.Render(fmt.Sprintf("source=%s score=%.3f", m.result.Source, m.result.Score)))
	default:
		b.WriteString(faintStyle.Render("Press enter to tag the sentence. Esc quits."))
	}
	b.WriteString("\n")
	return b.String()
}
