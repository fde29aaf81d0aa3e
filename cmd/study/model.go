package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vytor/lexiflash/internal/session"
	"github.com/vytor/lexiflash/internal/srs"
)

// ratedMsg carries the outcome of a rating persisted in the background. The
// session only moves when Update receives it.
type ratedMsg struct {
	res session.Result
	err error
}

type model struct {
	sess     *session.Session
	typed    bool
	input    textinput.Model
	flipped  bool
	busy     bool
	verdict  string
	warning  string
	lastNote string
}

func newModel(sess *session.Session, typed bool) model {
	ti := textinput.New()
	ti.Placeholder = "Translation"
	ti.CharLimit = 80
	ti.Width = 40
	if typed {
		ti.Focus()
	}
	return model{sess: sess, typed: typed, input: ti}
}

func (m model) Init() tea.Cmd {
	if m.typed {
		return textinput.Blink
	}
	return nil
}

func (m model) rate(r srs.Rating) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		res, err := sess.Rate(context.Background(), r)
		return ratedMsg{res: res, err: err}
	}
}

// ratingForKey maps a key to a rating valid in the session's mode.
func ratingForKey(mode session.Mode, key string) (srs.Rating, bool) {
	if mode == session.Discovery {
		switch key {
		case "l":
			return srs.Learn, true
		case "k":
			return srs.Know, true
		}
		return "", false
	}
	switch key {
	case "1":
		return srs.Again, true
	case "2":
		return srs.Hard, true
	case "3":
		return srs.Good, true
	case "4":
		return srs.Easy, true
	}
	return "", false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ratedMsg:
		m.busy = false
		m.flipped = false
		m.verdict = ""
		m.input.Reset()
		res, err := msg.res, msg.err
		if err == nil {
			res, err = m.sess.Advance(res)
		}
		if err != nil {
			m.warning = err.Error()
			return m, nil
		}
		m.warning = ""
		if res.SaveErr != nil {
			m.warning = "rating for \"" + res.Word.Term + "\" was not saved"
		}
		m.lastNote = fmt.Sprintf("%s: %s", res.Word.Term, res.Rating)
		if m.sess.Done() {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}

		// Typing phase: keys go to the input until the answer is checked.
		if m.typed && !m.flipped {
			if msg.Type == tea.KeyEnter {
				word, _ := m.sess.Current()
				if srs.CheckAnswer(m.input.Value(), word.Translation) {
					m.verdict = "correct"
				} else {
					m.verdict = "incorrect"
				}
				m.flipped = true
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		key := msg.String()
		switch key {
		case "q":
			return m, tea.Quit
		case "f":
			m.flipped = !m.flipped
			return m, nil
		}
		if r, ok := ratingForKey(m.sess.Mode(), key); ok && m.flipped {
			m.busy = true
			return m, m.rate(r)
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	word, ok := m.sess.Current()
	fmt.Fprintf(&b, "%s session | %d left | %d answered\n", m.sess.Mode(), m.sess.Remaining(), m.sess.Reviewed())
	b.WriteString(strings.Repeat("-", 40) + "\n\n")

	if !ok {
		b.WriteString("  Nothing left to study.\n")
		return b.String()
	}

	b.WriteString("  " + word.Term + "\n")
	if word.ExampleA != "" {
		b.WriteString("  " + word.ExampleA + "\n")
	}
	b.WriteString("\n")

	if m.typed && !m.flipped {
		b.WriteString("  " + m.input.View() + "\n\n")
		b.WriteString("(enter) check   (ctrl+c) quit\n")
		return b.String()
	}

	if m.flipped {
		b.WriteString("  " + word.Translation + "\n")
		if word.ExampleB != "" {
			b.WriteString("  " + word.ExampleB + "\n")
		}
		if m.verdict != "" {
			b.WriteString("  [" + m.verdict + "]\n")
		}
	}
	b.WriteString("\n" + strings.Repeat("-", 40) + "\n")
	if m.sess.Mode() == session.Discovery {
		b.WriteString("(f) flip   (l) learn   (k) know   (q) quit\n")
	} else {
		b.WriteString("(f) flip   (1) again   (2) hard   (3) good   (4) easy   (q) quit\n")
	}
	if m.lastNote != "" {
		b.WriteString("last: " + m.lastNote + "\n")
	}
	if m.warning != "" {
		b.WriteString("warning: " + m.warning + "\n")
	}
	return b.String()
}
