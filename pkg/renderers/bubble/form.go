// Package bubble renders widget controls as an interactive bubbletea form.
// Keys are routed to the field controllers; the form only mirrors their
// buffers into a text input and draws the picker candidates they expose.
package bubble

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-formfield/pkg/asyncselect"
	"github.com/goliatone/go-formfield/pkg/widgets"
)

const maxCandidates = 8

type slot struct {
	control widgets.Control
	part    widgets.Part
}

// resultMsg carries a finished search back to the update loop, where it is
// applied on the goroutine that owns the controllers.
type resultMsg struct {
	searcher widgets.Searcher
	result   asyncselect.Result
}

// Form is the bubbletea model of an editable form.
type Form struct {
	title    string
	controls []widgets.Control
	slots    []slot
	focus    int

	input  textinput.Model
	help   help.Model
	keys   KeyMap
	styles Styles

	waiting map[widgets.Searcher]bool
	ctx     context.Context
	stop    context.CancelFunc

	status    string
	failed    bool
	submitted bool
	aborted   bool
}

// Option configures a Form.
type Option func(*Form)

// WithTitle sets the heading drawn above the fields.
func WithTitle(title string) Option {
	return func(f *Form) { f.title = title }
}

// WithKeyMap replaces the key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(f *Form) { f.keys = keys }
}

// WithStyles replaces the styles.
func WithStyles(styles Styles) Option {
	return func(f *Form) { f.styles = styles }
}

// NewForm builds the model and focuses the first enabled part.
func NewForm(controls []widgets.Control, opts ...Option) Form {
	ctx, stop := context.WithCancel(context.Background())
	f := Form{
		controls: controls,
		input:    textinput.New(),
		help:     help.New(),
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		waiting:  map[widgets.Searcher]bool{},
		ctx:      ctx,
		stop:     stop,
	}
	f.input.Prompt = ""
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	for _, c := range controls {
		for _, p := range c.Parts() {
			f.slots = append(f.slots, slot{control: c, part: p})
		}
	}
	f.focus = -1
	if idx := f.nextEnabled(-1, 1); idx >= 0 {
		f.focus = idx
		f.slots[idx].control.Focus(f.slots[idx].part.ID())
		f.input.Focus()
		f.syncInput()
	}
	return f
}

// Submitted reports whether the user submitted the form.
func (m Form) Submitted() bool { return m.submitted }

// Aborted reports whether the user quit without submitting.
func (m Form) Aborted() bool { return m.aborted }

// Controls returns the controls in display order.
func (m Form) Controls() []widgets.Control { return m.controls }

// Init implements tea.Model.
func (m Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		delete(m.waiting, msg.searcher)
		msg.searcher.Apply(msg.result)
		if err := msg.searcher.Err(); err != nil {
			m.setError(fmt.Sprintf("search failed: %v", err))
		}
		m.syncInput()
		return m, m.await(msg.searcher)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Form) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.aborted = true
		m.stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	current, ok := m.current()
	if !ok {
		return m, nil
	}
	part := current.part
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Next):
		m.move(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.arrow(part, -1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.arrow(part, 1)
		return m, nil
	case key.Matches(msg, m.keys.Accept):
		if part.Enter() {
			m.syncInput()
			return m, nil
		}
		if m.focus == m.lastEnabled() {
			return m.submit()
		}
		m.move(1)
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		if part.Escape() {
			m.syncInput()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	part.Input(m.input.Value())
	if s, ok := current.control.(widgets.Searcher); ok {
		return m, tea.Batch(cmd, m.await(s))
	}
	return m, cmd
}

// arrow moves the picker highlight when a list is showing and steps the
// value otherwise. Up steps the value forward.
func (m *Form) arrow(part widgets.Part, direction int) {
	if part.PickerVisible() && len(part.Candidates()) > 0 {
		part.MoveHighlight(direction)
		return
	}
	part.KeyStep(-direction)
	m.syncInput()
}

// move shifts focus by delta enabled slots. Moving inside one control lets
// the control route focus; leaving it commits.
func (m *Form) move(delta int) {
	to := m.nextEnabled(m.focus, delta)
	if to < 0 || to == m.focus {
		return
	}
	from, next := m.slots[m.focus], m.slots[to]
	if from.control == next.control {
		from.control.Leave(from.part.ID(), next.part.ID())
	} else {
		from.control.Leave(from.part.ID(), "")
		next.control.Focus(next.part.ID())
	}
	m.focus = to
	m.syncInput()
}

func (m *Form) nextEnabled(from, delta int) int {
	n := len(m.slots)
	if n == 0 {
		return -1
	}
	idx := from
	for range n {
		idx = ((idx+delta)%n + n) % n
		if !m.slots[idx].control.Disabled() {
			return idx
		}
	}
	return -1
}

func (m Form) lastEnabled() int {
	for i := len(m.slots) - 1; i >= 0; i-- {
		if !m.slots[i].control.Disabled() {
			return i
		}
	}
	return -1
}

func (m Form) current() (slot, bool) {
	if m.focus < 0 || m.focus >= len(m.slots) {
		return slot{}, false
	}
	return m.slots[m.focus], true
}

// submit commits the focused control and checks required fields. The first
// missing one takes focus.
func (m Form) submit() (tea.Model, tea.Cmd) {
	if current, ok := m.current(); ok {
		current.control.Blur()
	}
	for idx, s := range m.slots {
		if !s.control.Field().Required || s.control.Disabled() || !widgets.Missing(s.control) {
			continue
		}
		m.focus = idx
		s.control.Focus(s.part.ID())
		m.syncInput()
		m.setError(fmt.Sprintf("%s is required", labelOf(s.control)))
		return m, nil
	}
	m.submitted = true
	m.stop()
	return m, tea.Quit
}

// await reads the next search result of s unless a read is already pending
// or nothing is in flight.
func (m Form) await(s widgets.Searcher) tea.Cmd {
	if m.waiting[s] || !s.Loading() {
		return nil
	}
	m.waiting[s] = true
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case res := <-s.Results():
			return resultMsg{searcher: s, result: res}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Form) syncInput() {
	current, ok := m.current()
	if !ok {
		return
	}
	m.input.SetValue(current.part.Text())
	m.input.CursorEnd()
}

func (m *Form) setError(msg string) {
	m.status = msg
	m.failed = true
}

// View implements tea.Model.
func (m Form) View() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.styles.Title.Render(m.title))
		b.WriteString("\n")
	}
	for _, c := range m.controls {
		m.renderControl(&b, c)
	}
	if m.status != "" {
		style := m.styles.Status
		if m.failed {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Form) renderControl(b *strings.Builder, c widgets.Control) {
	label := labelOf(c)
	if c.Field().Required {
		label += m.styles.Required.Render(" *")
	}
	b.WriteString(m.styles.Label.Render(label))

	current, hasFocus := m.current()
	var picker widgets.Part
	for i, p := range c.Parts() {
		if i > 0 {
			b.WriteString("  ")
		}
		switch {
		case hasFocus && current.control == c && current.part == p:
			b.WriteString(m.input.View())
			if p.PickerVisible() {
				picker = p
			}
		case c.Disabled():
			b.WriteString(m.styles.Disabled.Render(orPlaceholder(p.Text())))
		case !p.Valid():
			b.WriteString(m.styles.Invalid.Render(p.Text()))
		case p.Text() == "":
			b.WriteString(m.styles.Empty.Render(p.Label()))
		default:
			b.WriteString(m.styles.Value.Render(p.Text()))
		}
	}
	if s, ok := c.(widgets.Searcher); ok && s.Loading() {
		b.WriteString(m.styles.Empty.Render("  searching..."))
	}
	b.WriteString("\n")
	if picker != nil {
		m.renderCandidates(b, picker)
	}
}

// renderCandidates draws a window of the candidate list around the
// highlighted entry.
func (m Form) renderCandidates(b *strings.Builder, p widgets.Part) {
	candidates := p.Candidates()
	if len(candidates) == 0 {
		return
	}
	highlighted := p.Highlighted()
	start := 0
	if highlighted >= maxCandidates {
		start = highlighted - maxCandidates + 1
	}
	end := min(len(candidates), start+maxCandidates)
	for i := start; i < end; i++ {
		style := m.styles.Candidate
		if i == highlighted {
			style = m.styles.Highlight
		}
		b.WriteString(style.Render(candidates[i]))
		b.WriteString("\n")
	}
}

func labelOf(c widgets.Control) string {
	if c.Field().Label != "" {
		return c.Field().Label
	}
	return c.Field().Name
}

func orPlaceholder(text string) string {
	if text == "" {
		return "-"
	}
	return text
}
