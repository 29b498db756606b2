// Package tui is the interactive todo screen.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/app"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/theme"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	item model.Item
}

func (i listItem) Title() string       { return i.item.Title }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.item.Title }

// itemDelegate renders one item per line.
type itemDelegate struct {
	styles theme.Styles
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	st := d.styles
	box := st.Muted.Render(st.BoxUnchecked)
	text := st.Text.Render(it.item.Title)
	if it.item.Completed {
		box = st.Success.Render(st.BoxChecked)
		text = st.Done.Render(it.item.Title)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = st.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}

var keys = struct {
	add, toggle, remove, theme, quit key.Binding
}{
	add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
	remove: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type modelTUI struct {
	state  *app.State
	styles theme.Styles

	list list.Model

	// Inline add. The input buffer is screen state only.
	adding bool
	ti     textinput.Model
	addErr string

	width, height int
}

func newModel(st *app.State) modelTUI {
	m := modelTUI{
		state:  st,
		styles: st.Scheme().Styles(),
		width:  80,
		height: 24,
	}

	l := list.New(nil, itemDelegate{styles: m.styles}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.add, keys.toggle, keys.remove, themeBinding(st.Scheme())}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys
	m.list = l

	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.Placeholder = "Add a new todo"
	m.ti.CharLimit = 200

	m.applyStyles()
	m.resize()
	return m
}

// themeBinding labels the theme key with the scheme it switches to.
func themeBinding(current theme.Scheme) key.Binding {
	b := keys.theme
	b.SetHelp("t", current.Toggle().String()+" mode")
	return b
}

// Run starts the interactive list. Every change is handed to the store as it
// happens; the store persists it in the background.
func Run(st *app.State) error {
	p := tea.NewProgram(newModel(st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.resize()
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.quit):
			return m, tea.Quit
		case key.Matches(k, keys.toggle):
			if it, ok := m.selected(); ok {
				m.state.Todos.Toggle(it.ID)
				m.refresh()
			}
			return m, nil
		case key.Matches(k, keys.remove):
			if it, ok := m.selected(); ok {
				m.state.Todos.Delete(it.ID)
				m.refresh()
			}
			return m, nil
		case key.Matches(k, keys.add):
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			m.resize()
			return m, m.ti.Focus()
		case key.Matches(k, keys.theme):
			m.state.ToggleTheme()
			m.styles = m.state.Scheme().Styles()
			m.applyStyles()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			if !m.state.Todos.Add(m.ti.Value()) {
				m.addErr = "Title cannot be empty"
				return m, nil
			}
			m.closeInput()
			m.refresh()
			m.list.Select(0)
			return m, nil
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *modelTUI) closeInput() {
	m.adding = false
	m.addErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m modelTUI) selected() (model.Item, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.item, ok
}

// refresh rebuilds the rows from the store, keeping the cursor in range.
func (m *modelTUI) refresh() {
	items := m.state.Todos.Items()
	rows := make([]list.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, listItem{item: it})
	}
	idx := m.list.Index()
	m.list.SetItems(rows)
	if idx >= len(rows) {
		idx = len(rows) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}

	done, pending := model.Stats(items)
	st := m.styles
	m.list.Title = fmt.Sprintf("Todos   %s %d  %s %d  %s %d",
		st.Success.Render("✔"), done,
		st.Pending.Render("•"), pending,
		st.Accent.Render("Total"), len(items),
	)
}

func (m *modelTUI) applyStyles() {
	m.list.SetDelegate(itemDelegate{styles: m.styles})
	m.list.Styles.Title = m.styles.Title
	m.list.Styles.HelpStyle = m.styles.Help
	m.list.Styles.PaginationStyle = m.styles.Help
	m.ti.PromptStyle = m.styles.Accent
	m.ti.TextStyle = m.styles.Text
	m.refresh()
}

func (m *modelTUI) resize() {
	h := m.height - 4
	if m.adding {
		h -= 4
	}
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width-4, h)
}

func (m modelTUI) View() string {
	content := m.list.View()
	if m.adding {
		title := "Add new item"
		if m.addErr != "" {
			title += "  " + m.styles.Error.Render(m.addErr)
		}
		content += "\n" + m.styles.Border.Render(title+"\n"+m.ti.View())
	}
	return m.styles.Border.Render(strings.TrimRight(content, "\n"))
}
