package tui

import "github.com/charmbracelet/bubbles/key"

// Key strings compared against tea.KeyMsg.String().
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// KeyMap holds the explorer's bindings. Help text is generated from it.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	First    key.Binding
	Last     key.Binding
	Sort     key.Binding
	Search   key.Binding
	Dept     key.Binding
	Role     key.Binding
	Clear    key.Binding
	PageSize key.Binding
	Refresh  key.Binding
	Seed     key.Binding
	Detail   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		NextPage: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		First:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "first page")),
		Last:     key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "last page")),
		Sort:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "sort")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Dept:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "department")),
		Role:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "role")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		PageSize: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "page size")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Seed:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "seed")),
		Detail:   key.NewBinding(key.WithKeys(keyEnter), key.WithHelp("enter", "details")),
		Back:     key.NewBinding(key.WithKeys(keyEsc), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys(keyQuit, keyCtrlC), key.WithHelp("q", "quit")),
	}
}

// ListHelp returns the bindings shown under the table.
func (k KeyMap) ListHelp() []key.Binding {
	return []key.Binding{
		k.Sort, k.PrevPage, k.NextPage, k.Search, k.Dept, k.Role,
		k.Clear, k.PageSize, k.Refresh, k.Seed, k.Detail, k.Quit,
	}
}
