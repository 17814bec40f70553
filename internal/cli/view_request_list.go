package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/cli/formatter"
	"github.com/dagimg/prdesk/internal/domain"
)

// requestsLoadedMsg signals that the collection fetch finished.
type requestsLoadedMsg struct {
	err error
}

// requestOpenedMsg carries one full record for the detail view.
type requestOpenedMsg struct {
	record *domain.PurchaseRequest
	err    error
}

// requestListView shows the filtered, paginated purchase-request list.
type requestListView struct {
	state   *SharedState
	cursor  int
	loading bool
	err     error

	// searching routes all keys into the search input.
	searching   bool
	searchInput textinput.Model
}

func newRequestListView(state *SharedState) *requestListView {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.CharLimit = 120
	ti.SetValue(state.List.Search())

	return &requestListView{
		state:       state,
		loading:     true,
		searchInput: ti,
	}
}

func (v *requestListView) ID() ViewID { return ViewRequestList }

func (v *requestListView) Title() string { return "Requests" }

func (v *requestListView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type filter")),
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "page")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *requestListView) Init() tea.Cmd {
	return v.loadRequests()
}

func (v *requestListView) loadRequests() tea.Cmd {
	list := v.state.List
	return func() tea.Msg {
		return requestsLoadedMsg{err: list.Load(context.Background())}
	}
}

func (v *requestListView) openRequest(id int) tea.Cmd {
	list := v.state.List
	return func() tea.Msg {
		record, err := list.ViewDetails(context.Background(), id)
		return requestOpenedMsg{record: record, err: err}
	}
}

func (v *requestListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case requestsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.clampCursor()
		return v, nil

	case requestOpenedMsg:
		if msg.err != nil {
			return v, showOutput(formatter.StyleRed.Render(
				api.Detail(msg.err, "Failed to fetch purchase request")))
		}
		v.state.Approval.Open(msg.record)
		return v, pushView(newRequestDetailView(v.state))

	case refreshViewMsg:
		v.loading = true
		return v, v.loadRequests()

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.updateBrowse(msg)
	}
	return v, nil
}

func (v *requestListView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.searching = false
		v.searchInput.Blur()
		return v, nil
	case tea.KeyEsc:
		v.searching = false
		v.searchInput.Blur()
		v.searchInput.SetValue("")
		v.state.List.SetSearch("")
		v.clampCursor()
		return v, nil
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	v.state.List.SetSearch(v.searchInput.Value())
	v.clampCursor()
	return v, cmd
}

func (v *requestListView) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := v.state.List.Page()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(rows)-1 {
			v.cursor++
		}
	case "left", "h":
		v.state.List.PrevPage()
		v.clampCursor()
	case "right", "l":
		v.state.List.NextPage()
		v.clampCursor()
	case "/":
		v.searching = true
		return v, v.searchInput.Focus()
	case "t":
		v.cycleTypeFilter()
		v.clampCursor()
	case "enter":
		if v.cursor < len(rows) {
			return v, v.openRequest(rows[v.cursor].ID)
		}
	case "c":
		return v, pushEditorView(v.state, 0)
	case "e":
		if v.cursor < len(rows) {
			return v, pushEditorView(v.state, rows[v.cursor].ID)
		}
	case "x":
		if v.cursor < len(rows) {
			return v, pushDeleteConfirm(v.state, rows[v.cursor])
		}
	case "r":
		v.loading = true
		return v, v.loadRequests()
	}
	return v, nil
}

// cycleTypeFilter steps through "" and the distinct types of the collection.
func (v *requestListView) cycleTypeFilter() {
	options := v.state.List.TypeOptions()
	if len(options) == 0 {
		return
	}
	current := v.state.List.TypeFilter()
	if current == "" {
		v.state.List.SetTypeFilter(options[0])
		return
	}
	for i, opt := range options {
		if opt == current {
			if i+1 < len(options) {
				v.state.List.SetTypeFilter(options[i+1])
			} else {
				v.state.List.SetTypeFilter("")
			}
			return
		}
	}
	v.state.List.SetTypeFilter("")
}

func (v *requestListView) clampCursor() {
	n := len(v.state.List.Page())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *requestListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading purchase requests...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render(
			api.Detail(v.err, "Failed to fetch purchase requests"))
	}

	var b strings.Builder
	b.WriteString("\n")

	if v.searching || v.state.List.Search() != "" {
		b.WriteString("  " + v.searchInput.View() + "\n")
	}
	if tf := v.state.List.TypeFilter(); tf != "" {
		b.WriteString("  " + formatter.Dim("type: ") + formatter.StyleBlue.Render(tf) + "\n")
	}

	rows := v.state.List.Page()
	if len(rows) == 0 {
		b.WriteString("  " + formatter.Dim("No purchase requests match.") + "\n")
		return b.String()
	}

	for i, r := range rows {
		cursor := "  "
		if i == v.cursor && !v.searching {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		b.WriteString(cursor + formatter.FormatRequestRow(r, v.state.Width) + "\n")
	}

	if pc := v.state.List.PageCount(); pc > 1 {
		b.WriteString("\n  " + formatter.Dim(fmt.Sprintf("page %d/%d", v.state.List.CurrentPage(), pc)) + "\n")
	}

	return b.String()
}
