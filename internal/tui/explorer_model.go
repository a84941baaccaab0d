package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/dataexplorer/internal/api"
	"github.com/rshade/dataexplorer/internal/logging"
	"github.com/rshade/dataexplorer/internal/query"
	listview "github.com/rshade/dataexplorer/internal/tui/list"
)

// Default dimensions before the first WindowSizeMsg.
const (
	defaultWidth  = 100
	defaultHeight = 24

	// chromeHeight is the number of lines around the table body: title, controls,
	// banner, table header and rule, pager, help.
	chromeHeight = 11
	minHeight    = 3
)

// Source is the data API the explorer reads from. *api.Client satisfies it.
type Source interface {
	ListUsers(ctx context.Context, s query.State) (*api.ResultPage, error)
	FilterOptions(ctx context.Context) (query.FilterOptions, error)
	Seed(ctx context.Context, count int) (string, error)
}

// FetchStatus is the lifecycle of the user-list request.
type FetchStatus int

const (
	// StatusIdle means no request has been issued yet.
	StatusIdle FetchStatus = iota
	// StatusLoading means the latest request is in flight.
	StatusLoading
	// StatusSuccess means the latest request returned a page.
	StatusSuccess
	// StatusFailed means the latest request failed.
	StatusFailed
)

func (s FetchStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ViewState is the screen the explorer is showing.
type ViewState int

const (
	// ViewStateList shows the table.
	ViewStateList ViewState = iota
	// ViewStateSearch shows the table with the search input focused.
	ViewStateSearch
	// ViewStatePicker shows a department or role picker.
	ViewStatePicker
	// ViewStateDetail shows the selected user.
	ViewStateDetail
	// ViewStateQuitting is set once the program is exiting.
	ViewStateQuitting
)

// usersLoadedMsg carries the outcome of one user-list request, tagged with the
// sequence number it was issued under.
type usersLoadedMsg struct {
	seq   uint64
	state query.State
	page  *api.ResultPage
	err   error
}

// optionsLoadedMsg carries department and role options for one load generation.
type optionsLoadedMsg struct {
	gen  uint64
	opts query.FilterOptions
	err  error
}

// seedDoneMsg reports the end of a seed request.
type seedDoneMsg struct {
	message string
	err     error
}

// ExplorerOptions configures a new ExplorerModel.
type ExplorerOptions struct {
	// PageSize is the initial page size. Unsupported values fall back to the default.
	PageSize int

	// SeedCount is the number of users requested by the seed action.
	SeedCount int
}

// ExplorerModel is the Bubble Tea model for the interactive user browser.
//
// It owns the query state. Every change goes through query.State.Apply, and a
// fetch effect issues a request tagged with a new sequence number. Only the
// response carrying the latest sequence number is applied.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type ExplorerModel struct {
	ctx    context.Context
	source Source
	log    zerolog.Logger
	keys   KeyMap

	// Query and request lifecycle
	state      query.State
	lastIssued query.State
	status     FetchStatus
	seq        uint64
	result     *api.ResultPage
	err        error

	// Filter options
	options    query.FilterOptions
	optionsGen uint64

	// Seeding
	seedCount  int
	seeding    bool
	seedFailed bool
	notice     string

	// Interactive components
	view    ViewState
	search  textinput.Model
	rows    *listview.Model[api.User]
	picker  *picker
	loading *LoadingState

	width  int
	height int
}

// NewExplorerModel creates the explorer with the initial query state. The first
// user fetch and the filter-option load are issued by Init.
func NewExplorerModel(ctx context.Context, source Source, opts ExplorerOptions) ExplorerModel {
	seedCount := opts.SeedCount
	if seedCount < api.MinSeedCount || seedCount > api.MaxSeedCount {
		seedCount = api.DefaultSeedCount
	}

	state := query.New(opts.PageSize)
	m := ExplorerModel{
		ctx:        ctx,
		source:     source,
		log:        logging.ComponentLogger(*logging.FromContext(ctx), "explorer"),
		keys:       DefaultKeyMap(),
		state:      state,
		lastIssued: state,
		status:     StatusLoading,
		seq:        1,
		optionsGen: 1,
		seedCount:  seedCount,
		view:       ViewStateList,
		search:     newSearchInput(),
		loading:    NewLoadingState(),
		width:      defaultWidth,
		height:     defaultHeight,
	}
	m.rows = listview.New[api.User](nil, m.tableHeight())
	return m
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search users..."
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = 40
	return ti
}

// Init issues the first user fetch and the filter-option load.
func (m ExplorerModel) Init() tea.Cmd {
	return tea.Batch(
		m.loading.Init(),
		fetchUsersCmd(m.ctx, m.source, m.seq, m.state),
		loadOptionsCmd(m.ctx, m.source, m.optionsGen),
	)
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rows.SetHeight(m.tableHeight())
		return m, nil
	case usersLoadedMsg:
		return m.handleUsersLoaded(msg)
	case optionsLoadedMsg:
		return m.handleOptionsLoaded(msg)
	case seedDoneMsg:
		return m.handleSeedDone(msg)
	case spinner.TickMsg:
		if m.status != StatusLoading && !m.seeding {
			return m, nil
		}
		return m, m.loading.Update(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// Dispatch applies an intent to the query state and runs the resulting effect.
func (m ExplorerModel) Dispatch(in query.Intent) (ExplorerModel, tea.Cmd) {
	next, effect := m.state.Apply(in, m.totalPages())
	m.state = next

	switch effect {
	case query.EffectFetch:
		return m.startFetch()
	case query.EffectSeed:
		return m.startSeed(in)
	case query.EffectNone:
	}
	return m, nil
}

// startFetch issues a request for the current state under a new sequence number.
func (m ExplorerModel) startFetch() (ExplorerModel, tea.Cmd) {
	m.seq++
	m.lastIssued = m.state
	m.err = nil
	m.seedFailed = false
	wasLoading := m.status == StatusLoading
	m.status = StatusLoading

	m.log.Debug().
		Uint64("seq", m.seq).
		Int("page", m.state.Page).
		Int("page_size", m.state.PageSize).
		Str("sort", string(m.state.SortBy)+":"+string(m.state.SortOrder)).
		Msg("fetching users")

	cmd := fetchUsersCmd(m.ctx, m.source, m.seq, m.state)
	if !wasLoading && !m.seeding {
		cmd = tea.Batch(cmd, m.loading.Init())
	}
	return m, cmd
}

func (m ExplorerModel) startSeed(in query.Intent) (ExplorerModel, tea.Cmd) {
	if m.seeding {
		return m, nil
	}
	count := m.seedCount
	if req, ok := in.(query.SeedRequested); ok && req.Count > 0 {
		count = req.Count
	}

	m.seeding = true
	m.notice = ""
	if m.seedFailed {
		m.err = nil
		m.seedFailed = false
	}
	m.log.Info().Int("count", count).Msg("seeding database")

	cmd := seedCmd(m.ctx, m.source, count)
	if m.status != StatusLoading {
		cmd = tea.Batch(cmd, m.loading.Init())
	}
	return m, cmd
}

func (m ExplorerModel) loadOptions() (ExplorerModel, tea.Cmd) {
	m.optionsGen++
	return m, loadOptionsCmd(m.ctx, m.source, m.optionsGen)
}

func (m ExplorerModel) handleUsersLoaded(msg usersLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		m.log.Debug().
			Uint64("seq", msg.seq).
			Uint64("latest", m.seq).
			Msg("discarding stale user response")
		return m, nil
	}

	if msg.err != nil {
		m.status = StatusFailed
		m.err = msg.err
		m.seedFailed = false
		m.log.Warn().Err(msg.err).Uint64("seq", msg.seq).Msg("user fetch failed")
		return m, nil
	}

	m.result = msg.page
	m.status = StatusSuccess
	m.rows.SetItems(msg.page.Items)

	if m.state.Page > max(query.FirstPage, msg.page.TotalPages) {
		m.log.Debug().
			Int("page", m.state.Page).
			Int("total_pages", msg.page.TotalPages).
			Msg("page past end of results, clamping")
		m.state.Page = query.ClampPage(m.state.Page, msg.page.TotalPages)
		return m.startFetch()
	}
	return m, nil
}

func (m ExplorerModel) handleOptionsLoaded(msg optionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.optionsGen {
		return m, nil
	}
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Msg("loading filter options failed")
		return m, nil
	}
	m.options = msg.opts
	return m, nil
}

func (m ExplorerModel) handleSeedDone(msg seedDoneMsg) (tea.Model, tea.Cmd) {
	m.seeding = false
	if msg.err != nil {
		m.err = msg.err
		m.seedFailed = true
		m.log.Warn().Err(msg.err).Msg("seeding failed")
		return m, nil
	}

	m.notice = msg.message
	m, fetch := m.startFetch()
	m, options := m.loadOptions()
	return m, tea.Batch(fetch, options)
}

func (m ExplorerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		m.view = ViewStateQuitting
		return m, tea.Quit
	}

	switch m.view {
	case ViewStateSearch:
		return m.handleSearchKey(msg)
	case ViewStatePicker:
		return m.handlePickerKey(msg)
	case ViewStateDetail:
		return m.handleDetailKey(msg)
	case ViewStateList:
		return m.handleListKey(msg)
	case ViewStateQuitting:
	}
	return m, nil
}

//nolint:cyclop // One case per binding.
func (m ExplorerModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.rows.HandleKey(msg) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.view = ViewStateQuitting
		return m, tea.Quit
	case key.Matches(msg, m.keys.Sort):
		if col, ok := ColumnForKey(msg.String()); ok {
			return m.Dispatch(query.SortToggled{Column: col})
		}
	case key.Matches(msg, m.keys.PrevPage):
		return m.Dispatch(query.PageChanged{Page: m.state.Page - 1})
	case key.Matches(msg, m.keys.NextPage):
		return m.Dispatch(query.PageChanged{Page: m.state.Page + 1})
	case key.Matches(msg, m.keys.First):
		return m.Dispatch(query.PageChanged{Page: query.FirstPage})
	case key.Matches(msg, m.keys.Last):
		return m.Dispatch(query.PageChanged{Page: m.totalPages()})
	case key.Matches(msg, m.keys.PageSize):
		return m.Dispatch(query.PageSizeChanged{Size: query.NextPageSize(m.state.PageSize)})
	case key.Matches(msg, m.keys.Clear):
		m.search.SetValue("")
		return m.Dispatch(query.FiltersCleared{})
	case key.Matches(msg, m.keys.Refresh):
		return m.Dispatch(query.RefreshRequested{})
	case key.Matches(msg, m.keys.Seed):
		return m.Dispatch(query.SeedRequested{Count: m.seedCount})
	case key.Matches(msg, m.keys.Search):
		m.view = ViewStateSearch
		m.search.SetValue(m.state.Search)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Dept):
		m.picker = newPicker(query.FilterDepartment, m.options.Departments, m.state.Department, m.pickerHeight())
		m.view = ViewStatePicker
	case key.Matches(msg, m.keys.Role):
		m.picker = newPicker(query.FilterRole, m.options.Roles, m.state.Role, m.pickerHeight())
		m.view = ViewStatePicker
	case key.Matches(msg, m.keys.Detail):
		if _, ok := m.rows.Selected(); ok && m.status != StatusLoading {
			m.view = ViewStateDetail
		}
	}
	return m, nil
}

// handleSearchKey feeds keys to the search input. Every edit is a SearchChanged intent.
func (m ExplorerModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.view = ViewStateList
		m.search.Blur()
		return m, nil
	}

	var inputCmd tea.Cmd
	m.search, inputCmd = m.search.Update(msg)
	if m.search.Value() == m.state.Search {
		return m, inputCmd
	}

	m, fetch := m.Dispatch(query.SearchChanged{Value: m.search.Value()})
	return m, tea.Batch(inputCmd, fetch)
}

func (m ExplorerModel) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker == nil {
		m.view = ViewStateList
		return m, nil
	}

	switch msg.String() {
	case keyEsc, keyQuit:
		m.view = ViewStateList
		m.picker = nil
		return m, nil
	case keyEnter:
		field, value := m.picker.field, m.picker.value()
		m.view = ViewStateList
		m.picker = nil
		return m.Dispatch(query.FilterChanged{Field: field, Value: value})
	}

	m.picker.rows.HandleKey(msg)
	return m, nil
}

func (m ExplorerModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.view = ViewStateQuitting
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Detail):
		m.view = ViewStateList
	}
	return m, nil
}

// totalPages is the page count from the last successful response, or 0.
func (m ExplorerModel) totalPages() int {
	if m.result == nil {
		return 0
	}
	return m.result.TotalPages
}

func (m ExplorerModel) tableHeight() int {
	return max(m.height-chromeHeight, minHeight)
}

func (m ExplorerModel) pickerHeight() int {
	return max(m.height-chromeHeight+2, minHeight) //nolint:mnd // The picker has no pager.
}

// State returns the current query state.
func (m ExplorerModel) State() query.State { return m.state }

// Status returns the lifecycle of the latest user request.
func (m ExplorerModel) Status() FetchStatus { return m.status }

// Result returns the last successfully loaded page, or nil.
func (m ExplorerModel) Result() *api.ResultPage { return m.result }

// Err returns the error shown in the banner, or nil.
func (m ExplorerModel) Err() error { return m.err }

// Options returns the loaded filter options.
func (m ExplorerModel) Options() query.FilterOptions { return m.options }

func fetchUsersCmd(ctx context.Context, source Source, seq uint64, s query.State) tea.Cmd {
	return func() tea.Msg {
		page, err := source.ListUsers(ctx, s)
		return usersLoadedMsg{seq: seq, state: s, page: page, err: err}
	}
}

func loadOptionsCmd(ctx context.Context, source Source, gen uint64) tea.Cmd {
	return func() tea.Msg {
		opts, err := source.FilterOptions(ctx)
		return optionsLoadedMsg{gen: gen, opts: opts, err: err}
	}
}

func seedCmd(ctx context.Context, source Source, count int) tea.Cmd {
	return func() tea.Msg {
		message, err := source.Seed(ctx, count)
		return seedDoneMsg{message: message, err: err}
	}
}
