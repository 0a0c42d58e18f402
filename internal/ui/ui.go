package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/inventory/internal/formatter"
	"github.com/desertthunder/inventory/internal/models"
	"github.com/desertthunder/inventory/internal/shared"
	"github.com/desertthunder/inventory/internal/viewmodels"
)

const emptyInventoryText = "Oops! No items in the inventory.\nPress a to add."

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	repo     models.ItemsRepository
	currency *formatter.Currency
	logger   *log.Logger
	nav      *Navigator
	width    int
	height   int

	// cancel ends the subscription held by the current screen.
	cancel context.CancelFunc

	home       *viewmodels.HomeViewModel
	homeStream <-chan viewmodels.HomeUiState
	itemList   list.Model
	items      []models.Item

	entry   *viewmodels.ItemEntryViewModel
	edit    *viewmodels.ItemEditViewModel
	form    itemForm
	formUi  models.ItemUiState
	loading bool

	details       *viewmodels.ItemDetailsViewModel
	detailsStream <-chan viewmodels.ItemDetailsUiState
	detailsUi     viewmodels.ItemDetailsUiState
	confirmDelete bool

	status string
	err    error
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model over repo, starting on the home screen.
func NewModel(ctx context.Context, repo models.ItemsRepository, c *formatter.Currency, logger *log.Logger) *Model {
	if c == nil {
		c = formatter.DefaultCurrency()
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	itemList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	itemList.Title = HomeRoute.Title()
	itemList.SetShowHelp(false)
	itemList.SetStatusBarItemName("item", "items")

	return &Model{
		ctx:      ctx,
		repo:     repo,
		currency: c,
		logger:   shared.WithLogger(logger, "component", "tui"),
		nav:      NewNavigator(Home()),
		home:     viewmodels.NewHomeViewModel(repo),
		itemList: itemList,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Current returns the destination being shown.
func (m *Model) Current() Destination {
	return m.nav.Current()
}

// Init subscribes the home screen to the inventory.
func (m *Model) Init() tea.Cmd {
	return m.enter()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.itemList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}

		switch m.nav.Current().Route {
		case HomeRoute:
			return m.handleHomeKeys(msg)
		case ItemEntryRoute, ItemEditRoute:
			return m.handleFormKeys(msg)
		case ItemDetailsRoute:
			if m.confirmDelete {
				return m.handleConfirmKeys(msg)
			}
			return m.handleDetailsKeys(msg)
		}

	case itemsMsg:
		if msg.stream != m.homeStream || msg.closed {
			return m, nil
		}
		if msg.state.Err != nil {
			m.err = msg.state.Err
		} else {
			m.err = nil
			m.items = msg.state.ItemList
		}
		cmd := m.itemList.SetItems(toListItems(m.items, m.currency))
		return m, tea.Batch(cmd, waitForItems(msg.stream))

	case detailsMsg:
		if msg.stream != m.detailsStream || msg.closed {
			return m, nil
		}
		m.detailsUi = msg.state
		m.err = msg.state.Err
		return m, waitForDetails(msg.stream)

	case itemLoadedMsg:
		if m.nav.Current().Route != ItemEditRoute {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.formUi = msg.state
		m.form.setDetails(msg.state.Details)
		return m, nil

	case itemSavedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.logger.Info("item saved", "id", msg.id)
		if r := m.nav.Current().Route; r != ItemEntryRoute && r != ItemEditRoute {
			return m, nil
		}
		return m, m.popBackStack()

	case itemSoldMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Sold one %s", msg.item.Name)
		return m, nil

	case itemDeletedMsg:
		m.confirmDelete = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		return m, m.popBackStack()
	}

	return m.updateActive(msg)
}

// View renders the screen for the current destination.
func (m *Model) View() string {
	dest := m.nav.Current()

	var body string
	switch dest.Route {
	case HomeRoute:
		body = m.renderHome()
	case ItemEntryRoute, ItemEditRoute:
		body = m.renderForm(dest)
	case ItemDetailsRoute:
		body = m.renderDetails(dest)
	}

	if m.status != "" {
		body += "\n\n" + styles.warn.Render(m.status)
	}
	return body
}

// navigate pushes dest and enters it.
func (m *Model) navigate(dest Destination) tea.Cmd {
	m.nav.Navigate(dest)
	return m.enter()
}

// popBackStack returns to the previous screen, or does nothing on the start screen.
func (m *Model) popBackStack() tea.Cmd {
	if !m.nav.PopBackStack() {
		return nil
	}
	return m.enter()
}

// enter resets screen state and opens the subscriptions the current destination needs.
func (m *Model) enter() tea.Cmd {
	m.release()
	m.status = ""
	m.err = nil
	m.confirmDelete = false

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel

	dest := m.nav.Current()
	m.logger.Debug("navigate", "destination", dest.Path())

	switch dest.Route {
	case HomeRoute:
		m.homeStream = m.home.Watch(ctx)
		return waitForItems(m.homeStream)

	case ItemEntryRoute:
		m.entry = viewmodels.NewItemEntryViewModel(m.repo)
		m.form = newItemForm(models.ItemDetails{}, m.currency.Symbol())
		m.formUi = m.entry.UiState()
		return m.form.inputs[nameField].Focus()

	case ItemEditRoute:
		vm, err := viewmodels.NewItemEditViewModel(m.repo, dest.ItemID)
		if err != nil {
			m.err = err
			return nil
		}
		m.edit = vm
		m.form = newItemForm(models.ItemDetails{ID: dest.ItemID}, m.currency.Symbol())
		m.formUi = models.ItemUiState{}
		m.loading = true
		return loadItem(ctx, vm)

	case ItemDetailsRoute:
		vm, err := viewmodels.NewItemDetailsViewModel(m.repo, dest.ItemID)
		if err != nil {
			m.err = err
			return nil
		}
		m.details = vm
		m.detailsUi = viewmodels.ItemDetailsUiState{}
		m.detailsStream = vm.Watch(ctx)
		return waitForDetails(m.detailsStream)
	}

	return nil
}

// release cancels the current screen's subscription.
func (m *Model) release() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.homeStream = nil
	m.detailsStream = nil
}

func (m *Model) quit() tea.Cmd {
	m.release()
	return tea.Quit
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.itemList.FilterState() == list.Filtering {
		return m.updateActive(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.add):
		return m, m.navigate(ItemEntry())
	case key.Matches(msg, m.keys.enter):
		if selected, ok := m.itemList.SelectedItem().(inventoryItem); ok {
			return m, m.navigate(ItemDetails(selected.item.ID))
		}
		return m, nil
	}

	return m.updateActive(msg)
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		return m, m.popBackStack()
	case key.Matches(msg, m.keys.next):
		return m, m.form.next()
	case key.Matches(msg, m.keys.prev):
		return m, m.form.prev()
	case key.Matches(msg, m.keys.save):
		if m.loading {
			return m, nil
		}
		if !m.formUi.IsEntryValid {
			m.status = "Fill in every required field before saving"
			return m, nil
		}
		return m, m.saveForm()
	}

	cmd := m.form.update(msg)
	m.syncForm()
	return m, cmd
}

func (m *Model) handleDetailsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dest := m.nav.Current()

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.back):
		return m, m.popBackStack()
	case key.Matches(msg, m.keys.sell):
		if m.details == nil || !m.detailsUi.Found || m.detailsUi.OutOfStock {
			return m, nil
		}
		return m, sellItem(m.ctx, m.details)
	case key.Matches(msg, m.keys.edit):
		if !m.detailsUi.Found {
			return m, nil
		}
		return m, m.navigate(ItemEdit(dest.ItemID))
	case key.Matches(msg, m.keys.del):
		if !m.detailsUi.Found {
			return m, nil
		}
		m.confirmDelete = true
		return m, nil
	}

	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		if m.details == nil {
			m.confirmDelete = false
			return m, nil
		}
		return m, deleteItem(m.ctx, m.details)
	case key.Matches(msg, m.keys.no):
		m.confirmDelete = false
		return m, nil
	}
	return m, nil
}

// syncForm pushes the form contents into the active view-model and records the validated state.
func (m *Model) syncForm() {
	details := m.form.details()
	switch m.nav.Current().Route {
	case ItemEntryRoute:
		if m.entry != nil {
			m.formUi = m.entry.UpdateUiState(details)
		}
	case ItemEditRoute:
		if m.edit != nil {
			m.formUi = m.edit.UpdateUiState(details)
		}
	}
}

func (m *Model) saveForm() tea.Cmd {
	ctx := m.ctx
	switch m.nav.Current().Route {
	case ItemEntryRoute:
		vm := m.entry
		return func() tea.Msg {
			id, err := vm.SaveItem(ctx)
			return itemSavedMsg{id: id, err: err}
		}
	case ItemEditRoute:
		vm := m.edit
		return func() tea.Msg {
			err := vm.UpdateItem(ctx)
			return itemSavedMsg{id: vm.ItemID(), err: err}
		}
	}
	return nil
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.nav.Current().Route {
	case HomeRoute:
		m.itemList, cmd = m.itemList.Update(msg)
	case ItemEntryRoute, ItemEditRoute:
		cmd = m.form.update(msg)
	}
	return m, cmd
}

func waitForItems(stream <-chan viewmodels.HomeUiState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-stream
		return itemsMsg{stream: stream, state: state, closed: !ok}
	}
}

func waitForDetails(stream <-chan viewmodels.ItemDetailsUiState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-stream
		return detailsMsg{stream: stream, state: state, closed: !ok}
	}
}

func loadItem(ctx context.Context, vm *viewmodels.ItemEditViewModel) tea.Cmd {
	return func() tea.Msg {
		state, err := vm.Load(ctx)
		return itemLoadedMsg{state: state, err: err}
	}
}

func sellItem(ctx context.Context, vm *viewmodels.ItemDetailsViewModel) tea.Cmd {
	return func() tea.Msg {
		item, err := vm.ReduceQuantityByOne(ctx)
		return itemSoldMsg{item: item, err: err}
	}
}

func deleteItem(ctx context.Context, vm *viewmodels.ItemDetailsViewModel) tea.Cmd {
	return func() tea.Msg {
		return itemDeletedMsg{err: vm.DeleteItem(ctx)}
	}
}

func (m *Model) renderHome() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.add, m.keys.enter, m.keys.quit})

	if m.err != nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Error: %v", m.err)), helpView)
	}
	if len(m.items) == 0 {
		title := styles.title.Render(HomeRoute.Title())
		return fmt.Sprintf("%s\n%s\n\n%s", title, emptyInventoryText, helpView)
	}
	return fmt.Sprintf("%s\n\n%s", m.itemList.View(), helpView)
}

func (m *Model) renderForm(dest Destination) string {
	title := styles.title.Render(dest.Route.Title())
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.next, m.keys.save, m.keys.back})

	if m.err != nil {
		return fmt.Sprintf("%s\n%s\n\n%s", title, styles.err.Render(fmt.Sprintf("Error: %v", m.err)), helpView)
	}
	if m.loading {
		return fmt.Sprintf("%s\nLoading...", title)
	}

	save := styles.ok.Render("[ Save ]")
	if !m.formUi.IsEntryValid {
		save = styles.disabled.Render("[ Save ]")
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.form.View(), save, helpView)
}

func (m *Model) renderDetails(dest Destination) string {
	title := styles.title.Render(dest.Route.Title())

	if m.err != nil {
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
		return fmt.Sprintf("%s\n%s\n\n%s", title, styles.err.Render(fmt.Sprintf("Error: %v", m.err)), helpView)
	}

	if !m.detailsUi.Found {
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
		return fmt.Sprintf("%s\nItem %d not found.\n\n%s", title, dest.ItemID, helpView)
	}

	item := m.detailsUi.Details.ToItem()
	var b strings.Builder
	b.WriteString(styles.label.Render("Item") + " " + item.Name + "\n")
	b.WriteString(styles.label.Render("Price") + " " + m.currency.FormatPrice(item) + "\n")
	b.WriteString(styles.label.Render("Quantity") + " " + m.detailsUi.Details.Quantity + "\n")

	sell := styles.ok.Render("[ Sell ]")
	if m.detailsUi.OutOfStock {
		sell = styles.disabled.Render("[ Sell ]") + " " + styles.warn.Render("Out of stock")
	}

	if m.confirmDelete {
		dialog := styles.dialog.Render(fmt.Sprintf(
			"%s\n\nAre you sure you want to delete %s?\n\n%s",
			styles.err.Render("Attention!"), item.Name, m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no}),
		))
		return fmt.Sprintf("%s\n%s\n%s", title, b.String(), dialog)
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.sell, m.keys.edit, m.keys.del, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, b.String(), sell, helpView)
}

// Err returns the last error that stopped a screen from rendering, if any.
func (m *Model) Err() error {
	if errors.Is(m.err, context.Canceled) {
		return nil
	}
	return m.err
}
