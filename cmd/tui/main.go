package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/dealboard/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/dealboard/internal/client"
	"github.com/MrJamesThe3rd/dealboard/internal/config"
)

type model struct {
	client *client.Client
	opts   view.DealOptions

	currentView View
	openDeal    uuid.UUID

	boardView     view.BoardModel
	dealView      view.DealModel
	partiesView   view.PartiesModel
	dashboardView view.DashboardModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewBoard     View = 1
	ViewParties   View = 2
	ViewDashboard View = 3
	ViewImport    View = 4
	ViewDeal      View = 5
	ViewExport    View = 6
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	c := client.New(cfg.Client.BaseURL, cfg.Client.Timeout)

	return model{
		client:      c,
		opts:        view.DealOptions{Debounce: cfg.Notes.Debounce, Refresh: cfg.Notes.Refresh},
		currentView: ViewMenu,
		importView:  view.NewImportModel(c),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.openBoard()
			case "2":
				m.currentView = ViewParties
				m.partiesView = view.NewPartiesModel(m.client, m.opts)

				return m, m.partiesView.Init()
			case "3":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.client)

				return m, m.dashboardView.Init()
			case "4":
				m.currentView = ViewImport
				return m, m.importView.Init()
			}
		}
	case view.OpenDealMsg:
		return m.openDealView(msg.ID)
	case view.OpenExportMsg:
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.client, msg.ID, msg.Company)

		return m, m.exportView.Init()
	case view.BackMsg:
		switch m.currentView {
		case ViewDeal:
			return m.openBoard()
		case ViewExport:
			return m.openDealView(m.openDeal)
		}

		m.currentView = ViewMenu

		return m, nil
	}

	switch m.currentView {
	case ViewBoard:
		var newModel tea.Model
		newModel, cmd = m.boardView.Update(msg)
		m.boardView = newModel.(view.BoardModel)
	case ViewDeal:
		var newModel tea.Model
		newModel, cmd = m.dealView.Update(msg)
		m.dealView = newModel.(view.DealModel)
	case ViewParties:
		var newModel tea.Model
		newModel, cmd = m.partiesView.Update(msg)
		m.partiesView = newModel.(view.PartiesModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) openBoard() (tea.Model, tea.Cmd) {
	m.currentView = ViewBoard
	m.boardView = view.NewBoardModel(m.client)

	return m, m.boardView.Init()
}

func (m model) openDealView(id uuid.UUID) (tea.Model, tea.Cmd) {
	m.currentView = ViewDeal
	m.openDeal = id
	m.dealView = view.NewDealModel(m.client, id, m.opts)

	return m, m.dealView.Init()
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Dealboard\n\n" +
				"1. Pipeline Board\n" +
				"2. Buying Parties\n" +
				"3. Dashboard\n" +
				"4. Import Deals\n\n" +
				"q. Quit",
		)
	case ViewBoard:
		return m.withHelp(m.boardView)
	case ViewDeal:
		return m.withHelp(m.dealView)
	case ViewParties:
		return m.withHelp(m.partiesView)
	case ViewDashboard:
		return m.withHelp(m.dashboardView)
	case ViewImport:
		return m.withHelp(m.importView)
	case ViewExport:
		return m.withHelp(m.exportView)
	}

	return "Unknown View"
}

func (m model) withHelp(v view.View) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).PaddingLeft(1).Render(v.Title())
	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(v.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, v.View(), help)
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
