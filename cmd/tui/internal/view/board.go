package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/client"
	"github.com/MrJamesThe3rd/dealboard/internal/deal"
	"github.com/MrJamesThe3rd/dealboard/internal/document"
)

// NeedsValuation is the toast shown when the stage guard rejects a move.
const NeedsValuation = "Needs Valuation"

type boardState int

const (
	boardStateBrowse boardState = iota
	boardStateMove
	boardStateCreate
)

type BoardModel struct {
	CommonModel
	client *client.Client

	state boardState
	table table.Model
	deals []api.Deal
	shown []api.Deal
	form  *huh.Form

	stageFilterIdx int

	loading bool
	err     error
	toast   string
}

func NewBoardModel(c *client.Client) BoardModel {
	columns := []table.Column{
		{Title: "Company", Width: 28},
		{Title: "Stage", Width: 15},
		{Title: "Priority", Width: 8},
		{Title: "Revenue", Width: 14},
		{Title: "Owner", Width: 14},
		{Title: "Age", Width: 5},
		{Title: "Health", Width: 6},
	}

	return BoardModel{
		client:  c,
		table:   newTable(columns, 15),
		loading: true,
	}
}

func (m BoardModel) Title() string { return "Pipeline" }

func (m BoardModel) ShortHelp() string {
	if m.state != boardStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: open | </>: move stage | m: move to | n: new deal | s: stage filter | r: refresh"
}

func (m BoardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.deals = msg.deals
		m.refreshTable()

		return m, nil

	case boardMovedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, deal.ErrNeedsValuation) {
				m.toast = NeedsValuation
			} else {
				m.toast = fmt.Sprintf("Error: %v", msg.err)
			}

			return m, nil
		}

		m.toast = fmt.Sprintf("%s moved to %s", msg.deal.CompanyName, msg.deal.Stage.Label())

		return m, m.loadCmd()

	case boardCreatedMsg:
		if msg.err != nil {
			m.toast = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.toast = fmt.Sprintf("Created %s", msg.deal.CompanyName)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))

		return m, nil
	}

	switch m.state {
	case boardStateMove, boardStateCreate:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m BoardModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.stageFilterIdx = (m.stageFilterIdx + 1) % (len(deal.Stages) + 1)
			m.refreshTable()

			return m, nil
		case "enter":
			if d, ok := m.selected(); ok {
				return m, func() tea.Msg { return OpenDealMsg{ID: d.ID} }
			}

			return m, nil
		case ">", "<":
			d, ok := m.selected()
			if !ok {
				return m, nil
			}

			target, ok := adjacentStage(d.Stage, keyMsg.String() == ">")
			if !ok {
				return m, nil
			}

			m.toast = ""

			return m, m.moveCmd(d, target)
		case "m":
			return m.enterMove()
		case "n":
			return m.enterCreate()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BoardModel) enterMove() (tea.Model, tea.Cmd) {
	d, ok := m.selected()
	if !ok {
		return m, nil
	}

	options := make([]huh.Option[string], 0, len(deal.Stages))
	for _, st := range deal.Stages {
		options = append(options, huh.NewOption(st.Label(), string(st)))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("stage").
				Title("Move " + d.CompanyName + " to").
				Options(options...),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = boardStateMove
	m.table.Blur()

	return m, m.form.Init()
}

func (m BoardModel) enterCreate() (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("company").
				Title("Company").
				Validate(required("company")),
			huh.NewInput().
				Key("revenue").
				Title("Annual Revenue").
				Placeholder("1,250,000").
				Validate(func(s string) error {
					_, err := parseMoney(s)
					return err
				}),
			huh.NewInput().
				Key("owner").
				Title("Owner").
				Validate(required("owner")),
			huh.NewSelect[string]().
				Key("priority").
				Title("Priority").
				Options(
					huh.NewOption("Medium", string(deal.PriorityMedium)),
					huh.NewOption("High", string(deal.PriorityHigh)),
					huh.NewOption("Low", string(deal.PriorityLow)),
				),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = boardStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m BoardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	state, done := m.state, m.form
	m = m.closeForm()

	if state == boardStateMove {
		d, ok := m.selected()
		if !ok {
			return m, nil
		}

		return m, m.moveCmd(d, deal.Stage(done.GetString("stage")))
	}

	revenue, _ := parseMoney(done.GetString("revenue"))

	return m, m.createCmd(api.CreateDealRequest{
		CompanyName: strings.TrimSpace(done.GetString("company")),
		Revenue:     revenue,
		Owner:       strings.TrimSpace(done.GetString("owner")),
		Priority:    deal.Priority(done.GetString("priority")),
	})
}

func (m BoardModel) closeForm() BoardModel {
	m.state = boardStateBrowse
	m.form = nil
	m.table.Focus()

	return m
}

func (m BoardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading pipeline...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Filter: [s] Stage: %s | %d deals", activeStyle(m.filterLabel()), len(m.shown))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
		m.stageCounts(),
	)

	if m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.toast != "" {
		toast := lipgloss.NewStyle().Faint(true).Render(m.toast)
		if m.toast == NeedsValuation {
			toast = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).Render(m.toast)
		}

		content = toast + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m BoardModel) filterLabel() string {
	if m.stageFilterIdx == 0 {
		return "All"
	}

	return deal.Stages[m.stageFilterIdx-1].Label()
}

// stageCounts renders one column header per stage, the kanban summary line.
func (m BoardModel) stageCounts() string {
	cols := make([]string, 0, len(deal.Stages))

	for _, st := range deal.Stages {
		n := 0
		for _, d := range m.deals {
			if d.Stage == st {
				n++
			}
		}

		cols = append(cols, lipgloss.NewStyle().Width(18).Render(fmt.Sprintf("%s (%d)", st.Label(), n)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m *BoardModel) refreshTable() {
	m.shown = nil

	for _, d := range m.deals {
		if m.stageFilterIdx > 0 && d.Stage != deal.Stages[m.stageFilterIdx-1] {
			continue
		}

		m.shown = append(m.shown, d)
	}

	rows := make([]table.Row, 0, len(m.shown))
	for _, d := range m.shown {
		rows = append(rows, table.Row{
			d.CompanyName,
			d.Stage.Label(),
			string(d.Priority),
			FormatMoney(d.Revenue),
			d.Owner,
			fmt.Sprintf("%dd", d.AgeInStage),
			fmt.Sprintf("%d", d.HealthScore),
		})
	}

	m.table.SetRows(rows)
}

func (m BoardModel) selected() (api.Deal, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.shown) {
		return api.Deal{}, false
	}

	return m.shown[idx], true
}

func adjacentStage(current deal.Stage, forward bool) (deal.Stage, bool) {
	for i, st := range deal.Stages {
		if st != current {
			continue
		}

		if forward && i+1 < len(deal.Stages) {
			return deal.Stages[i+1], true
		}

		if !forward && i > 0 {
			return deal.Stages[i-1], true
		}
	}

	return "", false
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}

func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer(",", "", "$", "", " ", "").Replace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not an amount")
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount cannot be negative")
	}

	return d, nil
}

// Messages

type boardLoadMsg struct {
	deals []api.Deal
	err   error
}

type boardMovedMsg struct {
	deal *api.Deal
	err  error
}

type boardCreatedMsg struct {
	deal *api.Deal
	err  error
}

func (m BoardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		deals, err := m.client.ListDeals(ctx)

		return boardLoadMsg{deals: deals, err: err}
	}
}

// moveCmd checks the stage guard locally before asking the server, which
// checks it again.
func (m BoardModel) moveCmd(d api.Deal, target deal.Stage) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		hasValuation, err := m.hasValuation(ctx, d)
		if err != nil {
			return boardMovedMsg{err: err}
		}

		if !deal.CanMove(d.Stage, target, hasValuation) {
			return boardMovedMsg{err: deal.ErrNeedsValuation}
		}

		moved, err := m.client.MoveStage(ctx, d.ID, target)

		return boardMovedMsg{deal: moved, err: err}
	}
}

func (m BoardModel) hasValuation(ctx context.Context, d api.Deal) (bool, error) {
	if d.Stage != deal.StageOnboarding {
		return false, nil
	}

	docs, err := m.client.ListDocuments(ctx, d.ID)
	if err != nil {
		return false, err
	}

	list := make([]*document.Document, 0, len(docs))
	for _, doc := range docs {
		list = append(list, &document.Document{Name: doc.Name})
	}

	return document.HasValuation(list), nil
}

func (m BoardModel) createCmd(req api.CreateDealRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		d, err := m.client.CreateDeal(ctx, req)

		return boardCreatedMsg{deal: d, err: err}
	}
}
