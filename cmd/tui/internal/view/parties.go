package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/client"
)

type partiesState int

const (
	partiesStateBrowse partiesState = iota
	partiesStateNotes
)

type PartiesModel struct {
	CommonModel
	client *client.Client
	opts   DealOptions

	state   partiesState
	table   table.Model
	parties []api.Party

	// open is the party whose notes are being edited.
	open    *api.Party
	editor  NotesEditor
	session uint64

	loading bool
	err     error
}

func NewPartiesModel(c *client.Client, opts DealOptions) PartiesModel {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Status", Width: 10},
		{Title: "Budget", Width: 26},
		{Title: "Industries", Width: 30},
	}

	return PartiesModel{
		client:  c,
		opts:    opts,
		table:   newTable(columns, 15),
		loading: true,
	}
}

func (m PartiesModel) Title() string { return "Buying Parties" }

func (m PartiesModel) ShortHelp() string {
	if m.state == partiesStateNotes {
		return "Esc: close notes"
	}

	return "Esc: back | Enter: notes | r: refresh"
}

func (m PartiesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PartiesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case partiesLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.parties = msg.parties
		m.refreshTable()

		return m, nil

	case partyRefreshMsg:
		if m.state != partiesStateNotes || msg.session != m.session {
			return m, nil
		}

		return m, tea.Batch(m.refreshCmd(m.open.ID), m.tickCmd())

	case partyNotesMsg:
		if msg.err == nil && m.open != nil && msg.id == m.open.ID {
			m.editor.Observe(msg.notes)
		}

		return m, nil

	case notesDueMsg, notesSavedMsg:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)

		return m, cmd
	}

	if m.state == partiesStateNotes {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			flush := m.editor.Flush()
			m.state = partiesStateBrowse
			m.open = nil
			m.table.Focus()

			return m, tea.Sequence(flush, m.loadCmd())
		}

		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)

		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			return m.openNotes()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PartiesModel) openNotes() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.parties) {
		return m, nil
	}

	p := m.parties[idx]
	id := p.ID

	m.open = &p
	m.session = nextSession()
	m.editor = NewNotesEditor(p.Notes, func(ctx context.Context, notes string) error {
		_, err := m.client.SavePartyNotes(ctx, id, notes)
		return err
	}, m.opts.Debounce)
	m.state = partiesStateNotes
	m.table.Blur()
	focus := m.editor.Focus()

	return m, tea.Batch(focus, m.tickCmd())
}

func (m PartiesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading buying parties...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := boxed(m.table.View())

	if m.state == partiesStateNotes && m.open != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(fmt.Sprintf("%s\n\n%s", lipgloss.NewStyle().Bold(true).Render(m.open.Name), m.editor.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *PartiesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.parties))
	for _, p := range m.parties {
		rows = append(rows, table.Row{
			p.Name,
			p.Status,
			FormatRange(p.BudgetMin, p.BudgetMax),
			strings.Join(p.TargetIndustries, ", "),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type partiesLoadMsg struct {
	parties []api.Party
	err     error
}

type partyRefreshMsg struct {
	session uint64
}

type partyNotesMsg struct {
	id    uuid.UUID
	notes string
	err   error
}

func (m PartiesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		parties, err := m.client.ListParties(ctx)

		return partiesLoadMsg{parties: parties, err: err}
	}
}

func (m PartiesModel) tickCmd() tea.Cmd {
	session := m.session

	return tea.Tick(m.opts.Refresh, func(time.Time) tea.Msg {
		return partyRefreshMsg{session: session}
	})
}

func (m PartiesModel) refreshCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		p, err := m.client.GetParty(ctx, id)
		if err != nil {
			return partyNotesMsg{id: id, err: err}
		}

		return partyNotesMsg{id: id, notes: p.Notes}
	}
}
