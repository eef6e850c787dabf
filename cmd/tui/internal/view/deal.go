package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/client"
)

type dealFocus int

const (
	dealFocusChecklist dealFocus = iota
	dealFocusNotes
	dealFocusAdd
)

// DealModel shows one deal: pinned documents, the stage checklist and the
// autosaving notes field.
type DealModel struct {
	CommonModel
	client  *client.Client
	id      uuid.UUID
	refresh time.Duration
	session uint64

	deal      *api.Deal
	pinned    *api.PinnedDocuments
	checklist []api.ChecklistItem
	cursor    int
	focus     dealFocus
	form      *huh.Form
	editor    NotesEditor
	ready     bool

	err    error
	status string
}

// DealOptions carries the notes timings from the config.
type DealOptions struct {
	Debounce time.Duration
	Refresh  time.Duration
}

func NewDealModel(c *client.Client, id uuid.UUID, opts DealOptions) DealModel {
	m := DealModel{
		client:  c,
		id:      id,
		refresh: opts.Refresh,
		session: nextSession(),
	}

	m.editor = NewNotesEditor("", func(ctx context.Context, notes string) error {
		_, err := c.SaveDealNotes(ctx, id, notes)
		return err
	}, opts.Debounce)

	return m
}

func (m DealModel) Title() string { return "Deal" }

func (m DealModel) ShortHelp() string {
	switch m.focus {
	case dealFocusNotes:
		return "Tab: checklist | Esc: leave notes"
	case dealFocusAdd:
		return "Enter: add | Esc: cancel"
	}

	return "Esc: back | Space: toggle | a: add item | Tab: notes | x: export data room | r: refresh"
}

func (m DealModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd())
}

func (m DealModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dealLoadMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.deal = msg.deal
		m.pinned = msg.pinned
		m.checklist = msg.checklist
		m.cursor = min(m.cursor, max(len(m.checklist)-1, 0))

		if !m.ready {
			m.ready = true
			m.editor = m.editor.withServer(msg.deal.Notes)
		} else {
			m.editor.Observe(msg.deal.Notes)
		}

		return m, nil

	case dealRefreshMsg:
		if msg.session != m.session {
			return m, nil
		}

		return m, tea.Batch(m.refreshCmd(), m.tickCmd())

	case dealNotesMsg:
		if msg.err == nil && m.ready {
			m.editor.Observe(msg.notes)
		}

		return m, nil

	case checklistMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = ""
		m.checklist = msg.items

		return m, nil

	case notesDueMsg, notesSavedMsg:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)

		return m, cmd
	}

	switch m.focus {
	case dealFocusNotes:
		return m.updateNotes(msg)
	case dealFocusAdd:
		return m.updateAdd(msg)
	}

	return m.updateChecklist(msg)
}

func (m DealModel) updateChecklist(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, tea.Sequence(m.editor.Flush(), Back)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.checklist)-1 {
			m.cursor++
		}
	case " ":
		if m.cursor < len(m.checklist) {
			return m, m.toggleCmd(m.checklist[m.cursor].Key)
		}
	case "a":
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Key("label").
					Title("New checklist item").
					Validate(required("label")),
			),
		).WithWidth(45).WithShowHelp(false)
		m.focus = dealFocusAdd

		return m, m.form.Init()
	case "tab":
		if !m.ready {
			return m, nil
		}

		m.focus = dealFocusNotes
		cmd := m.editor.Focus()

		return m, cmd
	case "x":
		if m.deal == nil {
			return m, nil
		}

		d := m.deal

		return m, tea.Sequence(m.editor.Flush(), func() tea.Msg {
			return OpenExportMsg{ID: d.ID, Company: d.CompanyName}
		})
	case "r":
		return m, m.loadCmd()
	}

	return m, nil
}

func (m DealModel) updateNotes(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc, tea.KeyTab:
			m.editor.Blur()
			m.focus = dealFocusChecklist

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	return m, cmd
}

func (m DealModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		m.focus = dealFocusChecklist

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	label := strings.TrimSpace(m.form.GetString("label"))
	m.form = nil
	m.focus = dealFocusChecklist

	return m, m.addCmd(label)
}

func (m DealModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to go back)", m.err))
	}

	if m.deal == nil {
		return lipgloss.NewStyle().Padding(2).Render("Loading deal...")
	}

	d := m.deal

	title := lipgloss.NewStyle().Bold(true).Render(d.CompanyName) + "  " + activeStyle(d.Stage.Label())

	facts := fmt.Sprintf(
		"Owner: %s   Priority: %s   Health: %d\nRevenue: %s   SDE: %s\nValuation: %s",
		d.Owner, d.Priority, d.HealthScore,
		FormatMoney(d.Revenue), formatNull(d.SDE), FormatRange(d.ValuationMin, d.ValuationMax),
	)

	left := lipgloss.JoinVertical(lipgloss.Left,
		title,
		facts,
		"",
		m.viewPinned(),
		"",
		m.viewChecklist(),
	)

	right := lipgloss.JoinVertical(lipgloss.Left, "Notes", m.editor.View())
	if m.form != nil {
		right = lipgloss.JoinVertical(lipgloss.Left, right, "", m.form.View())
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(56).PaddingRight(2).Render(left),
		right,
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m DealModel) viewPinned() string {
	if m.pinned == nil {
		return ""
	}

	name := func(doc *api.Document) string {
		if doc == nil {
			return lipgloss.NewStyle().Faint(true).Render("-")
		}

		return fmt.Sprintf("%s (%s)", doc.Name, doc.Status)
	}

	return fmt.Sprintf("Valuation workbook: %s\nValuation deck: %s\nCIM: %s\nNDA: %s",
		name(m.pinned.ValuationWorkbook), name(m.pinned.ValuationDeck), name(m.pinned.CIM), name(m.pinned.NDA))
}

func (m DealModel) viewChecklist() string {
	var sb strings.Builder

	sb.WriteString("Stage checklist\n")

	for i, it := range m.checklist {
		cursor := "  "
		if i == m.cursor && m.focus == dealFocusChecklist {
			cursor = "> "
		}

		box := "[ ]"
		if it.Done {
			box = "[x]"
		}

		fmt.Fprintf(&sb, "%s%s %s\n", cursor, box, it.Label)
	}

	return sb.String()
}

func formatNull(n decimal.NullDecimal) string {
	if !n.Valid {
		return "-"
	}

	return FormatMoney(n.Decimal)
}

// Messages

type dealLoadMsg struct {
	deal      *api.Deal
	pinned    *api.PinnedDocuments
	checklist []api.ChecklistItem
	err       error
}

type dealRefreshMsg struct {
	session uint64
}

type dealNotesMsg struct {
	notes string
	err   error
}

type checklistMsg struct {
	items []api.ChecklistItem
	err   error
}

func (m DealModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		d, err := m.client.GetDeal(ctx, m.id)
		if err != nil {
			return dealLoadMsg{err: err}
		}

		pinned, err := m.client.PinnedDocuments(ctx, m.id)
		if err != nil {
			return dealLoadMsg{err: err}
		}

		items, err := m.client.StageChecklist(ctx, m.id)
		if err != nil {
			return dealLoadMsg{err: err}
		}

		return dealLoadMsg{deal: d, pinned: pinned, checklist: items}
	}
}

func (m DealModel) tickCmd() tea.Cmd {
	session := m.session

	return tea.Tick(m.refresh, func(time.Time) tea.Msg {
		return dealRefreshMsg{session: session}
	})
}

// refreshCmd refetches only the notes; the rest of the screen reloads on r.
func (m DealModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		d, err := m.client.GetDeal(ctx, m.id)
		if err != nil {
			return dealNotesMsg{err: err}
		}

		return dealNotesMsg{notes: d.Notes}
	}
}

func (m DealModel) toggleCmd(key string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		items, err := m.client.ToggleStageItem(ctx, m.id, key)

		return checklistMsg{items: items, err: err}
	}
}

func (m DealModel) addCmd(label string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		items, err := m.client.AddStageItem(ctx, m.id, label)

		return checklistMsg{items: items, err: err}
	}
}
