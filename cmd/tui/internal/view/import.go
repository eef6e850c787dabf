package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/client"
	"github.com/MrJamesThe3rd/dealboard/internal/importer"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStatePick importState = iota
	importStateImporting
	importStateDone
)

// ImportModel uploads a spreadsheet export of prospective deals. Companies
// already on the board are skipped by the server and listed afterwards.
type ImportModel struct {
	CommonModel
	client *client.Client
	format importer.Format

	state      importState
	filePicker filepicker.Model

	result *api.ImportResult
	file   string
	err    error
}

func NewImportModel(c *client.Client) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		client:     c,
		format:     importer.FormatSheet,
		filePicker: fp,
	}
}

func (m ImportModel) Title() string { return "Import Deals" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStatePick {
		return "Esc: back | Enter: open / import"
	}

	return "Esc: back"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type != tea.KeyEsc {
			break
		}

		if m.state == importStateDone {
			m.state = importStatePick
			m.result, m.err = nil, nil

			return m, nil
		}

		if m.state == importStatePick {
			return m, Back
		}

	case importResultMsg:
		m.state = importStateDone
		m.result, m.err = msg.result, msg.err

		return m, nil
	}

	if m.state != importStatePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if ok, path := m.filePicker.DidSelectFile(msg); ok {
		m.state = importStateImporting
		m.file = filepath.Base(path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case importStatePick:
		return style.Render(fmt.Sprintf("Pick a %s export to import:\n\n%s", m.format, m.filePicker.View()))
	case importStateImporting:
		return style.Render(fmt.Sprintf("Importing %s...", m.file))
	}

	if m.err != nil {
		return style.Render(errorStyle(fmt.Sprintf("%s: %v", m.file, m.err)))
	}

	out := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).
		Render(fmt.Sprintf("Imported %d deals into Onboarding.", m.result.Imported))

	if len(m.result.Skipped) > 0 {
		out += fmt.Sprintf("\n\nAlready on the board (%d):\n  %s",
			len(m.result.Skipped), strings.Join(m.result.Skipped, "\n  "))
	}

	return style.Render(out)
}

// Messages

type importResultMsg struct {
	result *api.ImportResult
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	format := m.format

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := m.client.Import(ctx, string(format), filepath.Base(path), f)

		return importResultMsg{result: result, err: err}
	}
}
