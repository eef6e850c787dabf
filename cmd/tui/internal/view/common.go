package view

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// OpenDealMsg asks the root model to show the detail screen of a deal.
type OpenDealMsg struct {
	ID uuid.UUID
}

// OpenExportMsg asks the root model to show the data-room export screen.
type OpenExportMsg struct {
	ID      uuid.UUID
	Company string
}

// sessions tags timer messages with the screen instance that scheduled them,
// so ticks from a screen that was closed are dropped.
var sessions atomic.Uint64

func nextSession() uint64 {
	return sessions.Add(1)
}
