package view

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/gigledger/internal/report"
)

const reportClientLimit = 10

type reportsState int

const (
	reportsStatePick reportsState = iota
	reportsStateShow
)

// ReportsModel shows the best profession and best clients for a timeframe.
type ReportsModel struct {
	reports *report.Service

	state  reportsState
	picker TimeframePicker
	label  string

	loading    bool
	profession *report.ProfessionEarnings
	clients    table.Model
	err        error
}

func NewReportsModel(reports *report.Service) ReportsModel {
	return ReportsModel{
		reports: reports,
		picker:  NewTimeframePicker(),
		clients: newTable([]table.Column{
			{Title: "Client", Width: 36},
			{Title: "Full name", Width: 28},
			{Title: "Paid", Width: 12},
		}, reportClientLimit),
	}
}

func (m ReportsModel) Init() tea.Cmd {
	return nil
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.state = reportsStateShow
		m.label = msg.Label
		m.loading = true

		return m, m.loadCmd(msg.Range)

	case reportLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.profession = msg.profession
		m.setClients(msg.clients)

		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)

	if m.state == reportsStatePick {
		if isKey && keyMsg.Type == tea.KeyEsc && m.picker.Selecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	if isKey && keyMsg.Type == tea.KeyEsc {
		m.state = reportsStatePick
		return m, nil
	}

	var cmd tea.Cmd
	m.clients, cmd = m.clients.Update(msg)

	return m, cmd
}

func (m *ReportsModel) setClients(clients []report.ClientSpending) {
	rows := make([]table.Row, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, table.Row{c.ClientID.String(), c.FullName, FormatAmount(c.Paid)})
	}

	m.clients.SetRows(rows)
}

func (m ReportsModel) View() string {
	if m.state == reportsStatePick {
		return lipgloss.NewStyle().Padding(1).Render("Reports\n\n" + m.picker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading report...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to back)")
	}

	best := "No paid jobs in this range"
	if m.profession != nil {
		best = fmt.Sprintf("%s earned %s", activeStyle.Render(m.profession.Profession), FormatAmount(m.profession.Paid))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Reports | %s", activeStyle.Render(m.label)),
		"",
		"Best profession: "+best,
		"",
		"Best clients:",
		tableFrame.Render(m.clients.View()),
		"Esc: change timeframe",
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type reportLoadedMsg struct {
	profession *report.ProfessionEarnings
	clients    []report.ClientSpending
	err        error
}

func (m ReportsModel) loadCmd(rng report.Range) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		best, err := m.reports.BestProfession(ctx, rng)
		if err != nil && !errors.Is(err, report.ErrNoData) {
			return reportLoadedMsg{err: err}
		}

		clients, err := m.reports.BestClients(ctx, rng, reportClientLimit)
		if err != nil {
			return reportLoadedMsg{err: err}
		}

		return reportLoadedMsg{profession: best, clients: clients}
	}
}
