package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gigledger/internal/job"
	"github.com/MrJamesThe3rd/gigledger/internal/payment"
	"github.com/MrJamesThe3rd/gigledger/internal/profile"
)

type jobsState int

const (
	jobsStateLogin jobsState = iota
	jobsStateBrowse
	jobsStateConfirm
)

// JobsModel lists a profile's unpaid jobs and lets a client pay them.
type JobsModel struct {
	profiles *profile.Service
	jobs     *job.Service
	payments *payment.Service

	state   jobsState
	form    *huh.Form
	table   table.Model
	profile *profile.Profile
	unpaid  []*job.Job

	status string
	err    error
}

func NewJobsModel(profiles *profile.Service, jobs *job.Service, payments *payment.Service) JobsModel {
	return JobsModel{
		profiles: profiles,
		jobs:     jobs,
		payments: payments,
		table: newTable([]table.Column{
			{Title: "Job", Width: 36},
			{Title: "Description", Width: 32},
			{Title: "Price", Width: 10},
			{Title: "Created", Width: 12},
		}, 12),
		form: loginForm(),
	}
}

func loginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("profile_id").
				Title("Profile ID").
				Validate(func(s string) error {
					if _, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
						return errors.New("not a valid id")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m JobsModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m JobsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = jobsStateLogin
			m.form = loginForm()

			return m, m.form.Init()
		}

		m.err = nil
		m.profile = msg.profile
		m.state = jobsStateBrowse

		return m, m.loadJobsCmd()

	case jobsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.unpaid = msg.jobs
		m.refreshTable()

		return m, nil

	case paidMsg:
		if msg.err != nil {
			m.status = payErrorText(msg.err)
		} else {
			m.status = fmt.Sprintf("Paid %s for job %s", FormatAmount(msg.receipt.Amount), msg.receipt.JobID)
		}

		m.state = jobsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, tea.Batch(m.loadJobsCmd(), m.reloadProfileCmd())

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-12, 5))
		return m, nil
	}

	switch m.state {
	case jobsStateLogin:
		return m.updateForm(msg, func(f *huh.Form) tea.Cmd {
			return m.loadProfileCmd(f.GetString("profile_id"))
		})
	case jobsStateConfirm:
		return m.updateForm(msg, func(f *huh.Form) tea.Cmd {
			if !f.GetBool("confirm") {
				return func() tea.Msg { return paidMsg{err: errCancelled} }
			}

			return m.payCmd()
		})
	}

	return m.updateBrowse(msg)
}

var errCancelled = errors.New("cancelled")

func (m JobsModel) updateForm(msg tea.Msg, done func(*huh.Form) tea.Cmd) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		if m.state == jobsStateLogin {
			return m, Back
		}

		m.state = jobsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, done(m.form)
}

func (m JobsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadJobsCmd()
		case "p":
			return m.enterConfirm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m JobsModel) enterConfirm() (tea.Model, tea.Cmd) {
	j := m.selected()
	if j == nil {
		return m, nil
	}

	if m.profile.Role != profile.RoleClient {
		m.status = "Only clients can pay for jobs"
		return m, nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Pay %s for %q?", FormatAmount(j.Price), j.Description)).
				Affirmative("Pay").
				Negative("Cancel"),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = jobsStateConfirm
	m.table.Blur()

	return m, m.form.Init()
}

func (m JobsModel) selected() *job.Job {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.unpaid) {
		return nil
	}

	return m.unpaid[idx]
}

func (m *JobsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.unpaid))
	for _, j := range m.unpaid {
		rows = append(rows, table.Row{
			j.ID.String(),
			j.Description,
			FormatAmount(j.Price),
			FormatDate(j.CreatedAt),
		})
	}

	m.table.SetRows(rows)
}

func payErrorText(err error) string {
	switch {
	case errors.Is(err, errCancelled):
		return "Payment cancelled"
	case errors.Is(err, payment.ErrInsufficientFunds):
		return "Insufficient balance"
	case errors.Is(err, payment.ErrNotFound):
		return "Job is no longer payable"
	default:
		return fmt.Sprintf("Error paying: %v", err)
	}
}

func (m JobsModel) View() string {
	if m.state == jobsStateLogin {
		content := "Unpaid Jobs\n\n" + m.form.View()
		if m.err != nil {
			content += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
		}

		return lipgloss.NewStyle().Padding(1).Render(content + "\n\n(Esc to back)")
	}

	header := fmt.Sprintf("%s (%s) | Balance: %s",
		m.profile.FullName(),
		m.profile.Role,
		activeStyle.Render(FormatAmount(m.profile.Balance)),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableFrame.Render(m.table.View()),
		"Esc: back | p: pay | r: refresh",
	)

	if m.state == jobsStateConfirm && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(54).Render(m.form.View()))
	}

	if m.err != nil {
		content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type profileLoadedMsg struct {
	profile *profile.Profile
	err     error
}

type jobsLoadedMsg struct {
	jobs []*job.Job
	err  error
}

type paidMsg struct {
	receipt *payment.Receipt
	err     error
}

func (m JobsModel) loadProfileCmd(rawID string) tea.Cmd {
	return func() tea.Msg {
		id, err := uuid.Parse(strings.TrimSpace(rawID))
		if err != nil {
			return profileLoadedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		p, err := m.profiles.Get(ctx, id)

		return profileLoadedMsg{profile: p, err: err}
	}
}

func (m JobsModel) reloadProfileCmd() tea.Cmd {
	return m.loadProfileCmd(m.profile.ID.String())
}

func (m JobsModel) loadJobsCmd() tea.Cmd {
	id := m.profile.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		jobs, err := m.jobs.ListUnpaid(ctx, id)

		return jobsLoadedMsg{jobs: jobs, err: err}
	}
}

func (m JobsModel) payCmd() tea.Cmd {
	j := m.selected()
	if j == nil {
		return nil
	}

	jobID, clientID := j.ID, m.profile.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		receipt, err := m.payments.Pay(ctx, jobID, clientID)

		return paidMsg{receipt: receipt, err: err}
	}
}
