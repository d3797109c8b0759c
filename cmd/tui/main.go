package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/gigledger/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/gigledger/internal/balance"
	balanceStore "github.com/MrJamesThe3rd/gigledger/internal/balance/store"
	"github.com/MrJamesThe3rd/gigledger/internal/config"
	"github.com/MrJamesThe3rd/gigledger/internal/database"
	"github.com/MrJamesThe3rd/gigledger/internal/job"
	jobStore "github.com/MrJamesThe3rd/gigledger/internal/job/store"
	"github.com/MrJamesThe3rd/gigledger/internal/payment"
	paymentStore "github.com/MrJamesThe3rd/gigledger/internal/payment/store"
	"github.com/MrJamesThe3rd/gigledger/internal/profile"
	profileStore "github.com/MrJamesThe3rd/gigledger/internal/profile/store"
	"github.com/MrJamesThe3rd/gigledger/internal/report"
	reportStore "github.com/MrJamesThe3rd/gigledger/internal/report/store"
)

type model struct {
	profileService *profile.Service
	jobService     *job.Service
	paymentService *payment.Service
	balanceService *balance.Service
	reportService  *report.Service

	currentView View

	jobsView    view.JobsModel
	depositView view.DepositModel
	reportsView view.ReportsModel
}

type View int

const (
	ViewMenu    View = 0
	ViewJobs    View = 1
	ViewDeposit View = 2
	ViewReports View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	return model{
		profileService: profile.NewService(profileStore.New(db)),
		jobService:     job.NewService(jobStore.New(db)),
		paymentService: payment.NewService(paymentStore.New(db)),
		balanceService: balance.NewService(balanceStore.New(db)),
		reportService:  report.NewService(reportStore.New(db)),
		currentView:    ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewJobs
				m.jobsView = view.NewJobsModel(m.profileService, m.jobService, m.paymentService)

				return m, m.jobsView.Init()
			case "2":
				m.currentView = ViewDeposit
				m.depositView = view.NewDepositModel(m.balanceService)

				return m, m.depositView.Init()
			case "3":
				m.currentView = ViewReports
				m.reportsView = view.NewReportsModel(m.reportService)

				return m, m.reportsView.Init()
			}
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewJobs:
		var newModel tea.Model
		newModel, cmd = m.jobsView.Update(msg)
		m.jobsView = newModel.(view.JobsModel)
	case ViewDeposit:
		var newModel tea.Model
		newModel, cmd = m.depositView.Update(msg)
		m.depositView = newModel.(view.DepositModel)
	case ViewReports:
		var newModel tea.Model
		newModel, cmd = m.reportsView.Update(msg)
		m.reportsView = newModel.(view.ReportsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"GigLedger TUI\n\n" +
				"1. Unpaid Jobs\n" +
				"2. Deposit\n" +
				"3. Reports\n\n" +
				"q. Quit",
		)
	case ViewJobs:
		return m.jobsView.View()
	case ViewDeposit:
		return m.depositView.View()
	case ViewReports:
		return m.reportsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
