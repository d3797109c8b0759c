package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigledger/internal/balance"
)

// DepositModel tops up a client's balance.
type DepositModel struct {
	balances *balance.Service

	form    *huh.Form
	pending bool
	status  string
	err     error
}

func NewDepositModel(balances *balance.Service) DepositModel {
	return DepositModel{
		balances: balances,
		form:     depositForm(),
	}
}

func depositForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("client_id").
				Title("Client ID").
				Validate(func(s string) error {
					if _, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
						return errors.New("not a valid id")
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return errors.New("not a number")
					}

					if !d.IsPositive() {
						return errors.New("must be positive")
					}

					if !d.Equal(d.Truncate(2)) {
						return errors.New("at most two decimal places")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m DepositModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m DepositModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(depositedMsg); ok {
		m.pending = false
		m.err = msg.err
		m.status = ""

		if msg.err == nil {
			m.status = fmt.Sprintf("Deposited %s. New balance: %s", FormatAmount(msg.amount), FormatAmount(msg.balance))
		}

		m.form = depositForm()

		return m, m.form.Init()
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	if m.pending {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.pending = true

	return m, m.depositCmd(m.form.GetString("client_id"), m.form.GetString("amount"))
}

func depositErrorText(err error) string {
	switch {
	case errors.Is(err, balance.ErrOverLimit):
		return "Deposit exceeds 25% of the client's unpaid jobs"
	case errors.Is(err, balance.ErrNotFound):
		return "No client with that id"
	case errors.Is(err, balance.ErrInvalidAmount):
		return "Amount must be positive with at most two decimal places"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func (m DepositModel) View() string {
	content := "Deposit\n\n"

	if m.pending {
		content += "Depositing..."
	} else {
		content += m.form.View()
	}

	if m.err != nil {
		content += "\n" + errorStyle.Render(depositErrorText(m.err))
	}

	if m.status != "" {
		content += "\n" + activeStyle.Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n\n(Esc to back)")
}

// Messages

type depositedMsg struct {
	amount  decimal.Decimal
	balance decimal.Decimal
	err     error
}

func (m DepositModel) depositCmd(rawID, rawAmount string) tea.Cmd {
	return func() tea.Msg {
		clientID, err := uuid.Parse(strings.TrimSpace(rawID))
		if err != nil {
			return depositedMsg{err: err}
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(rawAmount))
		if err != nil {
			return depositedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		bal, err := m.balances.Deposit(ctx, clientID, amount)

		return depositedMsg{amount: amount, balance: bal, err: err}
	}
}
