package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/gigledger/internal/report"
	reportStore "github.com/MrJamesThe3rd/gigledger/internal/report/store"
)

var reportFlags struct {
	start string
	end   string
	limit int
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print earnings reports for a payment date range",
}

var professionCmd = &cobra.Command{
	Use:   "best-profession",
	Short: "Show the profession that earned the most",
	RunE:  runBestProfession,
}

var clientsCmd = &cobra.Command{
	Use:   "best-clients",
	Short: "Show the clients that paid the most",
	RunE:  runBestClients,
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func init() {
	f := reportCmd.PersistentFlags()
	f.StringVar(&reportFlags.start, "start", "", "Range start, YYYY-MM-DD or RFC 3339 (required)")
	f.StringVar(&reportFlags.end, "end", "", "Range end, YYYY-MM-DD or RFC 3339 (required)")

	_ = reportCmd.MarkPersistentFlagRequired("start")
	_ = reportCmd.MarkPersistentFlagRequired("end")

	clientsCmd.Flags().IntVar(&reportFlags.limit, "limit", report.DefaultClientLimit, "Number of clients")

	reportCmd.AddCommand(professionCmd)
	reportCmd.AddCommand(clientsCmd)
}

func reportService() (*report.Service, func() error, error) {
	db, err := openDB()
	if err != nil {
		return nil, nil, err
	}

	return report.NewService(reportStore.New(db)), db.Close, nil
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		}).
		String()
}

func runBestProfession(cmd *cobra.Command, _ []string) error {
	rng, err := report.ParseRange(reportFlags.start, reportFlags.end)
	if err != nil {
		return fmt.Errorf("parsing range: %w", err)
	}

	svc, closeDB, err := reportService()
	if err != nil {
		return err
	}
	defer closeDB()

	best, err := svc.BestProfession(cmd.Context(), rng)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Profession", "Earned"},
		[][]string{{best.Profession, best.Paid.StringFixed(2)}},
	))

	return nil
}

func runBestClients(cmd *cobra.Command, _ []string) error {
	rng, err := report.ParseRange(reportFlags.start, reportFlags.end)
	if err != nil {
		return fmt.Errorf("parsing range: %w", err)
	}

	svc, closeDB, err := reportService()
	if err != nil {
		return err
	}
	defer closeDB()

	clients, err := svc.BestClients(cmd.Context(), rng, reportFlags.limit)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{c.ClientID.String(), c.FullName, c.Paid.StringFixed(2)})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Full name", "Paid"}, rows))

	return nil
}
