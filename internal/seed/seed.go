// Package seed loads marketplace fixtures from CSV files.
//
// A fixture directory holds profiles.csv, contracts.csv and jobs.csv. Each
// file starts with a header row; column order is free. Files may be UTF-8,
// UTF-16 with BOM or a Latin-1 spreadsheet export.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/gigledger/internal/encoding"
	"github.com/MrJamesThe3rd/gigledger/internal/contract"
	"github.com/MrJamesThe3rd/gigledger/internal/job"
	"github.com/MrJamesThe3rd/gigledger/internal/profile"
)

const (
	ProfilesFile  = "profiles.csv"
	ContractsFile = "contracts.csv"
	JobsFile      = "jobs.csv"
)

// Fixtures is a complete, self-consistent data set.
type Fixtures struct {
	Profiles  []*profile.Profile
	Contracts []*contract.Contract
	Jobs      []*job.Job
}

// Parse reads the three fixture files from fsys and validates them.
func Parse(fsys fs.FS) (*Fixtures, error) {
	var f Fixtures

	if err := parseFile(fsys, ProfilesFile, func(r io.Reader) (err error) {
		f.Profiles, err = ParseProfiles(r)
		return err
	}); err != nil {
		return nil, err
	}

	if err := parseFile(fsys, ContractsFile, func(r io.Reader) (err error) {
		f.Contracts, err = ParseContracts(r)
		return err
	}); err != nil {
		return nil, err
	}

	if err := parseFile(fsys, JobsFile, func(r io.Reader) (err error) {
		f.Jobs, err = ParseJobs(r)
		return err
	}); err != nil {
		return nil, err
	}

	if err := Validate(&f); err != nil {
		return nil, err
	}

	return &f, nil
}

func parseFile(fsys fs.FS, name string, parse func(io.Reader) error) error {
	file, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer file.Close()

	if err := parse(file); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}

	return nil
}

var (
	profileCols  = []string{"id", "first_name", "last_name", "profession", "balance", "role"}
	contractCols = []string{"id", "terms", "status", "client_id", "contractor_id"}
	jobCols      = []string{"id", "contract_id", "description", "price", "paid", "payment_date"}
)

func ParseProfiles(r io.Reader) ([]*profile.Profile, error) {
	rows, err := readTable(r, profileCols)
	if err != nil {
		return nil, err
	}

	profiles := make([]*profile.Profile, 0, len(rows))

	for _, row := range rows {
		id, err := row.id("id")
		if err != nil {
			return nil, err
		}

		bal, err := row.amount("balance")
		if err != nil {
			return nil, err
		}

		profiles = append(profiles, &profile.Profile{
			ID:         id,
			FirstName:  row.get("first_name"),
			LastName:   row.get("last_name"),
			Profession: row.get("profession"),
			Balance:    bal,
			Role:       profile.Role(strings.ToLower(row.get("role"))),
		})
	}

	return profiles, nil
}

func ParseContracts(r io.Reader) ([]*contract.Contract, error) {
	rows, err := readTable(r, contractCols)
	if err != nil {
		return nil, err
	}

	contracts := make([]*contract.Contract, 0, len(rows))

	for _, row := range rows {
		id, err := row.id("id")
		if err != nil {
			return nil, err
		}

		clientID, err := row.id("client_id")
		if err != nil {
			return nil, err
		}

		contractorID, err := row.id("contractor_id")
		if err != nil {
			return nil, err
		}

		contracts = append(contracts, &contract.Contract{
			ID:           id,
			Terms:        row.get("terms"),
			Status:       contract.Status(strings.ToLower(row.get("status"))),
			ClientID:     clientID,
			ContractorID: contractorID,
		})
	}

	return contracts, nil
}

func ParseJobs(r io.Reader) ([]*job.Job, error) {
	rows, err := readTable(r, jobCols)
	if err != nil {
		return nil, err
	}

	jobs := make([]*job.Job, 0, len(rows))

	for _, row := range rows {
		id, err := row.id("id")
		if err != nil {
			return nil, err
		}

		contractID, err := row.id("contract_id")
		if err != nil {
			return nil, err
		}

		price, err := row.amount("price")
		if err != nil {
			return nil, err
		}

		paid, err := row.flag("paid")
		if err != nil {
			return nil, err
		}

		paymentDate, err := row.timestamp("payment_date")
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, &job.Job{
			ID:          id,
			ContractID:  contractID,
			Description: row.get("description"),
			Price:       price,
			Paid:        paid,
			PaymentDate: paymentDate,
		})
	}

	return jobs, nil
}

// record is one data row addressed by header name.
type record struct {
	line  int
	cols  map[string]int
	cells []string
}

func (r record) get(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.cells) {
		return ""
	}

	return strings.TrimSpace(r.cells[i])
}

func (r record) fail(name string, err error) error {
	return fmt.Errorf("line %d: column %s: %w", r.line, name, err)
}

func (r record) id(name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.get(name))
	if err != nil {
		return uuid.Nil, r.fail(name, err)
	}

	return id, nil
}

func (r record) amount(name string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(r.get(name))
	if err != nil {
		return decimal.Zero, r.fail(name, err)
	}

	return d, nil
}

func (r record) flag(name string) (bool, error) {
	s := r.get(name)
	if s == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, r.fail(name, err)
	}

	return b, nil
}

func (r record) timestamp(name string) (*time.Time, error) {
	s := r.get(name)
	if s == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}

	return nil, r.fail(name, fmt.Errorf("unrecognised time %q", s))
}

var errNoHeader = errors.New("missing header row")

// readTable decodes r to UTF-8, reads the header and checks that every
// required column is present.
func readTable(r io.Reader, required []string) ([]record, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv (%s): %w", charset, err)
	}

	if len(rows) == 0 {
		return nil, errNoHeader
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	records := make([]record, 0, len(rows)-1)

	for i, cells := range rows[1:] {
		records = append(records, record{line: i + 2, cols: cols, cells: cells})
	}

	return records, nil
}
