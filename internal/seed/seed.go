// Package seed loads funds, portfolio companies and investors from a YAML file.
//
// Amounts are written as plain numbers and parsed as decimals. Rounds and commitments refer to
// funds by name.
package seed

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// File is the top-level seed document.
type File struct {
	Funds     []Fund     `yaml:"funds"`
	Companies []Company  `yaml:"companies"`
	Investors []Investor `yaml:"investors"`
}

type Fund struct {
	Name    string `yaml:"name"`
	Vintage int    `yaml:"vintage"`
	Target  string `yaml:"target"`
	Status  string `yaml:"status"`
}

type Company struct {
	Name        string  `yaml:"name"`
	Sector      string  `yaml:"sector"`
	FMVOverride string  `yaml:"fmvOverride"`
	Rounds      []Round `yaml:"rounds"`
}

type Round struct {
	Fund         string `yaml:"fund"`
	Instrument   string `yaml:"instrument"`
	Date         string `yaml:"date"`
	Invested     string `yaml:"invested"`
	Shares       *int64 `yaml:"shares"`
	CostPerShare string `yaml:"costPerShare"`
	Converted    *bool  `yaml:"converted"`
}

type Investor struct {
	Name        string       `yaml:"name"`
	Firm        string       `yaml:"firm"`
	Email       string       `yaml:"email"`
	Phone       string       `yaml:"phone"`
	Tier        string       `yaml:"tier"`
	Partner     string       `yaml:"partner"`
	Commitments []Commitment `yaml:"commitments"`
}

type Commitment struct {
	Fund          string         `yaml:"fund"`
	Stage         string         `yaml:"stage"`
	Commitment    string         `yaml:"commitment"`
	Funded        string         `yaml:"funded"`
	NAV           string         `yaml:"nav"`
	Distributions []Distribution `yaml:"distributions"`
}

type Distribution struct {
	Date   string `yaml:"date"`
	Amount string `yaml:"amount"`
	Type   string `yaml:"type"`
}

// LoadFile reads and parses a seed file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// Dataset is a seed file converted to model records, ready to be inserted.
// Round.FundID and Commitment.FundID hold fund names until the funds are inserted.
type Dataset struct {
	Funds     []model.Fund
	Companies []model.PortfolioCompany
	Investors []InvestorRecords
}

// InvestorRecords pairs an investor with its commitments.
type InvestorRecords struct {
	Investor    model.Investor
	Commitments []model.Commitment
}

// Build validates f and converts it into model records.
func (f *File) Build() (*Dataset, error) {
	ds := &Dataset{}
	funds := make(map[string]bool, len(f.Funds))

	for i, sf := range f.Funds {
		where := fmt.Sprintf("funds[%d]", i)
		if sf.Name == "" {
			return nil, fmt.Errorf("%s: name is required", where)
		}
		if funds[sf.Name] {
			return nil, fmt.Errorf("%s: duplicate fund %q", where, sf.Name)
		}
		funds[sf.Name] = true

		target, err := amount(where+".target", sf.Target)
		if err != nil {
			return nil, err
		}
		if !target.IsPositive() {
			return nil, fmt.Errorf("%s.target: must be positive", where)
		}
		status := model.FundStatus(sf.Status)
		if sf.Status == "" {
			status = model.FundStatusRaising
		}
		if !status.Valid() {
			return nil, fmt.Errorf("%s: unknown status %q", where, sf.Status)
		}

		ds.Funds = append(ds.Funds, model.Fund{
			Name:         sf.Name,
			VintageYear:  sf.Vintage,
			TargetAmount: target,
			Status:       status,
		})
	}

	fundRef := func(where, name string) error {
		if !funds[name] {
			return fmt.Errorf("%s: unknown fund %q", where, name)
		}
		return nil
	}

	for i, sc := range f.Companies {
		where := fmt.Sprintf("companies[%d]", i)
		if sc.Name == "" {
			return nil, fmt.Errorf("%s: name is required", where)
		}
		company := model.PortfolioCompany{Name: sc.Name, Sector: sc.Sector}
		if sc.FMVOverride != "" {
			v, err := amount(where+".fmvOverride", sc.FMVOverride)
			if err != nil {
				return nil, err
			}
			company.ManualFMVOverride = decimal.NewNullDecimal(v)
		}

		for j, sr := range sc.Rounds {
			rw := fmt.Sprintf("%s.rounds[%d]", where, j)
			round, err := sr.build(rw)
			if err != nil {
				return nil, err
			}
			if sr.Fund != "" {
				if err := fundRef(rw+".fund", sr.Fund); err != nil {
					return nil, err
				}
				name := sr.Fund
				round.FundID = &name
			}
			company.Rounds = append(company.Rounds, round)
		}

		ds.Companies = append(ds.Companies, company)
	}

	for i, si := range f.Investors {
		where := fmt.Sprintf("investors[%d]", i)
		if si.Name == "" {
			return nil, fmt.Errorf("%s: name is required", where)
		}
		tier := model.InvestorTier(si.Tier)
		if !tier.Valid() {
			return nil, fmt.Errorf("%s: unknown tier %q", where, si.Tier)
		}

		rec := InvestorRecords{Investor: model.Investor{
			DisplayName:       si.Name,
			FirmName:          si.Firm,
			Email:             si.Email,
			Phone:             si.Phone,
			Tier:              tier,
			RelationshipOwner: si.Partner,
		}}

		for j, sc := range si.Commitments {
			cw := fmt.Sprintf("%s.commitments[%d]", where, j)
			if err := fundRef(cw+".fund", sc.Fund); err != nil {
				return nil, err
			}
			c, err := sc.build(cw)
			if err != nil {
				return nil, err
			}
			rec.Commitments = append(rec.Commitments, c)
		}

		ds.Investors = append(ds.Investors, rec)
	}

	return ds, nil
}

func (sr Round) build(where string) (model.FinancingRound, error) {
	instrument := model.InstrumentType(sr.Instrument)
	if !instrument.Valid() {
		return model.FinancingRound{}, fmt.Errorf("%s: unknown instrument %q", where, sr.Instrument)
	}
	date, err := parseDate(where+".date", sr.Date)
	if err != nil {
		return model.FinancingRound{}, err
	}
	invested, err := amount(where+".invested", sr.Invested)
	if err != nil {
		return model.FinancingRound{}, err
	}

	round := model.FinancingRound{
		InstrumentType: instrument,
		InvestmentDate: date,
		InvestedAmount: invested,
		ShareCount:     sr.Shares,
		Converted:      model.ConvertedFlag(instrument, sr.Converted),
	}
	if sr.CostPerShare != "" {
		cps, err := amount(where+".costPerShare", sr.CostPerShare)
		if err != nil {
			return model.FinancingRound{}, err
		}
		round.CostPerShare = decimal.NewNullDecimal(cps)
	}
	return round, nil
}

func (sc Commitment) build(where string) (model.Commitment, error) {
	stage := model.StageOutreach
	if sc.Stage != "" {
		var err error
		if stage, err = model.ParsePipelineStage(sc.Stage); err != nil {
			return model.Commitment{}, fmt.Errorf("%s: %w", where, err)
		}
	}

	c := model.Commitment{FundID: sc.Fund, Stage: stage}
	var err error
	if c.CommitmentAmount, err = amount(where+".commitment", sc.Commitment); err != nil {
		return model.Commitment{}, err
	}
	if c.FundedAmount, err = amount(where+".funded", sc.Funded); err != nil {
		return model.Commitment{}, err
	}
	if c.CurrentNAV, err = amount(where+".nav", sc.NAV); err != nil {
		return model.Commitment{}, err
	}

	for k, sd := range sc.Distributions {
		dw := fmt.Sprintf("%s.distributions[%d]", where, k)
		date, err := parseDate(dw+".date", sd.Date)
		if err != nil {
			return model.Commitment{}, err
		}
		amt, err := amount(dw+".amount", sd.Amount)
		if err != nil {
			return model.Commitment{}, err
		}
		if !amt.IsPositive() {
			return model.Commitment{}, fmt.Errorf("%s.amount: must be positive", dw)
		}
		typ := model.DistributionType(sd.Type)
		if !typ.Valid() {
			return model.Commitment{}, fmt.Errorf("%s: unknown type %q", dw, sd.Type)
		}
		c.Distributions = append(c.Distributions, model.Distribution{Date: date, Amount: amt, Type: typ})
	}

	return c, nil
}

// amount parses a non-negative decimal. Empty means zero.
func amount(where, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: invalid amount %q", where, s)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s: must not be negative", where)
	}
	return v, nil
}

func parseDate(where, s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date %q", where, s)
	}
	return t, nil
}
