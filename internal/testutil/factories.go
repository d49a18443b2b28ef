package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// MustDecimal parses s or fails the test.
func MustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("Invalid decimal %q: %v", s, err)
	}
	return d
}

// MustDate parses a YYYY-MM-DD date or fails the test.
func MustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("Invalid date %q: %v", s, err)
	}
	return d
}

// FundBuilder provides a fluent interface for creating test funds.
//
// Example usage:
//
//	// Simple creation with defaults
//	fund := testutil.NewFund().Build(t, db)
//
//	// Customized fund
//	fund := testutil.NewFund().
//	    WithName("Fund II").
//	    WithTarget("50000000").
//	    Closed().
//	    Build(t, db)
type FundBuilder struct {
	ID          string
	Name        string
	VintageYear int
	Target      string
	Status      model.FundStatus
}

// NewFund creates a FundBuilder with sensible defaults.
func NewFund() *FundBuilder {
	return &FundBuilder{
		ID:          MakeID(),
		Name:        MakeFundName("Test Fund"),
		VintageYear: 2024,
		Target:      "10000000",
		Status:      model.FundStatusRaising,
	}
}

// WithID sets a custom ID.
func (b *FundBuilder) WithID(id string) *FundBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *FundBuilder) WithName(name string) *FundBuilder {
	b.Name = name
	return b
}

// WithVintage sets the vintage year.
func (b *FundBuilder) WithVintage(year int) *FundBuilder {
	b.VintageYear = year
	return b
}

// WithTarget sets the target amount.
func (b *FundBuilder) WithTarget(target string) *FundBuilder {
	b.Target = target
	return b
}

// Closed marks the fund as closed.
func (b *FundBuilder) Closed() *FundBuilder {
	b.Status = model.FundStatusClosed
	return b
}

// Build creates the fund in the database and returns it.
func (b *FundBuilder) Build(t *testing.T, db *sql.DB) model.Fund {
	t.Helper()

	target := MustDecimal(t, b.Target)
	query := `
		INSERT INTO fund (id, name, vintage_year, target_amount, status)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.VintageYear, target.String(), string(b.Status))
	if err != nil {
		t.Fatalf("Failed to create test fund: %v", err)
	}

	return model.Fund{
		ID:           b.ID,
		Name:         b.Name,
		VintageYear:  b.VintageYear,
		TargetAmount: target,
		Status:       b.Status,
	}
}

// CreateFund creates a fund with the given target and default values.
func CreateFund(t *testing.T, db *sql.DB, target string) model.Fund {
	t.Helper()
	return NewFund().WithTarget(target).Build(t, db)
}

// CompanyBuilder provides a fluent interface for creating portfolio companies.
//
// Example usage:
//
//	company := testutil.NewCompany().WithName("Aether AI").WithOverride("9000000").Build(t, db)
type CompanyBuilder struct {
	ID       string
	Name     string
	Sector   string
	Override string
}

// NewCompany creates a CompanyBuilder with defaults.
func NewCompany() *CompanyBuilder {
	return &CompanyBuilder{
		ID:     MakeID(),
		Name:   MakeCompanyName("Test Co"),
		Sector: "AI/ML",
	}
}

// WithID sets a custom ID.
func (b *CompanyBuilder) WithID(id string) *CompanyBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *CompanyBuilder) WithName(name string) *CompanyBuilder {
	b.Name = name
	return b
}

// WithSector sets the sector.
func (b *CompanyBuilder) WithSector(sector string) *CompanyBuilder {
	b.Sector = sector
	return b
}

// WithOverride sets a manual FMV override.
func (b *CompanyBuilder) WithOverride(fmv string) *CompanyBuilder {
	b.Override = fmv
	return b
}

// Build creates the company in the database
func (b *CompanyBuilder) Build(t *testing.T, db *sql.DB) model.PortfolioCompany {
	t.Helper()

	company := model.PortfolioCompany{ID: b.ID, Name: b.Name, Sector: b.Sector}
	var override any
	if b.Override != "" {
		v := MustDecimal(t, b.Override)
		company.ManualFMVOverride = decimal.NewNullDecimal(v)
		override = v.String()
	}

	query := `
		INSERT INTO portfolio_company (id, name, sector, manual_fmv_override)
		VALUES (?, ?, ?, ?)
	`

	if _, err := db.Exec(query, b.ID, b.Name, b.Sector, override); err != nil {
		t.Fatalf("Failed to create test company: %v", err)
	}

	return company
}

// RoundBuilder provides a fluent interface for creating financing rounds.
//
// Example usage:
//
//	round := testutil.NewRound(company.ID).
//	    WithFund(fund.ID).
//	    WithInstrument(model.InstrumentSeriesA).
//	    WithDate("2022-01-10").
//	    WithInvested("1200000").
//	    WithShares(250000).
//	    WithCostPerShare("4.80").
//	    Build(t, db)
type RoundBuilder struct {
	ID           string
	CompanyID    string
	FundID       *string
	Instrument   model.InstrumentType
	Date         string
	Invested     string
	Shares       *int64
	CostPerShare string

	converted bool
}

// NewRound creates a RoundBuilder with defaults.
func NewRound(companyID string) *RoundBuilder {
	return &RoundBuilder{
		ID:         MakeID(),
		CompanyID:  companyID,
		Instrument: model.InstrumentSeed,
		Date:       "2024-01-15",
		Invested:   "1000000",
	}
}

// WithID sets a custom ID
func (b *RoundBuilder) WithID(id string) *RoundBuilder {
	b.ID = id
	return b
}

// WithFund tags the round with a fund.
func (b *RoundBuilder) WithFund(fundID string) *RoundBuilder {
	b.FundID = &fundID
	return b
}

// WithInstrument sets the instrument type.
func (b *RoundBuilder) WithInstrument(instrument model.InstrumentType) *RoundBuilder {
	b.Instrument = instrument
	return b
}

// WithDate sets the investment date (YYYY-MM-DD).
func (b *RoundBuilder) WithDate(date string) *RoundBuilder {
	b.Date = date
	return b
}

// WithInvested sets the invested amount.
func (b *RoundBuilder) WithInvested(amount string) *RoundBuilder {
	b.Invested = amount
	return b
}

// WithShares sets the share count.
func (b *RoundBuilder) WithShares(shares int64) *RoundBuilder {
	b.Shares = &shares
	return b
}

// WithCostPerShare sets the cost per share.
func (b *RoundBuilder) WithCostPerShare(cps string) *RoundBuilder {
	b.CostPerShare = cps
	return b
}

// Converted marks a SAFE or note as converted. SAFEs and notes start unconverted;
// priced rounds are always stored converted.
func (b *RoundBuilder) Converted() *RoundBuilder {
	b.converted = true
	return b
}

// Build creates the round in the database. The sequence is the next free one for the company.
func (b *RoundBuilder) Build(t *testing.T, db *sql.DB) model.FinancingRound {
	t.Helper()

	round := model.FinancingRound{
		ID:             b.ID,
		CompanyID:      b.CompanyID,
		FundID:         b.FundID,
		InstrumentType: b.Instrument,
		InvestmentDate: MustDate(t, b.Date),
		InvestedAmount: MustDecimal(t, b.Invested),
		ShareCount:     b.Shares,
		Converted:      b.converted || !b.Instrument.IsConvertible(),
	}
	var cps any
	if b.CostPerShare != "" {
		v := MustDecimal(t, b.CostPerShare)
		round.CostPerShare = decimal.NewNullDecimal(v)
		cps = v.String()
	}

	query := `
		INSERT INTO financing_round (
			id, company_id, fund_id, instrument_type, investment_date, invested_amount,
			share_count, cost_per_share, converted, sequence
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(sequence), 0) + 1 FROM financing_round WHERE company_id = ?))
		RETURNING sequence
	`

	err := db.QueryRow(query,
		b.ID,
		b.CompanyID,
		b.FundID,
		string(b.Instrument),
		b.Date,
		round.InvestedAmount.String(),
		b.Shares,
		cps,
		round.Converted,
		b.CompanyID,
	).Scan(&round.Sequence)
	if err != nil {
		t.Fatalf("Failed to create test round: %v", err)
	}

	return round
}

// InvestorBuilder provides a fluent interface for creating investors.
// Contact details are written as plaintext.
type InvestorBuilder struct {
	ID      string
	Name    string
	Firm    string
	Email   string
	Phone   string
	Tier    model.InvestorTier
	Partner string
}

// NewInvestor creates an InvestorBuilder with defaults.
func NewInvestor() *InvestorBuilder {
	return &InvestorBuilder{
		ID:    MakeID(),
		Name:  MakeInvestorName("Test LP"),
		Firm:  "Test Capital",
		Email: "lp@example.com",
		Phone: "+1 555 0100",
		Tier:  model.TierInstitutional,
	}
}

// WithID sets a custom ID
func (b *InvestorBuilder) WithID(id string) *InvestorBuilder {
	b.ID = id
	return b
}

// WithName sets the display name and firm.
func (b *InvestorBuilder) WithName(name, firm string) *InvestorBuilder {
	b.Name = name
	b.Firm = firm
	return b
}

// WithEmail sets the email address.
func (b *InvestorBuilder) WithEmail(email string) *InvestorBuilder {
	b.Email = email
	return b
}

// WithTier sets the tier.
func (b *InvestorBuilder) WithTier(tier model.InvestorTier) *InvestorBuilder {
	b.Tier = tier
	return b
}

// WithPartner sets the relationship owner.
func (b *InvestorBuilder) WithPartner(partner string) *InvestorBuilder {
	b.Partner = partner
	return b
}

// Build creates the investor in the database
func (b *InvestorBuilder) Build(t *testing.T, db *sql.DB) model.Investor {
	t.Helper()

	query := `
		INSERT INTO investor (id, display_name, firm_name, email, phone, tier, relationship_owner)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Firm, b.Email, b.Phone, string(b.Tier), b.Partner)
	if err != nil {
		t.Fatalf("Failed to create test investor: %v", err)
	}

	return model.Investor{
		ID:                b.ID,
		DisplayName:       b.Name,
		FirmName:          b.Firm,
		Email:             b.Email,
		Phone:             b.Phone,
		Tier:              b.Tier,
		RelationshipOwner: b.Partner,
	}
}

// CommitmentBuilder provides a fluent interface for creating commitments.
//
// Example usage:
//
//	c := testutil.NewCommitment(investor.ID, fund.ID).
//	    WithStage(model.StageClosed).
//	    WithAmounts("5000000", "5000000", "6200000").
//	    Build(t, db)
type CommitmentBuilder struct {
	ID         string
	InvestorID string
	FundID     string
	Stage      model.PipelineStage
	Commitment string
	Funded     string
	NAV        string
}

// NewCommitment creates a CommitmentBuilder with defaults.
func NewCommitment(investorID, fundID string) *CommitmentBuilder {
	return &CommitmentBuilder{
		ID:         MakeID(),
		InvestorID: investorID,
		FundID:     fundID,
		Stage:      model.StageOutreach,
		Commitment: "0",
		Funded:     "0",
		NAV:        "0",
	}
}

// WithID sets a custom ID
func (b *CommitmentBuilder) WithID(id string) *CommitmentBuilder {
	b.ID = id
	return b
}

// WithStage sets the pipeline stage.
func (b *CommitmentBuilder) WithStage(stage model.PipelineStage) *CommitmentBuilder {
	b.Stage = stage
	return b
}

// WithAmounts sets commitment, funded and NAV.
func (b *CommitmentBuilder) WithAmounts(commitment, funded, nav string) *CommitmentBuilder {
	b.Commitment = commitment
	b.Funded = funded
	b.NAV = nav
	return b
}

// Build creates the commitment in the database
func (b *CommitmentBuilder) Build(t *testing.T, db *sql.DB) model.Commitment {
	t.Helper()

	c := model.Commitment{
		ID:               b.ID,
		InvestorID:       b.InvestorID,
		FundID:           b.FundID,
		Stage:            b.Stage,
		CommitmentAmount: MustDecimal(t, b.Commitment),
		FundedAmount:     MustDecimal(t, b.Funded),
		CurrentNAV:       MustDecimal(t, b.NAV),
	}

	query := `
		INSERT INTO commitment (id, investor_id, fund_id, stage, commitment_amount, funded_amount, current_nav)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID,
		b.InvestorID,
		b.FundID,
		b.Stage.String(),
		c.CommitmentAmount.String(),
		c.FundedAmount.String(),
		c.CurrentNAV.String(),
	)
	if err != nil {
		t.Fatalf("Failed to create test commitment: %v", err)
	}

	return c
}

// DistributionBuilder provides a fluent interface for creating distributions.
type DistributionBuilder struct {
	ID           string
	CommitmentID string
	Date         string
	Amount       string
	Type         model.DistributionType
}

// NewDistribution creates a DistributionBuilder with defaults.
func NewDistribution(commitmentID string) *DistributionBuilder {
	return &DistributionBuilder{
		ID:           MakeID(),
		CommitmentID: commitmentID,
		Date:         "2024-06-01",
		Amount:       "100000",
		Type:         model.DistributionIncome,
	}
}

// WithDate sets the distribution date (YYYY-MM-DD).
func (b *DistributionBuilder) WithDate(date string) *DistributionBuilder {
	b.Date = date
	return b
}

// WithAmount sets the amount.
func (b *DistributionBuilder) WithAmount(amount string) *DistributionBuilder {
	b.Amount = amount
	return b
}

// WithType sets the distribution type.
func (b *DistributionBuilder) WithType(typ model.DistributionType) *DistributionBuilder {
	b.Type = typ
	return b
}

// Build creates the distribution in the database
func (b *DistributionBuilder) Build(t *testing.T, db *sql.DB) model.Distribution {
	t.Helper()

	d := model.Distribution{
		ID:           b.ID,
		CommitmentID: b.CommitmentID,
		Date:         MustDate(t, b.Date),
		Amount:       MustDecimal(t, b.Amount),
		Type:         b.Type,
	}

	query := `INSERT INTO distribution (id, commitment_id, date, amount, type) VALUES (?, ?, ?, ?, ?)`
	if _, err := db.Exec(query, b.ID, b.CommitmentID, b.Date, d.Amount.String(), string(b.Type)); err != nil {
		t.Fatalf("Failed to create test distribution: %v", err)
	}

	return d
}
