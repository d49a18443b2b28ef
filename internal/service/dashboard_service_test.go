package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/testutil"
)

// seedFirm creates two funds, three investors and one portfolio company:
//
//   - Fund I (2020, raising, 10M target): 5M closed with two distributions, 3M soft commit
//   - Fund II (2023, closed, 5M target): 2M closed
//   - Nimbus: an unconverted 500K SAFE from Fund I
func seedFirm(t *testing.T, db *sql.DB) (model.Fund, model.Fund) {
	t.Helper()

	fund1 := testutil.NewFund().WithName("Fund I").WithVintage(2020).WithTarget("10000000").Build(t, db)
	fund2 := testutil.NewFund().WithName("Fund II").WithVintage(2023).WithTarget("5000000").Closed().Build(t, db)

	a := testutil.NewInvestor().WithName("Alex Kim", "Kim Ventures").Build(t, db)
	b := testutil.NewInvestor().WithName("Blair Stone", "Stone Capital").Build(t, db)
	testutil.NewInvestor().WithName("Casey Moss", "").Build(t, db)

	c1 := testutil.NewCommitment(a.ID, fund1.ID).
		WithStage(model.StageClosed).
		WithAmounts("5000000", "5000000", "6200000").
		Build(t, db)
	testutil.NewDistribution(c1.ID).WithAmount("150000").Build(t, db)
	testutil.NewDistribution(c1.ID).WithDate("2024-12-01").WithAmount("200000").Build(t, db)

	testutil.NewCommitment(b.ID, fund1.ID).
		WithStage(model.StageSoftCommit).
		WithAmounts("3000000", "0", "0").
		Build(t, db)
	testutil.NewCommitment(a.ID, fund2.ID).
		WithStage(model.StageClosed).
		WithAmounts("2000000", "2000000", "1000000").
		Build(t, db)

	company := testutil.NewCompany().WithName("Nimbus").WithSector("Infra").Build(t, db)
	testutil.NewRound(company.ID).
		WithFund(fund1.ID).
		WithInstrument(model.InstrumentSAFE).
		WithInvested("500000").
		Build(t, db)

	return fund1, fund2
}

// TestDashboardService_GetDashboard tests the firm-wide overview.
//
// WHY: The dashboard is the only view that mixes every fund. Totals must sum commitments across
// funds, while each fund's progress still only counts its own commitments.
func TestDashboardService_GetDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db)

		d, err := svc.GetDashboard(ctx)
		if err != nil {
			t.Fatalf("GetDashboard() returned unexpected error: %v", err)
		}

		if !d.TotalCommitted.IsZero() || d.InvestorCount != 0 || len(d.Funds) != 0 {
			t.Errorf("Expected an empty dashboard, got %+v", d)
		}
		if d.DeployedPercent.Defined() {
			t.Error("Expected undefined deployed percent with nothing committed")
		}
		if d.GeneratedAt.IsZero() {
			t.Error("Expected GeneratedAt to be set")
		}
	})

	t.Run("two funds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db)
		fund1, fund2 := seedFirm(t, db)

		d, err := svc.GetDashboard(ctx)
		if err != nil {
			t.Fatalf("GetDashboard() returned unexpected error: %v", err)
		}

		checks := []struct {
			name string
			got  string
			want string
		}{
			{"committed", d.TotalCommitted.String(), "10000000"},
			{"funded", d.TotalFunded.String(), "7000000"},
			{"nav", d.TotalNAV.String(), "7200000"},
			{"distributions", d.TotalDistributions.String(), "350000"},
			{"deployed", d.DeployedPercent.String(), "70.00"},
		}
		for _, c := range checks {
			if c.got != c.want {
				t.Errorf("Expected %s %s, got %s", c.name, c.want, c.got)
			}
		}

		if d.ClosedCount != 2 || d.PipelineCount != 1 {
			t.Errorf("Expected 2 closed and 1 pipeline, got %d and %d", d.ClosedCount, d.PipelineCount)
		}
		if d.InvestorCount != 3 {
			t.Errorf("Expected 3 investors, got %d", d.InvestorCount)
		}

		if len(d.Funds) != 2 {
			t.Fatalf("Expected 2 funds, got %d", len(d.Funds))
		}
		if d.Funds[0].FundID != fund1.ID || d.Funds[1].FundID != fund2.ID {
			t.Errorf("Expected funds ordered by vintage")
		}
		if !d.Funds[0].Committed.Equal(testutil.MustDecimal(t, "8000000")) {
			t.Errorf("Expected Fund I to count all stages (8000000), got %s", d.Funds[0].Committed)
		}
		if d.Funds[0].PercentOfTarget.String() != "80.00" {
			t.Errorf("Expected Fund I at 80.00%%, got %s", d.Funds[0].PercentOfTarget)
		}

		if d.Portfolio.CompanyCount != 1 {
			t.Errorf("Expected 1 portfolio company, got %d", d.Portfolio.CompanyCount)
		}
		if !d.Portfolio.TotalValue.Equal(testutil.MustDecimal(t, "500000")) {
			t.Errorf("Expected unconverted SAFE valued at cost, got %s", d.Portfolio.TotalValue)
		}
	})

	t.Run("commitment to a missing fund is excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db)
		seedFirm(t, db)

		// the test database has a single connection, so this holds for the inserts below
		if _, err := db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
			t.Fatalf("Failed to disable foreign keys: %v", err)
		}
		drew := testutil.NewInvestor().WithName("Drew Park", "").Build(t, db)
		testutil.NewCommitment(drew.ID, testutil.MakeID()).
			WithStage(model.StageClosed).
			WithAmounts("9000000", "9000000", "9000000").
			Build(t, db)

		d, err := svc.GetDashboard(ctx)
		if err != nil {
			t.Fatalf("GetDashboard() returned unexpected error: %v", err)
		}
		if !d.TotalCommitted.Equal(testutil.MustDecimal(t, "10000000")) {
			t.Errorf("Expected orphaned commitment excluded from 10000000, got %s", d.TotalCommitted)
		}
		if d.ClosedCount != 2 {
			t.Errorf("Expected 2 closed commitments, got %d", d.ClosedCount)
		}

		rollup, err := testutil.NewTestInvestorService(t, db).GetInvestorRollup(ctx, drew.ID)
		if err != nil {
			t.Fatalf("GetInvestorRollup() returned unexpected error: %v", err)
		}
		if !rollup.TotalCommitment.IsZero() || len(rollup.Positions) != 0 {
			t.Errorf("Expected no positions for the orphaned commitment, got %+v", rollup)
		}
	})
}
