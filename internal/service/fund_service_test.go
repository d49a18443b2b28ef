package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/request"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/apperrors"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/service"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/testutil"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/valuation"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		in      string
		want    valuation.StageScope
		wantErr bool
	}{
		{"", valuation.ScopeAllStages, false},
		{"all", valuation.ScopeAllStages, false},
		{"closed", valuation.ScopeClosedOnly, false},
		{"pipeline", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := service.ParseScope(tt.in)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidScope) {
					t.Errorf("Expected ErrInvalidScope, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScope(%q) returned unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseScope(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestFundService_CRUD tests creating, updating and deleting funds.
//
// WHY: Fund names are unique and deleting a fund must take its commitments with it while
// leaving the portfolio companies' rounds in place (untagged).
func TestFundService_CRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("create defaults status to raising", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		fund, err := svc.CreateFund(ctx, request.CreateFundRequest{
			Name:         "Fund III",
			VintageYear:  2026,
			TargetAmount: testutil.MustDecimal(t, "50000000"),
		})
		if err != nil {
			t.Fatalf("CreateFund() returned unexpected error: %v", err)
		}

		if fund.ID == "" {
			t.Error("Expected an ID to be assigned")
		}
		if fund.Status != model.FundStatusRaising {
			t.Errorf("Expected status raising, got %s", fund.Status)
		}

		stored, err := svc.GetFund(ctx, fund.ID)
		if err != nil {
			t.Fatalf("GetFund() returned unexpected error: %v", err)
		}
		if !stored.TargetAmount.Equal(fund.TargetAmount) {
			t.Errorf("Expected target %s, got %s", fund.TargetAmount, stored.TargetAmount)
		}
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)
		testutil.NewFund().WithName("Fund I").Build(t, db)

		_, err := svc.CreateFund(ctx, request.CreateFundRequest{
			Name:         "Fund I",
			VintageYear:  2024,
			TargetAmount: testutil.MustDecimal(t, "1"),
		})
		if !errors.Is(err, apperrors.ErrDuplicateEntry) {
			t.Errorf("Expected ErrDuplicateEntry, got %v", err)
		}
	})

	t.Run("update applies only set fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)
		fund := testutil.NewFund().WithName("Fund I").WithVintage(2022).Build(t, db)

		status := string(model.FundStatusClosed)
		updated, err := svc.UpdateFund(ctx, fund.ID, request.UpdateFundRequest{Status: &status})
		if err != nil {
			t.Fatalf("UpdateFund() returned unexpected error: %v", err)
		}

		if updated.Status != model.FundStatusClosed {
			t.Errorf("Expected closed, got %s", updated.Status)
		}
		if updated.Name != "Fund I" || updated.VintageYear != 2022 {
			t.Errorf("Expected untouched name and vintage, got %q %d", updated.Name, updated.VintageYear)
		}
	})

	t.Run("update unknown fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		_, err := svc.UpdateFund(ctx, testutil.MakeID(), request.UpdateFundRequest{})
		if !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}
	})

	t.Run("delete cascades commitments and untags rounds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		fund := testutil.NewFund().Build(t, db)
		inv := testutil.NewInvestor().Build(t, db)
		testutil.NewCommitment(inv.ID, fund.ID).Build(t, db)
		company := testutil.NewCompany().Build(t, db)
		testutil.NewRound(company.ID).WithFund(fund.ID).Build(t, db)

		if err := svc.DeleteFund(ctx, fund.ID); err != nil {
			t.Fatalf("DeleteFund() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, "fund", 0)
		testutil.AssertRowCount(t, db, "commitment", 0)
		testutil.AssertRowCount(t, db, "financing_round", 1)

		var tagged int
		if err := db.QueryRow(`SELECT COUNT(*) FROM financing_round WHERE fund_id IS NOT NULL`).Scan(&tagged); err != nil {
			t.Fatalf("Failed to count tagged rounds: %v", err)
		}
		if tagged != 0 {
			t.Errorf("Expected round to be untagged, %d still tagged", tagged)
		}
	})

	t.Run("delete unknown fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		if err := svc.DeleteFund(ctx, testutil.MakeID()); !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}
	})
}

// TestFundService_GetFundProgress tests fundraising progress against target.
//
// WHY: A fund that raised past its target must report the overshoot instead of capping at
// 100%, and the closed-only scope must ignore pipeline commitments that are not yet signed.
func TestFundService_GetFundProgress(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*service.FundService, model.Fund) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		fund := testutil.CreateFund(t, db, "10000000")
		for _, amount := range []string{"5000000", "4500000", "3000000"} {
			inv := testutil.NewInvestor().Build(t, db)
			testutil.NewCommitment(inv.ID, fund.ID).
				WithStage(model.StageClosed).
				WithAmounts(amount, "0", "0").
				Build(t, db)
		}
		pipeline := testutil.NewInvestor().Build(t, db)
		testutil.NewCommitment(pipeline.ID, fund.ID).
			WithStage(model.StageMeeting).
			WithAmounts("2000000", "0", "0").
			Build(t, db)

		// A commitment in another fund must not leak in.
		other := testutil.CreateFund(t, db, "1")
		testutil.NewCommitment(pipeline.ID, other.ID).
			WithStage(model.StageClosed).
			WithAmounts("9999999", "0", "0").
			Build(t, db)

		return svc, fund
	}

	t.Run("closed only is oversubscribed by 2.5M", func(t *testing.T) {
		svc, fund := setup(t)

		p, err := svc.GetFundProgress(ctx, fund.ID, valuation.ScopeClosedOnly)
		if err != nil {
			t.Fatalf("GetFundProgress() returned unexpected error: %v", err)
		}

		if !p.IsOversubscribed {
			t.Error("Expected fund to be oversubscribed")
		}
		if got := p.PercentOfTarget.String(); got != "125.00" {
			t.Errorf("Expected 125.00 percent, got %s", got)
		}
		if !p.OversubscribedBy.Equal(testutil.MustDecimal(t, "2500000")) {
			t.Errorf("Expected oversubscribed by 2500000, got %s", p.OversubscribedBy)
		}
		if p.ClosedCount != 3 {
			t.Errorf("Expected 3 closed commitments, got %d", p.ClosedCount)
		}
	})

	t.Run("all stages includes pipeline", func(t *testing.T) {
		svc, fund := setup(t)

		p, err := svc.GetFundProgress(ctx, fund.ID, valuation.ScopeAllStages)
		if err != nil {
			t.Fatalf("GetFundProgress() returned unexpected error: %v", err)
		}

		if !p.Committed.Equal(testutil.MustDecimal(t, "14500000")) {
			t.Errorf("Expected committed 14500000, got %s", p.Committed)
		}
		if p.PipelineCount != 1 {
			t.Errorf("Expected 1 pipeline commitment, got %d", p.PipelineCount)
		}
	})

	t.Run("all funds", func(t *testing.T) {
		svc, _ := setup(t)

		all, err := svc.GetAllFundProgress(ctx, valuation.ScopeClosedOnly)
		if err != nil {
			t.Fatalf("GetAllFundProgress() returned unexpected error: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("Expected 2 funds, got %d", len(all))
		}
	})

	t.Run("stage breakdown", func(t *testing.T) {
		svc, fund := setup(t)

		stages, err := svc.GetStageBreakdown(ctx, fund.ID)
		if err != nil {
			t.Fatalf("GetStageBreakdown() returned unexpected error: %v", err)
		}
		if len(stages) != len(model.PipelineStages) {
			t.Fatalf("Expected %d stages, got %d", len(model.PipelineStages), len(stages))
		}
		if stages[model.StageClosed].Count != 3 || stages[model.StageMeeting].Count != 1 {
			t.Errorf("Unexpected stage counts: %+v", stages)
		}
	})

	t.Run("unknown fund", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.GetFundProgress(ctx, testutil.MakeID(), valuation.ScopeAllStages)
		if !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}
		_, err = svc.GetStageBreakdown(ctx, testutil.MakeID())
		if !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}
	})
}
