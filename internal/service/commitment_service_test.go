package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/request"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/apperrors"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/testutil"
)

// TestCommitmentService_CreateCommitment tests recording LP commitments.
//
// WHY: An investor holds at most one commitment per fund, and a commitment must reference an
// existing investor and fund. Violations must surface as typed errors the API can map.
func TestCommitmentService_CreateCommitment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates commitment with default stage", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCommitmentService(t, db)
		fund := testutil.NewFund().Build(t, db)
		inv := testutil.NewInvestor().WithName("Dana Park", "Park Family Office").Build(t, db)

		c, err := svc.CreateCommitment(ctx, request.CreateCommitmentRequest{
			InvestorID:       inv.ID,
			FundID:           fund.ID,
			CommitmentAmount: testutil.MustDecimal(t, "2000000"),
		})
		if err != nil {
			t.Fatalf("CreateCommitment() returned unexpected error: %v", err)
		}

		if c.Stage != model.StageOutreach {
			t.Errorf("Expected outreach, got %s", c.Stage)
		}
		if c.InvestorName != "Dana Park" || c.InvestorFirm != "Park Family Office" {
			t.Errorf("Expected investor identity to be joined, got %q / %q", c.InvestorName, c.InvestorFirm)
		}
		testutil.AssertRowCount(t, db, "commitment", 1)
	})

	t.Run("second commitment to the same fund conflicts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCommitmentService(t, db)
		fund := testutil.NewFund().Build(t, db)
		inv := testutil.NewInvestor().Build(t, db)
		testutil.NewCommitment(inv.ID, fund.ID).Build(t, db)

		_, err := svc.CreateCommitment(ctx, request.CreateCommitmentRequest{InvestorID: inv.ID, FundID: fund.ID})
		if !errors.Is(err, apperrors.ErrDuplicateCommitment) {
			t.Errorf("Expected ErrDuplicateCommitment, got %v", err)
		}
	})

	t.Run("missing references", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCommitmentService(t, db)
		fund := testutil.NewFund().Build(t, db)
		inv := testutil.NewInvestor().Build(t, db)

		_, err := svc.CreateCommitment(ctx, request.CreateCommitmentRequest{InvestorID: testutil.MakeID(), FundID: fund.ID})
		if !errors.Is(err, apperrors.ErrInvestorNotFound) {
			t.Errorf("Expected ErrInvestorNotFound, got %v", err)
		}

		_, err = svc.CreateCommitment(ctx, request.CreateCommitmentRequest{InvestorID: inv.ID, FundID: testutil.MakeID()})
		if !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}
	})
}

// TestCommitmentService_Stage tests moving commitments through the pipeline.
//
// WHY: Stages have no transition graph. A commitment can jump straight from outreach to
// closed, and back again.
func TestCommitmentService_Stage(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestCommitmentService(t, db)
	fund := testutil.NewFund().Build(t, db)
	inv := testutil.NewInvestor().Build(t, db)
	c := testutil.NewCommitment(inv.ID, fund.ID).Build(t, db)

	for _, stage := range []string{"closed", "outreach", "signed"} {
		updated, err := svc.UpdateStage(ctx, c.ID, request.UpdateStageRequest{Stage: stage})
		if err != nil {
			t.Fatalf("UpdateStage(%s) returned unexpected error: %v", stage, err)
		}
		if updated.Stage.String() != stage {
			t.Errorf("Expected stage %s, got %s", stage, updated.Stage)
		}
	}

	_, err := svc.UpdateStage(ctx, testutil.MakeID(), request.UpdateStageRequest{Stage: "closed"})
	if !errors.Is(err, apperrors.ErrCommitmentNotFound) {
		t.Errorf("Expected ErrCommitmentNotFound, got %v", err)
	}
}

// TestCommitmentService_UpdateReturnsDistributions tests the body returned by updates.
//
// WHY: Clients replace their copy of a commitment with the update response, so it must carry
// the same distributions list as a fetch, and an empty list rather than null.
func TestCommitmentService_UpdateReturnsDistributions(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestCommitmentService(t, db)
	fund := testutil.NewFund().Build(t, db)
	inv := testutil.NewInvestor().Build(t, db)
	bare := testutil.NewCommitment(inv.ID, testutil.NewFund().Build(t, db).ID).Build(t, db)
	paid := testutil.NewCommitment(inv.ID, fund.ID).WithAmounts("1000", "1000", "900").Build(t, db)
	testutil.NewDistribution(paid.ID).WithAmount("100").Build(t, db)

	nav := testutil.MustDecimal(t, "950")
	updated, err := svc.UpdateCommitment(ctx, paid.ID, request.UpdateCommitmentRequest{CurrentNAV: &nav})
	if err != nil {
		t.Fatalf("UpdateCommitment() returned unexpected error: %v", err)
	}
	if len(updated.Distributions) != 1 {
		t.Errorf("Expected 1 distribution after update, got %d", len(updated.Distributions))
	}

	staged, err := svc.UpdateStage(ctx, paid.ID, request.UpdateStageRequest{Stage: "closed"})
	if err != nil {
		t.Fatalf("UpdateStage() returned unexpected error: %v", err)
	}
	if len(staged.Distributions) != 1 {
		t.Errorf("Expected 1 distribution after stage change, got %d", len(staged.Distributions))
	}

	for name, update := range map[string]func() (*model.Commitment, error){
		"update": func() (*model.Commitment, error) {
			return svc.UpdateCommitment(ctx, bare.ID, request.UpdateCommitmentRequest{CurrentNAV: &nav})
		},
		"stage": func() (*model.Commitment, error) {
			return svc.UpdateStage(ctx, bare.ID, request.UpdateStageRequest{Stage: "meeting"})
		},
	} {
		c, err := update()
		if err != nil {
			t.Fatalf("%s returned unexpected error: %v", name, err)
		}
		body, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("Failed to marshal commitment: %v", err)
		}
		if !strings.Contains(string(body), `"distributions":[]`) {
			t.Errorf("%s: expected an empty distributions list, got %s", name, body)
		}
	}
}

// TestCommitmentService_Distributions tests recording distributions and the per-position ratios.
//
// WHY: DPI and TVPI on a single position are computed from the summed distributions, and
// deleting a distribution must immediately change them since nothing is cached.
func TestCommitmentService_Distributions(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestCommitmentService(t, db)
	fund := testutil.NewFund().Build(t, db)
	inv := testutil.NewInvestor().Build(t, db)
	c := testutil.NewCommitment(inv.ID, fund.ID).
		WithStage(model.StageClosed).
		WithAmounts("5000000", "5000000", "6200000").
		Build(t, db)

	first, err := svc.AddDistribution(ctx, c.ID, request.CreateDistributionRequest{
		Date:   "2024-03-31",
		Amount: testutil.MustDecimal(t, "150000"),
		Type:   string(model.DistributionIncome),
	})
	if err != nil {
		t.Fatalf("AddDistribution() returned unexpected error: %v", err)
	}
	if _, err := svc.AddDistribution(ctx, c.ID, request.CreateDistributionRequest{
		Date:   "2024-09-30",
		Amount: testutil.MustDecimal(t, "200000"),
		Type:   string(model.DistributionReturnOfCapital),
	}); err != nil {
		t.Fatalf("AddDistribution() returned unexpected error: %v", err)
	}

	detail, err := svc.GetCommitment(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCommitment() returned unexpected error: %v", err)
	}
	if len(detail.Distributions) != 2 {
		t.Fatalf("Expected 2 distributions, got %d", len(detail.Distributions))
	}
	if got := detail.Position.DPI.String(); got != "0.07" {
		t.Errorf("Expected DPI 0.07, got %s", got)
	}
	if got := detail.Position.TVPI.String(); got != "1.31" {
		t.Errorf("Expected TVPI 1.31, got %s", got)
	}

	if err := svc.DeleteDistribution(ctx, first.ID); err != nil {
		t.Fatalf("DeleteDistribution() returned unexpected error: %v", err)
	}

	detail, err = svc.GetCommitment(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCommitment() returned unexpected error: %v", err)
	}
	if !detail.Position.TotalDistributions.Equal(testutil.MustDecimal(t, "200000")) {
		t.Errorf("Expected 200000 distributed after delete, got %s", detail.Position.TotalDistributions)
	}

	t.Run("distribution on unknown commitment", func(t *testing.T) {
		_, err := svc.AddDistribution(ctx, testutil.MakeID(), request.CreateDistributionRequest{
			Date:   "2024-01-01",
			Amount: testutil.MustDecimal(t, "1"),
			Type:   string(model.DistributionOther),
		})
		if !errors.Is(err, apperrors.ErrCommitmentNotFound) {
			t.Errorf("Expected ErrCommitmentNotFound, got %v", err)
		}
	})

	t.Run("delete unknown distribution", func(t *testing.T) {
		if err := svc.DeleteDistribution(ctx, testutil.MakeID()); !errors.Is(err, apperrors.ErrDistributionNotFound) {
			t.Errorf("Expected ErrDistributionNotFound, got %v", err)
		}
	})

	t.Run("list by unknown fund", func(t *testing.T) {
		if _, err := svc.GetCommitments(ctx, testutil.MakeID()); !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}
	})

	t.Run("deleting the commitment removes its distributions", func(t *testing.T) {
		if err := svc.DeleteCommitment(ctx, c.ID); err != nil {
			t.Fatalf("DeleteCommitment() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "distribution", 0)
	})
}
