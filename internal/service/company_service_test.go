package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/request"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/apperrors"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/testutil"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/valuation"
)

// TestCompanyService_Rounds tests recording and correcting financing rounds.
//
// WHY: Rounds carry the per-company sequence that breaks FMV ties between rounds sharing a
// date. The store must assign it in insertion order so a correction entered later on the
// same day becomes the price.
func TestCompanyService_Rounds(t *testing.T) {
	ctx := context.Background()

	t.Run("add round assigns increasing sequence", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCompanyService(t, db)
		company := testutil.NewCompany().Build(t, db)

		first, err := svc.AddRound(ctx, company.ID, request.CreateRoundRequest{
			InstrumentType: "SeriesA",
			InvestmentDate: "2024-03-01",
			InvestedAmount: testutil.MustDecimal(t, "1000000"),
			CostPerShare:   ptr(testutil.MustDecimal(t, "4.00")),
		})
		if err != nil {
			t.Fatalf("AddRound() returned unexpected error: %v", err)
		}
		second, err := svc.AddRound(ctx, company.ID, request.CreateRoundRequest{
			InstrumentType: "SeriesA-1",
			InvestmentDate: "2024-03-01",
			InvestedAmount: testutil.MustDecimal(t, "500000"),
			CostPerShare:   ptr(testutil.MustDecimal(t, "5.00")),
		})
		if err != nil {
			t.Fatalf("AddRound() returned unexpected error: %v", err)
		}

		if second.Sequence <= first.Sequence {
			t.Errorf("Expected sequence to increase, got %d then %d", first.Sequence, second.Sequence)
		}

		val, err := svc.GetCompanyValuation(ctx, company.ID, "")
		if err != nil {
			t.Fatalf("GetCompanyValuation() returned unexpected error: %v", err)
		}
		if val.FMV.RoundID != second.ID {
			t.Errorf("Expected the later insertion to set FMV, got round %s", val.FMV.RoundID)
		}
		if !val.FMV.PricePerShare.Equal(testutil.MustDecimal(t, "5")) {
			t.Errorf("Expected FMV 5, got %s", val.FMV.PricePerShare)
		}
	})

	t.Run("add round to unknown company", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCompanyService(t, db)

		_, err := svc.AddRound(ctx, testutil.MakeID(), request.CreateRoundRequest{
			InstrumentType: "Seed",
			InvestmentDate: "2024-03-01",
		})
		if !errors.Is(err, apperrors.ErrCompanyNotFound) {
			t.Errorf("Expected ErrCompanyNotFound, got %v", err)
		}
	})

	t.Run("add round tagged with unknown fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCompanyService(t, db)
		company := testutil.NewCompany().Build(t, db)

		missing := testutil.MakeID()
		_, err := svc.AddRound(ctx, company.ID, request.CreateRoundRequest{
			FundID:         &missing,
			InstrumentType: "Seed",
			InvestmentDate: "2024-03-01",
		})
		if !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}
		testutil.AssertRowCount(t, db, "financing_round", 0)
	})

	t.Run("update round clears fund tag and converts SAFE", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCompanyService(t, db)
		fund := testutil.NewFund().Build(t, db)
		company := testutil.NewCompany().Build(t, db)
		round := testutil.NewRound(company.ID).
			WithFund(fund.ID).
			WithInstrument(model.InstrumentSAFE).
			WithInvested("800000").
			Build(t, db)

		converted := true
		updated, err := svc.UpdateRound(ctx, round.ID, request.UpdateRoundRequest{
			ClearFund: true,
			Converted: &converted,
		})
		if err != nil {
			t.Fatalf("UpdateRound() returned unexpected error: %v", err)
		}

		if updated.FundID != nil {
			t.Errorf("Expected fund tag to be cleared, got %s", *updated.FundID)
		}
		if !updated.Converted {
			t.Error("Expected round to be converted")
		}
		if updated.Sequence != round.Sequence {
			t.Errorf("Expected sequence %d to be kept, got %d", round.Sequence, updated.Sequence)
		}
	})

	t.Run("omitted converted flag defaults to converted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCompanyService(t, db)
		repos := testutil.NewTestRepositories(t, db)
		company := testutil.NewCompany().Build(t, db)

		tests := []struct {
			name       string
			instrument string
			converted  *bool
			want       bool
		}{
			{"priced round without flag", "SeriesA", nil, true},
			{"priced round cannot be unconverted", "Seed", ptr(false), true},
			{"SAFE without flag", "SAFE", nil, true},
			{"SAFE marked unconverted", "SAFE", ptr(false), false},
		}

		for _, tt := range tests {
			created, err := svc.AddRound(ctx, company.ID, request.CreateRoundRequest{
				InstrumentType: tt.instrument,
				InvestmentDate: "2024-01-01",
				InvestedAmount: testutil.MustDecimal(t, "100"),
				CostPerShare:   ptr(testutil.MustDecimal(t, "10")),
				Converted:      tt.converted,
			})
			if err != nil {
				t.Fatalf("%s: AddRound() returned unexpected error: %v", tt.name, err)
			}

			stored, err := repos.Round.GetRound(ctx, created.ID)
			if err != nil {
				t.Fatalf("%s: GetRound() returned unexpected error: %v", tt.name, err)
			}
			if stored.Converted != tt.want {
				t.Errorf("%s: expected Converted=%v, got %v", tt.name, tt.want, stored.Converted)
			}
		}
	})

	t.Run("changing instrument keeps priced rounds converted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCompanyService(t, db)
		company := testutil.NewCompany().Build(t, db)

		priced, err := svc.AddRound(ctx, company.ID, request.CreateRoundRequest{
			InstrumentType: "SeriesA",
			InvestmentDate: "2024-01-01",
			InvestedAmount: testutil.MustDecimal(t, "100"),
		})
		if err != nil {
			t.Fatalf("AddRound() returned unexpected error: %v", err)
		}
		updated, err := svc.UpdateRound(ctx, priced.ID, request.UpdateRoundRequest{InstrumentType: ptr("SAFE")})
		if err != nil {
			t.Fatalf("UpdateRound() returned unexpected error: %v", err)
		}
		if !updated.Converted {
			t.Error("Expected a priced round retyped as SAFE to stay converted")
		}

		safe := testutil.NewRound(company.ID).WithInstrument(model.InstrumentSAFE).Build(t, db)
		updated, err = svc.UpdateRound(ctx, safe.ID, request.UpdateRoundRequest{InstrumentType: ptr("SeriesA")})
		if err != nil {
			t.Fatalf("UpdateRound() returned unexpected error: %v", err)
		}
		if !updated.Converted {
			t.Error("Expected an unconverted SAFE retyped as SeriesA to become converted")
		}
	})

	t.Run("delete unknown round", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCompanyService(t, db)

		if err := svc.DeleteRound(ctx, testutil.MakeID()); !errors.Is(err, apperrors.ErrRoundNotFound) {
			t.Errorf("Expected ErrRoundNotFound, got %v", err)
		}
	})
}

// TestCompanyService_Valuation tests the company valuation endpoint logic.
//
// WHY: A manual override must win over round prices, including an explicit zero, and clearing
// it must put the latest round back in charge.
func TestCompanyService_Valuation(t *testing.T) {
	ctx := context.Background()

	t.Run("override wins and can be cleared", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCompanyService(t, db)
		company := testutil.NewCompany().WithOverride("0").Build(t, db)
		testutil.NewRound(company.ID).
			WithInvested("1000000").
			WithShares(100000).
			WithCostPerShare("10").
			Build(t, db)

		val, err := svc.GetCompanyValuation(ctx, company.ID, "")
		if err != nil {
			t.Fatalf("GetCompanyValuation() returned unexpected error: %v", err)
		}
		if val.FMV.Source != valuation.FMVSourceOverride {
			t.Errorf("Expected override FMV, got %s", val.FMV.Source)
		}

		if _, err := svc.UpdateCompany(ctx, company.ID, request.UpdateCompanyRequest{ClearManualFMVOverride: true}); err != nil {
			t.Fatalf("UpdateCompany() returned unexpected error: %v", err)
		}

		val, err = svc.GetCompanyValuation(ctx, company.ID, "")
		if err != nil {
			t.Fatalf("GetCompanyValuation() returned unexpected error: %v", err)
		}
		if val.FMV.Source != valuation.FMVSourceLatestRound {
			t.Errorf("Expected latest round FMV after clearing override, got %s", val.FMV.Source)
		}
		if !val.Value.Equal(testutil.MustDecimal(t, "1000000")) {
			t.Errorf("Expected value 1000000, got %s", val.Value)
		}
	})

	t.Run("unconverted SAFE is valued at cost", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCompanyService(t, db)
		company := testutil.NewCompany().Build(t, db)
		testutil.NewRound(company.ID).
			WithInstrument(model.InstrumentSAFE).
			WithInvested("800000").
			WithCostPerShare("3.00").
			Build(t, db)

		val, err := svc.GetCompanyValuation(ctx, company.ID, "")
		if err != nil {
			t.Fatalf("GetCompanyValuation() returned unexpected error: %v", err)
		}

		r := val.Rounds[0]
		if !r.Value.Equal(testutil.MustDecimal(t, "800000")) || !r.Shares.IsZero() {
			t.Errorf("Expected value 800000 and no shares, got %s and %s", r.Value, r.Shares)
		}
		if r.MOIC.Multiple() != "1.00x" {
			t.Errorf("Expected 1.00x, got %s", r.MOIC.Multiple())
		}
	})

	t.Run("unknown company", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCompanyService(t, db)

		_, err := svc.GetCompanyValuation(ctx, testutil.MakeID(), "")
		if !errors.Is(err, apperrors.ErrCompanyNotFound) {
			t.Errorf("Expected ErrCompanyNotFound, got %v", err)
		}
	})

	t.Run("delete removes rounds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCompanyService(t, db)
		company := testutil.NewCompany().Build(t, db)
		testutil.NewRound(company.ID).Build(t, db)

		if err := svc.DeleteCompany(ctx, company.ID); err != nil {
			t.Fatalf("DeleteCompany() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "financing_round", 0)
	})
}

func ptr[T any](v T) *T {
	return &v
}
