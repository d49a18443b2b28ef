package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/service"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/testutil"
)

// TestDigestService_Run tests the scheduled digest.
//
// WHY: The digest is the only output of the scheduler. Closed funds are not fundraising any more
// and must be left out, but the portfolio line is always written.
func TestDigestService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("logs raising funds and portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		seedFirm(t, db)
		logger, hook := test.NewNullLogger()
		svc := service.NewDigestService(testutil.NewTestDashboardService(t, db), logger)

		if err := svc.Run(ctx); err != nil {
			t.Fatalf("Run() returned unexpected error: %v", err)
		}

		entries := hook.AllEntries()
		if len(entries) != 2 {
			t.Fatalf("Expected 2 log entries, got %d", len(entries))
		}

		fund := entries[0]
		if fund.Message != "digest: fundraising progress" {
			t.Errorf("Unexpected first message %q", fund.Message)
		}
		want := logrus.Fields{
			"fund":             "Fund I",
			"committed":        "$8.0M",
			"target":           "$10.0M",
			"percentOfTarget":  "80.0%",
			"oversubscribedBy": "$0",
			"pipeline":         1,
		}
		for k, v := range want {
			if fund.Data[k] != v {
				t.Errorf("Expected %s=%v, got %v", k, v, fund.Data[k])
			}
		}

		portfolio := entries[1]
		if portfolio.Message != "digest: portfolio" {
			t.Errorf("Unexpected second message %q", portfolio.Message)
		}
		if portfolio.Data["companies"] != 1 || portfolio.Data["invested"] != "$500K" || portfolio.Data["moic"] != "1.00x" {
			t.Errorf("Unexpected portfolio fields: %v", portfolio.Data)
		}
	})

	t.Run("empty database still logs portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		logger, hook := test.NewNullLogger()
		svc := service.NewDigestService(testutil.NewTestDashboardService(t, db), logger)

		if err := svc.Run(ctx); err != nil {
			t.Fatalf("Run() returned unexpected error: %v", err)
		}

		entry := hook.LastEntry()
		if entry == nil || entry.Message != "digest: portfolio" {
			t.Fatalf("Expected a portfolio entry, got %v", entry)
		}
		if entry.Data["moic"] != "—" {
			t.Errorf("Expected undefined MOIC, got %v", entry.Data["moic"])
		}
	})

	t.Run("database error is returned without logging", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		logger, hook := test.NewNullLogger()
		svc := service.NewDigestService(testutil.NewTestDashboardService(t, db), logger)
		db.Close()

		err := svc.Run(ctx)
		if err == nil {
			t.Fatal("Run() expected error on closed database, got nil")
		}
		if !strings.HasPrefix(err.Error(), "digest: failed to build dashboard") {
			t.Errorf("Expected wrapped dashboard error, got %v", err)
		}
		if n := len(hook.AllEntries()); n != 0 {
			t.Errorf("Expected the failure to be left to the scheduler, got %d log entries", n)
		}
	})
}
