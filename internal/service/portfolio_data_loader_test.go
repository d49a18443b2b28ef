package service

import (
	"testing"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// WHY: snapshot tables are read concurrently, so a fund deleted between the reads can leave
// commitments behind that point at it. They must not reach the aggregates.
func TestDropCommitmentsWithoutFund(t *testing.T) {
	funds := []model.Fund{{ID: "f1"}, {ID: "f2"}}
	commitments := []model.Commitment{
		{ID: "c1", FundID: "f1"},
		{ID: "c2", FundID: "gone"},
		{ID: "c3", FundID: "f2"},
	}

	kept := dropCommitmentsWithoutFund(commitments, funds)

	if len(kept) != 2 {
		t.Fatalf("Expected 2 commitments, got %d", len(kept))
	}
	if kept[0].ID != "c1" || kept[1].ID != "c3" {
		t.Errorf("Expected c1 and c3 in order, got %s and %s", kept[0].ID, kept[1].ID)
	}

	if got := dropCommitmentsWithoutFund(nil, funds); len(got) != 0 {
		t.Errorf("Expected no commitments, got %d", len(got))
	}
}
