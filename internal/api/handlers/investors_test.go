package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/handlers"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/testutil"
)

var owners = []string{"Sarah Chen", "Marcus Webb"}

func TestInvestorHandler_CreateInvestor(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantField  string
	}{
		{"creates investor", `{"displayName":"Alex Kim","firmName":"Kim Ventures","tier":"Institutional","relationshipOwner":"Sarah Chen"}`, http.StatusCreated, ""},
		{"owner is optional", `{"displayName":"Alex Kim","tier":"HNW"}`, http.StatusCreated, ""},
		{"unknown owner", `{"displayName":"Alex Kim","tier":"HNW","relationshipOwner":"Nobody"}`, http.StatusBadRequest, "relationshipOwner"},
		{"invalid tier", `{"displayName":"Alex Kim","tier":"Whale"}`, http.StatusBadRequest, "tier"},
		{"invalid email", `{"displayName":"Alex Kim","tier":"HNW","email":"not-an-email"}`, http.StatusBadRequest, "email"},
		{"missing name", `{"tier":"HNW"}`, http.StatusBadRequest, "displayName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			handler := handlers.NewInvestorHandler(testutil.NewTestInvestorService(t, db), owners)

			req := testutil.NewJSONRequest(http.MethodPost, "/api/investor", tt.body, nil)
			w := httptest.NewRecorder()

			handler.CreateInvestor(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantField == "" {
				return
			}

			resp := decodeError(t, w)
			fields, ok := resp.Details.(map[string]any)
			if !ok {
				t.Fatalf("Expected field details, got %v", resp.Details)
			}
			if _, ok := fields[tt.wantField]; !ok {
				t.Errorf("Expected error on %s, got %v", tt.wantField, fields)
			}
		})
	}
}

func TestInvestorHandler_Directory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewInvestorHandler(testutil.NewTestInvestorService(t, db), owners)

	fund := testutil.NewFund().Build(t, db)
	kim := testutil.NewInvestor().WithName("Alex Kim", "Kim Ventures").WithPartner("Sarah Chen").Build(t, db)
	testutil.NewInvestor().WithName("Blair Stone", "Stone Capital").WithPartner("Marcus Webb").Build(t, db)
	testutil.NewCommitment(kim.ID, fund.ID).
		WithStage(model.StageClosed).
		WithAmounts("1000000", "1000000", "1500000").
		Build(t, db)

	tests := []struct {
		name   string
		params map[string]string
		want   int
	}{
		{"everyone", nil, 2},
		{"by partner", map[string]string{"partner": "Sarah Chen"}, 1},
		{"by query", map[string]string{"q": "stone"}, 1},
		{"no match", map[string]string{"partner": "Marcus Webb", "q": "kim"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/investor/rollup", tt.params)
			w := httptest.NewRecorder()

			handler.Directory(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}

			var got []map[string]any
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Expected %d rollups, got %d", tt.want, len(got))
			}
		})
	}

	t.Run("rollup of one investor", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/investor/"+kim.ID+"/rollup", map[string]string{"uuid": kim.ID})
		w := httptest.NewRecorder()

		handler.Rollup(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var got map[string]any
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if got["tvpi"] != 1.5 || got["dpi"] != float64(0) {
			t.Errorf("Expected TVPI 1.5 and DPI 0, got %v and %v", got["tvpi"], got["dpi"])
		}
		if got["topStage"] != "closed" {
			t.Errorf("Expected top stage closed, got %v", got["topStage"])
		}
	})

	t.Run("rollup of unknown investor", func(t *testing.T) {
		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/investor/"+id+"/rollup", map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.Rollup(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

func TestInvestorHandler_UpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewInvestorHandler(testutil.NewTestInvestorService(t, db), owners)
	inv := testutil.NewInvestor().WithName("Alex Kim", "Kim Ventures").Build(t, db)
	params := map[string]string{"uuid": inv.ID}

	t.Run("reassigns owner", func(t *testing.T) {
		req := testutil.NewJSONRequest(http.MethodPut, "/api/investor/"+inv.ID, `{"relationshipOwner":"Marcus Webb"}`, params)
		w := httptest.NewRecorder()

		handler.UpdateInvestor(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var got model.Investor
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if got.RelationshipOwner != "Marcus Webb" || got.DisplayName != "Alex Kim" {
			t.Errorf("Unexpected investor after update: %+v", got)
		}
	})

	t.Run("get investor", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/investor/"+inv.ID, params)
		w := httptest.NewRecorder()

		handler.GetInvestor(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})

	t.Run("deletes investor", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/investor/"+inv.ID, params)
		w := httptest.NewRecorder()

		handler.DeleteInvestor(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		testutil.AssertRowCount(t, db, "investor", 0)
	})
}
