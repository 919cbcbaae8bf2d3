package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/pantrywise/consumption-service/internal/household"
	"github.com/pantrywise/consumption-service/internal/model"
	"github.com/pantrywise/consumption-service/internal/pattern"
	"github.com/pantrywise/consumption-service/internal/pattern/dto"
	"github.com/pantrywise/consumption-service/pkg/logger"
)

type fakeUseCase struct {
	days           int
	predictionType string
	patterns       []model.Pattern
}

func (f *fakeUseCase) PredictedDays(ctx context.Context, householdID int64, itemName string) (int, string, error) {
	return f.days, f.predictionType, nil
}

func (f *fakeUseCase) PredictedDaysForQuantity(ctx context.Context, householdID int64, itemName string, quantity float64, unit string) (int, string, error) {
	return f.days, f.predictionType, nil
}

func (f *fakeUseCase) ApplyObservationTx(ctx context.Context, tx sqlx.ExtContext, obs *dto.Observation) (*model.Pattern, error) {
	return nil, nil
}

func (f *fakeUseCase) Find(ctx context.Context, householdID int64, itemName string) (*model.Pattern, error) {
	return nil, nil
}

func (f *fakeUseCase) ListPatterns(ctx context.Context, filters *dto.PatternFilters) ([]model.Pattern, error) {
	return f.patterns, nil
}

type fakeHouseholdRepo struct{}

func (fakeHouseholdRepo) FindByID(ctx context.Context, id int64) (*model.Household, error) {
	if id == 1 {
		return &model.Household{ID: 1, HostID: 10}, nil
	}
	return nil, nil
}

func (fakeHouseholdRepo) IsMember(ctx context.Context, householdID, userID int64) (bool, error) {
	return userID == 11, nil
}

func (fakeHouseholdRepo) ListIDsWithItems(ctx context.Context) ([]int64, error) {
	return nil, nil
}

func newRouter(uc pattern.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPatternHandler(uc, household.NewAccess(fakeHouseholdRepo{}), logger.NewNop())
	r := gin.New()
	r.GET("/predict", h.Predict)
	r.GET("/patterns", h.Patterns)
	return r
}

func doGet(t *testing.T, r *gin.Engine, url, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPredictOK(t *testing.T) {
	r := newRouter(&fakeUseCase{days: 5, predictionType: pattern.PredictionPersonalized})

	w := doGet(t, r, "/predict?household_id=1&item_name=milk", "11")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	var body struct {
		PredictedDays  int    `json:"predicted_days"`
		PredictionType string `json:"prediction_type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.PredictedDays != 5 || body.PredictionType != pattern.PredictionPersonalized {
		t.Errorf("body = %+v", body)
	}
}

func TestPredictValidation(t *testing.T) {
	r := newRouter(&fakeUseCase{})

	cases := []struct {
		name string
		url  string
		user string
		want int
	}{
		{"missing user", "/predict?household_id=1&item_name=milk", "", http.StatusUnauthorized},
		{"missing household", "/predict?item_name=milk", "11", http.StatusBadRequest},
		{"missing item", "/predict?household_id=1", "11", http.StatusBadRequest},
		{"bad quantity", "/predict?household_id=1&item_name=milk&quantity=-2", "11", http.StatusBadRequest},
		{"unknown household", "/predict?household_id=9&item_name=milk", "11", http.StatusNotFound},
		{"not a member", "/predict?household_id=1&item_name=milk", "55", http.StatusForbidden},
	}
	for _, tc := range cases {
		if w := doGet(t, r, tc.url, tc.user); w.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, w.Code, tc.want)
		}
	}
}

func TestPatternsList(t *testing.T) {
	r := newRouter(&fakeUseCase{patterns: []model.Pattern{
		{HouseholdID: 1, ItemName: "milk", SampleCount: 3},
	}})

	w := doGet(t, r, "/patterns?household_id=1", "11")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 {
		t.Errorf("total = %d, want 1", body.Total)
	}
}
