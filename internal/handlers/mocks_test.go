package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"momopress/internal/budget"
	"momopress/internal/middleware"
	"momopress/internal/models"
	"momopress/internal/pagination"
	"momopress/internal/services"
	"momopress/internal/validator"
)

const testPhone = "0781234567"

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// --- mock services ---

type mockUserService struct {
	createUserFn     func(phone, name, password string) (*models.User, error)
	getUserByPhoneFn func(phone string) (*models.User, error)
	attemptLoginFn   func(phone, password string) (*models.User, error)
	updateNameFn     func(phone, name string) (*models.User, error)
}

func (m *mockUserService) CreateUser(_ context.Context, phone, name, password string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(phone, name, password)
	}
	return &models.User{Phone: phone, Name: name}, nil
}

func (m *mockUserService) GetUserByPhone(_ context.Context, phone string) (*models.User, error) {
	if m.getUserByPhoneFn != nil {
		return m.getUserByPhoneFn(phone)
	}
	return &models.User{Phone: phone}, nil
}

func (m *mockUserService) VerifyPassword(_ *models.User, _ string) bool { return true }

func (m *mockUserService) AttemptLogin(_ context.Context, phone, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(phone, password)
	}
	return &models.User{Phone: phone}, nil
}

func (m *mockUserService) UpdateName(_ context.Context, phone, name string) (*models.User, error) {
	if m.updateNameFn != nil {
		return m.updateNameFn(phone, name)
	}
	return &models.User{Phone: phone, Name: name}, nil
}

func (m *mockUserService) UpdateBalance(context.Context, string, int64, time.Time) error { return nil }

func (m *mockUserService) ListPhones(context.Context) ([]string, error) { return nil, nil }

type auditEntry struct {
	phone, action string
	changes       map[string]interface{}
}

type mockAuditService struct {
	mu      sync.Mutex
	entries []auditEntry
	listFn  func(phone string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}

func (m *mockAuditService) Log(_ context.Context, phone, action, _, _, _ string, changes map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, auditEntry{phone: phone, action: action, changes: changes})
}

func (m *mockAuditService) List(_ context.Context, phone string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
	if m.listFn != nil {
		return m.listFn(phone, page)
	}
	resp := pagination.NewPageResponse([]models.AuditLog{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockAuditService) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.entries {
		out = append(out, e.action)
	}
	return out
}

type mockBudgetService struct {
	getLimitsFn       func(phone string) (*models.BudgetLimits, error)
	upsertLimitsFn    func(limits models.BudgetLimits) (*models.BudgetLimits, error)
	setGeneralLimitFn func(phone string, general int64) (*models.BudgetLimits, error)
	checkAlertsFn     func(phone string, now time.Time) ([]budget.Alert, error)
}

func (m *mockBudgetService) GetLimits(_ context.Context, phone string) (*models.BudgetLimits, error) {
	if m.getLimitsFn != nil {
		return m.getLimitsFn(phone)
	}
	return &models.BudgetLimits{Phone: phone}, nil
}

func (m *mockBudgetService) UpsertLimits(_ context.Context, limits models.BudgetLimits) (*models.BudgetLimits, error) {
	if m.upsertLimitsFn != nil {
		return m.upsertLimitsFn(limits)
	}
	return &limits, nil
}

func (m *mockBudgetService) SetGeneralLimit(_ context.Context, phone string, general int64) (*models.BudgetLimits, error) {
	if m.setGeneralLimitFn != nil {
		return m.setGeneralLimitFn(phone, general)
	}
	return &models.BudgetLimits{Phone: phone, General: general}, nil
}

func (m *mockBudgetService) CheckAlerts(_ context.Context, phone string, now time.Time) ([]budget.Alert, error) {
	if m.checkAlertsFn != nil {
		return m.checkAlertsFn(phone, now)
	}
	return nil, nil
}

type mockSyncService struct {
	syncFn func(phone string, incremental bool) (*services.SyncResult, error)
}

func (m *mockSyncService) Sync(_ context.Context, phone string, incremental bool) (*services.SyncResult, error) {
	if m.syncFn != nil {
		return m.syncFn(phone, incremental)
	}
	return &services.SyncResult{Incremental: incremental, Alerts: []budget.Alert{}}, nil
}

type mockCheckpointService struct {
	getFn func(phone string) (*models.SyncCheckpoint, error)
}

func (m *mockCheckpointService) Get(_ context.Context, phone string) (*models.SyncCheckpoint, error) {
	if m.getFn != nil {
		return m.getFn(phone)
	}
	return &models.SyncCheckpoint{Phone: phone}, nil
}

func (m *mockCheckpointService) LastSyncedAt(context.Context, string) (time.Time, error) {
	return time.Time{}, nil
}

func (m *mockCheckpointService) Advance(_ context.Context, phone string, at, _ time.Time, _ int) (*models.SyncCheckpoint, error) {
	return &models.SyncCheckpoint{Phone: phone, LastSyncedAt: at}, nil
}

type mockStatsService struct {
	overviewFn func(phone string, period budget.Period, now time.Time) (*services.SpendingOverview, error)
	historyFn  func(phone string, filter services.HistoryFilter, page pagination.PageRequest, now time.Time) (*services.History, error)
}

func (m *mockStatsService) Overview(_ context.Context, phone string, period budget.Period, now time.Time) (*services.SpendingOverview, error) {
	if m.overviewFn != nil {
		return m.overviewFn(phone, period, now)
	}
	return &services.SpendingOverview{Period: period}, nil
}

func (m *mockStatsService) History(_ context.Context, phone string, filter services.HistoryFilter, page pagination.PageRequest, now time.Time) (*services.History, error) {
	if m.historyFn != nil {
		return m.historyFn(phone, filter, page, now)
	}
	return &services.History{PageResponse: pagination.NewPageResponse([]models.Entry{}, 1, 20, 0)}, nil
}

type mockInboxService struct {
	stageFn func(phone string, msgs []models.RawMessage) (int, error)
}

func (m *mockInboxService) Stage(_ context.Context, phone string, msgs []models.RawMessage) (int, error) {
	if m.stageFn != nil {
		return m.stageFn(phone, msgs)
	}
	return len(msgs), nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectPhone(phone string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.PhoneKey, phone)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
