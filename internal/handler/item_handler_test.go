package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harukimori/inventory-backend/internal/model"
	"github.com/harukimori/inventory-backend/internal/query"
	"github.com/harukimori/inventory-backend/internal/service"
)

type stubItemService struct{}

func (s *stubItemService) Create(context.Context, string, service.CreateItemInput) (*model.InventoryItem, error) {
	return nil, errors.New("not implemented")
}

func (s *stubItemService) Get(context.Context, string, string) (*model.InventoryItem, error) {
	return nil, errors.New("not implemented")
}

func (s *stubItemService) List(context.Context, string, query.Config, time.Time) ([]model.InventoryItem, error) {
	return nil, nil
}

func (s *stubItemService) Delete(context.Context, string, string) error { return nil }

func (s *stubItemService) ExportCSV(context.Context, string, query.Config, time.Time) (string, string, error) {
	return "", "", nil
}

func (s *stubItemService) Dashboard(context.Context, string, time.Time) (*service.DashboardData, error) {
	return &service.DashboardData{}, nil
}

type stubNotificationService struct {
	sweptUIDs []string
	sweepErr  error
}

func (s *stubNotificationService) Notify(context.Context, string, string, string, string, *string) {
}

func (s *stubNotificationService) List(context.Context, string, bool, int) ([]model.Notification, int64, error) {
	return nil, 0, nil
}

func (s *stubNotificationService) MarkAllRead(context.Context, string) error { return nil }

func (s *stubNotificationService) SweepWarrantyAlerts(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (s *stubNotificationService) SweepUserWarrantyAlerts(_ context.Context, userUID string, _ time.Time) (int, error) {
	s.sweptUIDs = append(s.sweptUIDs, userUID)
	return 0, s.sweepErr
}

func dashboardRequest(t *testing.T, h *ItemHandler, uid string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", uid)
	if err := h.Dashboard(c); err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	return rec
}

func TestDashboardSweepsCallerAlerts(t *testing.T) {
	notifs := &stubNotificationService{}
	h := NewItemHandler(&stubItemService{}, notifs)

	rec := dashboardRequest(t, h, "user-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status got=%d want=%d", rec.Code, http.StatusOK)
	}
	if len(notifs.sweptUIDs) != 1 || notifs.sweptUIDs[0] != "user-1" {
		t.Fatalf("swept uids got=%v want=[user-1]", notifs.sweptUIDs)
	}
}

func TestDashboardSurvivesSweepFailure(t *testing.T) {
	notifs := &stubNotificationService{sweepErr: errors.New("db down")}
	h := NewItemHandler(&stubItemService{}, notifs)

	rec := dashboardRequest(t, h, "user-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status got=%d want=%d", rec.Code, http.StatusOK)
	}
}
