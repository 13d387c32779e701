package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khendev23/gap-cafe-type/internal/repositories"
	"github.com/khendev23/gap-cafe-type/internal/service"
	"github.com/khendev23/gap-cafe-type/models"
	"github.com/khendev23/gap-cafe-type/pkg/dbrouter"
)

type menuServiceMock struct {
	items []models.MenuItem
	best  []models.BestMenu
	err   error

	toggledID    int64
	toggledUseYN string
	lastTarget   dbrouter.Target
}

func (m *menuServiceMock) Menus(_ context.Context, target dbrouter.Target) ([]models.MenuItem, error) {
	m.lastTarget = target
	return m.items, m.err
}

func (m *menuServiceMock) SetAvailability(_ context.Context, target dbrouter.Target, menuID int64, useYN string) error {
	m.lastTarget = target
	m.toggledID = menuID
	m.toggledUseYN = useYN
	return m.err
}

func (m *menuServiceMock) BestSellers(_ context.Context, target dbrouter.Target) ([]models.BestMenu, error) {
	m.lastTarget = target
	return m.best, m.err
}

func TestMenus_Success(t *testing.T) {
	mock := &menuServiceMock{items: []models.MenuItem{
		{ID: 7, Name: "아메리카노", Category: models.CategoryCoffee, UseYN: models.UseYes},
		{ID: 12, Name: "제주녹차", Category: models.CategoryTea, UseYN: models.UseNo},
	}}
	h := NewMenuHandler(mock, testPools(t), testLogger())

	rec := httptest.NewRecorder()
	h.Menus(rec, postJSON(`{"ipAddress": "49.1.1.1"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"NAME":"아메리카노"`)
	assert.Contains(t, rec.Body.String(), `"USE_YN":"N"`)
	assert.Equal(t, dbrouter.TargetPrimary, mock.lastTarget)
}

func TestMenus_MissingIPAddress(t *testing.T) {
	h := NewMenuHandler(&menuServiceMock{}, testPools(t), testLogger())

	rec := httptest.NewRecorder()
	h.Menus(rec, postJSON(`{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMenus_QueryFailure(t *testing.T) {
	h := NewMenuHandler(&menuServiceMock{err: assert.AnError}, testPools(t), testLogger())

	rec := httptest.NewRecorder()
	h.Menus(rec, postJSON(`{"ipAddress": "49.1.1.1"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUpdateMenuUseYN_Success(t *testing.T) {
	mock := &menuServiceMock{}
	h := NewMenuHandler(mock, testPools(t), testLogger())

	rec := httptest.NewRecorder()
	h.UpdateMenuUseYN(rec, postJSON(`{"ipAddress": "49.1.1.1", "menuId": 7, "useYN": "N"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Equal(t, int64(7), mock.toggledID)
	assert.Equal(t, models.UseNo, mock.toggledUseYN)
}

func TestUpdateMenuUseYN_ValidationError(t *testing.T) {
	mock := &menuServiceMock{err: service.ErrValidation}
	h := NewMenuHandler(mock, testPools(t), testLogger())

	rec := httptest.NewRecorder()
	h.UpdateMenuUseYN(rec, postJSON(`{"ipAddress": "49.1.1.1", "menuId": 7, "useYN": "X"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMenuUseYN_UnknownMenu(t *testing.T) {
	mock := &menuServiceMock{err: repositories.ErrMenuItemNotFound}
	h := NewMenuHandler(mock, testPools(t), testLogger())

	rec := httptest.NewRecorder()
	h.UpdateMenuUseYN(rec, postJSON(`{"ipAddress": "49.1.1.1", "menuId": 999, "useYN": "N"}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBestMenus_Success(t *testing.T) {
	mock := &menuServiceMock{best: []models.BestMenu{
		{MenuID: 7, Count: 42},
		{MenuID: 3, Count: 17},
		{MenuID: 12, Count: 9},
	}}
	h := NewMenuHandler(mock, testPools(t), testLogger())

	rec := httptest.NewRecorder()
	h.BestMenus(rec, postJSON(`{"ipAddress": "203.0.113.9"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"MENU_ID":7`)
	assert.Contains(t, rec.Body.String(), `"cnt":42`)
	assert.Equal(t, dbrouter.TargetSecondary, mock.lastTarget)
}

func TestBestMenus_MissingIPAddress(t *testing.T) {
	h := NewMenuHandler(&menuServiceMock{}, testPools(t), testLogger())

	rec := httptest.NewRecorder()
	h.BestMenus(rec, postJSON(`{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
