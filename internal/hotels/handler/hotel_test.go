package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotelbook/pkg/auth"
	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockHotelService struct {
	searchFunc  func(ctx context.Context, location string) ([]*model.Hotel, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Hotel, error)
	listAllFunc func(ctx context.Context) ([]*model.Hotel, error)
	createFunc  func(ctx context.Context, in *model.HotelInput) (*model.Hotel, error)
	updateFunc  func(ctx context.Context, id string, in *model.HotelInput) (*model.Hotel, error)
}

func (m *mockHotelService) Search(ctx context.Context, location string) ([]*model.Hotel, error) {
	return m.searchFunc(ctx, location)
}

func (m *mockHotelService) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockHotelService) ListAll(ctx context.Context) ([]*model.Hotel, error) {
	return m.listAllFunc(ctx)
}

func (m *mockHotelService) Create(ctx context.Context, in *model.HotelInput) (*model.Hotel, error) {
	return m.createFunc(ctx, in)
}

func (m *mockHotelService) Update(ctx context.Context, id string, in *model.HotelInput) (*model.Hotel, error) {
	return m.updateFunc(ctx, id, in)
}

func serve(svc *mockHotelService, method, target, body, role string) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewHotelHandler(svc, logger.Discard()).RegisterRoutes(router)
	h := auth.NewAuthenticator("", nil, logger.Discard()).Middleware(router)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set(auth.HeaderUserID, "u1")
		req.Header.Set(auth.HeaderUserRole, role)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const hotelBody = `{"name":"Sea View","location":"Bodrum","basePrice":100,"rooms":[{"type":"Standard","capacity":2,"count":3,"price":100}]}`

func TestSearch_Public(t *testing.T) {
	svc := &mockHotelService{
		searchFunc: func(_ context.Context, location string) ([]*model.Hotel, error) {
			assert.Equal(t, "Bodrum", location)
			return []*model.Hotel{{ID: "h1", Name: "Sea View", Location: "Bodrum"}}, nil
		},
	}

	rec := serve(svc, http.MethodGet, "/search?location=Bodrum", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []model.Hotel `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "h1", body.Data[0].ID)
}

func TestSearch_StoreDown(t *testing.T) {
	svc := &mockHotelService{
		searchFunc: func(context.Context, string) ([]*model.Hotel, error) {
			return nil, apperrors.Unavailable("Hotel store")
		},
	}
	rec := serve(svc, http.MethodGet, "/search", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	svc := &mockHotelService{
		listAllFunc: func(context.Context) ([]*model.Hotel, error) { return []*model.Hotel{}, nil },
		createFunc: func(_ context.Context, in *model.HotelInput) (*model.Hotel, error) {
			return &model.Hotel{ID: "new", Name: in.Name}, nil
		},
		updateFunc: func(_ context.Context, id string, in *model.HotelInput) (*model.Hotel, error) {
			return &model.Hotel{ID: id, Name: in.Name}, nil
		},
	}

	assert.Equal(t, http.StatusUnauthorized, serve(svc, http.MethodGet, "/admin/hotels", "", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(svc, http.MethodPost, "/admin/hotels", hotelBody, "USER").Code)

	assert.Equal(t, http.StatusOK, serve(svc, http.MethodGet, "/admin/hotels", "", "ADMIN").Code)
	assert.Equal(t, http.StatusCreated, serve(svc, http.MethodPost, "/admin/hotels", hotelBody, "ADMIN").Code)

	rec := serve(svc, http.MethodPut, "/admin/hotels/h1", hotelBody, "ADMIN")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"h1"`)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := &mockHotelService{
		getByIDFunc: func(_ context.Context, id string) (*model.Hotel, error) {
			return nil, apperrors.NotFoundWithID("Hotel", id)
		},
	}
	rec := serve(svc, http.MethodGet, "/hotels/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
