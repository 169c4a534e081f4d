package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingBot/internal/api/middleware"
	"github.com/m04kA/SMC-BookingBot/internal/service/bookings"
	"github.com/m04kA/SMC-BookingBot/internal/service/bookings/models"
	"github.com/m04kA/SMC-BookingBot/pkg/logger"
)

type fakeService struct {
	owner int64
}

func (s fakeService) GetByID(_ context.Context, id, userID int64) (*models.BookingResponse, error) {
	if id != 5 {
		return nil, bookings.ErrBookingNotFound
	}
	if userID != s.owner {
		return nil, bookings.ErrAccessDenied
	}
	return &models.BookingResponse{ID: id, UserID: userID, BookingTime: "14:00"}, nil
}

func TestHandle(t *testing.T) {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(fakeService{owner: 42}, logger.NewNop()).Handle)

	get := func(path, userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(middleware.HeaderUserID, userID)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := get("/api/v1/bookings/5", "42")
	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "14:00", body.BookingTime)

	assert.Equal(t, http.StatusForbidden, get("/api/v1/bookings/5", "7").Code)
	assert.Equal(t, http.StatusNotFound, get("/api/v1/bookings/6", "42").Code)
	assert.Equal(t, http.StatusBadRequest, get("/api/v1/bookings/x", "42").Code)
}
