package cancel_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BookingBot/internal/api/middleware"
	"github.com/m04kA/SMC-BookingBot/internal/service/bookings"
	"github.com/m04kA/SMC-BookingBot/pkg/logger"
)

type serviceFunc func(ctx context.Context, bookingID, userID int64) error

func (f serviceFunc) Cancel(ctx context.Context, bookingID, userID int64) error {
	return f(ctx, bookingID, userID)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		userID     string
		err        error
		wantStatus int
	}{
		{name: "cancelled", path: "/api/v1/bookings/5/cancel", userID: "42", wantStatus: http.StatusNoContent},
		{name: "bad id", path: "/api/v1/bookings/abc/cancel", userID: "42", wantStatus: http.StatusBadRequest},
		{name: "no user", path: "/api/v1/bookings/5/cancel", wantStatus: http.StatusUnauthorized},
		{name: "not found", path: "/api/v1/bookings/5/cancel", userID: "42", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign", path: "/api/v1/bookings/5/cancel", userID: "42", err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "not pending", path: "/api/v1/bookings/5/cancel", userID: "42", err: bookings.ErrCannotCancel, wantStatus: http.StatusConflict},
		{
			name: "internal", path: "/api/v1/bookings/5/cancel", userID: "42",
			err: fmt.Errorf("%w: db down", bookings.ErrInternal), wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotBooking, gotUser int64
			svc := serviceFunc(func(_ context.Context, bookingID, userID int64) error {
				gotBooking, gotUser = bookingID, userID
				return tt.err
			})

			r := mux.NewRouter()
			api := r.PathPrefix("/api/v1").Subrouter()
			api.Use(middleware.Auth)
			api.HandleFunc("/bookings/{bookingId}/cancel", NewHandler(svc, logger.NewNop()).Handle).
				Methods(http.MethodPost)

			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.userID != "" {
				req.Header.Set(middleware.HeaderUserID, tt.userID)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, int64(5), gotBooking)
				assert.Equal(t, int64(42), gotUser)
			}
		})
	}
}
