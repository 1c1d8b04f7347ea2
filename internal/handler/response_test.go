package handler

import (
	"errors"
	"net/http"
	"testing"

	"viptrip/internal/repository"
	"viptrip/internal/service"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{service.ErrTripNotFound, http.StatusNotFound},
		{repository.ErrNotFound, http.StatusNotFound},
		{service.ErrInvalidTripID, http.StatusBadRequest},
		{service.ErrInvalidUserID, http.StatusBadRequest},
		{service.ErrTripNotCancelable, http.StatusBadRequest},
		{service.ErrTripAlreadyCompleted, http.StatusBadRequest},
		{service.ErrDriverNotAtDestination, http.StatusBadRequest},
		{service.ErrDriverLocationUnknown, http.StatusBadRequest},
		{service.ErrSettlementInProgress, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
			t.Errorf("mapErrorToHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
