package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"houserental/shared/constant"
	"houserental/shared/failure"
	"houserental/transport/http/response"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		hide     bool
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "domain failure keeps message",
			hide:     true,
			err:      failure.Conflict("Property is not available for the selected dates"),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"Property is not available for the selected dates"}`,
		},
		{
			name:     "internal error hidden",
			hide:     true,
			err:      errors.New("failed to insert booking: connection reset"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"` + constant.ResponseErrorInternal + `"}`,
		},
		{
			name:     "internal error shown outside production",
			hide:     false,
			err:      errors.New("failed to insert booking"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"failed to insert booking"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response.HideInternalErrors(tt.hide)
			defer response.HideInternalErrors(false)

			rec := httptest.NewRecorder()
			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusCreated, map[string]string{"id": "b-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"b-1"}}`, rec.Body.String())
}

func TestWithRequestLimitExceeded(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"message":"`+constant.ResponseErrorRequestLimitExceeded+`"}`, rec.Body.String())
}
