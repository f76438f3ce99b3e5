package create_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	holdSlot "github.com/m04kA/SMC-ScheduleService/internal/usecase/hold_slot"
)

type stubUseCase struct {
	resp *holdSlot.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, _ holdSlot.Request) (*holdSlot.Response, error) {
	return s.resp, s.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc HoldSlotUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, noopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

const validBody = `{"serviceId": 1, "startTime": "2026-09-14T15:00:00Z"}`

func TestHandle_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		// Слот ближе lead time не предлагается в выдаче — попытка его
		// удержать отвечает как занятый слот, а не как ошибка формата
		{name: "lead time violation", err: holdSlot.ErrLeadTimeViolation, wantStatus: http.StatusConflict},
		{name: "slot not available", err: holdSlot.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "service not found", err: holdSlot.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "outside business hours", err: holdSlot.ErrOutsideBusinessHours, wantStatus: http.StatusBadRequest},
		{name: "date too far", err: holdSlot.ErrDateTooFar, wantStatus: http.StatusBadRequest},
		{name: "internal", err: holdSlot.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_InvalidStartTimeFormat(t *testing.T) {
	rec := doRequest(t, &stubUseCase{}, `{"serviceId": 1, "startTime": "14-09-2026 15:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
