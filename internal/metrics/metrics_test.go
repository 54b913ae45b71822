package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/t4-api/internal/mock"
	"github.com/MKhiriev/t4-api/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestInstrumentEmailDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	original := mock.NewMockEmailDelivery(ctrl)
	m := New()
	delivery := m.InstrumentEmailDelivery()(original)

	reset := models.EmailInput{Type: models.EmailTypePasswordReset}
	gomock.InOrder(
		original.EXPECT().SendEmail(gomock.Any(), reset).Return(nil),
		original.EXPECT().SendEmail(gomock.Any(), reset).Return(errors.New("boom")),
	)

	require.NoError(t, delivery.SendEmail(context.Background(), reset))
	require.Error(t, delivery.SendEmail(context.Background(), reset))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsSent.WithLabelValues("PASSWORD_RESET", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsSent.WithLabelValues("PASSWORD_RESET", OutcomeError)))
}

func TestObserveRPC(t *testing.T) {
	m := New()

	m.ObserveRPCCall("greeting", "query", "OK")
	m.ObserveRPCCall("greeting", "query", "OK")
	m.ObserveRPCBatch(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RPCCalls.WithLabelValues("greeting", "query", "OK")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RPCBatchSize))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRPCCall("version", "query", "OK")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `t4_rpc_calls_total{code="OK",path="version",type="query"} 1`)
}
