package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingusecases "atrium/internal/application/billing/usecases"
	"atrium/internal/domain/billing"
	"atrium/internal/shared/biztime"
	"atrium/internal/shared/constants"
	"atrium/internal/shared/errors"
)

type mockRecomputeBillingUC struct {
	result   *billingusecases.RecomputePartnerBillingOutput
	err      error
	gotInput billingusecases.RecomputePartnerBillingInput
}

func (m *mockRecomputeBillingUC) Execute(ctx context.Context, input billingusecases.RecomputePartnerBillingInput) (*billingusecases.RecomputePartnerBillingOutput, error) {
	m.gotInput = input
	return m.result, m.err
}

type mockBillingReportUC struct {
	result   *billingusecases.PartnerBillingReportOutput
	err      error
	gotInput billingusecases.PartnerBillingReportInput
}

func (m *mockBillingReportUC) Execute(ctx context.Context, input billingusecases.PartnerBillingReportInput) (*billingusecases.PartnerBillingReportOutput, error) {
	m.gotInput = input
	return m.result, m.err
}

func newBillingTestEngine(recomputeUC *mockRecomputeBillingUC, reportUC *mockBillingReportUC) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewBillingHandler(recomputeUC, reportUC)
	engine.POST("/api/billing/partner-snapshots/recompute", handler.RecomputeSnapshots)
	engine.GET("/api/billing/partner-report", handler.PartnerReport)
	return engine
}

func platformHeader() map[string]string {
	return map[string]string{constants.HeaderXCompanyID: "1"}
}

func TestBillingHandler_RecomputeSnapshots_DefaultPeriod(t *testing.T) {
	recomputeUC := &mockRecomputeBillingUC{result: &billingusecases.RecomputePartnerBillingOutput{Created: 3}}
	engine := newBillingTestEngine(recomputeUC, &mockBillingReportUC{})

	w := performRequest(t, engine, http.MethodPost, "/api/billing/partner-snapshots/recompute", "", platformHeader())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), recomputeUC.gotInput.RequesterCompanyID)
	assert.True(t, recomputeUC.gotInput.PeriodStart.IsZero())
	assert.True(t, recomputeUC.gotInput.PeriodEnd.IsZero())
}

func TestBillingHandler_RecomputeSnapshots_ExplicitPeriod(t *testing.T) {
	recomputeUC := &mockRecomputeBillingUC{result: &billingusecases.RecomputePartnerBillingOutput{}}
	engine := newBillingTestEngine(recomputeUC, &mockBillingReportUC{})

	body := `{"period_start":"2026-08-01","period_end":"2026-08-31"}`
	w := performRequest(t, engine, http.MethodPost, "/api/billing/partner-snapshots/recompute", body, platformHeader())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, biztime.NewDate(2026, time.August, 1), recomputeUC.gotInput.PeriodStart)
	assert.Equal(t, biztime.NewDate(2026, time.August, 31), recomputeUC.gotInput.PeriodEnd)
}

func TestBillingHandler_RecomputeSnapshots_SerializesSnapshots(t *testing.T) {
	start := biztime.NewDate(2026, time.August, 1)
	end := biztime.NewDate(2026, time.August, 31)
	snapshot, err := billing.NewPartnerBillingSnapshot(5, start, end, 2, 3, decimal.RequireFromString("1100.00"))
	require.NoError(t, err)
	require.NoError(t, snapshot.SetID(9))

	recomputeUC := &mockRecomputeBillingUC{result: &billingusecases.RecomputePartnerBillingOutput{
		PeriodStart: start,
		PeriodEnd:   end,
		Created:     1,
		Snapshots:   []*billing.PartnerBillingSnapshot{snapshot},
	}}
	engine := newBillingTestEngine(recomputeUC, &mockBillingReportUC{})

	w := performRequest(t, engine, http.MethodPost, "/api/billing/partner-snapshots/recompute", "", platformHeader())

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "2026-08-01", data["period_start"])
	assert.Equal(t, float64(1), data["written"])

	snapshots := data["snapshots"].([]interface{})
	require.Len(t, snapshots, 1)
	first := snapshots[0].(map[string]interface{})
	assert.Equal(t, float64(5), first["partner_id"])
	assert.Equal(t, float64(3), first["active_licenses_count"])
	assert.Equal(t, "1100", first["total_amount_due"])
}

func TestBillingHandler_RecomputeSnapshots_BadDate(t *testing.T) {
	recomputeUC := &mockRecomputeBillingUC{result: &billingusecases.RecomputePartnerBillingOutput{}}
	engine := newBillingTestEngine(recomputeUC, &mockBillingReportUC{})

	body := `{"period_start":"08/01/2026","period_end":"2026-08-31"}`
	w := performRequest(t, engine, http.MethodPost, "/api/billing/partner-snapshots/recompute", body, platformHeader())

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillingHandler_RecomputeSnapshots_MissingHeader(t *testing.T) {
	recomputeUC := &mockRecomputeBillingUC{result: &billingusecases.RecomputePartnerBillingOutput{}}
	engine := newBillingTestEngine(recomputeUC, &mockBillingReportUC{})

	w := performRequest(t, engine, http.MethodPost, "/api/billing/partner-snapshots/recompute", "", nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBillingHandler_RecomputeSnapshots_Forbidden(t *testing.T) {
	recomputeUC := &mockRecomputeBillingUC{err: errors.NewForbiddenError("only the platform owner can recompute partner billing")}
	engine := newBillingTestEngine(recomputeUC, &mockBillingReportUC{})

	w := performRequest(t, engine, http.MethodPost, "/api/billing/partner-snapshots/recompute", "", map[string]string{constants.HeaderXCompanyID: "7"})

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestBillingHandler_PartnerReport_AllPartners(t *testing.T) {
	reportUC := &mockBillingReportUC{result: &billingusecases.PartnerBillingReportOutput{}}
	engine := newBillingTestEngine(&mockRecomputeBillingUC{}, reportUC)

	w := performRequest(t, engine, http.MethodGet, "/api/billing/partner-report", "", platformHeader())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, reportUC.gotInput.PartnerID)
}

func TestBillingHandler_PartnerReport_SinglePartner(t *testing.T) {
	reportUC := &mockBillingReportUC{result: &billingusecases.PartnerBillingReportOutput{}}
	engine := newBillingTestEngine(&mockRecomputeBillingUC{}, reportUC)

	w := performRequest(t, engine, http.MethodGet, "/api/billing/partner-report?partner_id=5", "", platformHeader())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), reportUC.gotInput.PartnerID)
}

func TestBillingHandler_PartnerReport_InvalidPartnerID(t *testing.T) {
	reportUC := &mockBillingReportUC{result: &billingusecases.PartnerBillingReportOutput{}}
	engine := newBillingTestEngine(&mockRecomputeBillingUC{}, reportUC)

	w := performRequest(t, engine, http.MethodGet, "/api/billing/partner-report?partner_id=zero", "", platformHeader())

	require.Equal(t, http.StatusBadRequest, w.Code)
}
