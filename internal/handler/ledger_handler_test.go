package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"susu_ledger_server/internal/dto/request"
	"susu_ledger_server/internal/dto/respond"
	"susu_ledger_server/internal/infrastructure/mq"
	"susu_ledger_server/pkg/errorx"
)

// stubLedgerService records the last recorded contribution and plays back a
// canned error.
type stubLedgerService struct {
	lastCaller string
	lastReq    request.RecordContributionRequest
	called     bool
	err        error
}

func (s *stubLedgerService) RecordContribution(callerId string, req request.RecordContributionRequest) error {
	s.lastCaller = callerId
	s.lastReq = req
	s.called = true
	return s.err
}
func (s *stubLedgerService) ApplySettlement(fc mq.FundsConfirmation) error { return s.err }
func (s *stubLedgerService) GetContributionTotal(groupId, memberId string, cycle int) (*respond.ContributionTotalRespond, error) {
	return nil, s.err
}
func (s *stubLedgerService) GetCycleSummary(groupId string, cycle int) (*respond.CycleSummaryRespond, error) {
	return nil, s.err
}

func newLedgerTestRouter(t *testing.T, stub *stubLedgerService) *gin.Engine {
	t.Helper()
	require.NoError(t, InitTrans("en"))
	gin.SetMode(gin.TestMode)

	h := NewLedgerHandler(stub)
	engine := gin.New()
	// stand-in for the JWT middleware
	engine.Use(func(c *gin.Context) { c.Set("user_id", "Utest00000000") })
	engine.POST("/ledger/recordContribution", h.RecordContribution)
	return engine
}

func TestRecordContributionHandler(t *testing.T) {
	stub := &stubLedgerService{}
	engine := newLedgerTestRouter(t, stub)

	rsp := doRequest(t, engine, http.MethodPost, "/ledger/recordContribution",
		`{"group_id":"Gtest00000000","amount":5000,"cycle":1}`)

	assert.Equal(t, errorx.CodeSuccess, rsp.Code)
	assert.Equal(t, "Utest00000000", stub.lastCaller)
	assert.Equal(t, int64(5000), stub.lastReq.Amount)
}

func TestRecordContributionHandlerZeroAmount(t *testing.T) {
	stub := &stubLedgerService{err: errorx.New(errorx.CodeInvalidAmount, "amount must be positive")}
	engine := newLedgerTestRouter(t, stub)

	// amount 0 passes binding so the domain check decides, not the
	// generic parameter validation
	rsp := doRequest(t, engine, http.MethodPost, "/ledger/recordContribution",
		`{"group_id":"Gtest00000000","amount":0,"cycle":1}`)

	assert.True(t, stub.called)
	assert.Equal(t, int64(0), stub.lastReq.Amount)
	assert.Equal(t, errorx.CodeInvalidAmount, rsp.Code)
}
