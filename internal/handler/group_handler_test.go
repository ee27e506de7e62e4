package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"susu_ledger_server/internal/dto/request"
	"susu_ledger_server/internal/dto/respond"
	"susu_ledger_server/pkg/errorx"
)

// stubGroupService records the last call and plays back canned results.
type stubGroupService struct {
	lastCaller string
	info       *respond.GroupInfoRespond
	err        error
}

func (s *stubGroupService) CreateGroup(creatorId string, req request.CreateGroupRequest) (*respond.GroupInfoRespond, error) {
	s.lastCaller = creatorId
	return s.info, s.err
}
func (s *stubGroupService) AddMember(callerId string, req request.AddMemberRequest) error {
	s.lastCaller = callerId
	return s.err
}
func (s *stubGroupService) JoinGroup(callerId, groupId string) error {
	s.lastCaller = callerId
	return s.err
}
func (s *stubGroupService) LeaveGroup(callerId, groupId string) error  { return s.err }
func (s *stubGroupService) DeleteGroup(callerId, groupId string) error { return s.err }
func (s *stubGroupService) UpdateGroup(callerId string, req request.UpdateGroupRequest) error {
	return s.err
}
func (s *stubGroupService) SelectNumber(callerId string, req request.SelectNumberRequest) error {
	return s.err
}
func (s *stubGroupService) GetGroupInfo(groupId string) (*respond.GroupInfoRespond, error) {
	return s.info, s.err
}
func (s *stubGroupService) GetGroupMemberList(groupId string) ([]respond.GroupMemberRespond, error) {
	return nil, s.err
}
func (s *stubGroupService) ListMyGroups(userId string) ([]respond.GroupInfoRespond, error) {
	return nil, s.err
}

func newGroupTestRouter(t *testing.T, stub *stubGroupService) *gin.Engine {
	t.Helper()
	require.NoError(t, InitTrans("en"))
	gin.SetMode(gin.TestMode)

	h := NewGroupHandler(stub)
	engine := gin.New()
	// stand-in for the JWT middleware
	engine.Use(func(c *gin.Context) { c.Set("user_id", "Utest00000000") })
	engine.POST("/group/createGroup", h.CreateGroup)
	engine.POST("/group/joinGroup", h.JoinGroup)
	engine.GET("/group/getGroupInfo", h.GetGroupInfo)
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) ResponseData {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var rsp ResponseData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rsp))
	return rsp
}

func TestCreateGroupHandler(t *testing.T) {
	stub := &stubGroupService{info: &respond.GroupInfoRespond{Uuid: "Gtest00000000", Name: "monday susu"}}
	engine := newGroupTestRouter(t, stub)

	rsp := doRequest(t, engine, http.MethodPost, "/group/createGroup",
		`{"name":"monday susu","max_members":3,"contribution_amount":5000,"currency":"GHS","cycle_type":"weekly"}`)

	assert.Equal(t, errorx.CodeSuccess, rsp.Code)
	// the authenticated identity reaches the service untouched
	assert.Equal(t, "Utest00000000", stub.lastCaller)

	data, ok := rsp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Gtest00000000", data["uuid"])
}

func TestCreateGroupHandlerValidation(t *testing.T) {
	stub := &stubGroupService{}
	engine := newGroupTestRouter(t, stub)

	// max_members below the minimum of 2 fails binding before the service
	rsp := doRequest(t, engine, http.MethodPost, "/group/createGroup",
		`{"name":"group","max_members":1,"contribution_amount":5000,"currency":"GHS","cycle_type":"weekly"}`)

	assert.Equal(t, errorx.CodeInvalidParam, rsp.Code)
	assert.Empty(t, stub.lastCaller)
}

func TestHandlerBusinessErrorEnvelope(t *testing.T) {
	stub := &stubGroupService{err: errorx.New(errorx.CodeGroupFull, "group is full")}
	engine := newGroupTestRouter(t, stub)

	rsp := doRequest(t, engine, http.MethodPost, "/group/joinGroup", `{"group_id":"Gtest00000000"}`)

	// business codes pass through the envelope unchanged
	assert.Equal(t, errorx.CodeGroupFull, rsp.Code)
	assert.Equal(t, "group is full", rsp.Msg)
}

func TestGetGroupInfoHandlerMissingParam(t *testing.T) {
	stub := &stubGroupService{}
	engine := newGroupTestRouter(t, stub)

	rsp := doRequest(t, engine, http.MethodGet, "/group/getGroupInfo", "")
	assert.Equal(t, errorx.CodeInvalidParam, rsp.Code)

	stub.info = &respond.GroupInfoRespond{Uuid: "Gtest00000000"}
	rsp = doRequest(t, engine, http.MethodGet, "/group/getGroupInfo?groupId=Gtest00000000", "")
	assert.Equal(t, errorx.CodeSuccess, rsp.Code)
}
