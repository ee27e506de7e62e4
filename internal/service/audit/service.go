// Package audit serves the per-group event trail. Events are written by the
// other services inside their transactions; this service only reads.
package audit

import (
	"strconv"

	"go.uber.org/zap"

	"susu_ledger_server/internal/dao/mysql/repository"
	"susu_ledger_server/internal/dto/respond"
	"susu_ledger_server/pkg/errorx"
)

const timeLayout = "2006-01-02 15:04:05"

type auditService struct {
	repos *repository.Repositories
}

// NewAuditService wires the trail reader onto the repository layer.
func NewAuditService(repos *repository.Repositories) *auditService {
	return &auditService{repos: repos}
}

// GetGroupTrail returns a group's events in recorded order. The trail stays
// readable after the group is deleted, so disputes can be settled; only an
// id that never existed is an error.
func (a *auditService) GetGroupTrail(groupId string) ([]respond.AuditEventRespond, error) {
	events, err := a.repos.Audit.FindByGroupUuid(groupId)
	if err != nil {
		zap.L().Error("load audit trail failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if len(events) == 0 {
		// no trail means the group never existed; a deleted group always
		// has at least its creation event
		if _, err := a.repos.Group.FindByUuid(groupId); err != nil {
			return nil, errorx.Newf(errorx.CodeGroupNotFound, "group %s not found", groupId)
		}
	}

	rsp := make([]respond.AuditEventRespond, 0, len(events))
	for _, ev := range events {
		rsp = append(rsp, respond.AuditEventRespond{
			Id:        strconv.FormatInt(ev.Uuid, 10),
			GroupId:   ev.GroupUuid,
			Actor:     ev.Actor,
			EventType: ev.EventType,
			Payload:   ev.Payload,
			CreatedAt: ev.CreatedAt.Format(timeLayout),
		})
	}
	return rsp, nil
}
