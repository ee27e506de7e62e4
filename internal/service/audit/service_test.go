package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"susu_ledger_server/internal/dao/mysql/repository"
	"susu_ledger_server/internal/model"
	"susu_ledger_server/pkg/enum/group/group_status_enum"
	"susu_ledger_server/pkg/errorx"
	"susu_ledger_server/pkg/util/snowflake"
)

func newTestService(t *testing.T) (*auditService, *repository.Repositories) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.GroupInfo{}, &model.AuditEvent{}))
	repos := repository.NewRepositories(db)
	return NewAuditService(repos), repos
}

func seedGroup(t *testing.T, repos *repository.Repositories) string {
	t.Helper()
	group := model.GroupInfo{
		Uuid:                 "Gtrail0000000",
		Name:                 "test susu",
		CreatorId:            "Ucreator00000",
		MemberCnt:            1,
		MaxMembers:           3,
		ContributionAmount:   5000,
		Currency:             "GHS",
		CycleType:            "weekly",
		Status:               group_status_enum.ACTIVE,
		CurrentCycle:         1,
		NextDistributionDate: time.Now().AddDate(0, 0, 7),
	}
	require.NoError(t, repos.Group.Create(&group))
	return group.Uuid
}

func appendEvent(t *testing.T, repos *repository.Repositories, groupId, eventType string) {
	t.Helper()
	require.NoError(t, repos.Audit.Create(&model.AuditEvent{
		Uuid:      snowflake.GenerateID(),
		GroupUuid: groupId,
		Actor:     "Ucreator00000",
		EventType: eventType,
	}))
}

func TestGetGroupTrailOrder(t *testing.T) {
	svc, repos := newTestService(t)
	groupId := seedGroup(t, repos)

	appendEvent(t, repos, groupId, model.AuditGroupCreated)
	appendEvent(t, repos, groupId, model.AuditMemberJoined)
	appendEvent(t, repos, groupId, model.AuditContribution)
	appendEvent(t, repos, groupId, model.AuditDistribution)

	trail, err := svc.GetGroupTrail(groupId)
	require.NoError(t, err)
	require.Len(t, trail, 4)
	assert.Equal(t, model.AuditGroupCreated, trail[0].EventType)
	assert.Equal(t, model.AuditMemberJoined, trail[1].EventType)
	assert.Equal(t, model.AuditContribution, trail[2].EventType)
	assert.Equal(t, model.AuditDistribution, trail[3].EventType)
}

func TestGetGroupTrailSurvivesDeletion(t *testing.T) {
	svc, repos := newTestService(t)
	groupId := seedGroup(t, repos)
	appendEvent(t, repos, groupId, model.AuditGroupCreated)
	appendEvent(t, repos, groupId, model.AuditGroupDeleted)
	require.NoError(t, repos.Group.SoftDelete(groupId))

	// the group no longer resolves, but its trail does
	trail, err := svc.GetGroupTrail(groupId)
	require.NoError(t, err)
	assert.Len(t, trail, 2)
}

func TestGetGroupTrailUnknownGroup(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetGroupTrail("Gnever0000000")
	assert.True(t, errorx.Is(err, errorx.CodeGroupNotFound))
}

func TestGetGroupTrailEmptyButExisting(t *testing.T) {
	svc, repos := newTestService(t)
	groupId := seedGroup(t, repos)

	trail, err := svc.GetGroupTrail(groupId)
	require.NoError(t, err)
	assert.Empty(t, trail)
}
