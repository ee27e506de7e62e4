package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"susu_ledger_server/internal/dao/mysql/repository"
	"susu_ledger_server/internal/dto/request"
	"susu_ledger_server/internal/infrastructure/mq"
	"susu_ledger_server/internal/lock"
	"susu_ledger_server/internal/model"
	"susu_ledger_server/pkg/enum/group/group_status_enum"
	"susu_ledger_server/pkg/errorx"
	"susu_ledger_server/pkg/util/random"
)

type fixture struct {
	svc       *ledgerService
	repos     *repository.Repositories
	groupId   string
	userIds   []string
	memberIds []string
}

// newFixture seeds a 3-member group with a 5000-unit weekly contribution.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.UserInfo{},
		&model.GroupInfo{},
		&model.GroupMember{},
		&model.ContributionRecord{},
		&model.AuditEvent{},
	))
	repos := repository.NewRepositories(db)

	group := model.GroupInfo{
		Uuid:                 fmt.Sprintf("G%s", random.GetNowAndLenRandomString(11)),
		Name:                 "test susu",
		CreatorId:            "",
		MemberCnt:            3,
		MaxMembers:           3,
		ContributionAmount:   5000,
		Currency:             "GHS",
		CycleType:            "weekly",
		Status:               group_status_enum.ACTIVE,
		CurrentCycle:         1,
		NextDistributionDate: time.Now().AddDate(0, 0, 7),
	}

	f := &fixture{
		svc:     NewLedgerService(repos, lock.NewLocalGroupLocker()),
		repos:   repos,
		groupId: group.Uuid,
	}
	for i := 0; i < 3; i++ {
		user := model.UserInfo{
			Uuid:        fmt.Sprintf("U%s", random.GetNowAndLenRandomString(11)),
			Nickname:    fmt.Sprintf("member-%d", i),
			Email:       fmt.Sprintf("member-%d@example.com", i),
			RawPassword: "secret123",
		}
		require.NoError(t, repos.User.Create(&user))
		member := model.GroupMember{
			Uuid:      fmt.Sprintf("M%s", random.GetNowAndLenRandomString(11)),
			GroupUuid: group.Uuid,
			UserUuid:  user.Uuid,
			JoinedAt:  time.Now(),
		}
		require.NoError(t, repos.GroupMember.Create(&member))
		f.userIds = append(f.userIds, user.Uuid)
		f.memberIds = append(f.memberIds, member.Uuid)
	}
	group.CreatorId = f.userIds[0]
	require.NoError(t, repos.Group.Create(&group))
	return f
}

func TestRecordContribution(t *testing.T) {
	f := newFixture(t)

	err := f.svc.RecordContribution(f.userIds[0], request.RecordContributionRequest{
		GroupId: f.groupId, Amount: 2000, Cycle: 1,
	})
	require.NoError(t, err)
	err = f.svc.RecordContribution(f.userIds[0], request.RecordContributionRequest{
		GroupId: f.groupId, Amount: 3000, Cycle: 1,
	})
	require.NoError(t, err)

	// partial payments accumulate, never overwrite
	total, err := f.svc.GetContributionTotal(f.groupId, f.memberIds[0], 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), total.Total)

	// each record lands on the audit trail
	events, err := f.repos.Audit.FindByGroupUuid(f.groupId)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, model.AuditContribution, events[0].EventType)
}

func TestRecordContributionRejections(t *testing.T) {
	f := newFixture(t)

	err := f.svc.RecordContribution(f.userIds[0], request.RecordContributionRequest{
		GroupId: f.groupId, Amount: 0, Cycle: 1,
	})
	assert.True(t, errorx.Is(err, errorx.CodeInvalidAmount))

	err = f.svc.RecordContribution(f.userIds[0], request.RecordContributionRequest{
		GroupId: f.groupId, Amount: -100, Cycle: 1,
	})
	assert.True(t, errorx.Is(err, errorx.CodeInvalidAmount))

	// contributions must target the group's current cycle
	err = f.svc.RecordContribution(f.userIds[0], request.RecordContributionRequest{
		GroupId: f.groupId, Amount: 5000, Cycle: 2,
	})
	assert.True(t, errorx.Is(err, errorx.CodeCycleMismatch))

	err = f.svc.RecordContribution("Uoutsider0000", request.RecordContributionRequest{
		GroupId: f.groupId, Amount: 5000, Cycle: 1,
	})
	assert.True(t, errorx.Is(err, errorx.CodeNotAMember))

	err = f.svc.RecordContribution(f.userIds[0], request.RecordContributionRequest{
		GroupId: "Gmissing00000", Amount: 5000, Cycle: 1,
	})
	assert.True(t, errorx.Is(err, errorx.CodeGroupNotFound))
}

func TestApplySettlement(t *testing.T) {
	f := newFixture(t)

	// a settlement confirmation lands like an API contribution
	err := f.svc.ApplySettlement(mq.FundsConfirmation{
		GroupId: f.groupId, UserId: f.userIds[1], Amount: 5000, Cycle: 1,
	})
	require.NoError(t, err)

	total, err := f.svc.GetContributionTotal(f.groupId, f.memberIds[1], 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), total.Total)

	records, err := f.repos.Contribution.FindByGroupAndCycle(f.groupId, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.ContributionSourceSettlement, records[0].Source)

	// a stale confirmation for a rolled-over cycle is rejected
	err = f.svc.ApplySettlement(mq.FundsConfirmation{
		GroupId: f.groupId, UserId: f.userIds[1], Amount: 5000, Cycle: 7,
	})
	assert.True(t, errorx.Is(err, errorx.CodeCycleMismatch))
}

func TestGetContributionTotalDefaultsToCurrentCycle(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.RecordContribution(f.userIds[0], request.RecordContributionRequest{
		GroupId: f.groupId, Amount: 1500, Cycle: 1,
	}))

	total, err := f.svc.GetContributionTotal(f.groupId, f.memberIds[0], 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total.Cycle)
	assert.Equal(t, int64(1500), total.Total)

	// a member uuid from another group does not resolve here
	_, err = f.svc.GetContributionTotal(f.groupId, "Mstranger0000", 1)
	assert.True(t, errorx.Is(err, errorx.CodeMemberNotFound))
}

func TestGetCycleSummary(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.RecordContribution(f.userIds[0], request.RecordContributionRequest{
		GroupId: f.groupId, Amount: 5000, Cycle: 1,
	}))
	require.NoError(t, f.svc.RecordContribution(f.userIds[1], request.RecordContributionRequest{
		GroupId: f.groupId, Amount: 2000, Cycle: 1,
	}))

	summary, err := f.svc.GetCycleSummary(f.groupId, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), summary.PotAmount)
	assert.Equal(t, int64(7000), summary.Collected)
	assert.False(t, summary.FullyFunded)
	require.Len(t, summary.Members, 3)

	funded := map[string]bool{}
	for _, m := range summary.Members {
		funded[m.MemberId] = m.Funded
	}
	assert.True(t, funded[f.memberIds[0]])
	assert.False(t, funded[f.memberIds[1]])
	assert.False(t, funded[f.memberIds[2]])

	// topping up the laggards completes the cycle
	require.NoError(t, f.svc.RecordContribution(f.userIds[1], request.RecordContributionRequest{
		GroupId: f.groupId, Amount: 3000, Cycle: 1,
	}))
	require.NoError(t, f.svc.RecordContribution(f.userIds[2], request.RecordContributionRequest{
		GroupId: f.groupId, Amount: 5000, Cycle: 1,
	}))
	summary, err = f.svc.GetCycleSummary(f.groupId, 1)
	require.NoError(t, err)
	assert.True(t, summary.FullyFunded)
	assert.Equal(t, summary.PotAmount, summary.Collected)
}
