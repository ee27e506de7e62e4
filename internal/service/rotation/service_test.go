package rotation

import (
	"context"
	"fmt"
	"sync"
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

type noopCache struct{}

func (noopCache) Set(ctx context.Context, key, value string, ttl time.Duration) error { return nil }
func (noopCache) Get(ctx context.Context, key string) (string, error)                 { return "", nil }
func (noopCache) GetOrError(ctx context.Context, key string) (string, error) {
	return "", errorx.New(errorx.CodeNotFound, "not found")
}
func (noopCache) Delete(ctx context.Context, key string) error                  { return nil }
func (noopCache) DeleteByPattern(ctx context.Context, pattern string) error     { return nil }
func (noopCache) DeleteByPatterns(ctx context.Context, patterns []string) error { return nil }
func (noopCache) SubmitTask(action func())                                      { action() }

type fixture struct {
	svc       *rotationService
	repos     *repository.Repositories
	broker    *mq.ChannelBroker
	groupId   string
	creatorId string
	userIds   []string
	memberIds []string
}

// newFixture seeds a 3-member weekly group; userIds[0] is the creator.
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
		&model.Distribution{},
		&model.AuditEvent{},
	))
	repos := repository.NewRepositories(db)
	broker := mq.NewChannelBroker()

	f := &fixture{
		svc:     NewRotationService(repos, noopCache{}, lock.NewLocalGroupLocker(), broker),
		repos:   repos,
		broker:  broker,
		groupId: fmt.Sprintf("G%s", random.GetNowAndLenRandomString(11)),
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
			GroupUuid: f.groupId,
			UserUuid:  user.Uuid,
			JoinedAt:  time.Now(),
		}
		require.NoError(t, repos.GroupMember.Create(&member))
		f.userIds = append(f.userIds, user.Uuid)
		f.memberIds = append(f.memberIds, member.Uuid)
	}
	f.creatorId = f.userIds[0]
	group := model.GroupInfo{
		Uuid:                 f.groupId,
		Name:                 "test susu",
		CreatorId:            f.creatorId,
		MemberCnt:            3,
		MaxMembers:           3,
		ContributionAmount:   5000,
		Currency:             "GHS",
		CycleType:            "weekly",
		Status:               group_status_enum.ACTIVE,
		CurrentCycle:         1,
		NextDistributionDate: time.Now().AddDate(0, 0, 7).Truncate(time.Second),
	}
	require.NoError(t, repos.Group.Create(&group))
	return f
}

func TestDistribute(t *testing.T) {
	f := newFixture(t)

	rsp, err := f.svc.Distribute(f.creatorId, request.DistributeRequest{
		GroupId: f.groupId, RecipientId: f.memberIds[1],
	})
	require.NoError(t, err)

	// the pot is contribution x member count
	assert.Equal(t, int64(15000), rsp.Amount)
	assert.Equal(t, 1, rsp.Cycle)
	assert.False(t, rsp.CycleRolledOver)

	recipient, err := f.repos.GroupMember.FindByUuid(f.memberIds[1])
	require.NoError(t, err)
	assert.True(t, recipient.HasReceivedPot)

	// a completed-distribution event went out to the settlement side
	select {
	case <-f.broker.Distributions():
	default:
		t.Fatal("expected a distribution event on the broker")
	}
}

func TestDistributeRejections(t *testing.T) {
	f := newFixture(t)

	// creator only
	_, err := f.svc.Distribute(f.userIds[1], request.DistributeRequest{
		GroupId: f.groupId, RecipientId: f.memberIds[1],
	})
	assert.True(t, errorx.Is(err, errorx.CodeUnauthorized))

	// recipient must be a member of this group
	_, err = f.svc.Distribute(f.creatorId, request.DistributeRequest{
		GroupId: f.groupId, RecipientId: "Mstranger0000",
	})
	assert.True(t, errorx.Is(err, errorx.CodeMemberNotFound))

	_, err = f.svc.Distribute(f.creatorId, request.DistributeRequest{
		GroupId: "Gmissing00000", RecipientId: f.memberIds[1],
	})
	assert.True(t, errorx.Is(err, errorx.CodeGroupNotFound))

	// nobody is paid twice in a cycle
	_, err = f.svc.Distribute(f.creatorId, request.DistributeRequest{
		GroupId: f.groupId, RecipientId: f.memberIds[1],
	})
	require.NoError(t, err)
	_, err = f.svc.Distribute(f.creatorId, request.DistributeRequest{
		GroupId: f.groupId, RecipientId: f.memberIds[1],
	})
	assert.True(t, errorx.Is(err, errorx.CodeAlreadyReceived))
}

func TestDistributeConcurrentSameRecipient(t *testing.T) {
	f := newFixture(t)

	// two racing payouts to the same unpaid member: the group lock
	// serializes them, so exactly one wins and the loser sees the
	// already-received rejection
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Distribute(f.creatorId, request.DistributeRequest{
				GroupId: f.groupId, RecipientId: f.memberIds[1],
			})
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errorx.Is(err, errorx.CodeAlreadyReceived):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)

	// exactly one payout record exists
	dists, err := f.repos.Distribution.FindByGroupUuid(f.groupId)
	require.NoError(t, err)
	require.Len(t, dists, 1)
	assert.Equal(t, f.memberIds[1], dists[0].RecipientId)
}

func TestFullRotationRollsOver(t *testing.T) {
	f := newFixture(t)
	before, err := f.repos.Group.FindByUuid(f.groupId)
	require.NoError(t, err)

	// pay everyone once; only the last payout closes the cycle
	for i, memberId := range f.memberIds {
		rsp, err := f.svc.Distribute(f.creatorId, request.DistributeRequest{
			GroupId: f.groupId, RecipientId: memberId,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, rsp.Cycle)
		assert.Equal(t, i == len(f.memberIds)-1, rsp.CycleRolledOver)
	}

	after, err := f.repos.Group.FindByUuid(f.groupId)
	require.NoError(t, err)
	assert.Equal(t, 2, after.CurrentCycle)

	// the schedule advances by exactly one cycle length from the old date
	expected := before.NextDistributionDate.AddDate(0, 0, 7)
	assert.WithinDuration(t, expected, after.NextDistributionDate, time.Second)

	// every receipt flag is reset for the new cycle
	members, err := f.repos.GroupMember.FindByGroupUuid(f.groupId)
	require.NoError(t, err)
	for _, m := range members {
		assert.False(t, m.HasReceivedPot)
	}

	// the first member can receive again in cycle 2
	rsp, err := f.svc.Distribute(f.creatorId, request.DistributeRequest{
		GroupId: f.groupId, RecipientId: f.memberIds[0],
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rsp.Cycle)
	assert.False(t, rsp.CycleRolledOver)
}

func TestRolloverAuditTrail(t *testing.T) {
	f := newFixture(t)
	for _, memberId := range f.memberIds {
		_, err := f.svc.Distribute(f.creatorId, request.DistributeRequest{
			GroupId: f.groupId, RecipientId: memberId,
		})
		require.NoError(t, err)
	}

	events, err := f.repos.Audit.FindByGroupUuid(f.groupId)
	require.NoError(t, err)
	// three distributions plus one rollover, in order
	require.Len(t, events, 4)
	assert.Equal(t, model.AuditDistribution, events[0].EventType)
	assert.Equal(t, model.AuditDistribution, events[1].EventType)
	assert.Equal(t, model.AuditDistribution, events[2].EventType)
	assert.Equal(t, model.AuditCycleRollover, events[3].EventType)
}

func TestGetDistributions(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetDistributions("Gmissing00000")
	assert.True(t, errorx.Is(err, errorx.CodeGroupNotFound))

	dists, err := f.svc.GetDistributions(f.groupId)
	require.NoError(t, err)
	assert.Empty(t, dists)

	for _, memberId := range f.memberIds[:2] {
		_, err := f.svc.Distribute(f.creatorId, request.DistributeRequest{
			GroupId: f.groupId, RecipientId: memberId,
		})
		require.NoError(t, err)
	}

	dists, err = f.svc.GetDistributions(f.groupId)
	require.NoError(t, err)
	require.Len(t, dists, 2)
	// oldest first
	assert.Equal(t, f.memberIds[0], dists[0].RecipientId)
	assert.Equal(t, f.memberIds[1], dists[1].RecipientId)
	assert.Equal(t, int64(15000), dists[0].Amount)
}
