package escrow

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
	"susu_ledger_server/internal/lock"
	"susu_ledger_server/internal/model"
	"susu_ledger_server/pkg/errorx"
	"susu_ledger_server/pkg/util/random"
)

func newTestService(t *testing.T) (*escrowService, *repository.Repositories) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.UserInfo{},
		&model.EscrowPool{},
		&model.EscrowContribution{},
	))
	repos := repository.NewRepositories(db)
	return NewEscrowService(repos, lock.NewLocalGroupLocker()), repos
}

func createUser(t *testing.T, repos *repository.Repositories, nickname string) string {
	t.Helper()
	user := model.UserInfo{
		Uuid:        fmt.Sprintf("U%s", random.GetNowAndLenRandomString(11)),
		Nickname:    nickname,
		Email:       nickname + "@example.com",
		RawPassword: "secret123",
	}
	require.NoError(t, repos.User.Create(&user))
	return user.Uuid
}

func TestCreateEscrow(t *testing.T) {
	svc, repos := newTestService(t)
	creator := createUser(t, repos, "ama")

	rsp, err := svc.CreateEscrow(creator, request.CreateEscrowRequest{
		Name: "land fund", TargetAmount: 100000, DeadlineDays: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, creator, rsp.CreatorId)
	assert.Equal(t, int64(0), rsp.CurrentAmount)
	assert.True(t, rsp.IsActive)
	assert.False(t, rsp.TargetReached)

	_, err = svc.CreateEscrow("Umissing00000", request.CreateEscrowRequest{
		Name: "x", TargetAmount: 1, DeadlineDays: 1,
	})
	assert.True(t, errorx.Is(err, errorx.CodeUserNotExist))
}

func TestContributeAccumulates(t *testing.T) {
	svc, repos := newTestService(t)
	creator := createUser(t, repos, "ama")
	kofi := createUser(t, repos, "kofi")
	pool, err := svc.CreateEscrow(creator, request.CreateEscrowRequest{
		Name: "land fund", TargetAmount: 100000, DeadlineDays: 30,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Contribute(kofi, request.EscrowContributeRequest{PoolId: pool.Uuid, Amount: 30000}))
	require.NoError(t, svc.Contribute(kofi, request.EscrowContributeRequest{PoolId: pool.Uuid, Amount: 20000}))
	require.NoError(t, svc.Contribute(creator, request.EscrowContributeRequest{PoolId: pool.Uuid, Amount: 10000}))

	info, err := svc.GetEscrowInfo(pool.Uuid)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), info.CurrentAmount)
	assert.False(t, info.TargetReached)

	mine, err := svc.GetMyContribution(pool.Uuid, kofi)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), mine.Amount)
	assert.False(t, mine.Withdrawn)

	// someone who never contributed sees a zero balance, not an error
	esi := createUser(t, repos, "esi")
	none, err := svc.GetMyContribution(pool.Uuid, esi)
	require.NoError(t, err)
	assert.Equal(t, int64(0), none.Amount)
}

func TestContributeRejections(t *testing.T) {
	svc, repos := newTestService(t)
	creator := createUser(t, repos, "ama")
	pool, err := svc.CreateEscrow(creator, request.CreateEscrowRequest{
		Name: "land fund", TargetAmount: 100000, DeadlineDays: 30,
	})
	require.NoError(t, err)

	err = svc.Contribute(creator, request.EscrowContributeRequest{PoolId: pool.Uuid, Amount: 0})
	assert.True(t, errorx.Is(err, errorx.CodeInvalidAmount))

	err = svc.Contribute(creator, request.EscrowContributeRequest{PoolId: "Emissing00000", Amount: 100})
	assert.True(t, errorx.Is(err, errorx.CodeNotFound))

	// past the deadline the pool is closed
	stale, err := repos.Escrow.FindPoolByUuid(pool.Uuid)
	require.NoError(t, err)
	stale.Deadline = time.Now().AddDate(0, 0, -1)
	require.NoError(t, repos.Escrow.UpdatePool(stale))

	err = svc.Contribute(creator, request.EscrowContributeRequest{PoolId: pool.Uuid, Amount: 100})
	assert.True(t, errorx.Is(err, errorx.CodeEscrowClosed))
}

func TestWithdrawBeforeTargetIsRefused(t *testing.T) {
	svc, repos := newTestService(t)
	creator := createUser(t, repos, "ama")
	pool, err := svc.CreateEscrow(creator, request.CreateEscrowRequest{
		Name: "land fund", TargetAmount: 100000, DeadlineDays: 30,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Contribute(creator, request.EscrowContributeRequest{PoolId: pool.Uuid, Amount: 40000}))

	// the money stays escrowed while the pool is open and under target
	_, err = svc.Withdraw(creator, request.EscrowWithdrawRequest{PoolId: pool.Uuid})
	assert.True(t, errorx.Is(err, errorx.CodeEscrowIncomplete))
}

func TestWithdrawAfterTargetReached(t *testing.T) {
	svc, repos := newTestService(t)
	creator := createUser(t, repos, "ama")
	kofi := createUser(t, repos, "kofi")
	pool, err := svc.CreateEscrow(creator, request.CreateEscrowRequest{
		Name: "land fund", TargetAmount: 100000, DeadlineDays: 30,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Contribute(creator, request.EscrowContributeRequest{PoolId: pool.Uuid, Amount: 60000}))
	require.NoError(t, svc.Contribute(kofi, request.EscrowContributeRequest{PoolId: pool.Uuid, Amount: 40000}))

	amount, err := svc.Withdraw(kofi, request.EscrowWithdrawRequest{PoolId: pool.Uuid})
	require.NoError(t, err)
	assert.Equal(t, int64(40000), amount)

	// a balance is reclaimed exactly once
	_, err = svc.Withdraw(kofi, request.EscrowWithdrawRequest{PoolId: pool.Uuid})
	assert.True(t, errorx.Is(err, errorx.CodeEscrowClosed))

	// someone with no balance has nothing to withdraw
	esi := createUser(t, repos, "esi")
	_, err = svc.Withdraw(esi, request.EscrowWithdrawRequest{PoolId: pool.Uuid})
	assert.True(t, errorx.Is(err, errorx.CodeNotFound))

	// the last withdrawal drains and closes the pool
	amount, err = svc.Withdraw(creator, request.EscrowWithdrawRequest{PoolId: pool.Uuid})
	require.NoError(t, err)
	assert.Equal(t, int64(60000), amount)

	info, err := svc.GetEscrowInfo(pool.Uuid)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.CurrentAmount)
	assert.False(t, info.IsActive)
}

func TestWithdrawRefundAfterMissedDeadline(t *testing.T) {
	svc, repos := newTestService(t)
	creator := createUser(t, repos, "ama")
	pool, err := svc.CreateEscrow(creator, request.CreateEscrowRequest{
		Name: "land fund", TargetAmount: 100000, DeadlineDays: 30,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Contribute(creator, request.EscrowContributeRequest{PoolId: pool.Uuid, Amount: 25000}))

	stale, err := repos.Escrow.FindPoolByUuid(pool.Uuid)
	require.NoError(t, err)
	stale.Deadline = time.Now().AddDate(0, 0, -1)
	require.NoError(t, repos.Escrow.UpdatePool(stale))

	// target missed and deadline passed: contributors get refunds
	amount, err := svc.Withdraw(creator, request.EscrowWithdrawRequest{PoolId: pool.Uuid})
	require.NoError(t, err)
	assert.Equal(t, int64(25000), amount)
}
