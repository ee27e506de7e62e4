// Package escrow implements fixed-target escrow pools: contributors fund a
// pool toward a target before a deadline and reclaim their balance once the
// target is reached. Pools share the per-resource lock with groups, keyed by
// pool uuid.
package escrow

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"susu_ledger_server/internal/config"
	"susu_ledger_server/internal/dao/mysql/repository"
	"susu_ledger_server/internal/dto/request"
	"susu_ledger_server/internal/dto/respond"
	"susu_ledger_server/internal/lock"
	"susu_ledger_server/internal/model"
	"susu_ledger_server/pkg/errorx"
	"susu_ledger_server/pkg/util/random"
)

const timeLayout = "2006-01-02 15:04:05"

type escrowService struct {
	repos  *repository.Repositories
	locker lock.GroupLocker
}

// NewEscrowService wires the escrow service onto its dependencies.
func NewEscrowService(repos *repository.Repositories, locker lock.GroupLocker) *escrowService {
	return &escrowService{repos: repos, locker: locker}
}

// CreateEscrow opens a pool.
func (e *escrowService) CreateEscrow(creatorId string, req request.CreateEscrowRequest) (*respond.EscrowInfoRespond, error) {
	if _, err := e.repos.User.FindByUuid(creatorId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "creator account not found")
		}
		zap.L().Error("find creator failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	pool := model.EscrowPool{
		Uuid:         fmt.Sprintf("E%s", random.GetNowAndLenRandomString(11)),
		Name:         req.Name,
		CreatorId:    creatorId,
		TargetAmount: req.TargetAmount,
		Deadline:     time.Now().AddDate(0, 0, req.DeadlineDays),
		IsActive:     true,
	}
	if err := e.repos.Escrow.CreatePool(&pool); err != nil {
		zap.L().Error("create escrow pool failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return poolRespond(&pool), nil
}

// Contribute deposits into an open pool. Deposits accumulate on the
// caller's balance row.
func (e *escrowService) Contribute(callerId string, req request.EscrowContributeRequest) error {
	return lock.WithLock(context.Background(), e.locker, req.PoolId, config.GetConfig().LockWait(), func() error {
		pool, err := e.findPool(req.PoolId)
		if err != nil {
			return err
		}
		if req.Amount <= 0 {
			return errorx.Newf(errorx.CodeInvalidAmount, "amount must be positive, got %d", req.Amount)
		}
		if !pool.IsActive || time.Now().After(pool.Deadline) {
			return errorx.Newf(errorx.CodeEscrowClosed, "pool %s is closed for contributions", req.PoolId)
		}

		return e.repos.Transaction(func(txRepos *repository.Repositories) error {
			contribution, err := txRepos.Escrow.FindContribution(req.PoolId, callerId)
			if err != nil {
				if !errorx.IsNotFound(err) {
					zap.L().Error("find escrow contribution failed", zap.Error(err))
					return errorx.ErrServerBusy
				}
				contribution = &model.EscrowContribution{
					PoolUuid: req.PoolId,
					UserUuid: callerId,
				}
				if err := txRepos.Escrow.CreateContribution(contribution); err != nil {
					zap.L().Error("create escrow contribution failed", zap.Error(err))
					return errorx.ErrServerBusy
				}
			}
			if contribution.Withdrawn {
				return errorx.Newf(errorx.CodeEscrowClosed, "balance already withdrawn from pool %s", req.PoolId)
			}

			contribution.Amount += req.Amount
			if err := txRepos.Escrow.UpdateContribution(contribution); err != nil {
				zap.L().Error("update escrow contribution failed", zap.Error(err))
				return errorx.ErrServerBusy
			}

			pool.CurrentAmount += req.Amount
			// latched: withdrawals later draining the pool must not revoke
			// other contributors' right to withdraw
			if pool.CurrentAmount >= pool.TargetAmount {
				pool.TargetReached = true
			}
			if err := txRepos.Escrow.UpdatePool(pool); err != nil {
				zap.L().Error("update escrow pool failed", zap.Error(err))
				return errorx.ErrServerBusy
			}
			return nil
		})
	})
}

// Withdraw reclaims the caller's balance. Allowed once the pool reached its
// target, or after the deadline passed with the target missed (a refund).
// Before either point the money stays escrowed.
func (e *escrowService) Withdraw(callerId string, req request.EscrowWithdrawRequest) (int64, error) {
	var amount int64
	err := lock.WithLock(context.Background(), e.locker, req.PoolId, config.GetConfig().LockWait(), func() error {
		pool, err := e.findPool(req.PoolId)
		if err != nil {
			return err
		}
		if !pool.TargetReached && time.Now().Before(pool.Deadline) {
			return errorx.Newf(errorx.CodeEscrowIncomplete,
				"pool %s is at %d of %d and still open", req.PoolId, pool.CurrentAmount, pool.TargetAmount)
		}

		contribution, err := e.repos.Escrow.FindContribution(req.PoolId, callerId)
		if err != nil {
			if errorx.IsNotFound(err) {
				return errorx.Newf(errorx.CodeNotFound, "no balance in pool %s", req.PoolId)
			}
			zap.L().Error("find escrow contribution failed", zap.Error(err))
			return errorx.ErrServerBusy
		}
		if contribution.Withdrawn || contribution.Amount == 0 {
			return errorx.Newf(errorx.CodeEscrowClosed, "balance already withdrawn from pool %s", req.PoolId)
		}

		amount = contribution.Amount
		return e.repos.Transaction(func(txRepos *repository.Repositories) error {
			contribution.Withdrawn = true
			if err := txRepos.Escrow.UpdateContribution(contribution); err != nil {
				zap.L().Error("mark withdrawn failed", zap.Error(err))
				return errorx.ErrServerBusy
			}
			pool.CurrentAmount -= amount
			if pool.CurrentAmount == 0 {
				pool.IsActive = false
			}
			if err := txRepos.Escrow.UpdatePool(pool); err != nil {
				zap.L().Error("update escrow pool failed", zap.Error(err))
				return errorx.ErrServerBusy
			}
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}

// GetEscrowInfo returns the pool's public view.
func (e *escrowService) GetEscrowInfo(poolId string) (*respond.EscrowInfoRespond, error) {
	pool, err := e.findPool(poolId)
	if err != nil {
		return nil, err
	}
	return poolRespond(pool), nil
}

// GetMyContribution returns one contributor's balance row.
func (e *escrowService) GetMyContribution(poolId, userId string) (*respond.EscrowContributionRespond, error) {
	if _, err := e.findPool(poolId); err != nil {
		return nil, err
	}
	contribution, err := e.repos.Escrow.FindContribution(poolId, userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return &respond.EscrowContributionRespond{PoolId: poolId, UserId: userId}, nil
		}
		zap.L().Error("find escrow contribution failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.EscrowContributionRespond{
		PoolId:    poolId,
		UserId:    userId,
		Amount:    contribution.Amount,
		Withdrawn: contribution.Withdrawn,
	}, nil
}

func (e *escrowService) findPool(poolId string) (*model.EscrowPool, error) {
	pool, err := e.repos.Escrow.FindPoolByUuid(poolId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "escrow pool %s not found", poolId)
		}
		zap.L().Error("find escrow pool failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return pool, nil
}

func poolRespond(pool *model.EscrowPool) *respond.EscrowInfoRespond {
	return &respond.EscrowInfoRespond{
		Uuid:          pool.Uuid,
		Name:          pool.Name,
		CreatorId:     pool.CreatorId,
		TargetAmount:  pool.TargetAmount,
		CurrentAmount: pool.CurrentAmount,
		Deadline:      pool.Deadline.Format(timeLayout),
		IsActive:      pool.IsActive,
		TargetReached: pool.TargetReached,
	}
}
