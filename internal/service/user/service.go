// Package user implements account registration and authentication.
package user

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"susu_ledger_server/internal/dao/mysql/repository"
	myredis "susu_ledger_server/internal/dao/redis"
	"susu_ledger_server/internal/dto/request"
	"susu_ledger_server/internal/dto/respond"
	"susu_ledger_server/internal/model"
	"susu_ledger_server/pkg/errorx"
	"susu_ledger_server/pkg/util/jwt"
	"susu_ledger_server/pkg/util/random"
)

// refreshTokenKeyPrefix keys the current refresh-token id per account. Only
// the latest issued id can refresh, so a new login supersedes older sessions.
const refreshTokenKeyPrefix = "refresh_token_"

type userService struct {
	repos *repository.Repositories
	cache myredis.CacheService
}

// NewUserService wires the account service onto the repository layer and the
// refresh-token store.
func NewUserService(repos *repository.Repositories, cache myredis.CacheService) *userService {
	return &userService{repos: repos, cache: cache}
}

// Register creates an account. The bcrypt hash happens in the model's
// BeforeSave hook.
func (u *userService) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	existing, err := u.repos.User.FindByEmail(req.Email)
	if err != nil && !errorx.IsNotFound(err) {
		zap.L().Error("register lookup failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if existing != nil {
		return nil, errorx.Newf(errorx.CodeUserExist, "email %s already registered", req.Email)
	}

	user := model.UserInfo{
		Uuid:        fmt.Sprintf("U%s", random.GetNowAndLenRandomString(11)),
		Nickname:    req.Nickname,
		Email:       req.Email,
		RawPassword: req.Password,
	}
	if err := u.repos.User.Create(&user); err != nil {
		zap.L().Error("create user failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	accessToken, refreshToken, err := u.issueTokens(user.Uuid)
	if err != nil {
		zap.L().Error("issue tokens failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.RegisterRespond{
		Uuid:         user.Uuid,
		Nickname:     user.Nickname,
		Email:        user.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login authenticates by email and password.
func (u *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := u.repos.User.FindByEmail(req.Email)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "account not found")
		}
		zap.L().Error("login lookup failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeWrongSecret, "wrong email or password")
	}

	accessToken, refreshToken, err := u.issueTokens(user.Uuid)
	if err != nil {
		zap.L().Error("issue tokens failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.LoginRespond{
		Uuid:         user.Uuid,
		Nickname:     user.Nickname,
		Email:        user.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken validates a refresh token against the stored token id and
// rotates the pair. Tokens from a superseded session fail here even when
// their signature and expiry are still valid.
func (u *userService) RefreshToken(refreshToken string) (*respond.TokenPairRespond, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil || claims.Subject != "refresh_token" {
		return nil, errorx.New(errorx.CodeUnauthorized, "invalid refresh token")
	}

	storedID, err := u.cache.GetOrError(context.Background(), refreshTokenKeyPrefix+claims.UserID)
	if err != nil || storedID != claims.TokenID {
		return nil, errorx.New(errorx.CodeUnauthorized, "session superseded or expired")
	}

	// the account must still exist
	if _, err := u.repos.User.FindByUuid(claims.UserID); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "account not found")
		}
		zap.L().Error("refresh lookup failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	accessToken, newRefreshToken, err := u.issueTokens(claims.UserID)
	if err != nil {
		zap.L().Error("issue tokens failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.TokenPairRespond{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// issueTokens mints an access/refresh pair and records the refresh-token id
// as the account's only refreshable session.
func (u *userService) issueTokens(userUuid string) (string, string, error) {
	accessToken, err := jwt.GenerateAccessToken(userUuid)
	if err != nil {
		return "", "", err
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(userUuid)
	if err != nil {
		return "", "", err
	}
	if err := u.cache.Set(context.Background(), refreshTokenKeyPrefix+userUuid, tokenID, jwt.RefreshExpiry()); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
