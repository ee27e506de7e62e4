package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"susu_ledger_server/internal/config"
	dao "susu_ledger_server/internal/dao/mysql"
	myredis "susu_ledger_server/internal/dao/redis"
	"susu_ledger_server/internal/handler"
	"susu_ledger_server/internal/https_server"
	"susu_ledger_server/internal/infrastructure/logger"
	"susu_ledger_server/internal/infrastructure/mq"
	"susu_ledger_server/internal/lock"
	"susu_ledger_server/internal/service"
	"susu_ledger_server/pkg/constants"
	"susu_ledger_server/pkg/util/jwt"
	"susu_ledger_server/pkg/util/snowflake"
)

func main() {
	// 1. configuration
	conf := config.GetConfig()

	// 2. logging
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("logger initialized")

	// 3. id generation
	snowflake.Init()

	// 4. database and repositories
	repos := dao.Init()
	zap.L().Info("database initialized")

	// 5. redis cache
	myredis.Init()
	zap.L().Info("redis initialized")

	// 6. jwt signer
	refreshExpiry := conf.JWTConfig.RefreshTokenExpiry
	if refreshExpiry <= 0 {
		refreshExpiry = constants.REFRESH_TOKEN_EXPIRY_HOURS
	}
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, refreshExpiry)

	// 7. validator translation
	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("init validator translator failed", zap.Error(err))
	}

	// 8. per-group lock, shared across instances through redis
	locker := lock.NewRedisGroupLocker(myredis.GetClient(), conf.LockTTL(), uuid.NewString)

	// 9. settlement broker
	var broker mq.SettlementBroker
	if conf.KafkaConfig.SettlementMode == "kafka" {
		broker = mq.NewKafkaBroker()
		zap.L().Info("settlement broker: kafka", zap.String("brokers", conf.KafkaConfig.HostPort))
	} else {
		broker = mq.NewChannelBroker()
		zap.L().Info("settlement broker: channel")
	}

	// 10. services and handlers
	service.InitServices(repos, myredis.GetCacheService(), locker, broker)
	handlers := handler.NewHandlers(service.Svc)
	zap.L().Info("services initialized")

	// 11. funds-confirmation consumer
	go broker.Start(service.Svc.Ledger.ApplySettlement)

	// 12. http server
	engine := https_server.Init(handlers)
	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		zap.L().Info("server listening", zap.String("addr", addr))
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server stopped", zap.Error(err))
		}
	}()

	// graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down...")
	broker.Close()
	zap.L().Info("server closed")
}
