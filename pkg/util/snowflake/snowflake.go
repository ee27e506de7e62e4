package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"susu_ledger_server/internal/config"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// Init initializes the snowflake node. Call once at startup.
func Init() {
	nodeOnce.Do(func() {
		machineID := config.GetConfig().SnowflakeConfig.MachineID
		if machineID < 0 || machineID > 1023 {
			machineID = 1
			zap.L().Warn("Invalid MachineID in config, using default value 1")
		}
		var err error
		node, err = snowflake.NewNode(machineID)
		if err != nil {
			zap.L().Fatal("Failed to initialize snowflake node", zap.Error(err))
		}
		zap.L().Info("Snowflake node initialized", zap.Int64("machineID", machineID))
	})
}

// GenerateID generates a snowflake ID as int64.
// Ids are monotonically increasing per node, which keeps ledger and audit
// rows replayable in insertion order.
func GenerateID() int64 {
	if node == nil {
		Init()
	}
	return node.Generate().Int64()
}

// GenerateIDString generates a snowflake ID as a string, avoiding JavaScript
// precision loss in JSON payloads.
func GenerateIDString() string {
	if node == nil {
		Init()
	}
	return node.Generate().String()
}
