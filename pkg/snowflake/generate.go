package snowflake

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"

	"TandaXN/config"
)

// GeneratorType 区分不同业务的 ID 序列
type GeneratorType string

const (
	GeneratorTypeUser    GeneratorType = "user"
	GeneratorTypeMessage GeneratorType = "message"
)

var (
	node *snowflake.Node
	once sync.Once

	errInvalidMachineID   = errors.New("invalid snowflake machine id")
	errGeneratorUninitial = errors.New("snowflake generator is not initialized")
)

func Init() error {
	var initErr error

	once.Do(func() {
		machineID := config.Cfg.SnowflakeMachineID
		dataCenterID := config.Cfg.SnowflakeDataCenter

		if machineID < 0 || machineID > 31 {
			initErr = errInvalidMachineID
			return
		}
		nodeID := (dataCenterID << 5) | machineID // datacenterID 和 machineID 都是 0~31

		var err error
		node, err = snowflake.NewNode(nodeID)

		if err != nil {
			initErr = err
			return
		}
	})

	return initErr
}

// NextID 生成下一个 ID，GeneratorType 仅用于日志和追踪语义，底层共享一个节点
func NextID(_ GeneratorType) (int64, error) {
	if node == nil {
		return 0, errGeneratorUninitial
	}

	return node.Generate().Int64(), nil
}
