package mq

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"TandaXN/config"
)

var (
	conn    *amqp.Connection
	connMu  sync.RWMutex
	initErr error
	once    sync.Once
)

func Init() error {
	once.Do(func() {
		url := config.Cfg.GetRabbitMQURL()

		var c *amqp.Connection
		c, initErr = amqp.Dial(url)
		if initErr != nil {
			return
		}

		connMu.Lock()
		conn = c
		connMu.Unlock()
	})

	return initErr
}

// Connection 获取共享连接，未初始化时返回 nil
func Connection() *amqp.Connection {
	connMu.RLock()
	defer connMu.RUnlock()
	return conn
}

func Close(ctx context.Context) error {
	connMu.Lock()
	defer connMu.Unlock()

	if conn == nil {
		return nil
	}

	err := conn.Close()
	conn = nil
	return err
}
