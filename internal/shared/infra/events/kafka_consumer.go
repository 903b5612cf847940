package events

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageHandler lo cumple cualquier consumidor de eventos de integración.
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, payload []byte)
}

// MessageReader es la parte de *kafka.Reader que usa el adapter.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Config() kafka.ReaderConfig
}

// ConsumerAdapter lee de Kafka y entrega cada mensaje a un MessageHandler.
type ConsumerAdapter struct {
	reader  MessageReader
	handler MessageHandler
	log     *zap.Logger
}

func NewConsumerAdapter(reader MessageReader, handler MessageHandler, log *zap.Logger) *ConsumerAdapter {
	return &ConsumerAdapter{
		reader:  reader,
		handler: handler,
		log:     log,
	}
}

// Start inicia el bucle de consumo en una goroutine. Termina cuando ctx se cancela.
// El canal devuelto se cierra al terminar.
func (c *ConsumerAdapter) Start(ctx context.Context) <-chan struct{} {
	cfg := c.reader.Config()
	c.log.Info("Starting Kafka consumer",
		zap.String("topic", cfg.Topic),
		zap.Strings("brokers", cfg.Brokers),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					c.log.Info("Kafka consumer stopped", zap.String("topic", cfg.Topic))
					return
				}
				c.log.Error("Error reading Kafka message", zap.Error(err))
				continue
			}
			c.handler.HandleMessage(ctx, string(msg.Key), msg.Value)
		}
	}()
	return done
}

// BackgroundConsumerChan entrega al handler los mensajes de un InMemoryEventBus.
// El canal devuelto se cierra cuando ctx se cancela o el bus se cierra.
func BackgroundConsumerChan(ctx context.Context, ch <-chan interface{}, handler MessageHandler, log *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				log.Info("In-memory consumer stopped")
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if payload, ok := msg.([]byte); ok {
					handler.HandleMessage(ctx, "", payload)
				}
			}
		}
	}()
	return done
}
