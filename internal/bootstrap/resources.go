package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type closer struct {
	name  string
	close func() error
}

// resources guarda lo que hay que cerrar al salir (conexiones, writers, readers)
// y los consumidores que arrancan con la aplicación.
type resources struct {
	closers   []closer
	consumers []consumer
}

// consumer arranca un bucle de consumo; el canal se cierra cuando termina.
type consumer struct {
	name  string
	start func(ctx context.Context) <-chan struct{}
}

func (r *resources) onClose(name string, fn func() error) {
	r.closers = append(r.closers, closer{name: name, close: fn})
}

func (r *resources) addConsumer(name string, start func(ctx context.Context) <-chan struct{}) {
	r.consumers = append(r.consumers, consumer{name: name, start: start})
}

// closeAll cierra en orden inverso al de apertura y acumula los errores.
func (r *resources) closeAll(log *zap.Logger) error {
	var errs error
	for i := len(r.closers) - 1; i >= 0; i-- {
		c := r.closers[i]
		if err := c.close(); err != nil {
			log.Warn("Failed to close resource", zap.String("resource", c.name), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("closing %s: %w", c.name, err))
			continue
		}
		log.Debug("Resource closed", zap.String("resource", c.name))
	}
	r.closers = nil
	return errs
}
