package container

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// ErrServiceNotRegistered se devuelve al resolver una clave que no existe.
var ErrServiceNotRegistered = errors.New("service not registered in container")

// LookupError nombra la clave que faltaba.
type LookupError struct {
	Key string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("service %s not registered in container", e.Key)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrServiceNotRegistered
}

// TypeMismatchError se devuelve cuando el servicio no es del tipo pedido.
type TypeMismatchError struct {
	Key      string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("service %s is %s, not %s", e.Key, e.Actual, e.Expected)
}

// Lifecycle indica si una entrada se memoriza o se construye en cada resolución.
type Lifecycle int

const (
	Transient Lifecycle = iota
	Singleton
)

func (l Lifecycle) String() string {
	if l == Singleton {
		return "singleton"
	}
	return "transient"
}

// Factory construye un servicio. Recibe el contenedor para resolver sus propias dependencias.
type Factory func(c *Container) (any, error)

type entry struct {
	factory   Factory
	lifecycle Lifecycle
}

// Container es un registro de servicios indexado por nombre.
//
// No es seguro para uso concurrente: se construye y resuelve una vez al arrancar,
// desde una sola goroutine. Las factories pueden llamar a Resolve, por eso no hay lock
// (un mutex no reentrante bloquearía la resolución anidada). Tampoco detecta ciclos.
type Container struct {
	services   map[string]entry
	singletons map[string]any
	log        *zap.Logger
}

// New crea un contenedor vacío. log puede ser nil.
func New(log *zap.Logger) *Container {
	if log == nil {
		log = zap.NewNop()
	}
	return &Container{
		services:   make(map[string]entry),
		singletons: make(map[string]any),
		log:        log,
	}
}

// Register registra una factory transient: se invoca en cada Resolve.
func (c *Container) Register(key string, factory Factory) {
	c.set(key, factory, Transient)
}

// RegisterSingleton registra una factory cuyo primer resultado se reutiliza.
func (c *Container) RegisterSingleton(key string, factory Factory) {
	c.set(key, factory, Singleton)
}

func (c *Container) set(key string, factory Factory, lc Lifecycle) {
	c.services[key] = entry{factory: factory, lifecycle: lc}
	// Re-registrar una clave descarta la instancia memorizada anterior.
	delete(c.singletons, key)
	c.log.Debug("Service registered", zap.String("key", key), zap.Stringer("lifecycle", lc))
}

// Resolve devuelve una instancia del servicio registrado con key.
func (c *Container) Resolve(key string) (any, error) {
	e, ok := c.services[key]
	if !ok {
		return nil, &LookupError{Key: key}
	}

	if e.lifecycle == Singleton {
		if inst, ok := c.singletons[key]; ok {
			return inst, nil
		}
	}

	inst, err := e.factory(c)
	if err != nil {
		return nil, fmt.Errorf("building service %s: %w", key, err)
	}

	if e.lifecycle == Singleton {
		c.singletons[key] = inst
	}
	c.log.Debug("Service resolved", zap.String("key", key), zap.Stringer("lifecycle", e.lifecycle))
	return inst, nil
}

// Has indica si hay una factory para key.
func (c *Container) Has(key string) bool {
	_, ok := c.services[key]
	return ok
}

// Keys devuelve las claves registradas, ordenadas.
func (c *Container) Keys() []string {
	keys := make([]string, 0, len(c.services))
	for k := range c.services {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve resuelve key y la convierte a T.
func Resolve[T any](c *Container, key string) (T, error) {
	var zero T
	inst, err := c.Resolve(key)
	if err != nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, &TypeMismatchError{
			Key:      key,
			Expected: fmt.Sprintf("%T", (*T)(nil))[1:],
			Actual:   fmt.Sprintf("%T", inst),
		}
	}
	return typed, nil
}

// MustResolve es como Resolve pero hace panic: solo para el arranque, donde un fallo es fatal.
func MustResolve[T any](c *Container, key string) T {
	v, err := Resolve[T](c, key)
	if err != nil {
		panic(err)
	}
	return v
}
