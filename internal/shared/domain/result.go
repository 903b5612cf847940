package domain

// Result representa el resultado de un caso de uso: éxito con valor XOR fallo con error.
// Los casos de uso devuelven Result en lugar de error para los fallos esperados.
type Result[T any] struct {
	success bool
	value   T
	err     *DomainError
}

// Ok crea un Result exitoso.
func Ok[T any](value T) Result[T] {
	return Result[T]{success: true, value: value}
}

// Fail crea un Result fallido. Un err nil se sustituye por ErrInternal para no romper el invariante.
func Fail[T any](err *DomainError) Result[T] {
	if err == nil {
		err = ErrInternal
	}
	return Result[T]{err: err}
}

func (r Result[T]) IsSuccess() bool { return r.success }

func (r Result[T]) IsFailure() bool { return !r.success }

// Value devuelve el valor; en un fallo devuelve el valor cero de T.
func (r Result[T]) Value() T { return r.value }

// Error devuelve el error de dominio; nil si es un éxito.
func (r Result[T]) Error() *DomainError { return r.err }

// Unwrap permite usar el Result con el estilo (valor, error) de Go.
func (r Result[T]) Unwrap() (T, error) {
	if r.success {
		return r.value, nil
	}
	return r.value, r.err
}
