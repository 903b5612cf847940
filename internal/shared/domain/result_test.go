package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Ok(t *testing.T) {
	r := Ok("hola")

	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsFailure())
	assert.Equal(t, "hola", r.Value())
	assert.Nil(t, r.Error())

	v, err := r.Unwrap()
	require.NoError(t, err)
	assert.Equal(t, "hola", v)
}

func TestResult_Fail(t *testing.T) {
	boom := NewDomainError("BoomException", "BOOM", "boom", http.StatusBadRequest)
	r := Fail[int](boom)

	assert.False(t, r.IsSuccess())
	assert.True(t, r.IsFailure())
	assert.Equal(t, 0, r.Value())
	assert.Same(t, boom, r.Error())

	_, err := r.Unwrap()
	assert.ErrorIs(t, err, boom)
}

func TestResult_FailNilUsesInternalError(t *testing.T) {
	r := Fail[string](nil)

	assert.True(t, r.IsFailure())
	assert.ErrorIs(t, r.Error(), ErrInternal)
}

func TestDomainError_IsComparesByCode(t *testing.T) {
	base := NewDomainError("InvalidX", "INVALID_X", "invalid x", http.StatusBadRequest)
	copia := base.WithMessage("otro mensaje")
	wrapped := fmt.Errorf("capa superior: %w", copia)

	assert.ErrorIs(t, wrapped, base)
	assert.NotErrorIs(t, wrapped, ErrInternal)
	assert.Equal(t, "otro mensaje", copia.Error())
	assert.Equal(t, "invalid x", base.Error())

	de, ok := AsDomainError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, de.Status)

	_, ok = AsDomainError(errors.New("plain"))
	assert.False(t, ok)
}

func TestNewDomainError_DefaultStatus(t *testing.T) {
	err := NewDomainError("X", "X", "x", 0)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}
