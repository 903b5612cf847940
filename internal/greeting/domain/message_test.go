package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage_Valid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "single char", value: "a"},
		{name: "regular greeting", value: "Hello World!"},
		{name: "exactly at limit", value: strings.Repeat("x", 200)},
		{name: "200 multibyte runes", value: strings.Repeat("ñ", 200)},
		{name: "surrounding spaces kept", value: "  hola  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewMessage(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.value, msg.Value())
		})
	}
}

func TestNewMessage_AllValidLengths(t *testing.T) {
	for n := 1; n <= MessageMaxLength; n++ {
		v := strings.Repeat("a", n)
		msg, err := NewMessage(v)
		require.NoError(t, err, "length %d", n)
		require.Equal(t, v, msg.Value())
	}
}

func TestNewMessage_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		message string
	}{
		{name: "empty", value: "", message: "Message cannot be empty"},
		{name: "whitespace only", value: "   \t\n", message: "Message cannot be empty"},
		{name: "201 chars", value: strings.Repeat("x", 201), message: "Message too long (max 200 characters)"},
		{name: "much longer", value: strings.Repeat("x", 1000), message: "Message too long (max 200 characters)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMessage(tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidGreeting)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestMessage_Equals(t *testing.T) {
	a, _ := NewMessage("hola")
	b, _ := NewMessage("hola")
	c, _ := NewMessage("adios")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.Equal(t, "hola", a.String())
}
