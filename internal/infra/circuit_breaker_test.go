package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRemoto = errors.New("remote endpoint down")

func falla() error { return errRemoto }
func exito() error { return nil }

func TestSeAbreTrasFallasConsecutivas(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, OpenTimeout: time.Hour})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(falla), errRemoto)
	}
	assert.Equal(t, CBOpen, cb.State())

	// Fast-fail without invoking fn.
	invocado := false
	err := cb.Execute(func() error { invocado = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, invocado)
}

func TestExitoReiniciaElConteo(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, OpenTimeout: time.Hour})

	require.Error(t, cb.Execute(falla))
	require.Error(t, cb.Execute(falla))
	require.NoError(t, cb.Execute(exito))
	require.Error(t, cb.Execute(falla))
	require.Error(t, cb.Execute(falla))

	assert.Equal(t, CBClosed, cb.State())
}

func TestMedioAbiertoCierraConExitos(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 2,
		OpenTimeout:      10 * time.Millisecond,
	})

	require.Error(t, cb.Execute(falla))
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(exito))
	require.Equal(t, CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(exito))
	assert.Equal(t, CBClosed, cb.State())
}

func TestSondaFallidaReabre(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		OpenTimeout:      10 * time.Millisecond,
	})

	require.Error(t, cb.Execute(falla))
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.Error(t, cb.Execute(falla))
	assert.Equal(t, CBOpen, cb.State())
}
