package fecha

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsearFormatosDelBackend(t *testing.T) {
	casos := []string{
		"2026-08-29T14:30:00Z",
		"2026-08-29T14:30:00+00:00",
		"2026-08-29T14:30:00.123456",
		"2026-08-29T14:30:00",
		"2026-08-29 14:30:00",
	}
	for _, caso := range casos {
		parsed, err := Parsear(caso)
		require.NoError(t, err, caso)
		assert.Equal(t, 29, parsed.Day(), caso)
		assert.Equal(t, 14, parsed.UTC().Hour(), caso)
	}
}

func TestParsearRechazaBasura(t *testing.T) {
	_, err := Parsear("ayer por la tarde")
	assert.Error(t, err)
}

func TestFormatearConvierteABolivia(t *testing.T) {
	// 02:30 UTC is 22:30 of the previous day in Bolivia.
	instante := time.Date(2026, time.January, 2, 2, 30, 0, 0, time.UTC)

	assert.Equal(t, "1 ene 2026", Formatear(instante, false))
	assert.Equal(t, "1 ene 2026, 22:30", Formatear(instante, true))
}

func TestFormatearTextoVerbatimSiNoParsea(t *testing.T) {
	assert.Equal(t, "sin fecha", FormatearTexto("sin fecha", true))
	assert.Equal(t, "29 ago 2026, 10:30", FormatearTexto("2026-08-29T14:30:00Z", true))
}

func TestRangoDia(t *testing.T) {
	instante := time.Date(2026, time.August, 29, 18, 0, 0, 0, time.UTC) // 14:00 in Bolivia

	inicio, fin := RangoDia(instante)

	assert.Equal(t, "2026-08-29T00:00:00-04:00", inicio.Format(time.RFC3339))
	assert.Equal(t, 23, fin.Hour())
	assert.Equal(t, 59, fin.Minute())
	assert.True(t, fin.After(inicio))
	assert.Equal(t, inicio.Day(), fin.Day())
}

func TestEsHoy(t *testing.T) {
	assert.True(t, EsHoy(time.Now()))
	assert.False(t, EsHoy(time.Now().AddDate(0, 0, -2)))
}

func TestNombreDia(t *testing.T) {
	// 2026-08-29 is a Saturday; 18:00 UTC keeps it Saturday in Bolivia.
	sabado := time.Date(2026, time.August, 29, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "sábado", NombreDia(sabado))

	// 02:00 UTC on Sunday is still Saturday night in Bolivia.
	madrugada := time.Date(2026, time.August, 30, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, "sábado", NombreDia(madrugada))
}
