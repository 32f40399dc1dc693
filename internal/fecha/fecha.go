// Package fecha formats backend timestamps for display. The business
// operates in Bolivia (UTC-4); the backend stores timestamps in UTC.
package fecha

import (
	"fmt"
	"strings"
	"time"
)

// ZonaBolivia is a fixed UTC-4 zone; Bolivia has no daylight saving.
var ZonaBolivia = time.FixedZone("America/La_Paz", -4*60*60)

var meses = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

var dias = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

// formatos the backend emits: timestamptz as RFC 3339, plain timestamp
// without zone (assumed UTC), both with optional fractional seconds.
var formatos = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Parsear interprets a backend timestamp string; zoneless values are
// taken as UTC.
func Parsear(valor string) (time.Time, error) {
	valor = strings.TrimSpace(valor)
	for _, formato := range formatos {
		if t, err := time.ParseInLocation(formato, valor, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha no reconocida: %q", valor)
}

// ABolivia converts t to Bolivia local time.
func ABolivia(t time.Time) time.Time {
	return t.In(ZonaBolivia)
}

// AhoraBolivia is the current instant in Bolivia local time.
func AhoraBolivia() time.Time {
	return ABolivia(time.Now())
}

// Formatear renders t in Bolivia time as "2 ene 2026" or, with hora,
// "2 ene 2026, 14:05".
func Formatear(t time.Time, conHora bool) string {
	local := ABolivia(t)
	texto := fmt.Sprintf("%d %s %d", local.Day(), meses[local.Month()-1], local.Year())
	if conHora {
		texto += fmt.Sprintf(", %02d:%02d", local.Hour(), local.Minute())
	}
	return texto
}

// FormatearTexto parses a backend timestamp and renders it; unparseable
// values come back verbatim rather than breaking the display.
func FormatearTexto(valor string, conHora bool) string {
	t, err := Parsear(valor)
	if err != nil {
		return valor
	}
	return Formatear(t, conHora)
}

// InicioDelDia is 00:00:00 of t's day in Bolivia time.
func InicioDelDia(t time.Time) time.Time {
	local := ABolivia(t)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, ZonaBolivia)
}

// FinDelDia is 23:59:59.999999999 of t's day in Bolivia time.
func FinDelDia(t time.Time) time.Time {
	local := ABolivia(t)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), ZonaBolivia)
}

// RangoDia returns the [inicio, fin] pair of t's Bolivia day.
func RangoDia(t time.Time) (time.Time, time.Time) {
	return InicioDelDia(t), FinDelDia(t)
}

// EsHoy reports whether t falls on today's Bolivia date.
func EsHoy(t time.Time) bool {
	a, b := ABolivia(t), AhoraBolivia()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// NombreDia is the Spanish weekday name of t in Bolivia time.
func NombreDia(t time.Time) string {
	return dias[ABolivia(t).Weekday()]
}
