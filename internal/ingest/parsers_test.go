package ingest_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/unicorn-ar/internal/ingest"
)

// ──────────────────────────────────────────────────────────────────────────────
// ParseMoney
// ──────────────────────────────────────────────────────────────────────────────

func TestParseMoney_VacioEsCero(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t"} {
		d, err := ingest.ParseMoney(raw)
		require.NoError(t, err)
		assert.True(t, d.IsZero(), "campo vacío debe ser exactamente cero, no error")
	}
}

func TestParseMoney_Valido(t *testing.T) {
	d, err := ingest.ParseMoney(" 100.00 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("100.00")))

	d, err = ingest.ParseMoney("-40.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("-40.5")))
}

func TestParseMoney_Malformado(t *testing.T) {
	_, err := ingest.ParseMoney("abc")
	require.Error(t, err, "texto no numérico debe fallar")
	assert.Contains(t, err.Error(), "abc")
}

// ──────────────────────────────────────────────────────────────────────────────
// Fechas
// ──────────────────────────────────────────────────────────────────────────────

func TestParseInvoiceDate_VacioEsNil(t *testing.T) {
	d, err := ingest.ParseInvoiceDate("  ")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestParseInvoiceDate_TomaPrimerToken(t *testing.T) {
	// Algunos exports traen hora después de la fecha
	d, err := ingest.ParseInvoiceDate("01/15/24 00:00:00")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), *d)
}

func TestParseInvoiceDate_SinRelleno(t *testing.T) {
	d, err := ingest.ParseInvoiceDate("1/5/24")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), *d)
}

func TestParseInvoiceDate_Malformada(t *testing.T) {
	_, err := ingest.ParseInvoiceDate("2024-01-15")
	require.Error(t, err, "formato ISO no es el del export (mm/dd/yy)")
}

func TestParseDueDate_MismoContrato(t *testing.T) {
	d, err := ingest.ParseDueDate("")
	require.NoError(t, err, "DueDate vacía es un caso esperado, no un error")
	assert.Nil(t, d)

	d, err = ingest.ParseDueDate("02/14/24")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC), *d)
}

// ──────────────────────────────────────────────────────────────────────────────
// ExtractTermsDays
// ──────────────────────────────────────────────────────────────────────────────

func TestExtractTermsDays(t *testing.T) {
	cases := []struct {
		terms string
		want  *int
	}{
		{"Net 30", intPtr(30)},
		{"  net 45  ", intPtr(45)},
		{"2% 10 Net 30", intPtr(2)}, // gana la primera secuencia de dígitos
		{"Due on Receipt", nil},
		{"", nil},
		{"   ", nil},
	}
	for _, c := range cases {
		got := ingest.ExtractTermsDays(c.terms)
		if c.want == nil {
			assert.Nil(t, got, "terms=%q", c.terms)
		} else {
			require.NotNil(t, got, "terms=%q", c.terms)
			assert.Equal(t, *c.want, *got, "terms=%q", c.terms)
		}
	}
}

func intPtr(n int) *int { return &n }
