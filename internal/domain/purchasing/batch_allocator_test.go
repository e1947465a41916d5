package purchasing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfarias/backoffice-api/internal/domain"
	"github.com/mfarias/backoffice-api/internal/domain/purchasing"
)

var issueDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func exp(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// Dos entradas con el mismo (lote, depósito, vencimiento) se fusionan en una sola.
func TestAllocateLots_FusionaTriplesIdenticos(t *testing.T) {
	inputs := []purchasing.LotInput{
		{LotNumber: "A", DepositID: "dep1", Expiration: exp("2025-01-01"), Quantity: dec("6")},
		{LotNumber: "A", DepositID: "dep1", Expiration: exp("2025-01-01"), Quantity: dec("4")},
	}
	alloc, err := purchasing.AllocateLots(dec("10"), issueDate, inputs)
	require.NoError(t, err)

	require.Len(t, alloc.Lots, 1, "mismo lote físico no debe duplicarse")
	assert.True(t, alloc.Lots[0].Quantity.Equal(dec("10")))
	assert.False(t, alloc.Underallocated())
}

// El mismo lote en depósitos distintos sí produce filas distintas.
func TestAllocateLots_DepositosDistintosNoSeFusionan(t *testing.T) {
	inputs := []purchasing.LotInput{
		{LotNumber: "A", DepositID: "dep1", Expiration: exp("2025-01-01"), Quantity: dec("6")},
		{LotNumber: "A", DepositID: "dep2", Expiration: exp("2025-01-01"), Quantity: dec("4")},
	}
	alloc, err := purchasing.AllocateLots(dec("10"), issueDate, inputs)
	require.NoError(t, err)
	assert.Len(t, alloc.Lots, 2)
}

// Asignar 11 contra una cantidad comprada de 10 se rechaza, nunca se recorta.
func TestAllocateLots_RechazaSobreasignacion(t *testing.T) {
	inputs := []purchasing.LotInput{
		{LotNumber: "A", DepositID: "dep1", Expiration: exp("2025-01-01"), Quantity: dec("11")},
	}
	alloc, err := purchasing.AllocateLots(dec("10"), issueDate, inputs)
	assert.Nil(t, alloc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// La sobreasignación también se detecta cuando se alcanza por fusión de entradas.
func TestAllocateLots_RechazaSobreasignacionAcumulada(t *testing.T) {
	inputs := []purchasing.LotInput{
		{LotNumber: "A", DepositID: "dep1", Expiration: exp("2025-01-01"), Quantity: dec("6")},
		{LotNumber: "B", DepositID: "dep1", Expiration: exp("2025-03-01"), Quantity: dec("5")},
	}
	_, err := purchasing.AllocateLots(dec("10"), issueDate, inputs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// Un lote vencido (o que vence el mismo día de emisión) se rechaza en la recepción.
func TestAllocateLots_RechazaVencimientoNoFuturo(t *testing.T) {
	cases := []struct {
		name string
		exp  time.Time
	}{
		{"vencido", exp("2024-01-15")},
		{"vence el día de emisión", issueDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inputs := []purchasing.LotInput{
				{LotNumber: "A", DepositID: "dep1", Expiration: tc.exp, Quantity: dec("1")},
			}
			_, err := purchasing.AllocateLots(dec("10"), issueDate, inputs)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

// La subasignación no es error: queda cantidad restante para que el llamador confirme.
func TestAllocateLots_SubasignacionQuedaComoAdvertencia(t *testing.T) {
	inputs := []purchasing.LotInput{
		{LotNumber: "A", DepositID: "dep1", Expiration: exp("2025-01-01"), Quantity: dec("6")},
	}
	alloc, err := purchasing.AllocateLots(dec("10"), issueDate, inputs)
	require.NoError(t, err)

	assert.True(t, alloc.Underallocated())
	assert.True(t, alloc.Remaining.Equal(dec("4")))
	assert.True(t, alloc.Allocated.Equal(dec("6")))
}

// Campos obligatorios del lote.
func TestAllocateLots_RechazaCamposInvalidos(t *testing.T) {
	base := purchasing.LotInput{LotNumber: "A", DepositID: "dep1", Expiration: exp("2025-01-01"), Quantity: dec("1")}

	sinLote := base
	sinLote.LotNumber = ""
	sinDeposito := base
	sinDeposito.DepositID = ""
	cantidadCero := base
	cantidadCero.Quantity = decimal.Zero

	for name, in := range map[string]purchasing.LotInput{
		"sin número de lote": sinLote,
		"sin depósito":       sinDeposito,
		"cantidad cero":      cantidadCero,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := purchasing.AllocateLots(dec("10"), issueDate, []purchasing.LotInput{in})
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}
