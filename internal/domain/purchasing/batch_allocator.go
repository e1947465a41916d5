package purchasing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfarias/backoffice-api/internal/domain"
)

// LotInput es la declaración del usuario de un lote para una línea.
type LotInput struct {
	LotNumber  string
	DepositID  string
	Expiration time.Time
	Quantity   decimal.Decimal
}

// AllocatedLot es un lote ya validado y normalizado, atado a exactamente un depósito.
type AllocatedLot struct {
	LotNumber  string
	DepositID  string
	Expiration time.Time
	Quantity   decimal.Decimal
}

// BatchAllocation es el reparto final de la cantidad de una línea en lotes.
// Remaining > 0 indica subasignación: no es un error, pero el orquestador solo
// procede si el llamador la confirmó explícitamente.
type BatchAllocation struct {
	Lots      []AllocatedLot
	Allocated decimal.Decimal
	Remaining decimal.Decimal
}

// Underallocated indica si quedó cantidad comprada sin asignar a lotes.
func (a *BatchAllocation) Underallocated() bool {
	return a.Remaining.GreaterThan(decimal.Zero)
}

// AllocateLots valida y normaliza el reparto declarado de una línea en lotes.
// Reglas:
//   - vencimiento estrictamente posterior a la fecha de emisión de la compra
//   - triples idénticos (lote, depósito, vencimiento) se fusionan sumando cantidad
//   - la suma asignada nunca puede exceder la cantidad comprada: se rechaza, no
//     se recorta (el recorte en la UI es conveniencia, no garantía)
func AllocateLots(lineQuantity decimal.Decimal, issueDate time.Time, inputs []LotInput) (*BatchAllocation, error) {
	if !lineQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.Validation("Cant", "la cantidad de la línea debe ser mayor a cero")
	}

	type lotKey struct {
		number     string
		depositID  string
		expiration string
	}
	merged := make(map[lotKey]int)

	alloc := &BatchAllocation{}
	for i, in := range inputs {
		if in.LotNumber == "" {
			return nil, domain.Validation(fmt.Sprintf("detalle_lotes[%d].nro_lote", i), "el número de lote es obligatorio")
		}
		if in.DepositID == "" {
			return nil, domain.Validation(fmt.Sprintf("detalle_lotes[%d].id_deposito", i), "el depósito es obligatorio")
		}
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.Validation(fmt.Sprintf("detalle_lotes[%d].cantidad", i), "la cantidad debe ser mayor a cero")
		}
		// Ningún lote puede estar vencido al momento de la recepción.
		if !in.Expiration.After(issueDate) {
			return nil, domain.Validation(fmt.Sprintf("detalle_lotes[%d].fecha_vencimiento", i),
				"el vencimiento debe ser posterior a la fecha de emisión")
		}

		key := lotKey{in.LotNumber, in.DepositID, in.Expiration.Format("2006-01-02")}
		if idx, ok := merged[key]; ok {
			// Mismo lote físico, mismo depósito, mismo corte: se fusiona, no se duplica.
			alloc.Lots[idx].Quantity = alloc.Lots[idx].Quantity.Add(in.Quantity)
		} else {
			merged[key] = len(alloc.Lots)
			alloc.Lots = append(alloc.Lots, AllocatedLot{
				LotNumber:  in.LotNumber,
				DepositID:  in.DepositID,
				Expiration: in.Expiration,
				Quantity:   in.Quantity,
			})
		}

		alloc.Allocated = alloc.Allocated.Add(in.Quantity)
		if alloc.Allocated.GreaterThan(lineQuantity) {
			return nil, domain.Validation(fmt.Sprintf("detalle_lotes[%d].cantidad", i),
				fmt.Sprintf("la cantidad asignada a lotes (%s) excede la cantidad comprada (%s)",
					alloc.Allocated.String(), lineQuantity.String()))
		}
	}

	alloc.Remaining = lineQuantity.Sub(alloc.Allocated)
	return alloc, nil
}
