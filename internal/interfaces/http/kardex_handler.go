package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mfarias/backoffice-api/internal/application/dto"
	"github.com/mfarias/backoffice-api/internal/application/inventory"
)

// KardexHandler consultas del kardex y las existencias (protegido, solo lectura).
type KardexHandler struct {
	uc *inventory.KardexQueryUseCase
}

// NewKardexHandler construye el handler.
func NewKardexHandler(uc *inventory.KardexQueryUseCase) *KardexHandler {
	return &KardexHandler{uc: uc}
}

// dateRange lee desde/hasta (YYYY-MM-DD) de la query. Nil si no vienen.
func dateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := c.Query("desde"); s != "" {
		t, perr := time.Parse("2006-01-02", s)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if s := c.Query("hasta"); s != "" {
		t, perr := time.Parse("2006-01-02", s)
		if perr != nil {
			return nil, nil, perr
		}
		// fin del día, inclusivo
		t = t.Add(24*time.Hour - time.Nanosecond)
		to = &t
	}
	return from, to, nil
}

// General godoc
// @Summary      Kardex general de un producto (todos los depósitos)
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id_producto  path   string  true   "ID del producto"
// @Param        desde        query  string  false  "Fecha desde (YYYY-MM-DD)"
// @Param        hasta        query  string  false  "Fecha hasta (YYYY-MM-DD)"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.KardexEntryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kardex/{id_producto} [get]
func (h *KardexHandler) General(c *fiber.Ctx) error {
	productID := c.Params("id_producto")
	from, to, err := dateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato YYYY-MM-DD"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.GeneralKardex(c.Context(), productID, from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Local godoc
// @Summary      Kardex de un producto en un depósito
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id_producto  path   string  true   "ID del producto"
// @Param        id_deposito  path   string  true   "ID del depósito"
// @Param        desde        query  string  false  "Fecha desde (YYYY-MM-DD)"
// @Param        hasta        query  string  false  "Fecha hasta (YYYY-MM-DD)"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.KardexEntryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kardex/{id_producto}/deposito/{id_deposito} [get]
func (h *KardexHandler) Local(c *fiber.Ctx) error {
	productID := c.Params("id_producto")
	depositID := c.Params("id_deposito")
	from, to, err := dateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato YYYY-MM-DD"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.LocalKardex(c.Context(), productID, depositID, from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExistencesByDeposit godoc
// @Summary      Existencias de un depósito (por producto y lote)
// @Tags         existencias
// @Security     Bearer
// @Produce      json
// @Param        id_deposito  path   string  true   "ID del depósito"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.ExistenceDTO
// @Router       /api/existencias/deposito/{id_deposito} [get]
func (h *KardexHandler) ExistencesByDeposit(c *fiber.Ctx) error {
	depositID := c.Params("id_deposito")
	limit, offset := pageParams(c)
	out, err := h.uc.ExistencesByDeposit(c.Context(), depositID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExistencesByProduct godoc
// @Summary      Existencias de un producto en todos los depósitos
// @Tags         existencias
// @Security     Bearer
// @Produce      json
// @Param        id_producto  path  string  true  "ID del producto"
// @Success      200  {array}  dto.ExistenceDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/existencias/producto/{id_producto} [get]
func (h *KardexHandler) ExistencesByProduct(c *fiber.Ctx) error {
	productID := c.Params("id_producto")
	out, err := h.uc.ExistencesByProduct(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
