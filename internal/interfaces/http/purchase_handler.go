package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mfarias/backoffice-api/internal/application/dto"
	"github.com/mfarias/backoffice-api/internal/application/purchasing"
	"github.com/mfarias/backoffice-api/internal/domain"
)

// PurchaseHandler maneja las peticiones HTTP de compras (protegido).
type PurchaseHandler struct {
	registerUC *purchasing.RegisterPurchaseUseCase
	queryUC    *purchasing.PurchaseQueryUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(registerUC *purchasing.RegisterPurchaseUseCase, queryUC *purchasing.PurchaseQueryUseCase) *PurchaseHandler {
	return &PurchaseHandler{registerUC: registerUC, queryUC: queryUC}
}

// purchaseError responde con el sobre {status,error} que espera el asistente de
// compras de la UI, manteniendo el código HTTP según el tipo de error.
func purchaseError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(dto.StatusResponse{Status: false, Error: err.Error()})
}

// Register godoc
// @Summary      Registrar compra
// @Description  Confirma una factura de compra: líneas, lotes, kardex y precios en una sola transacción.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPurchaseRequest  true  "Compra a confirmar"
// @Success      201   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.StatusResponse
// @Failure      404   {object}  dto.StatusResponse
// @Failure      409   {object}  dto.StatusResponse
// @Router       /api/compras [post]
func (h *PurchaseHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.StatusResponse{Status: false, Error: "cuerpo inválido"})
	}
	userID := GetUserID(c)
	if userID == "" {
		userID = in.UserID
	}
	out, err := h.registerUC.RegisterPurchase(c.Context(), userID, in)
	if err != nil {
		return purchaseError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StatusResponse{Status: true, Data: out})
}

// GetByID godoc
// @Summary      Obtener compra por ID (con líneas y lotes)
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.queryUC.GetPurchase(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar compras
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id_proveedor  query  string  false  "Filtrar por proveedor"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.PurchaseResponse
// @Router       /api/compras [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	supplierID := c.Query("id_proveedor")
	out, err := h.queryUC.ListPurchases(c.Context(), supplierID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterPayment godoc
// @Summary      Registrar abono sobre una compra
// @Description  Única mutación permitida sobre una compra confirmada: aumenta el monto abonado y reduce el saldo.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la compra"
// @Param        body  body  dto.UpdatePaymentRequest  true  "Monto a abonar"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/compras/{id}/pago [put]
func (h *PurchaseHandler) RegisterPayment(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.queryUC.RegisterPayment(c.Context(), id, in.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
