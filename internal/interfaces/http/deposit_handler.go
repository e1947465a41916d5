package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mfarias/backoffice-api/internal/application/dto"
	"github.com/mfarias/backoffice-api/internal/application/usecase"
	"github.com/mfarias/backoffice-api/internal/domain/entity"
)

// DepositHandler maneja las peticiones HTTP para Deposit (protegido).
type DepositHandler struct {
	uc *usecase.DepositUseCase
}

// NewDepositHandler construye el handler.
func NewDepositHandler(uc *usecase.DepositUseCase) *DepositHandler {
	return &DepositHandler{uc: uc}
}

func toDepositResponse(d *entity.Deposit) dto.DepositResponse {
	return dto.DepositResponse{ID: d.ID, Name: d.Name, Address: d.Address}
}

// Create godoc
// @Summary      Crear depósito
// @Tags         depositos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDepositRequest  true  "Datos del depósito"
// @Success      201   {object}  dto.DepositResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/depositos [post]
func (h *DepositHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDepositRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDepositResponse(d))
}

// GetByID godoc
// @Summary      Obtener depósito por ID
// @Tags         depositos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del depósito"
// @Success      200  {object}  dto.DepositResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/depositos/{id} [get]
func (h *DepositHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	d, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDepositResponse(d))
}

// List godoc
// @Summary      Listar depósitos
// @Tags         depositos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.DepositResponse
// @Router       /api/depositos [get]
func (h *DepositHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DepositResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDepositResponse(d))
	}
	return c.JSON(out)
}
