package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/application/inventory"
)

// ManagerHandler endpoints del manager sobre el inventario de su tienda.
type ManagerHandler struct {
	inventory *inventory.InventoryUseCase
	sales     *inventory.SaleUseCase
	restocks  *inventory.RestockUseCase
}

// NewManagerHandler construye el handler.
func NewManagerHandler(inv *inventory.InventoryUseCase, sales *inventory.SaleUseCase, restocks *inventory.RestockUseCase) *ManagerHandler {
	return &ManagerHandler{inventory: inv, sales: sales, restocks: restocks}
}

// ListInventory godoc
// @Summary      Inventario de la tienda del manager
// @Tags         manager
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.InventoryItemResponse]
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/manager/inventory [get]
func (h *ManagerHandler) ListInventory(c *fiber.Ctx) error {
	out, err := h.inventory.ListStoreInventory(c.Context(), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// AddProduct godoc
// @Summary      Crear o actualizar producto por SKU
// @Description  Crea el producto (o actualiza los campos informados si el SKU existe) y asegura
// @Description  su fila de inventario en la tienda del manager.
// @Tags         manager
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.AddProductResponse
// @Success      200   {object}  dto.AddProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/manager/products [post]
func (h *ManagerHandler) AddProduct(c *fiber.Ctx) error {
	var in dto.AddProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.inventory.AddProduct(c.Context(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusOK
	if out.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// UpdateThreshold godoc
// @Summary      Cambiar umbral de stock bajo
// @Tags         manager
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de inventario"
// @Param        body  body  dto.UpdateThresholdRequest  true  "low_stock_threshold"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manager/inventory/{id}/threshold [patch]
func (h *ManagerHandler) UpdateThreshold(c *fiber.Ctx) error {
	var in dto.UpdateThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.inventory.UpdateThreshold(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecordSale godoc
// @Summary      Registrar venta
// @Description  Descuenta stock de forma atómica; falla con 409 si no hay suficiente.
// @Tags         manager
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "inventory_id, quantity, unit_price"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manager/sales [post]
func (h *ManagerHandler) RecordSale(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.sales.RecordSale(c.Context(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SubmitRestock godoc
// @Summary      Solicitar reposición
// @Tags         manager
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRestockRequest  true  "inventory_id, quantity, notes"
// @Success      201   {object}  dto.RestockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manager/restock-requests [post]
func (h *ManagerHandler) SubmitRestock(c *fiber.Ctx) error {
	var in dto.CreateRestockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.restocks.SubmitRestock(c.Context(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRestocks godoc
// @Summary      Solicitudes de reposición de la tienda
// @Tags         manager
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.RestockResponse]
// @Router       /api/manager/restock-requests [get]
func (h *ManagerHandler) ListRestocks(c *fiber.Ctx) error {
	out, err := h.restocks.ListStoreRestocks(c.Context(), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}
