package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stylelane-api/internal/application/analytics"
	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/application/usecase"
)

// AdminHandler endpoints del rol admin: tiendas, usuarios y dashboard.
type AdminHandler struct {
	stores    *usecase.StoreUseCase
	users     *usecase.UserUseCase
	dashboard *appanalytics.DashboardUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(stores *usecase.StoreUseCase, users *usecase.UserUseCase, dashboard *appanalytics.DashboardUseCase) *AdminHandler {
	return &AdminHandler{stores: stores, users: users, dashboard: dashboard}
}

// CreateStore godoc
// @Summary      Crear tienda
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStoreRequest  true  "Datos de la tienda"
// @Success      201   {object}  dto.StoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/stores [post]
func (h *AdminHandler) CreateStore(c *fiber.Ctx) error {
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.stores.Create(c.Context(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStores godoc
// @Summary      Listar tiendas
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.StoreResponse]
// @Router       /api/admin/stores [get]
func (h *AdminHandler) ListStores(c *fiber.Ctx) error {
	out, err := h.stores.List(c.Context(), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// CreateManager godoc
// @Summary      Crear manager de tienda
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateManagerRequest  true  "username, password, store_id"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/managers [post]
func (h *AdminHandler) CreateManager(c *fiber.Ctx) error {
	var in dto.CreateManagerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.users.CreateManager(c.Context(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateSupplier godoc
// @Summary      Crear supplier
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "username, password, supplier_name, contact_email"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/suppliers [post]
func (h *AdminHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.users.CreateSupplier(c.Context(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        role  query  string  false  "admin | manager | supplier"
// @Success      200   {object}  dto.ListResponse[dto.UserResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.users.List(c.Context(), actor(c), c.Query("role"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Dashboard godoc
// @Summary      Dashboard de administración
// @Description  Tiendas, usuarios, inventario consolidado, total vendido y filas en stock bajo.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminDashboardDTO
// @Router       /api/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.GetSummary(c.Context(), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
