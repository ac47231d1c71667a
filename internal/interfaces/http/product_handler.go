package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/application/usecase"
)

// ProductHandler búsqueda de catálogo y etiquetas (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar productos
// @Description  q busca en nombre, SKU y descripción sin distinguir mayúsculas. Incluye stock por tienda y facetas.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q         query  string  false  "Texto libre"
// @Param        category  query  string  false  "Categoría exacta"
// @Param        size      query  string  false  "Talla exacta"
// @Param        color     query  string  false  "Color (parcial)"
// @Success      200  {object}  dto.ProductSearchResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	var in dto.ProductSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.Search(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Label godoc
// @Summary      Etiqueta PDF del producto
// @Description  Nombre, código de barras del SKU y precio.
// @Tags         products
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/label [get]
func (h *ProductHandler) Label(c *fiber.Ctx) error {
	pdf, product, err := h.uc.Label(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="label-`+product.SKU+`.pdf"`)
	return c.Send(pdf)
}
