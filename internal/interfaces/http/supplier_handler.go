package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stylelane-api/internal/application/dto"
	"github.com/jhoicas/stylelane-api/internal/application/inventory"
)

// SupplierHandler cola de reposición del supplier y avisos de despacho.
type SupplierHandler struct {
	restocks   *inventory.RestockUseCase
	shipNotice *inventory.ShipNoticeUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(restocks *inventory.RestockUseCase, shipNotice *inventory.ShipNoticeUseCase) *SupplierHandler {
	return &SupplierHandler{restocks: restocks, shipNotice: shipNotice}
}

// ListOpen godoc
// @Summary      Solicitudes abiertas
// @Description  Solicitudes en pending, approved o shipped, más recientes primero.
// @Tags         supplier
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.RestockResponse]
// @Router       /api/supplier/restock-requests [get]
func (h *SupplierHandler) ListOpen(c *fiber.Ctx) error {
	out, err := h.restocks.ListOpenRequests(c.Context(), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Transition godoc
// @Summary      Avanzar una solicitud de reposición
// @Description  accept: pending→approved. reject: pending o approved→rejected. ship: pending o approved→shipped (suma stock una sola vez). Estados cerrados: 409.
// @Tags         supplier
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.TransitionRequest  true  "action, tracking_info"
// @Success      200   {object}  dto.RestockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplier/restock-requests/{id}/transition [post]
func (h *SupplierHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.restocks.Transition(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ShipNotice godoc
// @Summary      Aviso de despacho (ASN) en XML
// @Description  Disponible para solicitudes despachadas. X-Content-Digest lleva el SHA-256 de la forma canónica.
// @Tags         shipments
// @Security     Bearer
// @Produce      application/xml
// @Param        requestId  path  string  true  "ID de la solicitud"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shipments/{requestId}/asn [get]
func (h *SupplierHandler) ShipNotice(c *fiber.Ctx) error {
	doc, err := h.shipNotice.Generate(c.Context(), actor(c), c.Params("requestId"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	c.Set("X-Content-Digest", "sha-256="+doc.Digest)
	return c.Send(doc.XML)
}
