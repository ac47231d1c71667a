package dto

import (
	"github.com/jhoicas/stylelane-api/internal/domain/entity"
	"github.com/jhoicas/stylelane-api/internal/domain/repository"
)

// ToUserResponse convierte User a su DTO (sin hash).
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Role:         u.Role,
		StoreID:      u.StoreID,
		SupplierName: u.SupplierName,
		ContactEmail: u.ContactEmail,
		CreatedAt:    u.CreatedAt,
	}
}

// ToStoreResponse convierte Store a su DTO.
func ToStoreResponse(s *entity.Store) StoreResponse {
	return StoreResponse{ID: s.ID, Name: s.Name, Location: s.Location, CreatedAt: s.CreatedAt}
}

// ToProductResponse convierte Product a su DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     p.Category,
		Size:         p.Size,
		Color:        p.Color,
		Price:        p.Price,
		CostPrice:    p.CostPrice,
		ProfitMargin: p.ProfitMargin(),
		ImageURL:     p.ImageURL,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToInventoryItemResponse convierte una fila enriquecida de inventario.
func ToInventoryItemResponse(it repository.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:                it.Record.ID,
		StoreID:           it.Record.StoreID,
		StoreName:         it.StoreName,
		ProductID:         it.Record.ProductID,
		SKU:               it.Product.SKU,
		ProductName:       it.Product.Name,
		Category:          it.Product.Category,
		Size:              it.Product.Size,
		Color:             it.Product.Color,
		Price:             it.Product.Price,
		Quantity:          it.Record.Quantity,
		LowStockThreshold: it.Record.LowStockThreshold,
		IsLow:             it.Record.IsLow(),
		UpdatedAt:         it.Record.UpdatedAt,
	}
}

// ToRestockResponse convierte una solicitud (con su Shipment si existe).
func ToRestockResponse(r *entity.RestockRequest) RestockResponse {
	out := RestockResponse{
		ID:                r.ID,
		InventoryID:       r.InventoryID,
		StoreID:           r.StoreID,
		ProductID:         r.ProductID,
		QuantityRequested: r.QuantityRequested,
		Status:            r.Status,
		ManagerID:         r.ManagerID,
		SupplierID:        r.SupplierID,
		Notes:             r.Notes,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
	if r.Shipment != nil {
		out.Shipment = &ShipmentResponse{
			ID:           r.Shipment.ID,
			Status:       r.Shipment.Status,
			TrackingInfo: r.Shipment.TrackingInfo,
			UpdatedAt:    r.Shipment.UpdatedAt,
		}
	}
	return out
}

// ToRestockItemResponse convierte una solicitud listada con datos descriptivos.
func ToRestockItemResponse(it repository.RestockItem) RestockResponse {
	out := ToRestockResponse(&it.Request)
	out.StoreName = it.StoreName
	out.SKU = it.SKU
	out.ProductName = it.ProductName
	return out
}

// ToProductSalesDTO convierte un agregado de ventas por producto.
func ToProductSalesDTO(p repository.ProductSales) ProductSalesDTO {
	return ProductSalesDTO{
		ProductID:   p.ProductID,
		SKU:         p.SKU,
		ProductName: p.Name,
		UnitsSold:   p.Units,
		Revenue:     p.Revenue,
	}
}
