package dto

import "github.com/shopspring/decimal"

// InventoryRowDTO fila de la tabla de inventario filtrada.
type InventoryRowDTO struct {
	ProductName     string          `json:"product_name"`
	Supplier        string          `json:"supplier"`
	QuantityInStock int             `json:"quantity_in_stock"`
	ReorderPoint    int             `json:"reorder_point"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Value           decimal.Decimal `json:"value"` // QuantityInStock * UnitCost
	LowStock        bool            `json:"low_stock"`
}

// InventoryViewDTO respuesta de GET /api/inventory.
type InventoryViewDTO struct {
	Snapshot SnapshotMetaDTO   `json:"snapshot"`
	Filter   FilterDTO         `json:"filter"`
	Count    int               `json:"count"`
	Items    []InventoryRowDTO `json:"items"`
}

// SupplierOptionsDTO respuesta de GET /api/suppliers: opciones de los controles de filtro.
type SupplierOptionsDTO struct {
	Suppliers          []string `json:"suppliers"` // "All" primero
	DefaultSupplier    string   `json:"default_supplier"`
	DefaultMinQuantity int      `json:"default_min_quantity"`
	MaxMinQuantity     int      `json:"max_min_quantity"`
}

// StatusDTO respuesta de GET /api/status.
type StatusDTO struct {
	Snapshot        SnapshotMetaDTO `json:"snapshot"`
	Source          string          `json:"source"`
	Records         int             `json:"records"`
	RefreshState    string          `json:"refresh_state"` // idle | running | stopped
	IntervalSeconds int             `json:"interval_seconds"`
}
