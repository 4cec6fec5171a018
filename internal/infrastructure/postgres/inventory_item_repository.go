package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-monitor/internal/domain"
	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
	"github.com/jhoicas/inventario-monitor/internal/domain/inventory"
	"github.com/jhoicas/inventario-monitor/internal/domain/repository"
)

var (
	_ repository.BaselineSource = (*InventoryItemRepo)(nil)
	_ repository.BaselineWriter = (*InventoryItemRepo)(nil)
)

// SchemaSQL crea la tabla del baseline si no existe. position conserva el orden del archivo de origen.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS inventory_items (
	position          INTEGER       PRIMARY KEY,
	product_name      TEXT          NOT NULL,
	supplier          TEXT          NOT NULL,
	quantity_in_stock INTEGER       NOT NULL CHECK (quantity_in_stock >= 0),
	reorder_point     INTEGER       NOT NULL CHECK (reorder_point >= 0),
	unit_cost         NUMERIC(14,4) NOT NULL CHECK (unit_cost >= 0)
)`

// InventoryItemRepo lee y siembra el baseline en la tabla inventory_items.
type InventoryItemRepo struct {
	q  Querier
	tx *TxRunner
}

// NewInventoryItemRepository construye el adaptador. tx puede ser nil si sólo se lee.
func NewInventoryItemRepository(q Querier, tx *TxRunner) *InventoryItemRepo {
	return &InventoryItemRepo{q: q, tx: tx}
}

func (r *InventoryItemRepo) Name() string { return "postgres:inventory_items" }

// EnsureSchema aplica SchemaSQL.
func (r *InventoryItemRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("crear inventory_items: %w", err)
	}
	return nil
}

// Load devuelve el baseline en orden de position. Filas inválidas son error de carga.
func (r *InventoryItemRepo) Load(ctx context.Context) ([]entity.InventoryRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT position, product_name, supplier, quantity_in_stock, reorder_point, unit_cost
		FROM inventory_items ORDER BY position`)
	if err != nil {
		return nil, domain.NewDataLoadError(r.Name(), fmt.Errorf("query: %w", err))
	}
	defer rows.Close()

	records := make([]entity.InventoryRecord, 0)
	for rows.Next() {
		var (
			pos int
			rec entity.InventoryRecord
		)
		if err := rows.Scan(&pos, &rec.ProductName, &rec.Supplier, &rec.QuantityInStock, &rec.ReorderPoint, &rec.UnitCost); err != nil {
			return nil, domain.NewDataLoadError(r.Name(), fmt.Errorf("scan: %w", err))
		}
		if err := inventory.ValidateRecord(rec); err != nil {
			return nil, &domain.DataLoadError{Source: r.Name(), Row: pos, Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewDataLoadError(r.Name(), err)
	}
	return records, nil
}

// ReplaceAll reemplaza el contenido de la tabla en una sola transacción.
func (r *InventoryItemRepo) ReplaceAll(ctx context.Context, records []entity.InventoryRecord) error {
	if r.tx == nil {
		return fmt.Errorf("inventory_items: ReplaceAll requiere TxRunner")
	}
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM inventory_items`); err != nil {
			return fmt.Errorf("vaciar inventory_items: %w", err)
		}
		rows := make([][]any, 0, len(records))
		for i, rec := range records {
			rows = append(rows, []any{i + 1, rec.ProductName, rec.Supplier, rec.QuantityInStock, rec.ReorderPoint, rec.UnitCost})
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"inventory_items"},
			[]string{"position", "product_name", "supplier", "quantity_in_stock", "reorder_point", "unit_cost"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			if isCheckViolation(err) {
				return fmt.Errorf("copiar inventory_items: %w: %v", domain.ErrInvalidInput, err)
			}
			return fmt.Errorf("copiar inventory_items: %w", err)
		}
		return nil
	})
}
