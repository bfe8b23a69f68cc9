package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL (usable
// con pool o tx). Solo el motor de saldos escribe estas filas.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

const balanceColumns = `product_id, location_id, balance, last_updated`

// Get obtiene la fila de saldo, o nil si el par nunca ha tenido movimiento.
func (r *BalanceRepo) Get(productID, locationID string) (*entity.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM product_balances WHERE product_id = $1 AND location_id = $2`
	return r.get(query, productID, locationID)
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE) para
// serializar escritores concurrentes sobre la misma clave.
func (r *BalanceRepo) GetForUpdate(productID, locationID string) (*entity.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM product_balances WHERE product_id = $1 AND location_id = $2 FOR UPDATE`
	return r.get(query, productID, locationID)
}

func (r *BalanceRepo) get(query, productID, locationID string) (*entity.Balance, error) {
	var b entity.Balance
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&b.ProductID, &b.LocationID, &b.Balance, &b.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza la fila de saldo (por producto y ubicación).
func (r *BalanceRepo) Upsert(balance *entity.Balance) error {
	query := `
		INSERT INTO product_balances (product_id, location_id, balance, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET balance = EXCLUDED.balance, last_updated = EXCLUDED.last_updated`
	_, err := r.q.Exec(context.Background(), query,
		balance.ProductID, balance.LocationID, balance.Balance, balance.LastUpdated)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// ListByProduct lista los saldos de un producto ordenados por ubicación.
func (r *BalanceRepo) ListByProduct(productID string) ([]*entity.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM product_balances WHERE product_id = $1 ORDER BY location_id`
	return r.list(query, productID)
}

// ListByLocation lista los saldos de una ubicación ordenados por producto.
func (r *BalanceRepo) ListByLocation(locationID string) ([]*entity.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM product_balances WHERE location_id = $1 ORDER BY product_id`
	return r.list(query, locationID)
}

// ListNonZero lista las filas con saldo distinto de cero ordenadas por
// (product_id, location_id). Las filas en cero se quedan en la tabla pero
// fuera de esta vista.
func (r *BalanceRepo) ListNonZero() ([]*entity.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM product_balances WHERE balance <> 0 ORDER BY product_id, location_id`
	return r.list(query)
}

// DeleteAll vacía la tabla de saldos. Solo la recomputación lo invoca,
// dentro de su propia transacción.
func (r *BalanceRepo) DeleteAll() error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM product_balances`); err != nil {
		return fmt.Errorf("delete balances: %w", err)
	}
	return nil
}

// SumAll suma todos los saldos almacenados, incluidas las filas en cero.
func (r *BalanceRepo) SumAll() (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(balance), 0) FROM product_balances`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum balances: %w", err)
	}
	return total, nil
}

func (r *BalanceRepo) list(query string, args ...any) ([]*entity.Balance, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.Balance
	for rows.Next() {
		var b entity.Balance
		if err := rows.Scan(&b.ProductID, &b.LocationID, &b.Balance, &b.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
