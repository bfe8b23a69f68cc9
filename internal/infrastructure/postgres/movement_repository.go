package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro mayor sobre PostgreSQL (usable con pool o tx).
// from_location y to_location van como NULL cuando el movimiento no las usa.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, product_id, from_location, to_location, qty, ts`

// Create persiste un movimiento en el libro mayor.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO product_movements (id, product_id, from_location, to_location, qty, ts)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID,
		nullable(movement.FromLocation), nullable(movement.ToLocation),
		movement.Qty, movement.Timestamp,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM product_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Update actualiza producto, ubicaciones y cantidad. El timestamp de
// creación no se toca. Cero filas afectadas = el movimiento ya no existe.
func (r *MovementRepo) Update(movement *entity.Movement) error {
	query := `
		UPDATE product_movements
		SET product_id = $2, from_location = $3, to_location = $4, qty = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID,
		nullable(movement.FromLocation), nullable(movement.ToLocation),
		movement.Qty,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un movimiento del libro mayor.
func (r *MovementRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// List devuelve todos los movimientos, más recientes primero.
func (r *MovementRepo) List() ([]*entity.Movement, error) {
	return r.list(`SELECT ` + movementColumns + ` FROM product_movements ORDER BY ts DESC, id DESC`)
}

// ListAll devuelve el libro mayor completo; el orden no importa para la
// recomputación (acumulación conmutativa).
func (r *MovementRepo) ListAll() ([]*entity.Movement, error) {
	return r.list(`SELECT ` + movementColumns + ` FROM product_movements`)
}

// ListByProduct lista los movimientos de un producto, más recientes primero.
func (r *MovementRepo) ListByProduct(productID string) ([]*entity.Movement, error) {
	return r.list(`SELECT `+movementColumns+` FROM product_movements WHERE product_id = $1 ORDER BY ts DESC, id DESC`, productID)
}

// ListByFromLocation lista los movimientos con la ubicación como origen.
func (r *MovementRepo) ListByFromLocation(locationID string) ([]*entity.Movement, error) {
	return r.list(`SELECT `+movementColumns+` FROM product_movements WHERE from_location = $1 ORDER BY ts DESC, id DESC`, locationID)
}

// ListByToLocation lista los movimientos con la ubicación como destino.
func (r *MovementRepo) ListByToLocation(locationID string) ([]*entity.Movement, error) {
	return r.list(`SELECT `+movementColumns+` FROM product_movements WHERE to_location = $1 ORDER BY ts DESC, id DESC`, locationID)
}

// CountByProduct cuenta los movimientos que referencian el producto
// (soporta la guarda de borrado).
func (r *MovementRepo) CountByProduct(productID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM product_movements WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count by product: %w", err)
	}
	return n, nil
}

// CountByLocation cuenta los movimientos que referencian la ubicación como
// origen o destino.
func (r *MovementRepo) CountByLocation(locationID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM product_movements WHERE from_location = $1 OR to_location = $1`, locationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count by location: %w", err)
	}
	return n, nil
}

// Count cuenta todos los movimientos.
func (r *MovementRepo) Count() (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM product_movements`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func (r *MovementRepo) list(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var from, to *string
	if err := row.Scan(&m.ID, &m.ProductID, &from, &to, &m.Qty, &m.Timestamp); err != nil {
		return nil, err
	}
	if from != nil {
		m.FromLocation = *from
	}
	if to != nil {
		m.ToLocation = *to
	}
	return &m, nil
}

// nullable mapea "" del dominio a NULL en la base.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
