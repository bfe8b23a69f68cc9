// Package memory implementa los puertos de repositorio sobre mapas en
// memoria, con un TxRunner de copia-y-reemplazo: cada transacción corre
// contra un clon del estado y solo se publica si la función termina sin
// error. Se usa en tests y para desarrollo sin PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

type balanceKey struct {
	ProductID  string
	LocationID string
}

// state es el contenido completo del almacén. Las transacciones clonan el
// estado entero; con los volúmenes de test es más simple y más seguro que
// un log de deshacer.
type state struct {
	products  map[string]entity.Product
	locations map[string]entity.Location
	movements map[string]entity.Movement
	balances  map[balanceKey]entity.Balance
}

func newState() *state {
	return &state{
		products:  make(map[string]entity.Product),
		locations: make(map[string]entity.Location),
		movements: make(map[string]entity.Movement),
		balances:  make(map[balanceKey]entity.Balance),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.movements {
		c.movements[k] = v
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	return c
}

// Store almacén en memoria. Las vistas de repositorio (Products(),
// Movements(), …) operan sobre el estado vivo; Run ejecuta una transacción.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run ejecuta fn contra un clon del estado y, si no hay error, publica el
// clon como nuevo estado (commit). Cualquier error descarta el clon entero
// (rollback), incluidas las reversiones parciales de una edición fallida.
func (s *Store) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state.clone()
	if err := fn(&MovementRepo{state: snap}, &BalanceRepo{state: snap}); err != nil {
		return err
	}
	s.state = snap
	return nil
}

// Products devuelve la vista de repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return &ProductRepo{store: s} }

// Locations devuelve la vista de repositorio de ubicaciones.
func (s *Store) Locations() repository.LocationRepository { return &LocationRepo{store: s} }

// Movements devuelve la vista de repositorio de movimientos.
func (s *Store) Movements() repository.MovementRepository { return &MovementRepo{store: s} }

// Balances devuelve la vista de repositorio de saldos.
func (s *Store) Balances() repository.BalanceRepository { return &BalanceRepo{store: s} }

// viewState ejecuta fn bajo lock de lectura sobre el estado vivo. Las vistas
// atadas a una transacción (store == nil) leen su clon sin lock: el lock de
// escritura de Run ya serializa la transacción entera.
func viewState(store *Store, st *state, fn func(*state)) {
	if store == nil {
		fn(st)
		return
	}
	store.mu.RLock()
	defer store.mu.RUnlock()
	fn(store.state)
}

func mutateState(store *Store, st *state, fn func(*state)) {
	if store == nil {
		fn(st)
		return
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	fn(store.state)
}

// ─── Productos ───────────────────────────────────────────────────────────────

var _ repository.ProductRepository = (*ProductRepo)(nil)

type ProductRepo struct {
	store *Store
	state *state
}

func (r *ProductRepo) Create(p *entity.Product) error {
	mutateState(r.store, r.state, func(s *state) { s.products[p.ID] = *p })
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	var out *entity.Product
	viewState(r.store, r.state, func(s *state) {
		if p, ok := s.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *ProductRepo) List() ([]*entity.Product, error) {
	var out []*entity.Product
	viewState(r.store, r.state, func(s *state) {
		for _, p := range s.products {
			p := p
			out = append(out, &p)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	mutateState(r.store, r.state, func(s *state) { s.products[p.ID] = *p })
	return nil
}

func (r *ProductRepo) Delete(id string) error {
	mutateState(r.store, r.state, func(s *state) { delete(s.products, id) })
	return nil
}

// ─── Ubicaciones ─────────────────────────────────────────────────────────────

var _ repository.LocationRepository = (*LocationRepo)(nil)

type LocationRepo struct {
	store *Store
	state *state
}

func (r *LocationRepo) Create(l *entity.Location) error {
	mutateState(r.store, r.state, func(s *state) { s.locations[l.ID] = *l })
	return nil
}

func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	var out *entity.Location
	viewState(r.store, r.state, func(s *state) {
		if l, ok := s.locations[id]; ok {
			out = &l
		}
	})
	return out, nil
}

func (r *LocationRepo) List() ([]*entity.Location, error) {
	var out []*entity.Location
	viewState(r.store, r.state, func(s *state) {
		for _, l := range s.locations {
			l := l
			out = append(out, &l)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LocationRepo) Update(l *entity.Location) error {
	mutateState(r.store, r.state, func(s *state) { s.locations[l.ID] = *l })
	return nil
}

func (r *LocationRepo) Delete(id string) error {
	mutateState(r.store, r.state, func(s *state) { delete(s.locations, id) })
	return nil
}

// ─── Movimientos ─────────────────────────────────────────────────────────────

var _ repository.MovementRepository = (*MovementRepo)(nil)

type MovementRepo struct {
	store *Store
	state *state
}

func (r *MovementRepo) Create(m *entity.Movement) error {
	mutateState(r.store, r.state, func(s *state) { s.movements[m.ID] = *m })
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	var out *entity.Movement
	viewState(r.store, r.state, func(s *state) {
		if m, ok := s.movements[id]; ok {
			out = &m
		}
	})
	return out, nil
}

// Update reemplaza la fila; si el movimiento ya no existe devuelve
// ErrNotFound (paridad con el UPDATE ... WHERE id de PostgreSQL que no
// afecta filas).
func (r *MovementRepo) Update(m *entity.Movement) error {
	found := false
	mutateState(r.store, r.state, func(s *state) {
		if _, ok := s.movements[m.ID]; ok {
			s.movements[m.ID] = *m
			found = true
		}
	})
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MovementRepo) Delete(id string) error {
	mutateState(r.store, r.state, func(s *state) { delete(s.movements, id) })
	return nil
}

func (r *MovementRepo) List() ([]*entity.Movement, error) {
	out, err := r.ListAll()
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MovementRepo) ListAll() ([]*entity.Movement, error) {
	var out []*entity.Movement
	viewState(r.store, r.state, func(s *state) {
		for _, m := range s.movements {
			m := m
			out = append(out, &m)
		}
	})
	return out, nil
}

func (r *MovementRepo) ListByProduct(productID string) ([]*entity.Movement, error) {
	return r.filtered(func(m *entity.Movement) bool { return m.ProductID == productID })
}

func (r *MovementRepo) ListByFromLocation(locationID string) ([]*entity.Movement, error) {
	return r.filtered(func(m *entity.Movement) bool { return m.FromLocation == locationID })
}

func (r *MovementRepo) ListByToLocation(locationID string) ([]*entity.Movement, error) {
	return r.filtered(func(m *entity.Movement) bool { return m.ToLocation == locationID })
}

func (r *MovementRepo) filtered(keep func(*entity.Movement) bool) ([]*entity.Movement, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, m := range all {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MovementRepo) CountByProduct(productID string) (int64, error) {
	list, err := r.ListByProduct(productID)
	return int64(len(list)), err
}

func (r *MovementRepo) CountByLocation(locationID string) (int64, error) {
	list, err := r.filtered(func(m *entity.Movement) bool {
		return m.FromLocation == locationID || m.ToLocation == locationID
	})
	return int64(len(list)), err
}

func (r *MovementRepo) Count() (int64, error) {
	list, err := r.ListAll()
	return int64(len(list)), err
}

// ─── Saldos ──────────────────────────────────────────────────────────────────

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

type BalanceRepo struct {
	store *Store
	state *state
}

func (r *BalanceRepo) Get(productID, locationID string) (*entity.Balance, error) {
	var out *entity.Balance
	viewState(r.store, r.state, func(s *state) {
		if b, ok := s.balances[balanceKey{productID, locationID}]; ok {
			out = &b
		}
	})
	return out, nil
}

// GetForUpdate no necesita bloquear nada extra: el lock de escritura del
// TxRunner ya serializa transacciones completas.
func (r *BalanceRepo) GetForUpdate(productID, locationID string) (*entity.Balance, error) {
	return r.Get(productID, locationID)
}

func (r *BalanceRepo) Upsert(b *entity.Balance) error {
	mutateState(r.store, r.state, func(s *state) {
		s.balances[balanceKey{b.ProductID, b.LocationID}] = *b
	})
	return nil
}

func (r *BalanceRepo) ListByProduct(productID string) ([]*entity.Balance, error) {
	return r.filtered(func(b *entity.Balance) bool { return b.ProductID == productID })
}

func (r *BalanceRepo) ListByLocation(locationID string) ([]*entity.Balance, error) {
	return r.filtered(func(b *entity.Balance) bool { return b.LocationID == locationID })
}

func (r *BalanceRepo) ListNonZero() ([]*entity.Balance, error) {
	return r.filtered(func(b *entity.Balance) bool { return b.Balance != 0 })
}

func (r *BalanceRepo) filtered(keep func(*entity.Balance) bool) ([]*entity.Balance, error) {
	var out []*entity.Balance
	viewState(r.store, r.state, func(s *state) {
		for _, b := range s.balances {
			b := b
			if keep(&b) {
				out = append(out, &b)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out, nil
}

func (r *BalanceRepo) DeleteAll() error {
	mutateState(r.store, r.state, func(s *state) {
		s.balances = make(map[balanceKey]entity.Balance)
	})
	return nil
}

func (r *BalanceRepo) SumAll() (int64, error) {
	var total int64
	viewState(r.store, r.state, func(s *state) {
		for _, b := range s.balances {
			total += b.Balance
		}
	})
	return total, nil
}
