package order

import (
	"errors"
	"sync"
	"time"
)

// ErrNoDraft no hay borrador para ese scope (nunca se entró al constructor, se descartó o venció).
var ErrNoDraft = errors.New("no hay una orden en preparación")

// Kind tipo de borrador.
type Kind string

const (
	KindSales    Kind = "sales"
	KindPurchase Kind = "purchase"
)

type draftKey struct {
	scope string
	kind  Kind
}

type entry[T any] struct {
	draft   T
	touched time.Time
}

// Registry guarda a lo sumo un borrador por (scope, kind). Los borradores viven solo en
// memoria del proceso: se descartan al navegar fuera del constructor, al confirmar la
// orden o al superar el TTL sin uso.
type Registry[T any] struct {
	kind     Kind
	newDraft func() T
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	entries map[draftKey]*entry[T]
}

// NewRegistry crea un registro para un tipo de borrador. ttl <= 0 desactiva el barrido.
func NewRegistry[T any](kind Kind, newDraft func() T, ttl time.Duration) *Registry[T] {
	return &Registry[T]{
		kind:     kind,
		newDraft: newDraft,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[draftKey]*entry[T]),
	}
}

// Kind tipo de borrador que administra.
func (r *Registry[T]) Kind() Kind { return r.kind }

// Start descarta cualquier borrador previo del scope y crea uno nuevo. init (opcional)
// corre bajo el mismo lock, antes de que el borrador sea visible para otros requests.
func (r *Registry[T]) Start(scope string, init func(T)) T {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := r.newDraft()
	if init != nil {
		init(d)
	}
	r.entries[draftKey{scope, r.kind}] = &entry[T]{draft: d, touched: r.now()}
	return d
}

// With ejecuta fn sobre el borrador del scope (creándolo si no existe) bajo el lock,
// así dos requests simultáneos del mismo navegador no pisan el estado.
func (r *Registry[T]) With(scope string, fn func(T) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := draftKey{scope, r.kind}
	e, ok := r.entries[key]
	if !ok {
		e = &entry[T]{draft: r.newDraft()}
		r.entries[key] = e
	}
	e.touched = r.now()
	return fn(e.draft)
}

// Update como With pero sin crear: si no hay borrador devuelve ErrNoDraft.
func (r *Registry[T]) Update(scope string, fn func(T) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[draftKey{scope, r.kind}]
	if !ok {
		return ErrNoDraft
	}
	e.touched = r.now()
	return fn(e.draft)
}

// Get devuelve el borrador existente sin crearlo.
func (r *Registry[T]) Get(scope string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[draftKey{scope, r.kind}]
	if !ok {
		var zero T
		return zero, false
	}
	return e.draft, true
}

// Discard elimina el borrador del scope. Idempotente.
func (r *Registry[T]) Discard(scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, draftKey{scope, r.kind})
}

// Len cantidad de borradores vivos.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep elimina los borradores sin uso desde hace más de ttl y devuelve cuántos borró.
func (r *Registry[T]) Sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for k, e := range r.entries {
		if now.Sub(e.touched) > r.ttl {
			delete(r.entries, k)
			n++
		}
	}
	return n
}

// Discarder lo implementa cada Registry; permite tratar ambos tipos juntos.
type Discarder interface {
	Kind() Kind
	Discard(scope string)
	Sweep(now time.Time) int
}

// Drafts agrupa los registros de venta y compra.
type Drafts struct {
	Sales    *Registry[*SalesDraft]
	Purchase *Registry[*PurchaseDraft]
}

// NewDrafts crea ambos registros con el mismo TTL.
func NewDrafts(ttl time.Duration) *Drafts {
	return &Drafts{
		Sales:    NewRegistry(KindSales, NewSalesDraft, ttl),
		Purchase: NewRegistry(KindPurchase, NewPurchaseDraft, ttl),
	}
}

func (d *Drafts) all() []Discarder {
	return []Discarder{d.Sales, d.Purchase}
}

// DiscardAll descarta todos los borradores del scope excepto el del tipo keep ("" = todos).
func (d *Drafts) DiscardAll(scope string, keep Kind) {
	for _, r := range d.all() {
		if r.Kind() != keep {
			r.Discard(scope)
		}
	}
}

// Sweep barre ambos registros.
func (d *Drafts) Sweep(now time.Time) int {
	n := 0
	for _, r := range d.all() {
		n += r.Sweep(now)
	}
	return n
}
