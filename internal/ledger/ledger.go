// Package ledger persists completed orders and the history of deleted ones.
//
// Both collections are JSON arrays stored under a single key each and are
// rewritten as whole snapshots on every mutation. A collection that cannot be
// decoded is logged and read as empty; it is never a fatal error.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/roach88/techbar/internal/store"
)

// Storage keys of the two collections.
const (
	KeyOrders  = "orders"
	KeyHistory = "orderHistory"
)

// DefaultDateLayout renders stamps the way the bar's locale prints them.
const DefaultDateLayout = "02/01/2006, 15:04:05"

// HistorySecret unlocks ClearHistory. It is compared byte for byte.
const HistorySecret = "43251"

// ErrSecretMismatch is returned by ClearHistory for a wrong secret.
var ErrSecretMismatch = errors.New("history secret mismatch")

// Item is one line of a persisted order.
type Item struct {
	ID             ID              `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Customizations []string        `json:"customizations"`
}

// Record is a completed order. DeletedAt is set once the order moves to
// history.
type Record struct {
	ID        ID              `json:"id"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Date      string          `json:"date"`
	DeletedAt string          `json:"deletedAt,omitempty"`
}

// Sum returns the total of the unit prices of items.
func Sum(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}
	return total
}

// Clock supplies wall time for date stamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Ledger reads and writes the order collections through a store.KV.
type Ledger struct {
	kv     store.KV
	clock  Clock
	layout string
	logger *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used for date stamps.
func WithClock(c Clock) Option {
	return func(l *Ledger) { l.clock = c }
}

// WithDateLayout sets the time layout of date stamps.
func WithDateLayout(layout string) Option {
	return func(l *Ledger) {
		if layout != "" {
			l.layout = layout
		}
	}
}

// WithLogger sets the logger used to report corrupt collections.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// New creates a Ledger over kv.
func New(kv store.KV, opts ...Option) *Ledger {
	l := &Ledger{
		kv:     kv,
		clock:  systemClock{},
		layout: DefaultDateLayout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Stamp formats the current time with the ledger's layout.
func (l *Ledger) Stamp() string {
	return l.clock.Now().Format(l.layout)
}

// Save appends rec to the orders collection. Missing dates are stamped.
func (l *Ledger) Save(ctx context.Context, rec Record) error {
	if rec.Date == "" {
		rec.Date = l.Stamp()
	}
	orders, err := l.load(ctx, KeyOrders)
	if err != nil {
		return fmt.Errorf("save order %s: %w", rec.ID, err)
	}
	orders = append(orders, rec)

	value, err := encode(orders)
	if err != nil {
		return fmt.Errorf("save order %s: %w", rec.ID, err)
	}
	if err := l.kv.Put(ctx, KeyOrders, value); err != nil {
		return fmt.Errorf("save order %s: %w", rec.ID, err)
	}
	return nil
}

// Orders returns the saved orders in completion order.
func (l *Ledger) Orders(ctx context.Context) ([]Record, error) {
	return l.load(ctx, KeyOrders)
}

// History returns deleted orders, newest deletion first.
func (l *Ledger) History(ctx context.Context) ([]Record, error) {
	history, err := l.load(ctx, KeyHistory)
	if err != nil {
		return nil, err
	}
	slices.Reverse(history)
	return history, nil
}

// Delete moves the order with the given id into history, stamped with the
// deletion time. It reports false, and writes nothing, for an unknown id.
func (l *Ledger) Delete(ctx context.Context, id ID) (bool, error) {
	orders, err := l.load(ctx, KeyOrders)
	if err != nil {
		return false, fmt.Errorf("delete order %s: %w", id, err)
	}
	i := slices.IndexFunc(orders, func(r Record) bool { return r.ID == id })
	if i < 0 {
		return false, nil
	}
	rec := orders[i]
	rec.DeletedAt = l.Stamp()
	orders = slices.Delete(orders, i, i+1)

	history, err := l.load(ctx, KeyHistory)
	if err != nil {
		return false, fmt.Errorf("delete order %s: %w", id, err)
	}
	history = append(history, rec)

	ordersJSON, err := encode(orders)
	if err != nil {
		return false, fmt.Errorf("delete order %s: %w", id, err)
	}
	historyJSON, err := encode(history)
	if err != nil {
		return false, fmt.Errorf("delete order %s: %w", id, err)
	}

	err = l.kv.PutAll(ctx,
		store.Entry{Key: KeyOrders, Value: ordersJSON},
		store.Entry{Key: KeyHistory, Value: historyJSON},
	)
	if err != nil {
		return false, fmt.Errorf("delete order %s: %w", id, err)
	}
	return true, nil
}

// ClearHistory empties the history when secret matches HistorySecret.
func (l *Ledger) ClearHistory(ctx context.Context, secret string) error {
	if secret != HistorySecret {
		return ErrSecretMismatch
	}
	if err := l.kv.Put(ctx, KeyHistory, "[]"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// load decodes one collection. Absent or corrupt data reads as empty.
func (l *Ledger) load(ctx context.Context, key string) ([]Record, error) {
	raw, ok, err := l.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []Record{}, nil
	}
	var recs []Record
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		l.logger.Warn("discarding unreadable collection",
			"key", key,
			"error", err,
		)
		return []Record{}, nil
	}
	if recs == nil {
		recs = []Record{}
	}
	return recs, nil
}

func encode(recs []Record) (string, error) {
	b, err := json.Marshal(recs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
