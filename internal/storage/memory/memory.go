// Package memory is an in-process implementation of the storage tables, used for demo
// mode and tests. Writes go through Tx, which works on a copy of the state and swaps it in
// on Commit, so a rolled back action leaves nothing behind. Readers load the last
// committed state and never wait for a writer.
package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/together-server/internal/finance"
	"github.com/carson-networks/together-server/internal/storage/account"
	"github.com/carson-networks/together-server/internal/storage/person"
	"github.com/carson-networks/together-server/internal/storage/rate"
	"github.com/carson-networks/together-server/internal/storage/transaction"
)

var (
	ErrTxDone             = errors.New("memory: transaction already committed or rolled back")
	ErrAccountMissing     = errors.New("memory: account does not exist")
	ErrPersonMissing      = errors.New("memory: person does not exist")
	ErrNonPositiveRate    = errors.New("memory: rate must be positive")
	ErrNonPositiveAmount  = errors.New("memory: amount must be positive")
	ErrInvalidPersonField = errors.New("memory: person key outside enum")
)

type personID struct {
	accountID uuid.UUID
	key       finance.PersonKey
}

type ratePair struct {
	base   string
	target string
}

type state struct {
	accounts     map[uuid.UUID]account.Account
	persons      map[personID]person.Person
	transactions map[uuid.UUID]transaction.Transaction
	rates        map[ratePair]rate.Rate
}

func newState() *state {
	return &state{
		accounts:     make(map[uuid.UUID]account.Account),
		persons:      make(map[personID]person.Person),
		transactions: make(map[uuid.UUID]transaction.Transaction),
		rates:        make(map[ratePair]rate.Rate),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.persons {
		c.persons[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for k, v := range s.rates {
		c.rates[k] = v
	}
	return c
}

// DB holds the committed state. A published state is never mutated; writers serialize
// on mu and publish a modified copy.
type DB struct {
	mu   sync.Mutex
	st   atomic.Pointer[state]
	now  func() time.Time
	seed []rate.Rate
}

// Option is the functional options pattern for DB.
type Option func(*DB)

// WithClock replaces time.Now for server-assigned timestamps.
func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		db.now = now
	}
}

// WithRates seeds the rate table.
func WithRates(rates ...rate.Rate) Option {
	return func(db *DB) {
		db.seed = append(db.seed, rates...)
	}
}

// DefaultRates mirrors the rows seeded by the initial migration.
func DefaultRates() []rate.Rate {
	seed := []struct {
		base, target, value string
	}{
		{"EUR", "USD", "1.10"},
		{"USD", "EUR", "0.91"},
		{"GBP", "USD", "1.27"},
		{"USD", "GBP", "0.79"},
		{"EUR", "GBP", "0.86"},
		{"GBP", "EUR", "1.16"},
	}
	rates := make([]rate.Rate, len(seed))
	for i, s := range seed {
		rates[i] = rate.Rate{Base: s.base, Target: s.target, Rate: decimal.RequireFromString(s.value)}
	}
	return rates
}

func New(opts ...Option) *DB {
	db := &DB{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(db)
	}
	// seeded after every option so the configured clock stamps them
	st := newState()
	for _, r := range db.seed {
		if r.LastUpdated.IsZero() {
			r.LastUpdated = db.now()
		}
		st.rates[ratePair{base: r.Base, target: r.Target}] = r
	}
	db.seed = nil
	db.st.Store(st)
	return db
}

// Tables returns tables that read and write the committed state directly.
func (db *DB) Tables() Tables {
	return newTables(&dbView{db: db}, db.now)
}

// Begin takes the write lock until Commit or Rollback. Readers are not blocked.
func (db *DB) Begin(ctx context.Context) (*Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mu.Lock()
	return &Tx{db: db, st: db.st.Load().clone()}, nil
}

// Tx is a pending set of writes.
type Tx struct {
	db   *DB
	st   *state
	done bool
}

func (tx *Tx) Tables() Tables {
	return newTables(&txView{tx: tx}, tx.db.now)
}

func (tx *Tx) Commit(_ context.Context) error {
	if tx.done {
		return ErrTxDone
	}
	tx.db.st.Store(tx.st)
	tx.done = true
	tx.db.mu.Unlock()
	return nil
}

func (tx *Tx) Rollback(_ context.Context) error {
	if tx.done {
		return ErrTxDone
	}
	tx.done = true
	tx.db.mu.Unlock()
	return nil
}

// view abstracts over locked access to the committed state and unlocked access
// to a transaction's private copy.
type view interface {
	read(fn func(*state) error) error
	write(fn func(*state) error) error
}

type dbView struct {
	db *DB
}

func (v *dbView) read(fn func(*state) error) error {
	return fn(v.db.st.Load())
}

func (v *dbView) write(fn func(*state) error) error {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	next := v.db.st.Load().clone()
	if err := fn(next); err != nil {
		return err
	}
	v.db.st.Store(next)
	return nil
}

type txView struct {
	tx *Tx
}

func (v *txView) read(fn func(*state) error) error {
	if v.tx.done {
		return ErrTxDone
	}
	return fn(v.tx.st)
}

func (v *txView) write(fn func(*state) error) error {
	if v.tx.done {
		return ErrTxDone
	}
	return fn(v.tx.st)
}
