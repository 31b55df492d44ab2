// Package ledger holds the persisted business collections (products,
// transactions, notes, expenses, todos, wallet) behind an in-memory mirror.
// Collections load once at startup and every mutation rewrites the full
// affected collection; there is no delta write and no cross-collection
// transaction.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"vyaparhub/backend/internal/domain"
	"vyaparhub/backend/internal/kv"
	"vyaparhub/backend/internal/xid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	keyProducts     = "products"
	keyTransactions = "transactions"
	keyNotes        = "notes"
	keyExpenses     = "expenses"
	keyTodos        = "todos"
	keyWallet       = "wallet"
	keyDarkMode     = "darkMode"
)

type Store struct {
	mu sync.RWMutex
	kv kv.Store

	products     []domain.Product
	transactions []domain.Transaction
	notes        []domain.Note
	expenses     []domain.Expense
	todos        []domain.Todo
	wallet       domain.Wallet
	darkMode     bool
}

// Open loads every collection from the key-value store. Absent or
// unparsable entries default to empty; a malformed payload is treated the
// same as a missing one and is never surfaced as an error. If no products
// are stored, the sample catalog is seeded and persisted.
func Open(ctx context.Context, store kv.Store) (*Store, error) {
	s := &Store{
		kv:           store,
		products:     []domain.Product{},
		transactions: []domain.Transaction{},
		notes:        []domain.Note{},
		expenses:     []domain.Expense{},
		todos:        []domain.Todo{},
		wallet:       domain.Wallet{History: []domain.WalletEntry{}},
	}

	loadJSON(ctx, store, keyProducts, &s.products)
	loadJSON(ctx, store, keyTransactions, &s.transactions)
	loadJSON(ctx, store, keyNotes, &s.notes)
	loadJSON(ctx, store, keyExpenses, &s.expenses)
	loadJSON(ctx, store, keyTodos, &s.todos)
	loadJSON(ctx, store, keyWallet, &s.wallet)

	if raw, found, err := store.Get(ctx, keyDarkMode); err == nil && found {
		s.darkMode = string(raw) == "true"
	}

	if len(s.products) == 0 {
		s.products = seedProducts()
		if err := s.persist(ctx, keyProducts, s.products); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// loadJSON decodes the stored document for key into dest. Decode failures
// leave dest at its default: the stored contract is parse-or-default.
func loadJSON(ctx context.Context, store kv.Store, key string, dest any) {
	data, found, err := store.Get(ctx, key)
	if err != nil || !found {
		return
	}
	// Decode into a throwaway copy first so a payload that fails part-way
	// through cannot leave dest half-filled.
	switch v := dest.(type) {
	case *[]domain.Product:
		var tmp []domain.Product
		if json.Unmarshal(data, &tmp) == nil && tmp != nil {
			*v = tmp
		}
	case *[]domain.Transaction:
		var tmp []domain.Transaction
		if json.Unmarshal(data, &tmp) == nil && tmp != nil {
			*v = tmp
		}
	case *[]domain.Note:
		var tmp []domain.Note
		if json.Unmarshal(data, &tmp) == nil && tmp != nil {
			*v = tmp
		}
	case *[]domain.Expense:
		var tmp []domain.Expense
		if json.Unmarshal(data, &tmp) == nil && tmp != nil {
			*v = tmp
		}
	case *[]domain.Todo:
		var tmp []domain.Todo
		if json.Unmarshal(data, &tmp) == nil && tmp != nil {
			*v = tmp
		}
	case *domain.Wallet:
		var tmp domain.Wallet
		if json.Unmarshal(data, &tmp) == nil {
			if tmp.History == nil {
				tmp.History = []domain.WalletEntry{}
			}
			*v = tmp
		}
	}
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: "prod-1", Name: "Rice 1kg", Price: 45, Stock: 50, MinStock: 10},
		{ID: "prod-2", Name: "Wheat Flour 1kg", Price: 35, Stock: 30, MinStock: 15},
		{ID: "prod-3", Name: "Sugar 1kg", Price: 40, Stock: 8, MinStock: 10},
	}
}

func (s *Store) persist(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, payload)
}

func (s *Store) Products(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, len(s.products))
	copy(products, s.products)
	return products, nil
}

func (s *Store) CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (*domain.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Price <= 0 || req.Stock < 0 || req.MinStock < 0 {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product := domain.Product{
		ID:       xid.New("prod"),
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		MinStock: req.MinStock,
	}
	s.products = append(s.products, product)
	if err := s.persist(ctx, keyProducts, s.products); err != nil {
		return &product, err
	}
	return &product, nil
}

func (s *Store) Transactions(_ context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneTransactions(s.transactions), nil
}

// RecentTransactions returns the last n transactions, most recent first.
func (s *Store) RecentTransactions(_ context.Context, n int) ([]domain.Transaction, error) {
	if n < 1 {
		n = 5
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.transactions) - n
	if start < 0 {
		start = 0
	}
	tail := s.transactions[start:]
	result := make([]domain.Transaction, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		result = append(result, cloneTransaction(tail[i]))
	}
	return result, nil
}

// AppendTransaction adds tx to the ledger and rewrites the stored
// collection. The in-memory append is kept even when the write fails; the
// error is surfaced so callers can notify, but there is no rollback.
func (s *Store) AppendTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	if tx.ID == "" {
		tx.ID = xid.New("tx")
	}
	if tx.Date == "" {
		tx.Date = time.Now().UTC().Format(time.RFC3339)
	}
	if tx.Type == "" {
		tx.Type = domain.TxTypeSale
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = append(s.transactions, cloneTransaction(tx))
	saved := cloneTransaction(tx)
	if err := s.persist(ctx, keyTransactions, s.transactions); err != nil {
		return &saved, err
	}
	return &saved, nil
}

func (s *Store) Notes(_ context.Context) ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]domain.Note, len(s.notes))
	copy(notes, s.notes)
	return notes, nil
}

func (s *Store) AddNote(ctx context.Context, text string) (*domain.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := domain.Note{
		ID:        xid.New("note"),
		Text:      text,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.notes = append(s.notes, note)
	if err := s.persist(ctx, keyNotes, s.notes); err != nil {
		return &note, err
	}
	return &note, nil
}

func (s *Store) Expenses(_ context.Context) ([]domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expenses := make([]domain.Expense, len(s.expenses))
	copy(expenses, s.expenses)
	return expenses, nil
}

func (s *Store) AddExpense(ctx context.Context, label string, amount float64) (*domain.Expense, error) {
	label = strings.TrimSpace(label)
	if label == "" || amount <= 0 {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expense := domain.Expense{
		ID:     xid.New("exp"),
		Label:  label,
		Amount: amount,
		Date:   time.Now().UTC().Format(time.RFC3339),
	}
	s.expenses = append(s.expenses, expense)
	if err := s.persist(ctx, keyExpenses, s.expenses); err != nil {
		return &expense, err
	}
	return &expense, nil
}

func (s *Store) Todos(_ context.Context) ([]domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]domain.Todo, len(s.todos))
	copy(todos, s.todos)
	return todos, nil
}

func (s *Store) AddTodo(ctx context.Context, text string) (*domain.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	todo := domain.Todo{
		ID:   xid.New("todo"),
		Text: text,
	}
	s.todos = append(s.todos, todo)
	if err := s.persist(ctx, keyTodos, s.todos); err != nil {
		return &todo, err
	}
	return &todo, nil
}

// Wallet is tracked but never mutated by any implemented operation; it is
// exposed read-only.
func (s *Store) Wallet(_ context.Context) (domain.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wallet := s.wallet
	history := make([]domain.WalletEntry, len(s.wallet.History))
	copy(history, s.wallet.History)
	wallet.History = history
	return wallet, nil
}

func (s *Store) DarkMode(_ context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.darkMode
}

func (s *Store) SetDarkMode(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.darkMode = enabled
	value := "false"
	if enabled {
		value = "true"
	}
	return s.kv.Set(ctx, keyDarkMode, []byte(value))
}

// Snapshot returns copies of the collections the metrics aggregator reads.
func (s *Store) Snapshot(_ context.Context) ([]domain.Transaction, []domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, len(s.products))
	copy(products, s.products)
	return cloneTransactions(s.transactions), products, nil
}

func cloneTransaction(src domain.Transaction) domain.Transaction {
	dup := src
	if src.Items != nil {
		items := make([]domain.InvoiceLineItem, len(src.Items))
		copy(items, src.Items)
		dup.Items = items
	}
	return dup
}

func cloneTransactions(src []domain.Transaction) []domain.Transaction {
	result := make([]domain.Transaction, 0, len(src))
	for _, tx := range src {
		result = append(result, cloneTransaction(tx))
	}
	return result
}
