package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"walletledger/internal/core/domain"
	"walletledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{users: make(map[int64]*domain.User)}
}

func (r *inMemoryUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("email already exists")
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *inMemoryUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *inMemoryUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// --- In-Memory Currency Repo ---

type inMemoryCurrencyRepo struct {
	currencies []domain.Currency
}

func newInMemoryCurrencyRepo() *inMemoryCurrencyRepo {
	return &inMemoryCurrencyRepo{
		currencies: []domain.Currency{
			{ID: 1, Name: "USD", Title: "US Dollar"},
			{ID: 2, Name: "EUR", Title: "Euro"},
			{ID: 3, Name: "RUB", Title: "Russian Ruble", IsNational: true},
		},
	}
}

func (r *inMemoryCurrencyRepo) GetByName(ctx context.Context, name string) (*domain.Currency, error) {
	for i := range r.currencies {
		if r.currencies[i].Name == name {
			cp := r.currencies[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryCurrencyRepo) GetByID(ctx context.Context, id int64) (*domain.Currency, error) {
	for i := range r.currencies {
		if r.currencies[i].ID == id {
			cp := r.currencies[i]
			return &cp, nil
		}
	}
	return nil, nil
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu         sync.RWMutex
	wallets    map[uuid.UUID]*domain.Wallet
	currencies *inMemoryCurrencyRepo
	users      *inMemoryUserRepo
}

func newInMemoryWalletRepo(currencies *inMemoryCurrencyRepo, users *inMemoryUserRepo) *inMemoryWalletRepo {
	return &inMemoryWalletRepo{
		wallets:    make(map[uuid.UUID]*domain.Wallet),
		currencies: currencies,
		users:      users,
	}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wallets {
		if w.UserID == wallet.UserID && w.DeletedAt == nil {
			return ports.ErrWalletConflict
		}
	}
	cp := *wallet
	r.wallets[wallet.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByUserID(ctx context.Context, userID int64) (*domain.WalletDetail, error) {
	r.mu.RLock()
	var found *domain.Wallet
	for _, w := range r.wallets {
		if w.UserID == userID && w.DeletedAt == nil {
			cp := *w
			found = &cp
			break
		}
	}
	r.mu.RUnlock()
	if found == nil {
		return nil, nil
	}

	cur, err := r.currencies.GetByID(ctx, found.CurrencyID)
	if err != nil || cur == nil {
		return nil, fmt.Errorf("currency %d not found", found.CurrencyID)
	}
	user, err := r.users.GetByID(ctx, found.UserID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("user %d not found", found.UserID)
	}
	return &domain.WalletDetail{Wallet: *found, Currency: *cur, User: *user}, nil
}

func (r *inMemoryWalletRepo) GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.UserID == userID && w.DeletedAt == nil {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Balance = balance
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryWalletRepo) SoftDelete(ctx context.Context, tx pgx.Tx, walletID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	now := time.Now().UTC()
	w.DeletedAt = &now
	return nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions []domain.WalletTransaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{}
}

func (r *inMemoryTransactionRepo) Append(ctx context.Context, tx pgx.Tx, txn *domain.WalletTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append(r.transactions, *txn)
	return nil
}

func (r *inMemoryTransactionRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, filter ports.TransactionFilter) ([]domain.WalletTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.WalletTransaction
	for _, t := range r.transactions {
		if t.WalletID != walletID {
			continue
		}
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		if filter.Reason != nil && t.Reason != *filter.Reason {
			continue
		}
		if filter.From != nil && t.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && t.CreatedAt.After(*filter.To) {
			continue
		}
		result = append(result, t)
	}
	// Newest first, matching the SQL ORDER BY created_at DESC.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// --- In-Memory Transactor ---

// inMemoryTransactor serializes units of work with a single mutex held
// from Begin until Commit or Rollback, standing in for the row-level
// lock SELECT ... FOR UPDATE takes against postgres.
type inMemoryTransactor struct {
	mu sync.Mutex
}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &serialTx{release: t.mu.Unlock}, nil
}

// serialTx is a pgx.Tx stand-in whose Commit/Rollback release the
// transactor lock exactly once. Rollback after Commit is a no-op, so
// the usual defer-Rollback pattern is safe.
type serialTx struct {
	once    sync.Once
	release func()
}

func (t *serialTx) done() {
	t.once.Do(t.release)
}

func (t *serialTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *serialTx) Commit(ctx context.Context) error          { t.done(); return nil }
func (t *serialTx) Rollback(ctx context.Context) error        { t.done(); return nil }
func (t *serialTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *serialTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *serialTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *serialTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *serialTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *serialTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *serialTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *serialTx) Conn() *pgx.Conn { return nil }
