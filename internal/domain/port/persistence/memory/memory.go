// Package memory provides an in-memory UnitOfWork for unit tests. Begin
// serializes units of work behind a single mutex, which gives the same
// observable guarantee as row-level locking: of two concurrent session
// starts on one machine, the second observes the first's committed state.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	"github.com/krishkpatil/gaming-cafe/internal/domain/port/persistence"
)

type contextKey string

const txKey contextKey = "memtx"

// Store is an in-memory implementation of persistence.UnitOfWork
type Store struct {
	mu            sync.Mutex
	users         map[uint64]*entity.User
	machines      map[uint64]*entity.Machine
	sessions      map[uint64]*entity.Session
	transactions  map[uint64]*entity.Transaction
	nextUserID    uint64
	nextMachineID uint64
	nextSessionID uint64
	nextTxnID     uint64
}

var _ persistence.UnitOfWork = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:        make(map[uint64]*entity.User),
		machines:     make(map[uint64]*entity.Machine),
		sessions:     make(map[uint64]*entity.Session),
		transactions: make(map[uint64]*entity.Transaction),
	}
}

type snapshot struct {
	users         map[uint64]*entity.User
	machines      map[uint64]*entity.Machine
	sessions      map[uint64]*entity.Session
	transactions  map[uint64]*entity.Transaction
	nextUserID    uint64
	nextMachineID uint64
	nextSessionID uint64
	nextTxnID     uint64
}

func (s *Store) snapshot() *snapshot {
	snap := &snapshot{
		users:         make(map[uint64]*entity.User, len(s.users)),
		machines:      make(map[uint64]*entity.Machine, len(s.machines)),
		sessions:      make(map[uint64]*entity.Session, len(s.sessions)),
		transactions:  make(map[uint64]*entity.Transaction, len(s.transactions)),
		nextUserID:    s.nextUserID,
		nextMachineID: s.nextMachineID,
		nextSessionID: s.nextSessionID,
		nextTxnID:     s.nextTxnID,
	}
	for id, u := range s.users {
		snap.users[id] = u.Clone()
	}
	for id, m := range s.machines {
		snap.machines[id] = m.Clone()
	}
	for id, sess := range s.sessions {
		snap.sessions[id] = sess.Clone()
	}
	for id, t := range s.transactions {
		snap.transactions[id] = t.Clone()
	}
	return snap
}

func (s *Store) restore(snap *snapshot) {
	s.users = snap.users
	s.machines = snap.machines
	s.sessions = snap.sessions
	s.transactions = snap.transactions
	s.nextUserID = snap.nextUserID
	s.nextMachineID = snap.nextMachineID
	s.nextSessionID = snap.nextSessionID
	s.nextTxnID = snap.nextTxnID
}

// Begin locks the store and snapshots it for rollback
func (s *Store) Begin(ctx context.Context) (context.Context, error) {
	s.mu.Lock()
	return context.WithValue(ctx, txKey, s.snapshot()), nil
}

// Commit discards the snapshot and releases the store
func (s *Store) Commit(ctx context.Context) error {
	if ctx.Value(txKey) == nil {
		return errs.ErrInternalServer
	}
	s.mu.Unlock()
	return nil
}

// Rollback restores the snapshot and releases the store
func (s *Store) Rollback(ctx context.Context) error {
	snap, ok := ctx.Value(txKey).(*snapshot)
	if !ok {
		return errs.ErrInternalServer
	}
	s.restore(snap)
	s.mu.Unlock()
	return nil
}

// enter takes the store lock for a standalone read outside a unit of work
func (s *Store) enter(ctx context.Context) func() {
	if ctx.Value(txKey) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Users returns a user repository bound to this store
func (s *Store) Users(_ context.Context) persistence.UserRepository {
	return &userRepo{s: s}
}

// Machines returns a machine repository bound to this store
func (s *Store) Machines(_ context.Context) persistence.MachineRepository {
	return &machineRepo{s: s}
}

// Sessions returns a session repository bound to this store
func (s *Store) Sessions(_ context.Context) persistence.SessionRepository {
	return &sessionRepo{s: s}
}

// Transactions returns a ledger repository bound to this store
func (s *Store) Transactions(_ context.Context) persistence.TransactionRepository {
	return &transactionRepo{s: s}
}

// SeedUser inserts a user directly, assigning an ID. Test setup helper.
func (s *Store) SeedUser(u *entity.User) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	u.ID = s.nextUserID
	s.users[u.ID] = u.Clone()
	return u
}

// SeedMachine inserts a machine directly, assigning an ID. Test setup helper.
func (s *Store) SeedMachine(m *entity.Machine) *entity.Machine {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextMachineID++
	m.ID = s.nextMachineID
	s.machines[m.ID] = m.Clone()
	return m
}

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return errs.ErrDuplicateUser
		}
	}
	r.s.nextUserID++
	user.ID = r.s.nextUserID
	r.s.users[user.ID] = user.Clone()
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	defer r.s.enter(ctx)()
	u, ok := r.s.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (r *userRepo) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	defer r.s.enter(ctx)()
	for _, u := range r.s.users {
		if u.Username == username {
			return u.Clone(), nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *userRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.s.users[user.ID]; !ok {
		return errs.ErrUserNotFound
	}
	r.s.users[user.ID] = user.Clone()
	return nil
}

func (r *userRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.s.users[id]; !ok {
		return errs.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *userRepo) List(ctx context.Context) ([]*entity.User, error) {
	defer r.s.enter(ctx)()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	defer r.s.enter(ctx)()
	return int64(len(r.s.users)), nil
}

type machineRepo struct {
	s *Store
}

func (r *machineRepo) Create(_ context.Context, machine *entity.Machine) error {
	r.s.nextMachineID++
	machine.ID = r.s.nextMachineID
	r.s.machines[machine.ID] = machine.Clone()
	return nil
}

func (r *machineRepo) GetByID(ctx context.Context, id uint64) (*entity.Machine, error) {
	defer r.s.enter(ctx)()
	m, ok := r.s.machines[id]
	if !ok {
		return nil, errs.ErrMachineNotFound
	}
	return m.Clone(), nil
}

func (r *machineRepo) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Machine, error) {
	return r.GetByID(ctx, id)
}

func (r *machineRepo) Update(_ context.Context, machine *entity.Machine) error {
	if _, ok := r.s.machines[machine.ID]; !ok {
		return errs.ErrMachineNotFound
	}
	r.s.machines[machine.ID] = machine.Clone()
	return nil
}

func (r *machineRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.s.machines[id]; !ok {
		return errs.ErrMachineNotFound
	}
	delete(r.s.machines, id)
	return nil
}

func (r *machineRepo) List(ctx context.Context) ([]*entity.Machine, error) {
	defer r.s.enter(ctx)()
	out := make([]*entity.Machine, 0, len(r.s.machines))
	for _, m := range r.s.machines {
		out = append(out, m.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *machineRepo) CountByStatus(ctx context.Context) (map[entity.MachineStatus]int64, error) {
	defer r.s.enter(ctx)()
	counts := make(map[entity.MachineStatus]int64)
	for _, m := range r.s.machines {
		counts[m.Status]++
	}
	return counts, nil
}

type sessionRepo struct {
	s *Store
}

func (r *sessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.s.nextSessionID++
	session.ID = r.s.nextSessionID
	r.s.sessions[session.ID] = session.Clone()
	return nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id uint64) (*entity.Session, error) {
	defer r.s.enter(ctx)()
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, errs.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

func (r *sessionRepo) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Session, error) {
	return r.GetByID(ctx, id)
}

func (r *sessionRepo) Update(_ context.Context, session *entity.Session) error {
	if _, ok := r.s.sessions[session.ID]; !ok {
		return errs.ErrSessionNotFound
	}
	r.s.sessions[session.ID] = session.Clone()
	return nil
}

func (r *sessionRepo) sorted() []*entity.Session {
	out := make([]*entity.Session, 0, len(r.s.sessions))
	for _, sess := range r.s.sessions {
		out = append(out, sess.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID > out[j].ID
		}
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out
}

func (r *sessionRepo) List(ctx context.Context) ([]*entity.Session, error) {
	defer r.s.enter(ctx)()
	return r.sorted(), nil
}

func (r *sessionRepo) ListActive(ctx context.Context) ([]*entity.Session, error) {
	defer r.s.enter(ctx)()
	var out []*entity.Session
	for _, sess := range r.sorted() {
		if sess.Active {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (r *sessionRepo) Recent(ctx context.Context, n int) ([]*entity.Session, error) {
	defer r.s.enter(ctx)()
	out := r.sorted()
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (r *sessionRepo) CountActive(ctx context.Context) (int64, error) {
	defer r.s.enter(ctx)()
	var count int64
	for _, sess := range r.s.sessions {
		if sess.Active {
			count++
		}
	}
	return count, nil
}

func (r *sessionRepo) CountActiveByMachine(ctx context.Context, machineID uint64) (int64, error) {
	defer r.s.enter(ctx)()
	var count int64
	for _, sess := range r.s.sessions {
		if sess.Active && sess.MachineID == machineID {
			count++
		}
	}
	return count, nil
}

func (r *sessionRepo) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	defer r.s.enter(ctx)()
	var count int64
	for _, sess := range r.s.sessions {
		if sess.UserID == userID {
			count++
		}
	}
	return count, nil
}

type transactionRepo struct {
	s *Store
}

func (r *transactionRepo) Create(_ context.Context, transaction *entity.Transaction) error {
	r.s.nextTxnID++
	transaction.ID = r.s.nextTxnID
	r.s.transactions[transaction.ID] = transaction.Clone()
	return nil
}

func (r *transactionRepo) sorted() []*entity.Transaction {
	out := make([]*entity.Transaction, 0, len(r.s.transactions))
	for _, t := range r.s.transactions {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *transactionRepo) List(ctx context.Context) ([]*entity.Transaction, error) {
	defer r.s.enter(ctx)()
	return r.sorted(), nil
}

func (r *transactionRepo) ListByUser(ctx context.Context, userID uint64) ([]*entity.Transaction, error) {
	defer r.s.enter(ctx)()
	var out []*entity.Transaction
	for _, t := range r.sorted() {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *transactionRepo) SumByUser(ctx context.Context, userID uint64) (int64, error) {
	defer r.s.enter(ctx)()
	var sum int64
	for _, t := range r.s.transactions {
		if t.UserID == userID {
			sum += t.AmountCents
		}
	}
	return sum, nil
}

func (r *transactionRepo) SumChargesSince(ctx context.Context, since time.Time) (int64, error) {
	defer r.s.enter(ctx)()
	var sum int64
	for _, t := range r.s.transactions {
		if t.Kind == entity.KindSessionCharge && !t.CreatedAt.Before(since) {
			sum += -t.AmountCents
		}
	}
	return sum, nil
}

func (r *transactionRepo) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	defer r.s.enter(ctx)()
	var count int64
	for _, t := range r.s.transactions {
		if t.UserID == userID {
			count++
		}
	}
	return count, nil
}
