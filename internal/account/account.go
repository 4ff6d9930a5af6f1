// Package account holds the Account entity and its quota accounting:
// usedBytes must never exceed quotaBytes on a successful write, and must
// never go negative.
package account

import (
	"sync"

	"filestore/internal/ferrors"
)

// Role distinguishes account privilege levels.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account tracks one user's quota usage. Mutation goes through
// Reserve (provisional admission, made durable by commit or undone by
// rollback) and Release (permanent-delete reclaim), so usedBytes is
// always consistent with what is actually durable on disk and in the
// namespace index.
type Account struct {
	mu sync.Mutex

	ID         string
	QuotaBytes int64
	UsedBytes  int64
	Role       Role
}

// New constructs an Account with zero usage.
func New(id string, quotaBytes int64, role Role) *Account {
	return &Account{ID: id, QuotaBytes: quotaBytes, Role: role}
}

// Reserve atomically checks that adding n bytes would not exceed quota and,
// if so, adds it immediately — this is what keeps concurrent reservations
// against the same account monotone (see the ingest pipeline's concurrency
// notes): the check and the increment happen in one critical section, so a
// second concurrent Reserve always sees the first's effect. The caller
// must call exactly one of the returned funcs once the outcome of the work
// this reservation covers is known: commit makes the increment permanent
// (a no-op, since it already happened), rollback undoes it.
func (a *Account) Reserve(n int64) (commit func(), rollback func(), err error) {
	if n < 0 {
		return nil, nil, ferrors.NewOpError("account.Reserve", a.ID, ferrors.ErrInvalidArgument)
	}

	a.mu.Lock()
	if a.UsedBytes+n > a.QuotaBytes {
		a.mu.Unlock()
		return nil, nil, ferrors.NewOpError("account.Reserve", a.ID, ferrors.ErrQuotaExceeded)
	}
	a.UsedBytes += n
	a.mu.Unlock()

	var once sync.Once
	commit = func() { once.Do(func() {}) }
	rollback = func() {
		once.Do(func() {
			a.mu.Lock()
			a.UsedBytes -= n
			if a.UsedBytes < 0 {
				a.UsedBytes = 0
			}
			a.mu.Unlock()
		})
	}
	return commit, rollback, nil
}

// Release decrements usedBytes by size, used on permanent delete of an
// already-committed file.
func (a *Account) Release(size int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.UsedBytes -= size
	if a.UsedBytes < 0 {
		a.UsedBytes = 0
	}
}

// Snapshot returns the current quota and usage under lock.
func (a *Account) Snapshot() (quotaBytes, usedBytes int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.QuotaBytes, a.UsedBytes
}
