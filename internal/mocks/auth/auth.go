package auth

// Package auth contains simple hand-written test doubles for session and account ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"
	"sync/atomic"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/domain/registration"
	"github.com/Kabuna254/Job-App/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AccountAPI    = (*MockAccountAPI)(nil)
	_ ports.KVStore       = (*MemoryKVStore)(nil)
	_ ports.TokenVerifier = (*StaticVerifier)(nil)
	_ ports.JobsAPI       = (*MockJobsAPI)(nil)
)

// MockAccountAPI simulates the remote account service. Without Func overrides
// logins succeed with DefaultSession and other calls succeed.
type MockAccountAPI struct {
	LoginFunc         func(ctx context.Context, creds domainauth.Credentials) (domainauth.IssuedSession, error)
	RegisterFunc      func(ctx context.Context, payload registration.Payload) error
	DeleteAccountFunc func(ctx context.Context, token string) error

	DefaultSession domainauth.IssuedSession

	LoginCalls    atomic.Int32
	RegisterCalls atomic.Int32
	DeleteCalls   atomic.Int32
}

// NewMockAccountAPI creates a MockAccountAPI with a seeker default session.
func NewMockAccountAPI() *MockAccountAPI {
	return &MockAccountAPI{
		DefaultSession: domainauth.IssuedSession{
			Identity: domainauth.Identity{Email: "mock.user@example.com", Name: "Mock User", Role: domainauth.RoleSeeker},
			Token:    "mock-token",
		},
	}
}

func (m *MockAccountAPI) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.IssuedSession, error) {
	m.LoginCalls.Add(1)
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return m.DefaultSession, nil
}

func (m *MockAccountAPI) Register(ctx context.Context, payload registration.Payload) error {
	m.RegisterCalls.Add(1)
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, payload)
	}
	return nil
}

func (m *MockAccountAPI) DeleteAccount(ctx context.Context, token string) error {
	m.DeleteCalls.Add(1)
	if m.DeleteAccountFunc != nil {
		return m.DeleteAccountFunc(ctx, token)
	}
	return nil
}

// MemoryKVStore is an in-memory key/value store for unit tests. Setting
// GetErr or SetErr makes the matching calls fail.
type MemoryKVStore struct {
	mu     sync.Mutex
	values map[string]string
	GetErr error
	SetErr error
}

// NewMemoryKVStore creates an empty store.
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{values: make(map[string]string)}
}

func (m *MemoryKVStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", m.GetErr
	}
	v, ok := m.values[key]
	if !ok {
		return "", ports.ErrKeyNotFound
	}
	return v, nil
}

func (m *MemoryKVStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	return nil
}

func (m *MemoryKVStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Snapshot returns a copy of the stored values.
func (m *MemoryKVStore) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// StaticVerifier accepts tokens listed in Valid and rejects the rest with Err.
type StaticVerifier struct {
	Valid map[string]bool
	Err   error
}

func (v StaticVerifier) Verify(_ context.Context, raw string) error {
	if v.Valid[raw] {
		return nil
	}
	if v.Err != nil {
		return v.Err
	}
	return ErrTokenRejected
}

// ErrTokenRejected is returned by StaticVerifier for unknown tokens.
type tokenRejectedError struct{}

func (tokenRejectedError) Error() string { return "token rejected" }

var ErrTokenRejected error = tokenRejectedError{}

// MockJobsAPI returns Body (or Err) for every page and records the pages asked for.
type MockJobsAPI struct {
	ListJobsFunc func(ctx context.Context, page int) (any, error)
	Body         any
	Err          error

	mu    sync.Mutex
	pages []int
}

func (m *MockJobsAPI) ListJobs(ctx context.Context, page int) (any, error) {
	m.mu.Lock()
	m.pages = append(m.pages, page)
	m.mu.Unlock()
	if m.ListJobsFunc != nil {
		return m.ListJobsFunc(ctx, page)
	}
	return m.Body, m.Err
}

// Pages returns the pages requested so far.
func (m *MockJobsAPI) Pages() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.pages...)
}
