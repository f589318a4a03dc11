// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides thread-safe access to the OS credential store.
// The backend session cookie is the CLI's only secret; it lives here together
// with the last known auth state, never in the plain config file.
package keychain

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"organizer/cli/internal/xdg"

	"github.com/99designs/keyring"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "organizer"

// Keys used for storing secrets in the OS keychain.
const (
	KeySessionCookie = "session_cookie"
	KeyAuthState     = "auth_state"
)

// Environment switches for headless machines without a desktop keyring.
const (
	EnvBackend      = "ORGANIZER_KEYRING_BACKEND"
	EnvFilePassword = "ORGANIZER_KEYRING_PASSWORD"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("keychain: item not found")

// Global keychain manager instance
var (
	globalManager *Manager
	mu            sync.Mutex
)

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager opens the OS keyring.
func NewManager() (*Manager, error) {
	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// NewManagerWithRing wraps an already opened keyring.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// GetManager returns the process-wide manager, opening the keyring on first use.
// If opening fails it is retried on the next call.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}
	m, err := NewManager()
	if err != nil {
		return nil, err
	}
	globalManager = m
	return globalManager, nil
}

// openRing opens the OS keyring with the native backends of the platform.
// Setting ORGANIZER_KEYRING_BACKEND=file selects an encrypted file store under
// the XDG state directory instead.
func openRing() (keyring.Keyring, error) {
	cfg := keyring.Config{
		ServiceName:              ServiceName,
		KeychainTrustApplication: true,
		PassPrefix:               ServiceName,
		WinCredPrefix:            ServiceName,
		LibSecretCollectionName:  ServiceName,
		KWalletAppID:             ServiceName,
		KWalletFolder:            ServiceName,
	}

	if os.Getenv(EnvBackend) == "file" {
		dir, err := xdg.StateDir()
		if err != nil {
			return nil, err
		}
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
		cfg.FileDir = filepath.Join(dir, "keyring")
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(os.Getenv(EnvFilePassword))
		return keyring.Open(cfg)
	}

	switch runtime.GOOS {
	case "darwin":
		cfg.AllowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		cfg.AllowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		cfg.AllowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.KeyCtlBackend,
			keyring.PassBackend,
		}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, errors.New("no OS keyring available; set " + EnvBackend + "=file to use an encrypted file store")
	}
	return ring, nil
}

func (m *Manager) get(key string) ([]byte, error) {
	it, err := m.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it.Data, nil
}

func (m *Manager) remove(key string) error {
	err := m.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

// SaveSessionCookie stores the backend session cookie.
func (m *Manager) SaveSessionCookie(value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if value == "" {
		return errors.New("empty session cookie")
	}
	return m.ring.Set(keyring.Item{
		Key:         KeySessionCookie,
		Data:        []byte(value),
		Label:       "Organizer session",
		Description: "Organizer platform session cookie",
	})
}

// LoadSessionCookie retrieves the session cookie, or ErrNotFound.
func (m *Manager) LoadSessionCookie() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := m.get(KeySessionCookie)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNotFound
	}
	return string(data), nil
}

// SaveAuthState stores serialized auth state.
func (m *Manager) SaveAuthState(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Set(keyring.Item{Key: KeyAuthState, Data: data})
}

// LoadAuthState retrieves serialized auth state, or ErrNotFound.
func (m *Manager) LoadAuthState() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.get(KeyAuthState)
}

// ClearAuthState removes the stored auth state.
func (m *Manager) ClearAuthState() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remove(KeyAuthState)
}

// ClearSession removes the session cookie and the auth state.
func (m *Manager) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.remove(KeySessionCookie); err != nil {
		return err
	}
	return m.remove(KeyAuthState)
}
