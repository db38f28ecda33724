package credstore

import "sync"

// Memory is an in-memory Store. It is the default for tests and for
// short-lived invocations that should not leave a credential behind.
type Memory struct {
	mu       sync.RWMutex
	token    string
	role     string
	nickname string
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory credential store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

func (m *Memory) Role() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.role, m.role != ""
}

func (m *Memory) Nickname() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nickname, m.nickname != ""
}

func (m *Memory) SetSession(token, role, nickname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.role = role
	m.nickname = nickname
	return nil
}

func (m *Memory) SetRole(role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.role = role
	return nil
}

func (m *Memory) SetNickname(nickname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nickname = nickname
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.role = ""
	m.nickname = ""
	return nil
}
