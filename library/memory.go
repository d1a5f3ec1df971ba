package library

import (
	"sync"

	"roastsim/model"
)

type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*model.RoastRecord
	order   []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*model.RoastRecord)}
}

func (m *MemoryStore) Save(record *model.RoastRecord) error {
	if err := validRecord(record); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[record.Name]; ok {
		m.removeOrder(record.Name)
	}
	m.records[record.Name] = record
	m.order = append(m.order, record.Name)
	return nil
}

func (m *MemoryStore) Get(name string) (*model.RoastRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[name]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

func (m *MemoryStore) List() ([]*model.RoastRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.RoastRecord, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.records[name])
	}
	return out, nil
}

func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[name]; !ok {
		return ErrNotFound
	}
	delete(m.records, name)
	m.removeOrder(name)
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]*model.RoastRecord)
	m.order = nil
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) removeOrder(name string) {
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
