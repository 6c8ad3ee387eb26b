package repo

import (
	"sync"

	"github.com/MisterMaks/rdrt-client/internal/user"
)

// StorageInmem in-memory key-value storage, optionally journaled to file.
type StorageInmem struct {
	items    map[string]string
	mu       sync.RWMutex
	producer *producer
}

// NewStorageInmem creates *StorageInmem and loads saved data from file.
func NewStorageInmem(filename string) (*StorageInmem, error) {
	if filename == "" {
		return &StorageInmem{
			items:    map[string]string{},
			mu:       sync.RWMutex{},
			producer: nil,
		}, nil
	}

	consumer, err := newConsumer(filename)
	if err != nil {
		return nil, err
	}
	items, err := consumer.readItems()
	if closeErr := consumer.close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}
	producer, err := newProducer(filename)
	if err != nil {
		return nil, err
	}

	return &StorageInmem{
		items:    items,
		mu:       sync.RWMutex{},
		producer: producer,
	}, nil
}

// Close finishes working with the file.
func (s *StorageInmem) Close() error {
	if s.producer != nil {
		return s.producer.close()
	}

	return nil
}

// GetItem returns value by key.
func (s *StorageInmem) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	return value, ok, nil
}

// SetItem saves value by key.
func (s *StorageInmem) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.producer != nil {
		err := s.producer.writeEntry(&user.StorageEntry{Key: key, Value: value})
		if err != nil {
			return err
		}
	}

	s.items[key] = value
	return nil
}

// RemoveItem removes value by key.
func (s *StorageInmem) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		return nil
	}

	if s.producer != nil {
		err := s.producer.writeEntry(&user.StorageEntry{Key: key, Removed: true})
		if err != nil {
			return err
		}
	}

	delete(s.items, key)
	return nil
}
