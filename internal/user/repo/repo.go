package repo

import (
	"github.com/MisterMaks/rdrt-client/internal/user/usecase"
)

// NewStorage creates token storage. Empty filename keeps data in memory only.
func NewStorage(filename string) (usecase.StorageInterface, error) {
	storage, err := NewStorageInmem(filename)
	if err != nil {
		return nil, err
	}

	return storage, nil
}
