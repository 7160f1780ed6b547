package backend

import (
	"zhangben/internal/kv"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the created store and optional cleanup function
type Result struct {
	Store   kv.Store
	Cleanup CleanupFunc
}

// Factory creates key-value backends based on configuration
type Factory interface {
	// CreateStore creates a store instance based on the provided config
	CreateStore(config Config) (*Result, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
