package main

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kalkki/kalkki-desktop/internal/calc"
)

// Config constants
const (
	ConfigFileName  = "config.yaml"
	SessionFileName = "session.yaml"
	ConfigDirName   = "kalkki"
	DebounceDelay   = 1 * time.Second
	ConfigFileMode  = 0600
	ConfigDirMode   = 0750
)

// Resource limits
const (
	MaxHistoryEntries = 1000
	MaxInputHistory   = 1000

	// EvaluationTimeout bounds a single calculation.
	EvaluationTimeout = 10 * time.Second
)

// Cleanup interface for resource management
type Cleanup interface {
	Close() error
}

// Manager structs for focused responsibilities

// ConfigManager handles the options file
type ConfigManager struct {
	options       *Options
	configDirty   bool
	debounceTimer *time.Timer
	// lastWrite is the modification time of our own most recent save, used by the
	// watcher to ignore the events it causes.
	lastWrite time.Time
	mutex     sync.RWMutex
}

// SessionManager holds calculator state between calculations and restarts
type SessionManager struct {
	answer        decimal.Decimal
	userSpace     calc.UserSpace
	history       *BoundedSlice[HistoryEntry]
	inputs        *BoundedSlice[string]
	sessionDirty  bool
	debounceTimer *time.Timer
	// evalMutex serialises calculations so each one sees the previous answer.
	evalMutex sync.Mutex
	mutex     sync.RWMutex
}

// App struct represents the main application with focused managers
type App struct {
	ctx      context.Context
	frontend frontendRuntime
	log      zerolog.Logger

	config  *ConfigManager
	session *SessionManager
	watcher *ConfigWatcher
	system  *SystemInfoCache
	opener  *Opener

	// dataDir overrides the user config directory, used by tests and the CLI.
	dataDir string
	// closed is set by shutdown; the window handle is gone from then on.
	closed bool

	resourceManager *ResourceManager
	mutex           sync.RWMutex
}

// NewApp creates a new App application struct with manager components
func NewApp() *App {
	app := &App{
		frontend: wailsFrontend{},
		log:      newReleaseLogger(),
		config: &ConfigManager{
			options: DefaultOptions(),
		},
		session:         newSessionManager(),
		system:          newSystemInfoCache(SystemInfoCacheTTL),
		resourceManager: NewResourceManager(),
	}
	app.opener = NewOpener(app)
	return app
}

// BoundedSlice provides a slice with size limits
type BoundedSlice[T any] struct {
	data    []T
	maxSize int
	mutex   sync.RWMutex
}

// NewBoundedSlice creates a new bounded slice
func NewBoundedSlice[T any](maxSize int) *BoundedSlice[T] {
	return &BoundedSlice[T]{
		data:    make([]T, 0),
		maxSize: maxSize,
	}
}

// Add appends an item, removing oldest if at capacity
func (bs *BoundedSlice[T]) Add(item T) {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	bs.data = append(bs.data, item)

	// If over capacity, remove from beginning (FIFO)
	if len(bs.data) > bs.maxSize {
		bs.data = bs.data[len(bs.data)-bs.maxSize:]
	}
}

// Replace swaps the contents, keeping only the newest maxSize items
func (bs *BoundedSlice[T]) Replace(items []T) {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	if len(items) > bs.maxSize {
		items = items[len(items)-bs.maxSize:]
	}
	bs.data = append(make([]T, 0, len(items)), items...)
}

// Get returns all items as a copy
func (bs *BoundedSlice[T]) Get() []T {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	result := make([]T, len(bs.data))
	copy(result, bs.data)
	return result
}

// Len returns current size
func (bs *BoundedSlice[T]) Len() int {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()
	return len(bs.data)
}

// Clear removes all items
func (bs *BoundedSlice[T]) Clear() {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()
	bs.data = bs.data[:0]
}

// ResourceManager handles overall resource lifecycle
type ResourceManager struct {
	resources []Cleanup
	mutex     sync.Mutex
}

// NewResourceManager creates a new resource manager
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		resources: make([]Cleanup, 0),
	}
}

// Register adds a resource for lifecycle management
func (rm *ResourceManager) Register(resource Cleanup) {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()
	rm.resources = append(rm.resources, resource)
}

// Cleanup closes all registered resources in reverse registration order
func (rm *ResourceManager) Cleanup() error {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	var lastError error
	for i := len(rm.resources) - 1; i >= 0; i-- {
		if err := rm.resources[i].Close(); err != nil {
			lastError = err
		}
	}
	rm.resources = rm.resources[:0]
	return lastError
}
