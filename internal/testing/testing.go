// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"testing"

	"github.com/desertthunder/inventory/internal/models"
	"github.com/desertthunder/inventory/internal/repositories"
	"github.com/desertthunder/inventory/internal/shared"
)

var _ repositories.ItemStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory [repositories.ItemStore].
//
// Setting Err makes every call fail with it.
type MemoryStore struct {
	mu     sync.Mutex
	items  map[int64]models.Item
	nextID int64
	Err    error
}

// NewMemoryStore creates a store seeded with items. Seeds without an ID get one.
func NewMemoryStore(items ...models.Item) *MemoryStore {
	s := &MemoryStore{items: make(map[int64]models.Item)}
	for _, item := range items {
		s.Insert(context.Background(), item)
	}
	return s
}

func (s *MemoryStore) Insert(ctx context.Context, item models.Item) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}
	if item.ID == 0 {
		s.nextID++
		item.ID = s.nextID
	} else if _, ok := s.items[item.ID]; ok {
		return 0, nil
	}
	if item.ID > s.nextID {
		s.nextID = item.ID
	}

	s.items[item.ID] = item
	return item.ID, nil
}

func (s *MemoryStore) Update(ctx context.Context, item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.items[item.ID]; !ok {
		return fmt.Errorf("%w: %d", shared.ErrItemNotFound, item.ID)
	}
	s.items[item.ID] = item
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.items[item.ID]; !ok {
		return fmt.Errorf("%w: %d", shared.ErrItemNotFound, item.ID)
	}
	delete(s.items, item.ID)
	return nil
}

func (s *MemoryStore) Sell(ctx context.Context, id int64) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", shared.ErrItemNotFound, id)
	}
	if item.Quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", shared.ErrOutOfStock, id)
	}
	item.Quantity--
	s.items[id] = item
	return &item, nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", shared.ErrItemNotFound, id)
	}
	return &item, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	items := make([]models.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// SetErr changes the error returned by every call.
func (s *MemoryStore) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Err = err
}

// NewRepository returns an [repositories.OfflineItemsRepository] over a [MemoryStore] seeded with items.
// The repository is closed when the test ends.
func NewRepository(t *testing.T, items ...models.Item) (*repositories.OfflineItemsRepository, *MemoryStore) {
	t.Helper()

	store := NewMemoryStore(items...)
	repo := repositories.NewOfflineItemsRepository(store, repositories.OfflineOpts{Logger: shared.NewLogger(io.Discard)})
	t.Cleanup(repo.Close)
	return repo, store
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
