package storage

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

// MemoryService menyimpan object di map (STORAGE_DRIVER=memory): isi hilang saat restart,
// dipakai untuk demo/CI tanpa disk dan di test. Object dilayani lewat GET /blob/<key>.
// FailAfter > 0 membuat upload ke-(FailAfter+1) gagal.
type MemoryService struct {
	mu        sync.Mutex
	objects   map[string]*Object
	data      map[string][]byte
	uploads   int
	deleted   []string
	baseURL   string
	FailAfter int
}

var ErrInjected = errors.New("storage: injected failure")

// NewMemory dengan base URL dummy untuk test.
func NewMemory() *MemoryService {
	return NewMemoryWithBase("https://blob.test")
}

func NewMemoryWithBase(baseURL string) *MemoryService {
	return &MemoryService{
		objects: map[string]*Object{},
		data:    map[string][]byte{},
		baseURL: strings.TrimRight(baseURL, "/") + "/",
	}
}

func (m *MemoryService) Driver() string { return "memory" }

func (m *MemoryService) Upload(ctx context.Context, folder, filename, contentType string, data []byte) (*Object, error) {
	if len(data) == 0 {
		return nil, ErrEmptyObject
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailAfter > 0 && m.uploads >= m.FailAfter {
		return nil, ErrInjected
	}
	m.uploads++

	key := BuildObjectKey(folder, filename)
	obj := &Object{
		URL:         m.baseURL + key,
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		Meta:        map[string]any{"driver": "memory"},
	}
	m.objects[key] = obj
	m.data[key] = append([]byte(nil), data...)
	return obj, nil
}

func (m *MemoryService) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	delete(m.data, key)
	m.deleted = append(m.deleted, key)
	return nil
}

// Keys mengembalikan key yang masih tersimpan, terurut.
func (m *MemoryService) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.objects))
	for k := range m.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (m *MemoryService) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

func (m *MemoryService) Data(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

// Get mengembalikan object + isinya; ok=false kalau tidak ada.
func (m *MemoryService) Get(key string) (Object, []byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	if !ok {
		return Object{}, nil, false
	}
	return *obj, m.data[key], true
}
