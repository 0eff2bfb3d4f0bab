// Package cache реализует процессный TTL-кэш готовых аналитических сводок.
package cache

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"pr-insights-service/internal/model"
)

// DefaultTTL — время жизни записи кэша.
const DefaultTTL = 10 * time.Minute

// MemoryStore — потокобезопасный кэш сводок в памяти процесса.
// Записи устаревают по возрасту; явной инвалидации и вытеснения нет,
// неограниченный рост множества ключей — принятое ограничение.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	storedAt time.Time
	summary  model.AggregateSummary
}

// NewMemoryStore создаёт кэш с заданным временем жизни записей.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get возвращает сводку по набору репозиториев и окну, если запись ещё жива.
// Порядок репозиториев в запросе на ключ не влияет.
func (s *MemoryStore) Get(repos []string, days int) (model.AggregateSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[cacheKey(repos, days)]
	if !ok || s.now().Sub(e.storedAt) >= s.ttl {
		return model.AggregateSummary{}, false
	}
	return e.summary, true
}

// Put сохраняет сводку, перезаписывая существующую запись ключа.
// Конкурентная перезапись одного ключа безопасна: содержимое —
// детерминированная функция от (репозитории, окно), побеждает последний.
func (s *MemoryStore) Put(repos []string, days int, summary model.AggregateSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[cacheKey(repos, days)] = entry{
		storedAt: s.now(),
		summary:  summary,
	}
}

// cacheKey канонизирует ключ: отсортированный список репозиториев плюс окно.
func cacheKey(repos []string, days int) string {
	sorted := append([]string(nil), repos...)
	sort.Strings(sorted)
	return fmt.Sprintf("%s|%d", strings.Join(sorted, ","), days)
}
