package cas

import (
	"container/list"
)

// LRUCache fronts another CAS and keeps the most recently read entries.
// It is not safe for concurrent use.
type LRUCache struct {
	underlying CAS
	cache      map[Hash]*list.Element
	evictList  *list.List
	maxSize    int
	hits       int
	misses     int
}

type cacheEntry struct {
	hash  Hash
	value []byte
}

// DefaultCacheSize is used when NewLRUCache is given a non-positive size.
const DefaultCacheSize = 16

func NewLRUCache(underlying CAS, maxSize int) *LRUCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &LRUCache{
		underlying: underlying,
		cache:      make(map[Hash]*list.Element),
		evictList:  list.New(),
		maxSize:    maxSize,
	}
}

func (l *LRUCache) Put(item Hashable) (Hash, error) {
	return l.underlying.Put(item)
}

func (l *LRUCache) Has(hash Hash) bool {
	if _, ok := l.cache[hash]; ok {
		return true
	}
	return l.underlying.Has(hash)
}

func (l *LRUCache) getValue(h Hash) (bool, []byte, error) {
	if elem, ok := l.cache[h]; ok {
		l.hits++
		l.evictList.MoveToFront(elem)
		return true, elem.Value.(*cacheEntry).value, nil
	}
	l.misses++
	has, data, err := l.underlying.getValue(h)
	if err != nil || !has {
		return has, nil, err
	}
	l.add(h, data)
	return true, data, nil
}

func (l *LRUCache) add(hash Hash, value []byte) {
	if elem, ok := l.cache[hash]; ok {
		l.evictList.MoveToFront(elem)
		elem.Value.(*cacheEntry).value = value
		return
	}
	l.cache[hash] = l.evictList.PushFront(&cacheEntry{hash: hash, value: value})
	for l.evictList.Len() > l.maxSize {
		oldest := l.evictList.Back()
		l.evictList.Remove(oldest)
		delete(l.cache, oldest.Value.(*cacheEntry).hash)
	}
}

type CacheStats struct {
	Size    int
	MaxSize int
	Hits    int
	Misses  int
}

func (l *LRUCache) Stats() CacheStats {
	return CacheStats{
		Size:    len(l.cache),
		MaxSize: l.maxSize,
		Hits:    l.hits,
		Misses:  l.misses,
	}
}
