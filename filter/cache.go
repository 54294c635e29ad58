package filter

import (
	"container/list"
	"fmt"
	"strings"
	"sync"
)

// DefaultCacheSize is the number of compiled programs a Compiler keeps
const DefaultCacheSize = 64

// programCache is a thread-safe LRU of compiled filters keyed by expression
type programCache struct {
	size      int
	evictList *list.List
	items     map[string]*list.Element
	mu        sync.Mutex
}

func newProgramCache(size int) *programCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &programCache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}
}

func (c *programCache) get(expression string) (*ExprFilter, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.items[expression]
	if !ok {
		return nil, false
	}
	c.evictList.MoveToFront(node)
	return node.Value.(*ExprFilter), true
}

func (c *programCache) put(f *ExprFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.items[f.expr]; ok {
		c.evictList.MoveToFront(node)
		node.Value = f
		return
	}

	c.items[f.expr] = c.evictList.PushFront(f)

	if c.evictList.Len() > c.size {
		oldest := c.evictList.Back()
		c.evictList.Remove(oldest)
		delete(c.items, oldest.Value.(*ExprFilter).expr)
	}
}

func (c *programCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Compiler compiles expressions and named presets, reusing programs it has
// already compiled
type Compiler struct {
	presets map[string]string
	cache   *programCache
}

// NewCompiler creates a compiler that knows the given presets
func NewCompiler(presets map[string]string, cacheSize int) *Compiler {
	return &Compiler{
		presets: presets,
		cache:   newProgramCache(cacheSize),
	}
}

// Compile compiles an expression, using the cache when possible
func (c *Compiler) Compile(expression string) (*ExprFilter, error) {
	expression = strings.TrimSpace(expression)
	if f, ok := c.cache.get(expression); ok {
		return f, nil
	}

	f, err := CompileExprFilter(expression)
	if err != nil {
		return nil, err
	}
	c.cache.put(f)
	return f, nil
}

// Resolve picks the filter to use. An explicit expression wins over a preset;
// both empty means no filter.
func (c *Compiler) Resolve(expression, preset string) (*ExprFilter, error) {
	if strings.TrimSpace(expression) != "" {
		return c.Compile(expression)
	}
	if preset == "" {
		return nil, nil
	}

	presetExpr, ok := c.presets[preset]
	if !ok {
		return nil, fmt.Errorf("preset '%s' not found in config", preset)
	}
	return c.Compile(presetExpr)
}
