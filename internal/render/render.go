// Package render draws note bodies as styled terminal markdown, with a
// small LRU so scrolling through the list does not re-render bodies it
// has already seen.
package render

import (
	"container/list"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// Markdown renders a note body for the preview pane.
func Markdown(body string, width int) string {
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return body
	}

	out, err := r.Render(body)
	if err != nil {
		return body
	}
	return out
}

// Cache is an LRU over rendered previews, keyed by note id and width.
type Cache struct {
	size      int
	evictList *list.List
	items     map[string]*list.Element
}

type entry struct {
	key   string
	value string
}

// NewCache builds a cache holding up to size renders.
func NewCache(size int) *Cache {
	if size < 1 {
		size = 1
	}
	return &Cache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}
}

func (c *Cache) Get(key string) (string, bool) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		return ele.Value.(*entry).value, true
	}
	return "", false
}

func (c *Cache) Put(key, value string) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		ele.Value.(*entry).value = value
		return
	}

	ele := c.evictList.PushFront(&entry{key, value})
	c.items[key] = ele

	if c.evictList.Len() > c.size {
		c.removeOldest()
	}
}

func (c *Cache) removeOldest() {
	ele := c.evictList.Back()
	if ele == nil {
		return
	}
	c.evictList.Remove(ele)
	kv := ele.Value.(*entry)
	delete(c.items, kv.key)
}
