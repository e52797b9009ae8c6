package stringql

type templateCache map[string]*template

/*
ClearCache clears the parsed template cache.

In most cases you don't need to care about it. It's there to
let caller free memory when a caller composes zillions of unique
templates.
*/
func (d *Dialect) ClearCache() {
	d.cacheLock.Lock()
	d.cache = make(templateCache)
	d.cacheLock.Unlock()
}

// ClearCache clears the template cache of the default dialect.
func ClearCache() {
	getDialect().ClearCache()
}

func (d *Dialect) getCache() templateCache {
	d.cacheOnce.Do(func() {
		d.cacheLock.Lock()
		if d.cache == nil {
			d.cache = make(templateCache)
		}
		d.cacheLock.Unlock()
	})
	return d.cache
}

// getTemplate returns a parsed template, parsing it on first use.
// Malformed templates are not cached.
func (d *Dialect) getTemplate(s string) (*template, error) {
	d.getCache()

	d.cacheLock.RLock()
	t, ok := d.cache[s]
	d.cacheLock.RUnlock()
	if ok {
		return t, nil
	}

	t, err := parseTemplate(s)
	if err != nil {
		return nil, err
	}
	d.cacheLock.Lock()
	d.cache[s] = t
	d.cacheLock.Unlock()
	return t, nil
}

func (d *Dialect) cachedTemplates() int {
	d.getCache()
	d.cacheLock.RLock()
	defer d.cacheLock.RUnlock()
	return len(d.cache)
}
