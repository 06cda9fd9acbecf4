// Package cache provides the bounded LRU cache used to memoize filtered
// rasters.
//
//	c := cache.New[key, *Raster](8)
//	c.Set(k, out)
//	out, ok := c.Get(k)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
