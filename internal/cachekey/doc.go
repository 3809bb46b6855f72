// Package cachekey derives content-addressed cache identities for source
// files and the on-disk layout of the thumbnail cache.
//
// A cache key hashes the cache format version, the absolute source path, and
// the file's modification time and size. Entries are stored under a
// two-character shard directory as <root>/<key[:2]>/<key>.png.
package cachekey
