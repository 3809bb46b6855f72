// Package mediatypes classifies file paths into media types by extension and
// detects paths that point inside compressed archives.
//
// Format sets are explicit values passed by the caller so that a batch of
// work observes a single consistent snapshot of the recognized formats.
package mediatypes
