// Package media decodes heterogeneous image and video files into RGB rasters
// and extracts human-readable metadata for the thumbnail pipeline.
//
// Decoding is best effort: every failure mode (unsupported format, corrupt
// file, missing codec, archive-embedded path) degrades to a nil frame rather
// than an error, and the caller falls through an ordered chain of decoders.
// HDR floating-point images are tonemapped into the display range before
// being converted to 8-bit.
package media
