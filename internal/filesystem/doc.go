/*
Package filesystem wraps the filesystem operations the asset pipeline leans
on (stat, open, directory listing) with retry logic for NFS stale file
handle errors.

Asset folders and project directories routinely live on NFS shares, where a
server-side change can invalidate handles mid-scan and surface as ESTALE
(errno 116). Those failures are transient: the same call succeeds moments
later once the client refreshes the handle. The wrappers here retry ESTALE
with exponential backoff and pass every other error through untouched, so
callers keep plain os semantics on local disks.

	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())

Defaults are 3 retries starting at 50ms and capped at 500ms. Retry outcomes
are recorded in the metrics package.
*/
package filesystem
