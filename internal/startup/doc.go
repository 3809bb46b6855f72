/*
Package startup centralizes process initialization logging: the banner,
build information, system details, the configuration summary, and the
availability checks for the external decode capabilities (libvips, FFmpeg).

Keeping the noisy startup narration here keeps main readable and gives every
run a consistent, diffable preamble in the logs.
*/
package startup
