/*
Package memory provides heap pressure monitoring and backpressure for the
thumbnail pipeline.

Decoding a full-resolution float image spikes the heap: a single 8K EXR
expands to roughly 380 MB of float32 samples before it is tonemapped and
shrunk to a thumbnail. With a pool of workers decoding concurrently, a
folder of large plates can exceed a container limit long before the GC
reacts. The Monitor samples heap usage on an interval and flips a pause
flag at a critical watermark; workers call WaitIfPaused before each decode
and block until usage falls back below the high watermark.

	mon := memory.NewMonitor(memory.DefaultConfig())
	mon.Start()
	defer mon.Stop()

Without a limit (no GOMEMLIMIT and no explicit Config.LimitBytes) the
monitor is inert and WaitIfPaused never blocks.
*/
package memory
