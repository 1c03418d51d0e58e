// Package resource bounds the memory, concurrency and decode throughput of
// an engine.
package resource
