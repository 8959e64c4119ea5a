package profiler

import "runtime"

// Runtime stats are available with or without the "profile" build tag.

func MemoryUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func MemoryAllocs() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Mallocs
}

func NumGoroutine() int {
	return runtime.NumGoroutine()
}

func NumCPU() int {
	return runtime.NumCPU()
}
