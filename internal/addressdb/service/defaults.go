package service

import "runtime"

const maxDefaultWorkers = 4

// DefaultWorkers returns the decode worker count used when none is configured.
func DefaultWorkers() int {
	return min(runtime.NumCPU(), maxDefaultWorkers)
}
