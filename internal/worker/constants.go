package worker

// Pool sizing. The workload is two periodic jobs, so a small pool suffices.
const (
	DefaultWorkerCount = 2
	DefaultQueueSize   = 16
)

// Log messages
const (
	LogMsgJobFailed   = "Background job failed"
	LogMsgQueueFull   = "Job queue full, dropping job"
	LogMsgPoolStopped = "Worker pool stopped"
)

// Test constants
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestWorkerProcessWaitTime = 50
	TestExpectedJobCount      = 2
)
