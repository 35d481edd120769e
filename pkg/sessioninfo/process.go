package sessioninfo

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessResolver maps a process id to an executable name.
type ProcessResolver interface {
	ProcessName(pid uint32) (string, error)
}

// ProcessResolverFunc adapts a function to ProcessResolver.
type ProcessResolverFunc func(pid uint32) (string, error)

// ProcessName calls f.
func (f ProcessResolverFunc) ProcessName(pid uint32) (string, error) {
	return f(pid)
}

// SystemProcesses resolves names from the running system.
type SystemProcesses struct{}

// ProcessName returns the executable name of pid.
func (SystemProcesses) ProcessName(pid uint32) (string, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return "", fmt.Errorf("process %d: %w", pid, err)
	}
	name, err := p.Name()
	if err != nil {
		return "", fmt.Errorf("process %d name: %w", pid, err)
	}
	return name, nil
}
