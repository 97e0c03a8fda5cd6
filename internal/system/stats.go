package system

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostStats is a snapshot of the machine a render runs on.
type HostStats struct {
	Hostname      string
	Platform      string
	CPUModel      string
	PhysicalCores int
	LogicalCores  int
	TotalMemory   uint64
	AvailMemory   uint64
}

// Host gathers HostStats. Fields that cannot be read stay zero.
func Host() HostStats {
	s := HostStats{LogicalCores: runtime.NumCPU()}
	if info, err := host.Info(); err == nil {
		s.Hostname = info.Hostname
		s.Platform = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		s.CPUModel = infos[0].ModelName
	}
	if n, err := cpu.Counts(false); err == nil {
		s.PhysicalCores = n
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		s.LogicalCores = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.TotalMemory = vm.Total
		s.AvailMemory = vm.Available
	}
	return s
}

// frameBytes is the size of one 1280x720 RGBA buffer plus a scratch layer.
const frameBytes = 2 * 1280 * 720 * 4

// DefaultWorkers sizes the render pool from the core count, capped so that
// in-flight frame buffers fit in a quarter of the available memory.
func DefaultWorkers(s HostStats) int {
	n := s.LogicalCores
	if s.PhysicalCores > 0 && s.PhysicalCores < n {
		n = s.PhysicalCores
	}
	if s.AvailMemory > 0 {
		if byMem := int(s.AvailMemory / 4 / frameBytes); byMem < n {
			n = byMem
		}
	}
	return max(n, 1)
}

func (s HostStats) String() string {
	return fmt.Sprintf("%s | %s | %s | cores %d/%d | mem %.1f/%.1f GiB",
		s.Hostname, s.Platform, s.CPUModel, s.PhysicalCores, s.LogicalCores,
		float64(s.AvailMemory)/(1<<30), float64(s.TotalMemory)/(1<<30))
}
