package utils

import (
	"github.com/charmbracelet/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

type HostLoad struct {
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
}

// GetHostLoad samples CPU usage since the previous call without blocking.
func GetHostLoad() HostLoad {
	var load HostLoad
	if percentage, err := cpu.Percent(0, false); err != nil {
		log.Warn("error getting CPU usage", "err", err)
	} else if len(percentage) > 0 {
		load.CPUPercent = percentage[0]
	}
	if vm, err := mem.VirtualMemory(); err != nil {
		log.Warn("error getting memory usage", "err", err)
	} else {
		load.MemoryPercent = vm.UsedPercent
	}
	return load
}
