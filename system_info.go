package main

import (
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemInfoCacheTTL is how long GetSystemInfo reuses a lookup
const SystemInfoCacheTTL = 10 * time.Minute

// SystemInfo describes the machine for the about page and bug reports
type SystemInfo struct {
	OS              string `json:"os"`
	Arch            string `json:"arch"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platformVersion"`
	KernelVersion   string `json:"kernelVersion"`
	MemoryTotal     uint64 `json:"memoryTotal"`
	NumCPU          int    `json:"numCpu"`
}

// SystemInfoCache provides thread-safe caching for system information
type SystemInfoCache struct {
	info        *SystemInfo
	lastUpdated time.Time
	ttl         time.Duration
	collect     func() SystemInfo
	mutex       sync.RWMutex
}

func newSystemInfoCache(ttl time.Duration) *SystemInfoCache {
	return &SystemInfoCache{
		ttl:     ttl,
		collect: collectSystemInfo,
	}
}

// Get returns the cached info, refreshing it once the TTL has passed
func (c *SystemInfoCache) Get() SystemInfo {
	c.mutex.RLock()
	if c.info != nil && time.Since(c.lastUpdated) < c.ttl {
		info := *c.info
		c.mutex.RUnlock()
		return info
	}
	c.mutex.RUnlock()

	info := c.collect()

	c.mutex.Lock()
	c.info = &info
	c.lastUpdated = time.Now()
	c.mutex.Unlock()
	return info
}

// Clear forces the next Get to collect fresh information
func (c *SystemInfoCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.info = nil
	c.lastUpdated = time.Time{}
}

// collectSystemInfo queries the OS. Fields gopsutil cannot fill are left empty.
func collectSystemInfo() SystemInfo {
	info := SystemInfo{
		OS:     runtime.GOOS,
		Arch:   runtime.GOARCH,
		NumCPU: runtime.NumCPU(),
	}
	if hostInfo, err := host.Info(); err == nil {
		info.Platform = hostInfo.Platform
		info.PlatformVersion = hostInfo.PlatformVersion
		info.KernelVersion = hostInfo.KernelVersion
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemoryTotal = vm.Total
	}
	return info
}

// GetSystemInfo returns host details for the about page
func (a *App) GetSystemInfo() SystemInfo {
	return a.system.Get()
}
