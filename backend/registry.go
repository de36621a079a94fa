package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/gpucontext"
)

// Priority order for driver selection (first available wins).
// Native GPU drivers come before the software reference driver.
var driverPriority = []string{"vulkan", "metal", "d3d12", "gles", "software"}

// registry holds the drivers registered by Init.
var (
	registryMu sync.RWMutex
	drivers    *gpucontext.Registry[Driver]
)

// Init registers the process-wide set of drivers. It must be called once,
// before any context is created; a second call returns
// ErrAlreadyInitialized and leaves the registry unchanged.
func Init(ds ...Driver) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if drivers != nil {
		return ErrAlreadyInitialized
	}
	r := gpucontext.NewRegistry[Driver](gpucontext.WithPriority(driverPriority...))
	for _, d := range ds {
		if d == nil {
			continue
		}
		r.Register(d.Name(), func() Driver { return d })
		logger().Debug("backend: driver registered", "name", d.Name(), "caps", d.Capabilities())
	}
	drivers = r
	return nil
}

// Initialized reports whether Init has been called.
func Initialized() bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return drivers != nil
}

// Available returns the registered driver names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if drivers == nil {
		return nil
	}
	names := drivers.Available()
	slices.Sort(names)
	return names
}

// Lookup returns the driver registered under name. An empty name selects
// the highest-priority driver.
func Lookup(name string) (Driver, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if drivers == nil {
		return nil, ErrNotInitialized
	}
	var d Driver
	if name == "" {
		d = drivers.Best()
	} else {
		d = drivers.Get(name)
	}
	if d == nil {
		if name == "" {
			return nil, ErrBackendNotAvailable
		}
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return d, nil
}

// Create builds a backend with the named driver.
func Create(name string, desc Descriptor) (Backend, error) {
	d, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if missing := desc.Flags &^ d.Capabilities(); missing != 0 {
		return nil, fmt.Errorf("%w: %s lacks %s", ErrUnsupportedFlags, d.Name(), missing)
	}
	if desc.MaxFramesInFlight <= 0 {
		desc.MaxFramesInFlight = 1
	}
	b, err := d.Create(desc)
	if err != nil {
		return nil, fmt.Errorf("backend: create %s: %w", d.Name(), err)
	}
	info := gpucontext.AdapterInfo{Name: "none", Type: gpucontext.AdapterTypeUnknown}
	if desc.Devices != nil {
		info = desc.Devices.AdapterInfo()
	}
	logger().Info("backend: created",
		"driver", d.Name(),
		"flags", desc.Flags,
		"frames", desc.MaxFramesInFlight,
		"adapter", info.Name,
		"adapterType", info.Type)
	return b, nil
}

// reset clears the registry. Used by tests.
func reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	drivers = nil
}
