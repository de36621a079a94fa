// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host owns the device and queue; backends receive them through the
// descriptor and never create their own. DeviceHandle is an alias for
// gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// NullDevice is a DeviceHandle for headless backends that do not touch a
// GPU device, such as the software reference driver.
type NullDevice struct{}

var _ DeviceHandle = NullDevice{}

// Device returns nil.
func (NullDevice) Device() gpucontext.Device { return nil }

// Queue returns nil.
func (NullDevice) Queue() gpucontext.Queue { return nil }

// SurfaceFormat returns RGBA8, the format of CPU render targets.
func (NullDevice) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

// Adapter returns nil.
func (NullDevice) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo describes a CPU adapter.
func (NullDevice) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "CPU", Type: gpucontext.AdapterTypeSoftware}
}
