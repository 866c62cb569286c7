package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle is how a host application hands its GPU device to the
// renderer. gogpu surfaces expose one via App.GPUContextProvider(); any
// value whose concrete type also implements HalDevice()/HalQueue()
// accessors works.
type DeviceHandle = gpucontext.DeviceProvider

// Device access errors.
var (
	// ErrNilDevice is returned when a nil device, queue, or handle is passed.
	ErrNilDevice = errors.New("wgpu: nil device")

	// ErrNoHALAccess is returned when a DeviceHandle does not expose the
	// underlying hal.Device and hal.Queue.
	ErrNoHALAccess = errors.New("wgpu: device provider does not expose HAL types")
)

// halDeviceFromHandle unwraps the hal device and queue from a provider.
// Providers advertise HAL access through untyped accessors so that
// packages consuming gpucontext need not depend on wgpu directly.
func halDeviceFromHandle(h DeviceHandle) (hal.Device, hal.Queue, error) {
	if h == nil {
		return nil, nil, ErrNilDevice
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := h.(halProvider)
	if !ok {
		return nil, nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not a hal.Device", ErrNoHALAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not a hal.Queue", ErrNoHALAccess)
	}
	return device, queue, nil
}
