//go:build !((linux && cgo) || windows || darwin)

package cwaudio

// AudioAvailable indicates whether audio playback is supported in this build.
// Audio requires CGO for native sound libraries on Linux.
const AudioAvailable = false

// PlatformDevice returns NoDevice: the engine still builds phrases, but
// every play and enqueue call is a no-op.
func PlatformDevice() Device {
	return NoDevice{}
}
