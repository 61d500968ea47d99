package messages

// SurfaceOutput is sent when a surface's PTY produced output.
type SurfaceOutput struct {
	SurfaceID string
	Data      []byte
}

// SurfaceStopped is sent when a surface's PTY read loop ended.
type SurfaceStopped struct {
	SurfaceID string
	Err       error
}

// ConfigReloaded is sent after the config file changed on disk.
type ConfigReloaded struct{}

// CopiedToClipboard is sent after the visible lines were copied, for
// status feedback.
type CopiedToClipboard struct {
	Lines int
	Err   error
}
