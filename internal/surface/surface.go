// Package surface manages the lifecycle of on-screen media surfaces:
// pooled reuse of idle surfaces, tracking of shown surfaces with an upper
// bound, and random placement across monitors.
package surface

// Handle is an on-screen container capable of hosting rendered media
// content. Exactly one component owns a handle at any time: the pool while
// the surface is idle, or the caller that acquired it.
type Handle interface {
	// Show maps the surface on screen.
	Show() error
	// Hide unmaps the surface without destroying it.
	Hide() error
	// ClearContent destroys any child content hosted by the surface.
	ClearContent() error
	// Destroy releases the underlying platform window. The handle must not
	// be used afterwards.
	Destroy() error
}

// Factory creates a surface with baseline platform configuration: hidden,
// borderless, excluded from task-switcher enumeration, and capable of
// becoming topmost.
type Factory interface {
	CreateSurface() (Handle, error)
}
