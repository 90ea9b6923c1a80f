// Package properties defines the partial configuration tree that plugins
// contribute to during activation and the platform consumes when it creates
// the window and the first application.
//
// Every leaf is an Optional. Merging two trees is right-biased per leaf: a
// set leaf in the later tree wins, an unset leaf never overwrites.
package properties

import "fmt"

// WindowMode selects how the host window is created.
type WindowMode int

const (
	WindowDefault WindowMode = iota
	WindowHeadless
	WindowFullscreenBorderless
	WindowFullscreen
)

func (m WindowMode) String() string {
	switch m {
	case WindowDefault:
		return "default"
	case WindowHeadless:
		return "headless"
	case WindowFullscreenBorderless:
		return "fullscreen-borderless"
	case WindowFullscreen:
		return "fullscreen"
	default:
		return fmt.Sprintf("WindowMode(%d)", int(m))
	}
}

// VsyncMode selects the presentation pacing.
type VsyncMode int

const (
	// VsyncDefault uses whatever the application requests.
	VsyncDefault VsyncMode = iota
	VsyncOn
	VsyncOff
)

func (m VsyncMode) String() string {
	switch m {
	case VsyncDefault:
		return "default"
	case VsyncOn:
		return "on"
	case VsyncOff:
		return "off"
	default:
		return fmt.Sprintf("VsyncMode(%d)", int(m))
	}
}

// Extent is a width/height pair in pixels (cells for terminal windows).
type Extent struct {
	Width  uint32
	Height uint32
}

// TargetExtent is the requested window size.
type TargetExtent struct {
	Width  Optional[uint32]
	Height Optional[uint32]
}

// Window holds window creation settings.
type Window struct {
	Title     Optional[string]
	Resizable Optional[bool]
	Mode      Optional[WindowMode]
}

// Render holds simulation and presentation settings.
type Render struct {
	FixedSimulationFPS Optional[float64]
	Vsync              Optional[VsyncMode]
}

// Platform holds input processing settings.
type Platform struct {
	ProcessInputEvents Optional[bool]
}

// Application names the application to start first.
type Application struct {
	ID Optional[string]
}

// Properties is the full partial configuration tree.
type Properties struct {
	TargetExtent TargetExtent
	Window       Window
	Render       Render
	Platform     Platform
	Application  Application
}

// Merge combines first and second field by field. Fields set in second
// overwrite the same field in first; unset fields in second leave first intact.
func Merge(first, second Properties) Properties {
	return Properties{
		TargetExtent: TargetExtent{
			Width:  Combine(first.TargetExtent.Width, second.TargetExtent.Width),
			Height: Combine(first.TargetExtent.Height, second.TargetExtent.Height),
		},
		Window: Window{
			Title:     Combine(first.Window.Title, second.Window.Title),
			Resizable: Combine(first.Window.Resizable, second.Window.Resizable),
			Mode:      Combine(first.Window.Mode, second.Window.Mode),
		},
		Render: Render{
			FixedSimulationFPS: Combine(first.Render.FixedSimulationFPS, second.Render.FixedSimulationFPS),
			Vsync:              Combine(first.Render.Vsync, second.Render.Vsync),
		},
		Platform: Platform{
			ProcessInputEvents: Combine(first.Platform.ProcessInputEvents, second.Platform.ProcessInputEvents),
		},
		Application: Application{
			ID: Combine(first.Application.ID, second.Application.ID),
		},
	}
}

// MergeAll folds Merge over ps from left to right.
func MergeAll(ps ...Properties) Properties {
	var out Properties
	for _, p := range ps {
		out = Merge(out, p)
	}
	return out
}
