package properties

// DefaultExtent is the window size used when no plugin requests one.
var DefaultExtent = Extent{Width: 1024, Height: 768}

// WindowSettings is the concrete window configuration.
type WindowSettings struct {
	Title     string
	Resizable bool
	Mode      WindowMode
	Vsync     VsyncMode
	Extent    Extent
}

// RenderSettings is the concrete render configuration.
type RenderSettings struct {
	UseFixedSimulationFPS bool
	FixedSimulationFPS    float64
	Vsync                 VsyncMode
}

// PlatformSettings is the concrete platform configuration.
type PlatformSettings struct {
	ProcessInputEvents bool
}

// Resolved is the fully populated configuration consumed by the bootstrap.
type Resolved struct {
	Window      WindowSettings
	Render      RenderSettings
	Platform    PlatformSettings
	Application string
}

// Resolve fills unset leaves with defaults. title is used when no plugin set one.
func (p Properties) Resolve(title string) Resolved {
	fps, useFixed := p.Render.FixedSimulationFPS.Get()
	if fps <= 0 {
		useFixed = false
	}
	vsync := p.Render.Vsync.Or(VsyncDefault)
	return Resolved{
		Window: WindowSettings{
			Title:     p.Window.Title.Or(title),
			Resizable: p.Window.Resizable.Or(true),
			Mode:      p.Window.Mode.Or(WindowDefault),
			Vsync:     vsync,
			Extent: Extent{
				Width:  p.TargetExtent.Width.Or(DefaultExtent.Width),
				Height: p.TargetExtent.Height.Or(DefaultExtent.Height),
			},
		},
		Render: RenderSettings{
			UseFixedSimulationFPS: useFixed,
			FixedSimulationFPS:    fps,
			Vsync:                 vsync,
		},
		Platform: PlatformSettings{
			ProcessInputEvents: p.Platform.ProcessInputEvents.Or(true),
		},
		Application: p.Application.ID.Or(""),
	}
}
