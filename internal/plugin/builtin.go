package plugin

import (
	"github.com/gaspardpetit/harness/modules/batchmode"
	"github.com/gaspardpetit/harness/modules/benchmark"
	"github.com/gaspardpetit/harness/modules/eventpublisher"
	"github.com/gaspardpetit/harness/modules/fpslogger"
	"github.com/gaspardpetit/harness/modules/logging"
	"github.com/gaspardpetit/harness/modules/screenshot"
	"github.com/gaspardpetit/harness/modules/startapp"
	"github.com/gaspardpetit/harness/modules/starttest"
	"github.com/gaspardpetit/harness/modules/statusserver"
	"github.com/gaspardpetit/harness/modules/stopafter"
	"github.com/gaspardpetit/harness/modules/stoponclose"
	"github.com/gaspardpetit/harness/modules/windowoptions"
	"github.com/gaspardpetit/harness/sdk/spi"
)

// Registration order is activation order: logging first so later plugins log
// at the requested level, window options before the plugins that override
// them (batch mode disables resizing, benchmark fixes the rate).
func init() {
	Register("logging", func() spi.Plugin { return logging.New() })
	Register("windowoptions", func() spi.Plugin { return windowoptions.New() })
	Register("startapp", func() spi.Plugin { return startapp.New() })
	Register("starttest", func() spi.Plugin { return starttest.New() })
	Register("batchmode", func() spi.Plugin { return batchmode.New() })
	Register("stopafter", func() spi.Plugin { return stopafter.New() })
	Register("benchmark", func() spi.Plugin { return benchmark.New() })
	Register("fpslogger", func() spi.Plugin { return fpslogger.New() })
	Register("screenshot", func() spi.Plugin { return screenshot.New() })
	Register("statusserver", func() spi.Plugin { return statusserver.New() })
	Register("eventpublisher", func() spi.Plugin { return eventpublisher.New() })
	Register("stoponclose", func() spi.Plugin { return stoponclose.New() })
}
