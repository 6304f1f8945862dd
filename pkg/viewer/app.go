package viewer

import (
	"context"
	"sync"
	"time"

	"github.com/tauraamui/dragoneye/pkg/camera"
	"github.com/tauraamui/dragoneye/pkg/log"
	"github.com/tauraamui/dragoneye/pkg/video/videobackend"
)

// FirstAvailable selects whichever device enumerates first.
const FirstAvailable = -1

type CommandKind int

const (
	ToggleRun CommandKind = iota + 1
	Refresh
	Select
	Quit
)

type Command struct {
	Kind  CommandKind
	Index int
}

// Surface is the UI side of the viewer. Pump and Render both give the
// surface a chance to deliver queued commands to the installed handler.
type Surface interface {
	Renderer
	Notifier
	PropertyReporter
	ShowControls(devices []int, selected int)
	OnCommand(func(Command))
	Pump(time.Duration)
}

type Options struct {
	Backend    videobackend.Backend
	Surface    Surface
	Cache      *camera.Cache
	MaxCameras int
	Device     int
	Interval   time.Duration
	AutoStart  bool
}

// App holds one viewing session: the cached device list, the selection
// and the run switch.
type App struct {
	surface    Surface
	cache      *camera.Cache
	loop       *Loop
	run        *Switch
	maxCameras int
	preferred  int
	interval   time.Duration
	autoStart  bool

	mu             sync.Mutex
	devices        []int
	selected       int
	hasSelection   bool
	refreshPending bool
	quit           bool
}

func NewApp(opts Options) *App {
	a := App{
		surface:    opts.Surface,
		cache:      opts.Cache,
		run:        &Switch{},
		maxCameras: opts.MaxCameras,
		preferred:  opts.Device,
		interval:   opts.Interval,
		autoStart:  opts.AutoStart,
	}
	if a.cache == nil {
		a.cache = camera.NewCache(opts.Backend)
	}
	if a.maxCameras == 0 {
		a.maxCameras = camera.DefaultMaxCameras
	}
	if a.interval <= 0 {
		a.interval = DefaultFrameInterval
	}
	a.loop = NewLoop(LoopSettings{
		Backend:  opts.Backend,
		Renderer: opts.Surface,
		Reporter: opts.Surface,
		Notifier: opts.Surface,
		Signal:   a.run,
		Interval: a.interval,
	})
	a.surface.OnCommand(a.Handle)
	return &a
}

func (a *App) Switch() *Switch { return a.run }

func (a *App) LoopState() State { return a.loop.State() }

func (a *App) Devices() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]int{}, a.devices...)
}

func (a *App) Selected() (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selected, a.hasSelection
}

// Run discovers devices then services the session until quit or ctx ends.
// An empty discovery is notified and returned as camera.ErrNoDevices.
func (a *App) Run(ctx context.Context) error {
	if !a.discover(ctx) {
		return camera.ErrNoDevices
	}

	a.run.Set(a.autoStart)
	for !a.quitting() && ctx.Err() == nil {
		if a.takeRefresh() {
			a.cache.Clear()
			a.discover(ctx)
			continue
		}

		if !a.run.Running() {
			a.surface.Pump(a.interval)
			continue
		}

		index, ok := a.Selected()
		if !ok {
			a.run.Set(false)
			continue
		}
		if err := a.loop.Run(ctx, index); err != nil {
			// the human has to re-toggle after a failure
			a.run.Set(false)
		}
	}
	a.run.Set(false)
	return nil
}

func (a *App) discover(ctx context.Context) bool {
	devices := a.cache.Devices(ctx, a.maxCameras)

	a.mu.Lock()
	a.devices = devices
	a.selected, a.hasSelection = a.pick(devices)
	selected := a.selected
	a.mu.Unlock()

	if len(devices) == 0 {
		a.surface.Notify(NoDevicesNotification())
		return false
	}
	log.Info("Found %d camera(s): %v", len(devices), devices)
	a.surface.ShowControls(devices, selected)
	return true
}

// pick keeps the current selection if it survived a refresh, then
// tries the preferred device, then the first found.
func (a *App) pick(devices []int) (int, bool) {
	if len(devices) == 0 {
		return 0, false
	}
	if a.hasSelection && contains(devices, a.selected) {
		return a.selected, true
	}
	if a.preferred != FirstAvailable && contains(devices, a.preferred) {
		return a.preferred, true
	}
	if a.preferred != FirstAvailable {
		log.Warn("Preferred [%s] not available, using [%s]", camera.Label(a.preferred), camera.Label(devices[0]))
	}
	return devices[0], true
}

// Handle applies a surface command to the session.
func (a *App) Handle(cmd Command) {
	switch cmd.Kind {
	case ToggleRun:
		if _, ok := a.Selected(); !ok {
			a.run.Set(false)
			return
		}
		log.Debug("Run toggled: %t", a.run.Toggle())
	case Refresh:
		a.mu.Lock()
		a.refreshPending = true
		a.mu.Unlock()
		// a probe must never race the streamed handle
		a.run.Set(false)
	case Select:
		a.mu.Lock()
		defer a.mu.Unlock()
		if !contains(a.devices, cmd.Index) {
			log.Warn("Ignoring selection of unavailable [%s]", camera.Label(cmd.Index))
			return
		}
		a.selected, a.hasSelection = cmd.Index, true
		a.surface.ShowControls(append([]int{}, a.devices...), a.selected)
	case Quit:
		a.mu.Lock()
		a.quit = true
		a.mu.Unlock()
		a.run.Set(false)
	}
}

func (a *App) takeRefresh() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	pending := a.refreshPending
	a.refreshPending = false
	return pending
}

func (a *App) quitting() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.quit
}

func contains(indices []int, index int) bool {
	for _, i := range indices {
		if i == index {
			return true
		}
	}
	return false
}
