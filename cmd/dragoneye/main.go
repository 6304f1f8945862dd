package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/tauraamui/dragoneye/pkg/camera"
	"github.com/tauraamui/dragoneye/pkg/config"
	"github.com/tauraamui/dragoneye/pkg/configdef"
	"github.com/tauraamui/dragoneye/pkg/display"
	"github.com/tauraamui/dragoneye/pkg/log"
	"github.com/tauraamui/dragoneye/pkg/video/videobackend"
	"github.com/tauraamui/dragoneye/pkg/viewer"
	"github.com/tauraamui/dragoneye/pkg/viewer/process"
	"gocv.io/x/gocv"
)

const (
	usage       = "Usage: dragoneye setup | remove-setup | list | headless [index] | view [index]"
	shutdownMsg = "Shutdown successful... BYE! 👋"
)

type Service struct {
	resolver  config.Resolver
	creator   config.Creator
	destroyer config.Destroyer
}

// Setup writes the default config file
func (service *Service) Setup() (string, error) {
	log.Info("Setting up dragoneye...")

	err := service.creator.Create()
	if err != nil {
		if !errors.Is(err, configdef.ErrConfigAlreadyExists) {
			return "", err
		}
		log.Error("%v", err)
	}

	return "Setup successful...", nil
}

func (service *Service) RemoveSetup() (string, error) {
	log.Info("Removing setup for dragoneye...")
	if err := service.destroyer.Destroy(); err != nil {
		log.Error("unable to delete config file: %s", err.Error())
	}

	return "Removing setup successful...", nil
}

func (service *Service) List(values configdef.Values, backend videobackend.Backend) (string, error) {
	ctx := context.Background()
	devices := camera.Enumerate(ctx, backend, values.MaxCameras)
	if len(devices) == 0 {
		viewer.LogNotifier{}.Notify(viewer.NoDevicesNotification())
		return "", camera.ErrNoDevices
	}

	lines := make([]string, 0, len(devices))
	for _, index := range devices {
		conn, err := camera.Connect(ctx, index, backend)
		if err != nil {
			log.Error("%v", err)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", conn.Label(), conn.Properties()))
		conn.Close()
	}
	return strings.Join(lines, "\n"), nil
}

func (service *Service) Headless(values configdef.Values, backend videobackend.Backend) (string, error) {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	surface := display.NewHeadless(values.HeadlessLogEvery)
	opts := appOptions(values, backend, surface)
	opts.AutoStart = true
	app := viewer.NewApp(opts)

	result := make(chan error, 1)
	proc := process.New(process.Settings{
		WaitForShutdownMsg: "Stopping headless viewer...",
		Process: func(ctx context.Context) []chan interface{} {
			stopped := make(chan interface{})
			go func() {
				defer close(stopped)
				result <- app.Run(ctx)
			}()
			return []chan interface{}{stopped}
		},
	})

	log.Info("Starting headless viewer...")
	proc.Setup().Start()

	var err error
	select {
	case killSignal := <-interrupt:
		fmt.Print("\r")
		log.Error("Received signal: %s", killSignal)
		proc.Stop()
		proc.Wait()
		err = <-result
	case err = <-result:
		proc.Stop()
		proc.Wait()
	}

	if err != nil {
		return "", err
	}
	if surface.Failed() {
		return "", errors.New("headless session ended after a camera failure")
	}
	return shutdownMsg, nil
}

func (service *Service) View(values configdef.Values, backend videobackend.Backend) (string, error) {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case killSignal := <-interrupt:
			log.Error("Received signal: %s", killSignal)
			cancel()
		case <-ctx.Done():
		}
	}()

	window := display.NewWindow(values.Title)
	defer window.Close()

	app := viewer.NewApp(appOptions(values, backend, window))
	if err := app.Run(ctx); err != nil {
		if errors.Is(err, camera.ErrNoDevices) {
			window.Hold()
		}
		return "", err
	}
	return shutdownMsg, nil
}

func appOptions(values configdef.Values, backend videobackend.Backend, surface viewer.Surface) viewer.Options {
	return viewer.Options{
		Backend:    backend,
		Surface:    surface,
		MaxCameras: values.MaxCameras,
		Device:     values.DefaultDevice,
		Interval:   time.Duration(values.FrameIntervalMS) * time.Millisecond,
		AutoStart:  values.AutoStart,
	}
}

func (service *Service) loadConfig(args []string) (configdef.Values, videobackend.Backend, error) {
	values, err := service.resolver.Resolve()
	if err != nil {
		return configdef.Values{}, nil, err
	}

	if values.Debug && len(os.Getenv("DRAGONEYE_LOGGING_LEVEL")) == 0 {
		log.SetLevel("debug")
	}

	if len(args) > 0 {
		index, err := strconv.Atoi(args[0])
		if err != nil || index < 0 {
			return configdef.Values{}, nil, fmt.Errorf("invalid device index: %s", args[0])
		}
		values.DefaultDevice = index
	}

	backendType := values.Backend
	if override := os.Getenv("DRAGONEYE_VIDEO_BACKEND"); len(override) > 0 {
		backendType = override
	}
	backend := videobackend.Resolve(backendType, videobackend.MockSettings{
		Devices:   values.Mock.Devices,
		FailAfter: values.Mock.FailAfter,
	})
	return values, backend, nil
}

func (service *Service) Manage(args []string) (string, error) {
	command := "view"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "setup":
		return service.Setup()
	case "remove-setup":
		return service.RemoveSetup()
	case "list", "headless", "view":
	default:
		return usage, nil
	}

	values, backend, err := service.loadConfig(args)
	if err != nil {
		return "", err
	}
	defer dumpMatProfile(values.Debug)

	switch command {
	case "list":
		return service.List(values, backend)
	case "headless":
		return service.Headless(values, backend)
	default:
		return service.View(values, backend)
	}
}

func dumpMatProfile(debug bool) {
	if !debug {
		return
	}
	var b bytes.Buffer
	gocv.MatProfile.WriteTo(&b, 1)
	log.Debug("Mat profile (%d open):\n%s", gocv.MatProfile.Count(), b.String())
}

func init() {
	// highgui has to stay on the main thread
	runtime.LockOSThread()
	log.SetLevel(os.Getenv("DRAGONEYE_LOGGING_LEVEL"))
}

func main() {
	service := &Service{
		resolver:  config.DefaultResolver(),
		creator:   config.DefaultCreator(),
		destroyer: config.DefaultDestroyer(),
	}
	status, err := service.Manage(os.Args[1:])
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	fmt.Println(status)
}
