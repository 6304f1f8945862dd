package camera

import (
	"context"

	"github.com/tauraamui/dragoneye/pkg/log"
	"github.com/tauraamui/dragoneye/pkg/video/videobackend"
)

const DefaultMaxCameras = 10

// Enumerate probes every index in [0, maxCameras) and returns, ascending,
// those that open. No probed handle is left open.
func Enumerate(ctx context.Context, backend videobackend.Backend, maxCameras int) []int {
	found := []int{}
	for i := 0; i < maxCameras; i++ {
		select {
		case <-ctx.Done():
			return found
		default:
		}
		if probe(ctx, backend, i) {
			found = append(found, i)
		}
	}
	return found
}

func probe(ctx context.Context, backend videobackend.Backend, index int) bool {
	vc, err := backend.Open(ctx, index)
	if err != nil {
		log.Debug("Probe of [%s] failed: %v", Label(index), err)
		return false
	}
	defer func() {
		if err := vc.Close(); err != nil {
			log.Warn("Unable to release probed [%s]: %v", Label(index), err)
		}
	}()
	return vc.IsOpen()
}
