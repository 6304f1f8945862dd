package process

import (
	"context"
	"sync"

	"github.com/tauraamui/dragoneye/pkg/log"
)

type Process interface {
	Setup() Process
	Start()
	Stop()
	Wait()
}

// Settings.Process is handed a context cancelled by Stop and returns the
// channels Wait blocks on, each closed once its goroutine has finished.
type Settings struct {
	WaitForShutdownMsg string
	Process            func(context.Context) []chan interface{}
}

func New(settings Settings) Process {
	return &process{
		waitForShutdownMsg: settings.WaitForShutdownMsg,
		process:            settings.Process,
	}
}

type process struct {
	process            func(context.Context) []chan interface{}
	waitForShutdownMsg string
	mu                 sync.Mutex
	canceller          context.CancelFunc
	signals            []chan interface{}
}

func (p *process) logShutdown() {
	if len(p.waitForShutdownMsg) > 0 {
		log.Info("%s", p.waitForShutdownMsg)
	}
}

func (p *process) Setup() Process { return p }

func (p *process) Start() {
	ctx, canceller := context.WithCancel(context.Background())
	p.mu.Lock()
	defer p.mu.Unlock()
	p.canceller = canceller
	p.signals = append(p.signals, p.process(ctx)...)
}

func (p *process) Stop() {
	p.logShutdown()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.canceller != nil {
		p.canceller()
	}
}

func (p *process) Wait() {
	p.mu.Lock()
	signals := append([]chan interface{}{}, p.signals...)
	p.mu.Unlock()
	for _, sig := range signals {
		<-sig
	}
}
