package level

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// AssetState is the load state of one asset handle.
type AssetState uint8

const (
	AssetNotLoaded AssetState = iota
	AssetLoading
	AssetLoaded
	AssetFailed
)

// String returns the state name.
func (s AssetState) String() string {
	switch s {
	case AssetNotLoaded:
		return "NotLoaded"
	case AssetLoading:
		return "Loading"
	case AssetLoaded:
		return "Loaded"
	case AssetFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Handle identifies a tracked asset.
type Handle string

// LevelHandle returns the handle of a level's data file.
func LevelHandle(index int) Handle {
	return Handle(fmt.Sprintf("level/%d", index))
}

// Source supplies level data behind non-blocking load-state queries.
type Source interface {
	// Request starts loading everything the level needs and returns the
	// handles to poll. It must not block.
	Request(index int) []Handle
	// State reports a handle's load state without blocking.
	State(h Handle) AssetState
	// Level returns resolved data once the level's handles are Loaded.
	Level(index int) (*Level, bool)
}

// Assets loads level files in the background. Each handle is loaded at most
// once: a failed load stays Failed and is never retried.
type Assets struct {
	loader *Loader
	logger *log.Logger

	mu     sync.RWMutex
	states map[Handle]AssetState
	levels map[int]*Level
	wg     sync.WaitGroup
}

// NewAssets creates an asset tracker reading through loader.
// A nil logger discards output.
func NewAssets(loader *Loader, logger *log.Logger) *Assets {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Assets{
		loader: loader,
		logger: logger,
		states: make(map[Handle]AssetState),
		levels: make(map[int]*Level),
	}
}

// Request implements Source.
func (a *Assets) Request(index int) []Handle {
	h := LevelHandle(index)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.states[h] != AssetNotLoaded {
		return []Handle{h}
	}
	a.states[h] = AssetLoading
	a.wg.Add(1)
	go a.load(index, h)

	return []Handle{h}
}

// load reads one level in the background and records the outcome.
func (a *Assets) load(index int, h Handle) {
	defer a.wg.Done()

	lvl, err := a.loader.ByIndex(index)

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		a.states[h] = AssetFailed
		a.logger.Warn("asset load failed", "handle", h, "error", err)
		return
	}
	a.levels[index] = &lvl
	a.states[h] = AssetLoaded
	a.logger.Debug("asset loaded", "handle", h, "path", lvl.FilePath)
}

// State implements Source.
func (a *Assets) State(h Handle) AssetState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.states[h]
}

// Level implements Source.
func (a *Assets) Level(index int) (*Level, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	lvl, ok := a.levels[index]
	return lvl, ok
}

// Wait blocks until every load started so far has finished.
func (a *Assets) Wait() {
	a.wg.Wait()
}

var _ Source = (*Assets)(nil)
