// Package engine owns the merge session lifecycle: it reacts to events
// from the Neovim side, loads revisions from git, recomputes the
// alignment, and renders the result back into the editor.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/neovim/go-client/nvim"

	"mergeview/git"
	"mergeview/logger"
	"mergeview/tracker"
	"mergeview/types"
)

type Config struct {
	NsID               int
	TextChangeDebounce time.Duration
	GitDebounce        time.Duration
	WorkDir            string // repository discovery root; defaults to the cwd
}

type Engine struct {
	mu sync.Mutex

	n       *nvim.Nvim
	buf     nvim.Buffer
	config  Config
	repo    *git.Repo
	watcher *git.Watcher

	session *Session
	tracker *tracker.Tracker

	eventChan       chan Event
	textChangeTimer *time.Timer
	refreshCancel   context.CancelFunc

	mainCtx    context.Context
	mainCancel context.CancelFunc
	stopped    bool
	stopOnce   sync.Once
}

func NewEngine(config Config) (*Engine, error) {
	if config.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		config.WorkDir = wd
	}

	return &Engine{
		config:    config,
		tracker:   tracker.New(),
		eventChan: make(chan Event, 100),
	}, nil
}

func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.mainCtx, e.mainCancel = context.WithCancel(ctx)
	e.mu.Unlock()

	go e.eventLoop(e.mainCtx)
	logger.Info("engine started")
}

// Stop shuts the engine down and releases the watcher and timers.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		e.stopped = true
		if e.mainCancel != nil {
			e.mainCancel()
		}
		if e.refreshCancel != nil {
			e.refreshCancel()
			e.refreshCancel = nil
		}
		if e.textChangeTimer != nil {
			e.textChangeTimer.Stop()
			e.textChangeTimer = nil
		}
		if e.watcher != nil {
			e.watcher.Close()
			e.watcher = nil
		}
		close(e.eventChan)

		logger.Info("engine stopped")
	})
}

func (e *Engine) eventLoop(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event loop panic recovered: %v\n%s", r, debug.Stack())
			e.eventLoop(e.mainCtx)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-e.eventChan:
			if !ok {
				return
			}

			e.mu.Lock()
			stopped := e.stopped
			e.mu.Unlock()
			if stopped {
				return
			}

			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Error("event handler panic recovered for %v: %v", event.Type, r)
					}
				}()
				e.handleEvent(event)
			}()
		}
	}
}

func (e *Engine) handleEvent(event Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return
	}
	logger.Debug("handle event: %v", event.Type)

	switch event.Type {
	case EventRefresh:
		e.startRefresh()
	case EventTextChanged:
		e.startTextChangeTimer()
	case EventDebounceTimeout:
		e.recomputeFromBuffer()
	case EventGitChanged:
		if e.repo != nil {
			e.repo.InvalidateCache()
		}
		e.startRefresh()
	case EventMergeReady:
		e.installSession(event.Data.(*Session))
	case EventMergeError:
		if err, ok := event.Data.(error); ok && errors.Is(err, context.Canceled) {
			logger.Debug("refresh canceled: %v", err)
		} else {
			logger.Error("refresh error: %v", event.Data)
			e.notifyError(event.Data)
		}
	case EventAcceptLeft:
		e.acceptBlock(types.SideLeft)
	case EventAcceptRight:
		e.acceptBlock(types.SideRight)
	case EventDiscard:
		e.discardBlock()
	case EventNextConflict:
		e.jumpConflict(true)
	case EventPrevConflict:
		e.jumpConflict(false)
	}
}

// post delivers an event to the loop unless the engine is shutting
// down.
func (e *Engine) post(event Event) {
	select {
	case e.eventChan <- event:
	case <-e.mainCtx.Done():
	}
}

// startRefresh loads the merge state off the event loop and posts the
// finished session back in. A newer refresh cancels the previous one.
func (e *Engine) startRefresh() {
	if e.stopped || e.n == nil {
		return
	}
	if e.refreshCancel != nil {
		e.refreshCancel()
	}

	if e.buf == 0 {
		buf, err := e.n.CurrentBuffer()
		if err != nil {
			logger.Error("resolve current buffer: %v", err)
		} else {
			e.buf = buf
		}
	}

	ctx, cancel := context.WithTimeout(e.mainCtx, 10*time.Second)
	e.refreshCancel = cancel

	go func() {
		defer cancel()

		session, err := e.loadSession(ctx)
		if err != nil {
			e.post(Event{Type: EventMergeError, Data: err})
			return
		}
		e.post(Event{Type: EventMergeReady, Data: session})
	}()
}

// loadSession finds the conflicted file and builds a session from its
// three staged revisions.
func (e *Engine) loadSession(ctx context.Context) (*Session, error) {
	repo, err := e.ensureRepo(ctx)
	if err != nil {
		return nil, err
	}
	if !repo.MergeInProgress() {
		return nil, fmt.Errorf("no merge in progress in %s", repo.Root())
	}

	files, err := repo.ConflictedFiles(ctx)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("merge in progress but no conflicted files")
	}

	// One session at a time; the first conflicted file wins. The Lua
	// side re-raises refresh per file as the user moves on.
	file := files[0]
	revs, err := repo.Revisions(ctx, file)
	if err != nil {
		return nil, err
	}
	return NewSession(file, revs), nil
}

// ensureRepo opens the repository and its git-dir watcher on first use.
func (e *Engine) ensureRepo(ctx context.Context) (*git.Repo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.repo != nil {
		return e.repo, nil
	}
	repo, err := git.Open(ctx, e.config.WorkDir)
	if err != nil {
		return nil, err
	}
	e.repo = repo

	debounce := e.config.GitDebounce
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	watcher, err := git.Watch(repo.Dir(), debounce)
	if err != nil {
		logger.Warn("git watcher unavailable: %v", err)
		return repo, nil
	}
	e.watcher = watcher

	go func() {
		for range watcher.Events {
			e.post(Event{Type: EventGitChanged})
		}
	}()

	return repo, nil
}

func (e *Engine) installSession(s *Session) {
	e.session = s
	e.tracker.Load(s.View.Conflicts)
	logger.Info("merge view ready: %s (%d conflicts, %d/%d fillers)",
		s.File.Path, len(s.View.Conflicts), len(s.View.LeftFillers), len(s.View.RightFillers))
	e.renderView()
}

// recomputeFromBuffer re-reads the working buffer as the left revision
// and recomputes the alignment. Base and right are unchanged by local
// edits.
func (e *Engine) recomputeFromBuffer() {
	if e.session == nil || e.n == nil {
		return
	}

	lines, err := e.n.BufferLines(e.buf, 0, -1, false)
	if err != nil {
		logger.Error("read buffer lines: %v", err)
		return
	}

	var left []byte
	for _, l := range lines {
		left = append(left, l...)
		left = append(left, '\n')
	}

	revs := e.session.Revs
	revs.Left = string(left)
	file := e.session.File

	go func() {
		e.post(Event{Type: EventMergeReady, Data: NewSession(file, revs)})
	}()
}

func (e *Engine) startTextChangeTimer() {
	if e.textChangeTimer != nil {
		e.textChangeTimer.Stop()
	}
	debounce := e.config.TextChangeDebounce
	if debounce <= 0 {
		debounce = 150 * time.Millisecond
	}
	e.textChangeTimer = time.AfterFunc(debounce, func() {
		e.post(Event{Type: EventDebounceTimeout})
	})
}

// SetNvim attaches an nvim connection and registers the RPC handler
// the Lua side raises events through.
func (e *Engine) SetNvim(n *nvim.Nvim) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return
	}
	e.n = n
	e.buf = 0

	if err := n.RegisterHandler("mergeview_event", func(n *nvim.Nvim, event string) {
		e.mu.Lock()
		stopped := e.stopped
		e.mu.Unlock()
		if stopped {
			return
		}

		if t := EventTypeFromString(event); t != "" {
			e.post(Event{Type: t})
		}
	}); err != nil {
		logger.Error("register event handler: %v", err)
	}
}

// notifyError surfaces a load failure to the Lua side.
func (e *Engine) notifyError(data any) {
	if e.n == nil {
		return
	}
	batch := e.n.NewBatch()
	batch.ExecLua(`require('mergeview').on_error(...)`, nil, fmt.Sprint(data))
	if err := batch.Execute(); err != nil {
		logger.Error("notify error: %v", err)
	}
}
