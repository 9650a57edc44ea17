package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/solstice-ui/vdom/cmd/vdomctl/internal/config"
	"github.com/solstice-ui/vdom/cmd/vdomctl/internal/scene"
	"github.com/solstice-ui/vdom/pkg/dom/memory"
	"github.com/solstice-ui/vdom/pkg/live"
	"github.com/solstice-ui/vdom/pkg/modules"
	"github.com/solstice-ui/vdom/pkg/reactive"
	"github.com/solstice-ui/vdom/pkg/scheduler"
	"github.com/solstice-ui/vdom/pkg/ssr"
	"github.com/solstice-ui/vdom/pkg/vdom"
)

func newServeCommand() *cobra.Command {
	var port int
	var host string
	var scenePath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "SSR a scene and stream live updates as it changes",
		Long: `Serve renders a scene file to HTML, starts a live WebSocket endpoint
that streams the DOM mutations one patch cycle produces, and watches the
scene file for changes, re-patching and re-streaming whenever it is saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if scenePath != "" {
				cfg.Serve.ScenePath = scenePath
				cfg.Serve.WatchDir = filepath.Dir(scenePath)
			}
			if port != 0 {
				cfg.Serve.Port = port
			}
			if host != "" {
				cfg.Serve.Host = host
			}
			return runServe(cfg.Serve)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (defaults to vdomctl.yaml)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "host to bind (defaults to vdomctl.yaml)")
	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "scene file to render and watch")

	return cmd
}

// devServer mirrors a live scene against an in-memory DOM so every
// patch cycle can be recorded and streamed to connected browsers. The
// scene file is reactive.State: a disk change calls Set, which wakes
// the single Fiber that renders and patches it, the same dirty/apply
// loop a real component tree would run under.
type devServer struct {
	cfg *config.ServeConfig
	log *slog.Logger

	engine   *vdom.Engine
	recorder *live.Recorder
	live     *live.Server

	sched      *scheduler.Scheduler
	fiber      *scheduler.Fiber
	sceneState *reactive.State[*scene.Node]
}

func runServe(cfg *config.ServeConfig) error {
	log := slog.Default().With("cmd", "serve")

	mods := []vdom.Module{
		modules.Attrs(),
		modules.Props(),
		modules.Class(),
		modules.Style(),
		modules.Dataset(),
		modules.EventListeners(),
	}
	recorder := live.NewRecorder(memory.NewAdapter())
	sched := scheduler.NewScheduler()

	d := &devServer{
		cfg:      cfg,
		log:      log,
		engine:   vdom.Init(mods, recorder),
		recorder: recorder,
		live:     live.NewServer(log),
		sched:    sched,
	}
	d.sceneState = reactive.NewState[*scene.Node](nil, sched)
	d.fiber = sched.CreateFiber(d.render, nil)
	sched.SetApplier(d.apply)

	node, err := scene.Load(cfg.ScenePath)
	if err != nil {
		return fmt.Errorf("serve: initial render: %w", err)
	}
	d.sceneState.Set(node)
	d.runFiberOnce()

	sched.Start()
	defer sched.Stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("serve: create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(cfg.WatchDir); err != nil {
		return fmt.Errorf("serve: watch %s: %w", cfg.WatchDir, err)
	}
	go d.watchScene(watcher)

	mux := http.NewServeMux()
	mux.HandleFunc("/", d.serveIndex)
	mux.HandleFunc("/live/", d.serveLive)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{Addr: addr, Handler: mux}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	log.Info("serving", "addr", addr, "scene", cfg.ScenePath)
	err = srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// render is the fiber's RenderFunc: it reads sceneState (subscribing
// the fiber if one is current) and builds the VNode tree the scheduler
// will hand to apply.
func (d *devServer) render() *vdom.VNode {
	reactive.SetCurrentFiber(d.fiber)
	defer reactive.SetCurrentFiber(nil)

	node := d.sceneState.Get()
	if node == nil {
		return vdom.H("div")
	}
	return scene.Build(node)
}

// apply is the scheduler's ApplyFunc: it patches the canonical
// in-memory DOM and broadcasts whatever mutations the recorder
// captured to every connected live session.
func (d *devServer) apply(old, next *vdom.VNode) *vdom.VNode {
	if old == nil {
		root := memory.NewAdapter().CreateElement("div")
		old = vdom.FromElement(d.recorder.Wrap(root), d.recorder)
	}

	patched := d.engine.Patch(old, next)
	if muts := d.recorder.Drain(); len(muts) > 0 {
		d.live.Broadcast(muts)
		d.log.Info("scene reloaded", "path", d.cfg.ScenePath, "mutations", len(muts))
	}
	return patched
}

// runFiberOnce drives one render/apply cycle by hand, ahead of
// sched.Start. It both paints the first frame and, by calling render
// (which reads sceneState with d.fiber current), subscribes the fiber
// so every later sceneState.Set wakes it through the scheduler loop.
func (d *devServer) runFiberOnce() {
	next := d.render()
	d.fiber.SetVNode(d.apply(d.fiber.VNode(), next))
}

// snapshot renders the current scene from an empty tree using a
// throwaway engine, so a newly connecting session can be bootstrapped
// regardless of how much the canonical tree has since diverged from
// empty.
func (d *devServer) snapshot() []live.Mutation {
	node := d.sceneState.Get()

	mods := []vdom.Module{
		modules.Attrs(), modules.Props(), modules.Class(),
		modules.Style(), modules.Dataset(), modules.EventListeners(),
	}
	rec := live.NewRecorder(memory.NewAdapter())
	engine := vdom.Init(mods, rec)
	root := memory.NewAdapter().CreateElement("div")
	engine.Patch(vdom.FromElement(rec.Wrap(root), rec), scene.Build(node))
	return rec.Drain()
}

func (d *devServer) watchScene(watcher *fsnotify.Watcher) {
	debounce := time.NewTimer(time.Hour)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(d.cfg.ScenePath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			debounce.Reset(75 * time.Millisecond)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			d.log.Warn("watcher error", "error", err)

		case <-debounce.C:
			node, err := scene.Load(d.cfg.ScenePath)
			if err != nil {
				d.log.Warn("reload failed", "error", err)
				continue
			}
			d.sceneState.Set(node)
		}
	}
}

func (d *devServer) serveIndex(w http.ResponseWriter, r *http.Request) {
	node := d.sceneState.Get()
	if node == nil {
		http.Error(w, "scene not loaded", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderer := ssr.NewRenderer(w)
	if err := renderer.Render(scene.Build(node)); err != nil {
		d.log.Warn("render failed", "error", err)
	}
}

func (d *devServer) serveLive(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimPrefix(r.URL.Path, "/live/")
	if sessionID == "" {
		sessionID = "default"
	}

	if err := d.live.HandleWebSocket(sessionID, w, r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, ok := d.live.GetSession(sessionID)
	if !ok {
		return
	}
	session.OnEvent(func(evt live.Event) {
		d.log.Info("event", "session", sessionID, "node", evt.NodeID, "name", evt.Name, "value", evt.Value)
	})
	if err := session.SendMutations(d.snapshot()); err != nil {
		d.log.Warn("failed to bootstrap session", "session", sessionID, "error", err)
	}
}
