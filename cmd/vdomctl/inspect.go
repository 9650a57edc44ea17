package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/solstice-ui/vdom/cmd/vdomctl/internal/scene"
	"github.com/solstice-ui/vdom/cmd/vdomctl/internal/ui"
	"github.com/solstice-ui/vdom/pkg/dom/memory"
	"github.com/solstice-ui/vdom/pkg/live"
	"github.com/solstice-ui/vdom/pkg/modules"
	"github.com/solstice-ui/vdom/pkg/vdom"
)

func newInspectCommand() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "inspect <scene.yaml>",
		Short: "Walk the mutations one patch cycle recorded, in a terminal UI",
		Long: `Inspect builds the VNode tree a scene file describes, patches it against
an in-memory DOM (optionally starting from another scene's tree via --from),
and opens a terminal UI listing every mutation the patch recorded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			muts, err := recordScenePatch(from, args[0])
			if err != nil {
				return err
			}
			model := ui.NewModel(args[0], muts)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "a prior scene file to patch from (defaults to an empty tree)")
	return cmd
}

// recordScenePatch patches fromPath's tree (or an empty tree) to
// toPath's tree against a fresh in-memory DOM and returns every
// mutation the patch recorded.
func recordScenePatch(fromPath, toPath string) ([]live.Mutation, error) {
	toNode, err := scene.Load(toPath)
	if err != nil {
		return nil, err
	}

	mods := []vdom.Module{
		modules.Attrs(), modules.Props(), modules.Class(),
		modules.Style(), modules.Dataset(), modules.EventListeners(),
	}
	rec := live.NewRecorder(memory.NewAdapter())
	engine := vdom.Init(mods, rec)
	root := memory.NewAdapter().CreateElement("div")
	old := vdom.FromElement(rec.Wrap(root), rec)

	if fromPath != "" {
		fromNode, err := scene.Load(fromPath)
		if err != nil {
			return nil, fmt.Errorf("inspect: load --from scene: %w", err)
		}
		old = engine.Patch(old, scene.Build(fromNode))
		rec.Drain()
	}

	engine.Patch(old, scene.Build(toNode))
	return rec.Drain(), nil
}
