package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/evanmahr/ganttline/internal/commit"
	"github.com/evanmahr/ganttline/internal/domain"
	"github.com/evanmahr/ganttline/internal/gesture"
	"github.com/evanmahr/ganttline/internal/repository"
	"github.com/evanmahr/ganttline/internal/selection"
	"github.com/evanmahr/ganttline/internal/service"
	"github.com/evanmahr/ganttline/internal/store"
)

// App holds the wired collaborators the CLI commands operate on.
type App struct {
	Schedule  service.ScheduleService
	Repo      repository.ScheduleRepo
	Store     *store.Store
	Labels    *store.LabelRegistry
	Selection *selection.Manager
	Engine    *gesture.Engine
	Committer *commit.Committer

	// IsInteractive reports whether stdin is an interactive terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "ganttline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "ganttline",
		Short: "Interactive project timeline",
	}

	root.AddCommand(
		newViewCmd(app),
		newProjectsCmd(app),
		newItemsCmd(app),
		newDepsCmd(app),
		newDemoCmd(app),
	)

	return root
}

// viewOptions are session-local display overrides; they are applied to the
// loaded snapshot's preferences but only persisted when the session saves.
type viewOptions struct {
	grid   string
	px     float64
	noSave bool
}

func (o *viewOptions) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.grid, "grid", "", `grid unit override ("day" or "hour")`)
	fs.Float64Var(&o.px, "px", 0, "pixels per grid unit override")
	fs.BoolVar(&o.noSave, "no-save", false, "discard edits on exit")
}

func (o *viewOptions) apply(prefs *domain.Preferences) error {
	switch o.grid {
	case "":
	case "day":
		prefs.GridUnit = domain.UnitDay
	case "hour":
		prefs.GridUnit = domain.UnitHour
	default:
		return fmt.Errorf("unknown grid unit %q", o.grid)
	}
	if o.px < 0 {
		return fmt.Errorf("pixels per unit must be positive")
	}
	if o.px > 0 {
		prefs.PixelsPerUnit = o.px
	}
	return nil
}

func newViewCmd(app *App) *cobra.Command {
	var opts viewOptions
	cmd := &cobra.Command{
		Use:   "view [project-id]",
		Short: "Open the interactive timeline for a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("view requires an interactive terminal")
			}

			ctx := cmd.Context()
			projectID := ""
			if len(args) == 1 {
				projectID = args[0]
			} else {
				refs, err := app.Schedule.Projects(ctx)
				if err != nil {
					return err
				}
				if len(refs) == 0 {
					return fmt.Errorf("no projects found; run \"ganttline demo\" to seed one")
				}
				projectID = refs[0].ID
			}

			if err := app.Schedule.Load(ctx, projectID); err != nil {
				return err
			}
			if name := app.Store.Snapshot().Meta["name"]; name != "" {
				app.Labels.Set("breadcrumb", name)
			}
			if _, err := app.Store.Apply(func(s *domain.Snapshot) error {
				return opts.apply(&s.Preferences)
			}); err != nil {
				return err
			}

			program := tea.NewProgram(newGanttModel(app), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running timeline view: %w", err)
			}

			if opts.noSave {
				return nil
			}
			// Persist whatever the session committed.
			return app.Schedule.Save(ctx)
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}

func newProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List stored projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := app.Schedule.Projects(cmd.Context())
			if err != nil {
				return err
			}
			if len(refs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no projects")
				return nil
			}
			for _, ref := range refs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (updated %s)\n",
					ref.ID, ref.Name, ref.LastUpdated.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newItemsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "items <project-id>",
		Short: "List a project's items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Schedule.Load(cmd.Context(), args[0]); err != nil {
				return err
			}
			snap := app.Store.Snapshot()
			if len(snap.Items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no items")
				return nil
			}
			for _, it := range snap.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-9s %s → %s  %s\n",
					it.ID, it.Kind,
					it.Start.Format("2006-01-02"), it.End.Format("2006-01-02"), it.Name)
			}
			return nil
		},
	}
}

func newDepsCmd(app *App) *cobra.Command {
	deps := &cobra.Command{
		Use:   "deps",
		Short: "Inspect and edit dependencies",
	}

	list := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Schedule.Load(cmd.Context(), args[0]); err != nil {
				return err
			}
			snap := app.Store.Snapshot()
			if len(snap.Dependencies) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no dependencies")
				return nil
			}
			for _, d := range snap.Dependencies {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", d.FromID, d.ToID)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <project-id> <from-item> <to-item>",
		Short: "Add a dependency edge",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.Schedule.Load(ctx, args[0]); err != nil {
				return err
			}
			if _, err := app.Committer.AddDependency(args[1], args[2]); err != nil {
				return err
			}
			if err := app.Schedule.Save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s -> %s\n", args[1], args[2])
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <project-id> <from-item> <to-item>",
		Short: "Remove a dependency edge",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.Schedule.Load(ctx, args[0]); err != nil {
				return err
			}
			if _, err := app.Committer.RemoveDependency(args[1], args[2]); err != nil {
				return err
			}
			if err := app.Schedule.Save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s -> %s\n", args[1], args[2])
			return nil
		},
	}

	deps.AddCommand(list, add, rm)
	return deps
}

func newDemoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Seed a sample project",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := service.SeedDemo(cmd.Context(), app.Repo)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded project %s\n", projectID)
			return nil
		},
	}
}
