package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ironlog/internal/bootstrap"
	sessiondto "ironlog/internal/modules/session/dto"
	templatedto "ironlog/internal/modules/template/dto"
	"ironlog/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "ironlog",
		Short:         "Offline-first workout tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default ~/.ironlog)")

	root.AddCommand(newTemplateCmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newExerciseCmd(&dataDir))
	root.AddCommand(newSetCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	root.AddCommand(newExportCmd(&dataDir))
	root.AddCommand(newResetCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func withApp(dataDir *string, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(*dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newTemplateCmd(dataDir *string) *cobra.Command {
	template := &cobra.Command{Use: "template", Short: "Manage workout templates"}

	template.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List workout templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(dataDir, func(app *bootstrap.App) error {
				templates, err := app.TemplateCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(templates) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no templates")
					return nil
				}
				for _, t := range templates {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d exercises\n", t.ID, t.Name, len(t.Exercises))
				}
				return nil
			})
		},
	})

	var showID string
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show a template with its exercises",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(showID) == "" {
				return fmt.Errorf("--id is required")
			}
			return withApp(dataDir, func(app *bootstrap.App) error {
				t, err := app.TemplateCLI.Get(context.Background(), showID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\ncreated: %s\n", t.ID, t.Name, t.CreatedAt.Format(time.RFC3339))
				for _, exercise := range t.Exercises {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s%s\n", exercise.OrderIndex+1, exercise.Name, weightTag(exercise.UsesWeight))
				}
				return nil
			})
		},
	}
	show.Flags().StringVar(&showID, "id", "", "template id")
	template.AddCommand(show)

	var createName string
	var createExercises []string
	create := &cobra.Command{
		Use:   "create --name <name> --exercise <name>[:bw] ...",
		Short: "Create a template (suffix :bw marks a bodyweight exercise)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(createName) == "" {
				return fmt.Errorf("--name is required")
			}
			specs := make([]templatedto.ExerciseSpec, 0, len(createExercises))
			for _, raw := range createExercises {
				name, bodyweight := strings.CutSuffix(raw, ":bw")
				specs = append(specs, templatedto.ExerciseSpec{Name: name, Bodyweight: bodyweight})
			}
			return withApp(dataDir, func(app *bootstrap.App) error {
				t, err := app.TemplateCLI.Create(context.Background(), createName, specs)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "template created: %s (%s) with %d exercises\n", t.Name, t.ID, len(t.Exercises))
				return nil
			})
		},
	}
	create.Flags().StringVar(&createName, "name", "", "template name")
	create.Flags().StringSliceVar(&createExercises, "exercise", nil, "exercise name, suffix :bw for bodyweight")
	template.AddCommand(create)

	var deleteID string
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(deleteID) == "" {
				return fmt.Errorf("--id is required")
			}
			return withApp(dataDir, func(app *bootstrap.App) error {
				if err := app.TemplateCLI.Delete(context.Background(), deleteID); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "template deleted: %s\n", deleteID)
				return nil
			})
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "template id")
	template.AddCommand(deleteCmd)

	var duplicateID, duplicateName string
	duplicate := &cobra.Command{
		Use:   "duplicate --id <id> --name <new name>",
		Short: "Duplicate a template under a new name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(duplicateID) == "" || strings.TrimSpace(duplicateName) == "" {
				return fmt.Errorf("--id and --name are required")
			}
			return withApp(dataDir, func(app *bootstrap.App) error {
				t, err := app.TemplateCLI.Duplicate(context.Background(), duplicateID, duplicateName)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "template duplicated: %s (%s)\n", t.Name, t.ID)
				return nil
			})
		},
	}
	duplicate.Flags().StringVar(&duplicateID, "id", "", "template id")
	duplicate.Flags().StringVar(&duplicateName, "name", "", "new template name")
	template.AddCommand(duplicate)

	return template
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Workout session lifecycle"}

	var templateID string
	var useLast bool
	start := &cobra.Command{
		Use:   "start [--template-id <id> | --last]",
		Short: "Start a workout session and its timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(dataDir, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Start(context.Background(), templateID, useLast)
				if err != nil {
					return err
				}
				name := out.TemplateName
				if name == "" {
					name = "empty workout"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started: %s (%s) at=%s\n", out.SessionID, name, out.StartedAt.Format(time.RFC3339))
				for _, exercise := range out.Exercises {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s (%s)%s\n", exercise.OrderIndex+1, exercise.Name, exercise.ID, weightTag(exercise.UsesWeight))
				}
				return nil
			})
		},
	}
	start.Flags().StringVar(&templateID, "template-id", "", "template to start from")
	start.Flags().BoolVar(&useLast, "last", false, "reuse the most recently used template")
	session.AddCommand(start)

	session.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show active session and elapsed time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(dataDir, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Status(context.Background())
				if err != nil {
					return err
				}
				printStatus(cmd, out)
				return nil
			})
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Pause the session timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(dataDir, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Pause(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "paused at %s\n", out.ElapsedDisplay)
				return nil
			})
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "resume",
		Short: "Resume the session timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(dataDir, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Resume(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "resumed at %s\n", out.ElapsedDisplay)
				return nil
			})
		},
	})

	var notes string
	finish := &cobra.Command{
		Use:   "finish [--notes <text>]",
		Short: "Finish the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(dataDir, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Finish(context.Background(), notes)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session finished: %s duration=%s sets=%d reps=%d volume=%.1f\n",
					out.SessionID, out.DurationDisplay, out.TotalSets, out.TotalReps, out.TotalVolume)
				return nil
			})
		},
	}
	finish.Flags().StringVar(&notes, "notes", "", "session notes")
	session.AddCommand(finish)

	session.AddCommand(&cobra.Command{
		Use:   "abandon",
		Short: "Discard the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(dataDir, func(app *bootstrap.App) error {
				if err := app.SessionCLI.Abandon(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session abandoned")
				return nil
			})
		},
	})

	return session
}

func newExerciseCmd(dataDir *string) *cobra.Command {
	exercise := &cobra.Command{Use: "exercise", Short: "Exercises within the active session"}

	var name string
	var bodyweight bool
	add := &cobra.Command{
		Use:   "add --name <name>",
		Short: "Add an exercise to the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			return withApp(dataDir, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.AddExercise(context.Background(), name, bodyweight)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exercise added: %s (%s)%s\n", out.Name, out.ID, weightTag(out.UsesWeight))
				return nil
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "exercise name")
	add.Flags().BoolVar(&bodyweight, "bodyweight", false, "bodyweight exercise (no weight per set)")
	exercise.AddCommand(add)

	var removeID string
	remove := &cobra.Command{
		Use:   "remove --id <id>",
		Short: "Remove an exercise from the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(removeID) == "" {
				return fmt.Errorf("--id is required")
			}
			return withApp(dataDir, func(app *bootstrap.App) error {
				if err := app.SessionCLI.RemoveExercise(context.Background(), removeID); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exercise removed: %s\n", removeID)
				return nil
			})
		},
	}
	remove.Flags().StringVar(&removeID, "id", "", "exercise id")
	exercise.AddCommand(remove)

	var weightName string
	lastWeight := &cobra.Command{
		Use:   "last-weight --name <name>",
		Short: "Show the last weight used for an exercise",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(weightName) == "" {
				return fmt.Errorf("--name is required")
			}
			return withApp(dataDir, func(app *bootstrap.App) error {
				weight, ok, err := app.SessionCLI.LastWeight(context.Background(), weightName)
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no logged weight for %s\n", weightName)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %.1f\n", weightName, weight)
				return nil
			})
		},
	}
	lastWeight.Flags().StringVar(&weightName, "name", "", "exercise name")
	exercise.AddCommand(lastWeight)

	return exercise
}

func newSetCmd(dataDir *string) *cobra.Command {
	set := &cobra.Command{Use: "set", Short: "Sets within the active session"}

	var exerciseID string
	var reps int
	var weight float64
	log := &cobra.Command{
		Use:   "log --exercise-id <id> --reps <n> [--weight <kg>]",
		Short: "Log a set for an exercise",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(exerciseID) == "" {
				return fmt.Errorf("--exercise-id is required")
			}
			var weightArg *float64
			if cmd.Flags().Changed("weight") {
				weightArg = &weight
			}
			return withApp(dataDir, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.LogSet(context.Background(), exerciseID, reps, weightArg)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "set %d logged for %s: %d reps%s\n", out.SetNumber, out.ExerciseName, out.Reps, weightSuffix(out.Weight))
				return nil
			})
		},
	}
	log.Flags().StringVar(&exerciseID, "exercise-id", "", "session exercise id")
	log.Flags().IntVar(&reps, "reps", 0, "repetitions")
	log.Flags().Float64Var(&weight, "weight", 0, "weight used")
	set.AddCommand(log)

	var deleteID string
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a logged set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(deleteID) == "" {
				return fmt.Errorf("--id is required")
			}
			return withApp(dataDir, func(app *bootstrap.App) error {
				if err := app.SessionCLI.DeleteSet(context.Background(), deleteID); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "set deleted: %s\n", deleteID)
				return nil
			})
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "set id")
	set.AddCommand(deleteCmd)

	return set
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Completed workout history"}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(*dataDir)
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.HistoryLimit
			}
			app, err := bootstrap.New(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			sessions, err := app.SessionCLI.History(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				marker := ""
				if s.Active {
					marker = "\tACTIVE"
				}
				name := s.TemplateName
				if name == "" {
					name = "Workout"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\tsets=%d%s\n",
					s.SessionID, name, s.StartedAt.Format("2006-01-02 15:04"), s.DurationDisplay, s.TotalSets, marker)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "maximum sessions to list (default from config)")
	history.AddCommand(list)

	var showID string
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show a session with exercises and sets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(showID) == "" {
				return fmt.Errorf("--id is required")
			}
			return withApp(dataDir, func(app *bootstrap.App) error {
				s, err := app.SessionCLI.Get(context.Background(), showID)
				if err != nil {
					return err
				}
				name := s.TemplateName
				if name == "" {
					name = "Workout"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s started=%s duration=%s sets=%d reps=%d volume=%.1f\n",
					name, s.StartedAt.Format(time.RFC3339), s.DurationDisplay, s.TotalSets, s.TotalReps, s.TotalVolume)
				if s.Notes != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notes: %s\n", s.Notes)
				}
				for _, exercise := range s.Exercises {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s%s\n", exercise.Name, weightTag(exercise.UsesWeight))
					for _, set := range exercise.Sets {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "    set %d: %d reps%s\n", set.SetNumber, set.Reps, weightSuffix(set.Weight))
					}
				}
				return nil
			})
		},
	}
	show.Flags().StringVar(&showID, "id", "", "session id")
	history.AddCommand(show)

	return history
}

func newExportCmd(dataDir *string) *cobra.Command {
	export := &cobra.Command{Use: "export", Short: "Export a session"}

	var sessionID, outDir string
	jsonCmd := &cobra.Command{
		Use:   "json --session-id <id>",
		Short: "Export a session as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(sessionID) == "" {
				return fmt.Errorf("--session-id is required")
			}
			return withApp(dataDir, func(app *bootstrap.App) error {
				out, err := app.ExportCLI.JSON(context.Background(), sessionID, outDir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported: %s\n", out.Path)
				return nil
			})
		},
	}
	csvCmd := &cobra.Command{
		Use:   "csv --session-id <id>",
		Short: "Export a session as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(sessionID) == "" {
				return fmt.Errorf("--session-id is required")
			}
			return withApp(dataDir, func(app *bootstrap.App) error {
				out, err := app.ExportCLI.CSV(context.Background(), sessionID, outDir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported: %s\n", out.Path)
				return nil
			})
		},
	}
	for _, sub := range []*cobra.Command{jsonCmd, csvCmd} {
		sub.Flags().StringVar(&sessionID, "session-id", "", "session id")
		sub.Flags().StringVar(&outDir, "out", "", "output directory (default export dir)")
		export.AddCommand(sub)
	}
	return export
}

func newResetCmd(dataDir *string) *cobra.Command {
	var confirm bool
	reset := &cobra.Command{
		Use:   "reset --confirm",
		Short: "Delete all data and reseed default templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirm {
				return fmt.Errorf("refusing to reset without --confirm")
			}
			cfg, err := config.New(*dataDir)
			if err != nil {
				return err
			}
			if err := bootstrap.ResetData(cfg); err != nil {
				return err
			}
			app, err := bootstrap.New(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all data reset")
			return nil
		},
	}
	reset.Flags().BoolVar(&confirm, "confirm", false, "confirm destructive reset")
	return reset
}

func printStatus(cmd *cobra.Command, out sessiondto.StatusOutput) {
	state := "running"
	if out.TimerPaused {
		state = "paused"
	}
	name := out.TemplateName
	if name == "" {
		name = "Workout"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) elapsed=%s [%s]\n", name, out.SessionID, out.ElapsedDisplay, state)
	for _, exercise := range out.Exercises {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s (%s)%s sets=%d\n", exercise.Name, exercise.ID, weightTag(exercise.UsesWeight), len(exercise.Sets))
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "totals: sets=%d reps=%d volume=%.1f\n", out.TotalSets, out.TotalReps, out.TotalVolume)
}

func weightTag(usesWeight bool) string {
	if usesWeight {
		return ""
	}
	return " [bodyweight]"
}

func weightSuffix(weight *float64) string {
	if weight == nil {
		return ""
	}
	return fmt.Sprintf(" @ %.1f", *weight)
}
