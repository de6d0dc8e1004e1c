package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scenetrack/internal/scene"
	"scenetrack/internal/session"
)

func newScenesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scenes <doc>",
		Short: "List the scenes of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), args[0], func(sess *session.Session) error {
				sorted := sess.Scenes().Sorted()
				if ctx.jsonOutput() {
					if sorted == nil {
						sorted = []scene.Scene{}
					}
					return writeJSON(cmd, sorted)
				}
				out := cmd.OutOrStdout()
				if len(sorted) == 0 {
					fmt.Fprintln(out, "No scenes")
					return nil
				}
				rows := make([][]string, 0, len(sorted))
				for i, sc := range sorted {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						shortID(sc.ID),
						fmt.Sprintf("[%d, %d)", sc.Start, sc.End),
						sc.LocationType,
						sc.TimeOfDay,
						sc.Description,
						formatSeconds(sc.DurationSeconds),
					})
				}
				fmt.Fprintln(out, renderTable(tableSpec{
					headers: []string{"#", "ID", "Range", "Type", "Time", "Description", "Duration"},
					aligns:  []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignRight},
					wrap:    []int{5},
				}, rows))
				return nil
			})
		},
	}
}

func newSceneCommand(ctx *commandContext) *cobra.Command {
	sceneCmd := &cobra.Command{
		Use:   "scene",
		Short: "Create, edit and remove scenes",
	}
	sceneCmd.AddCommand(newSceneAddCommand(ctx))
	sceneCmd.AddCommand(newSceneSetCommand(ctx))
	sceneCmd.AddCommand(newSceneRemoveCommand(ctx))
	sceneCmd.AddCommand(newSceneClearCommand(ctx))
	return sceneCmd
}

func newSceneAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <doc> <start> <end>",
		Short: "Create a scene over a rune range of the document",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(args[1], args[2])
			if err != nil {
				return err
			}
			return ctx.withSession(cmd.Context(), args[0], func(sess *session.Session) error {
				sc, err := sess.CreateScene(cmd.Context(), start, end)
				if err != nil {
					return err
				}
				return printScene(cmd, ctx, "Created", sc)
			})
		},
	}
}

func newSceneSetCommand(ctx *commandContext) *cobra.Command {
	var (
		start, end                           int
		description, locationType, timeOfDay string
		locationName, notes                  string
	)

	cmd := &cobra.Command{
		Use:   "set <doc> <scene>",
		Short: "Change the bounds or labels of a scene",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var labels scene.Labels
			changed := false
			for name, target := range map[string]**string{
				"description": &labels.Description,
				"type":        &labels.LocationType,
				"time":        &labels.TimeOfDay,
				"location":    &labels.LocationName,
				"notes":       &labels.Notes,
			} {
				if flags.Changed(name) {
					value, _ := flags.GetString(name)
					*target = &value
					changed = true
				}
			}
			moveStart, moveEnd := flags.Changed("start"), flags.Changed("end")
			if !changed && !moveStart && !moveEnd {
				return fmt.Errorf("nothing to change; pass --start/--end or a label flag")
			}

			return ctx.withSession(cmd.Context(), args[0], func(sess *session.Session) error {
				id, err := resolveScene(sess.Scenes(), args[1])
				if err != nil {
					return err
				}
				current, _ := sess.Scenes().Get(id)
				if moveStart || moveEnd {
					newStart, newEnd := current.Start, current.End
					if moveStart {
						newStart = start
					}
					if moveEnd {
						newEnd = end
					}
					if current, err = sess.SetBounds(cmd.Context(), id, newStart, newEnd); err != nil {
						return err
					}
				}
				if changed {
					if current, err = sess.UpdateLabels(cmd.Context(), id, labels); err != nil {
						return err
					}
				}
				return printScene(cmd, ctx, "Updated", current)
			})
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "New start offset in runes")
	cmd.Flags().IntVar(&end, "end", 0, "New end offset in runes")
	cmd.Flags().StringVar(&description, "description", "", "Scene description")
	cmd.Flags().StringVar(&locationType, "type", "", "Location type (INT, EXT, INT/EXT)")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "Time of day")
	cmd.Flags().StringVar(&locationName, "location", "", "Location name")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

func newSceneRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <doc> <scene>",
		Aliases: []string{"remove"},
		Short:   "Delete a scene",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), args[0], func(sess *session.Session) error {
				id, err := resolveScene(sess.Scenes(), args[1])
				if err != nil {
					return err
				}
				if err := sess.DeleteScene(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted scene %s\n", id)
				return nil
			})
		},
	}
}

func newSceneClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <doc>",
		Short: "Delete every scene of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), args[0], func(sess *session.Session) error {
				removed, err := sess.ClearScenes(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d scenes\n", removed)
				return nil
			})
		},
	}
}

func printScene(cmd *cobra.Command, ctx *commandContext, verb string, sc scene.Scene) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, sc)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s scene %s [%d, %d) %s\n", verb, sc.ID, sc.Start, sc.End, sc.Description)
	return nil
}

// resolveScene matches ref against scene IDs, accepting a unique prefix.
func resolveScene(set scene.Set, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty scene id", scene.ErrNotFound)
	}
	var matches []string
	for _, sc := range set.All() {
		if sc.ID == ref {
			return sc.ID, nil
		}
		if strings.HasPrefix(sc.ID, ref) {
			matches = append(matches, sc.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", scene.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("scene id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func parseRange(startArg, endArg string) (int, int, error) {
	start, err := strconv.Atoi(strings.TrimSpace(startArg))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start offset %q", startArg)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endArg))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end offset %q", endArg)
	}
	return start, end, nil
}

func formatSeconds(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
