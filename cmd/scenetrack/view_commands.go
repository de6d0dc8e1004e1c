package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scenetrack/internal/decoration"
	"scenetrack/internal/heading"
	"scenetrack/internal/scene"
	"scenetrack/internal/session"
	"scenetrack/internal/textutil"
)

func newOutlineCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "outline <doc>",
		Short: "Show the scene outline with the line each scene starts on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), args[0], func(sess *session.Session) error {
				entries := sess.Outline()
				if ctx.jsonOutput() {
					if entries == nil {
						entries = []scene.OutlineEntry{}
					}
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No scenes")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						strconv.Itoa(e.Number),
						strconv.Itoa(e.Line + 1),
						e.TypePrefix,
						e.TimePrefix,
						e.Scene.Description,
					})
				}
				fmt.Fprintln(out, renderTable(tableSpec{
					headers: []string{"#", "Line", "Type", "Time", "Description"},
					aligns:  []columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft},
					wrap:    []int{4},
				}, rows))
				return nil
			})
		},
	}
}

type lineDecorations struct {
	Line        int                     `json:"line"`
	Decorations []decoration.Decoration `json:"decorations"`
}

func newDecorateCommand(ctx *commandContext) *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "decorate <doc>",
		Short: "Print the highlight and format decorations per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), args[0], func(sess *session.Session) error {
				lines := sess.Decorations()
				if ctx.jsonOutput() {
					payload := make([]lineDecorations, 0, len(lines))
					for i, decos := range lines {
						if len(decos) == 0 && !showAll {
							continue
						}
						if decos == nil {
							decos = []decoration.Decoration{}
						}
						payload = append(payload, lineDecorations{Line: i, Decorations: decos})
					}
					return writeJSON(cmd, payload)
				}
				var rows [][]string
				for i, decos := range lines {
					if len(decos) == 0 && showAll {
						rows = append(rows, []string{strconv.Itoa(i + 1), "", "", "", "", ""})
					}
					for _, d := range decos {
						value := d.Attr.Value
						if d.Attr.Kind == decoration.KindHighlight {
							value = d.Attr.Color
						}
						rows = append(rows, []string{
							strconv.Itoa(i + 1),
							strconv.Itoa(d.Start),
							strconv.Itoa(d.End),
							string(d.Attr.Kind),
							value,
							shortID(d.SceneID),
						})
					}
				}
				out := cmd.OutOrStdout()
				if len(rows) == 0 {
					fmt.Fprintln(out, "No decorations")
					return nil
				}
				fmt.Fprintln(out, renderTable(tableSpec{
					headers: []string{"Line", "Start", "End", "Kind", "Value", "Scene"},
					aligns:  []columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft, alignLeft},
				}, rows))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "Include lines without decorations")
	return cmd
}

func newFormatCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "format <doc> <family> <start> <end> [value]",
		Short: "Set or clear a format mark (bold, italic, alignment, font_size)",
		Long: "Set a format mark over a rune range. Bold and italic default to true; pass\n" +
			"false or an empty value to clear. Alignment takes left, center, right or\n" +
			"justify; font_size takes a positive size in pixels.",
		Args: cobra.RangeArgs(4, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, err := decoration.ParseFamily(args[1])
			if err != nil {
				return err
			}
			start, end, err := parseRange(args[2], args[3])
			if err != nil {
				return err
			}
			value := ""
			if len(args) == 5 {
				value = args[4]
			} else if family == decoration.FamilyBold || family == decoration.FamilyItalic {
				value = "true"
			}
			return ctx.withSession(cmd.Context(), args[0], func(sess *session.Session) error {
				if err := sess.ApplyFormat(cmd.Context(), family, start, end, value); err != nil {
					return err
				}
				action := "Set"
				if strings.TrimSpace(value) == "" || strings.EqualFold(strings.TrimSpace(value), "false") {
					action = "Cleared"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s on [%d, %d)\n", action, family, start, end)
				return nil
			})
		},
	}
}

type headingJSON struct {
	Description  string `json:"description"`
	LocationType string `json:"location_type"`
	TimeOfDay    string `json:"time_of_day,omitempty"`
	LocationName string `json:"location_name,omitempty"`
	Exterior     bool   `json:"exterior"`
	Day          bool   `json:"day"`
	Matched      bool   `json:"matched"`
}

func newHeadingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "heading [text|-]",
		Short:       "Synthesize the scene heading for a piece of text",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) == 1 && args[0] != "-" {
				text = args[0]
			} else {
				input, err := readInput(cmd, "-")
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				text = input
			}
			h := heading.Synthesize(text)
			if ctx.jsonOutput() {
				return writeJSON(cmd, headingJSON(h))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Description:  %s\n", h.Description)
			fmt.Fprintf(out, "Type:         %s\n", h.LocationType)
			fmt.Fprintf(out, "Time:         %s\n", h.TimeOfDay)
			fmt.Fprintf(out, "Location:     %s\n", h.LocationName)
			fmt.Fprintf(out, "Exterior:     %s\n", yesNo(h.Exterior))
			fmt.Fprintf(out, "Day:          %s\n", yesNo(h.Day))
			fmt.Fprintf(out, "First line:   %s\n", textutil.Truncate(textutil.FirstLine(text), 60, "..."))
			return nil
		},
	}
}
