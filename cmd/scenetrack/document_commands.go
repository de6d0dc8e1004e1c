package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scenetrack/internal/anchor"
	"scenetrack/internal/config"
	"scenetrack/internal/session"
	"scenetrack/internal/store"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var title string
	var segment bool

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import a screenplay as a new document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			if strings.TrimSpace(title) == "" && args[0] != "-" {
				title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				if cmd.Flags().Changed("segment") {
					cfg.Scenes.AutoSegment = segment
				}
				doc, err := session.Import(cmd.Context(), cfg, st, title, text, ctx.loggerFor())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, doc)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s %q (%d runes, %d scenes)\n",
					doc.ID, doc.Title, doc.Runes, doc.SceneCount)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Document title (defaults to the file name)")
	cmd.Flags().BoolVar(&segment, "segment", false, "Split the text at scene headings (overrides scenes.auto_segment)")
	return cmd
}

func newDocsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "List imported documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				docs, err := st.ListDocuments(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					if docs == nil {
						docs = []*store.Document{}
					}
					return writeJSON(cmd, docs)
				}
				out := cmd.OutOrStdout()
				if len(docs) == 0 {
					fmt.Fprintln(out, "No documents")
					return nil
				}
				rows := make([][]string, 0, len(docs))
				for _, doc := range docs {
					rows = append(rows, []string{
						shortID(doc.ID),
						doc.Title,
						strconv.Itoa(doc.Runes),
						strconv.Itoa(doc.SceneCount),
						doc.UpdatedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(out, renderTable(tableSpec{
					headers: []string{"ID", "Title", "Runes", "Scenes", "Updated"},
					aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
					wrap:    []int{1},
				}, rows))
				return nil
			})
		},
	}
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <doc> [file|-]",
		Short: "Replace the document text and re-anchor its scenes",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 2 {
				source = args[1]
			}
			text, err := readInput(cmd, source)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return ctx.withSession(cmd.Context(), args[0], func(sess *session.Session) error {
				pass, err := sess.ApplyEdit(cmd.Context(), text)
				if err != nil {
					return err
				}
				return printPass(cmd, ctx, pass)
			})
		},
	}
}

func newResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <doc>",
		Short: "Restore the imported text and re-anchor the scenes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), args[0], func(sess *session.Session) error {
				pass, err := sess.Reset(cmd.Context())
				if err != nil {
					return err
				}
				return printPass(cmd, ctx, pass)
			})
		},
	}
}

func printPass(cmd *cobra.Command, ctx *commandContext, pass anchor.Pass) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, newPassJSON(pass))
	}
	out := cmd.OutOrStdout()
	if len(pass.Outcomes) == 0 {
		fmt.Fprintln(out, "Text unchanged")
		return nil
	}
	colorize := shouldColorize(out)
	rows := make([][]string, 0, len(pass.Outcomes))
	for _, o := range pass.Outcomes {
		rows = append(rows, []string{
			shortID(o.SceneID),
			renderStatus(o.Status, colorize),
			formatRange(o.Old),
			formatRange(o.New),
			strconv.FormatFloat(o.Similarity, 'f', 2, 64),
			o.Reason(),
		})
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		headers: []string{"Scene", "Status", "Old", "New", "Similarity", "Reason"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
		wrap:    []int{5},
	}, rows))
	fmt.Fprintln(out, passSummary(pass))
	return nil
}
