package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"scenetrack/internal/anchor"
	"scenetrack/internal/scene"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type outcomeJSON struct {
	anchor.Outcome
	Reason string `json:"reason,omitempty"`
}

type passJSON struct {
	Outcomes []outcomeJSON        `json:"outcomes"`
	Updates  []scene.OffsetUpdate `json:"updates"`
}

func newPassJSON(pass anchor.Pass) passJSON {
	out := passJSON{
		Outcomes: make([]outcomeJSON, 0, len(pass.Outcomes)),
		Updates:  pass.Updates,
	}
	if out.Updates == nil {
		out.Updates = []scene.OffsetUpdate{}
	}
	for _, o := range pass.Outcomes {
		out.Outcomes = append(out.Outcomes, outcomeJSON{Outcome: o, Reason: o.Reason()})
	}
	return out
}
