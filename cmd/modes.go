package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/domain"
)

var modesJSON bool

// modeInfo is the JSON shape of one cycle.
type modeInfo struct {
	Mode    string `json:"mode"`
	Label   string `json:"label"`
	Seconds int    `json:"seconds"`
	Display string `json:"display"`
}

// modesCmd lists the cycles and their durations
var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the cycles and their durations",
	RunE: func(cmd *cobra.Command, args []string) error {
		var infos []modeInfo
		for _, m := range domain.Modes() {
			seconds, err := domain.DurationFor(m)
			if err != nil {
				return err
			}
			infos = append(infos, modeInfo{
				Mode:    string(m),
				Label:   m.Label(),
				Seconds: seconds,
				Display: domain.FormatTime(seconds),
			})
		}

		out := cmd.OutOrStdout()
		if modesJSON {
			data, err := json.MarshalIndent(infos, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal modes: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		for _, info := range infos {
			fmt.Fprintf(out, "  %-12s %-12s %s\n", info.Mode, info.Label, info.Display)
		}
		return nil
	},
}

func init() {
	modesCmd.Flags().BoolVar(&modesJSON, "json", false, "Output as JSON")
}
