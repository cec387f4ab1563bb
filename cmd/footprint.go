package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lbm-sim/lbm-info/sim"
	"github.com/lbm-sim/lbm-info/sim/render"
)

var (
	footprintFlags   descriptorFlags
	footprintFormat  string // table or yaml
	footprintNoColor bool
)

// footprintCmd prints the memory a configured lattice will need, without running anything
var footprintCmd = &cobra.Command{
	Use:   "footprint",
	Short: "Estimate host and device memory for a lattice configuration",
	Run: func(cmd *cobra.Command, args []string) {
		d, err := footprintFlags.resolve(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := writeFootprint(cmd.OutOrStdout(), d, footprintFormat, footprintNoColor); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// footprintReport is the machine-readable form of the footprint command.
type footprintReport struct {
	Lattice   string        `yaml:"lattice"`
	Type      string        `yaml:"type"`
	Cells     uint64        `yaml:"cells"`
	Footprint sim.Footprint `yaml:"footprint"`
}

func writeFootprint(w io.Writer, d sim.Descriptor, format string, noColor bool) error {
	fp := sim.ComputeFootprint(d.Features, d.Lattice)
	switch format {
	case "table", "":
		r := render.New(render.Options{Writer: w, NoColor: noColor})
		r.Initialize(d, fp, d.TargetSteps())
		return nil
	case "yaml":
		report := footprintReport{
			Lattice:   d.Lattice.Label(),
			Type:      d.Features.TypeLabel(),
			Cells:     d.Lattice.N(),
			Footprint: fp,
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode footprint: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want table or yaml)", format)
	}
}

func init() {
	addDescriptorFlags(footprintCmd, &footprintFlags)
	footprintCmd.Flags().StringVar(&footprintFormat, "format", "table", "Output format (table, yaml)")
	footprintCmd.Flags().BoolVar(&footprintNoColor, "no-color", false, "Disable colored output")
}
