package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"omibyte.io/cm3hal/arm/cortexm"
	"omibyte.io/cm3hal/boot"
	"omibyte.io/cm3hal/targets"
)

var (
	irqsOpts = struct {
		chip string
		core bool
	}{}

	irqsCmd = &cobra.Command{
		Use:   "irqs",
		Short: "List the interrupt lines of a chip",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := targets.All().Find(irqsOpts.chip)
			if err != nil {
				return err
			}

			names := cortexm.Names()
			lines := maps.Keys(names)
			slices.Sort(lines)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "IRQn\tNAME\tENABLE REGISTER")
			for _, irq := range lines {
				if !irq.IsDevice() {
					if irqsOpts.core {
						fmt.Fprintf(w, "%d\t%s\t-\n", irq, names[irq])
					}
					continue
				}
				if !target.HasIRQ(int(irq)) {
					continue
				}
				fmt.Fprintf(w, "%d\t%s\tISER%d bit %d\n", irq, names[irq], irq>>5, irq&0x1F)
			}
			return w.Flush()
		},
	}
)

func init() {
	irqsCmd.Flags().StringVar(&irqsOpts.chip, "chip", boot.DefaultChip, "chip or series name")
	irqsCmd.Flags().BoolVar(&irqsOpts.core, "core", false, "include core exceptions")
}
