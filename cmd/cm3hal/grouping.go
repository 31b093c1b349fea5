package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"omibyte.io/cm3hal/arm/cortexm"
)

var (
	groupingOpts = struct {
		bits    uint8
		group   int
		preempt uint8
		sub     uint8
	}{}

	groupingCmd = &cobra.Command{
		Use:   "grouping",
		Short: "Show priority grouping encodings or encode a priority",
		Long:  "Without --group, list every PRIGROUP encoding. With --group, encode --preempt and --sub into the value passed to SetPriority.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if groupingOpts.bits == 0 || groupingOpts.bits > 8 {
				return fmt.Errorf("--bits %d: want 1 to 8", groupingOpts.bits)
			}
			out := cmd.OutOrStdout()
			if groupingOpts.group < 0 {
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "PRIGROUP\tPRE-EMPTION BITS\tSUB BITS")
				for _, g := range cortexm.PriorityGroups {
					preempt, sub := g.Split(groupingOpts.bits)
					fmt.Fprintf(w, "%d\t%d\t%d\n", uint32(g), preempt, sub)
				}
				return w.Flush()
			}

			g, ok := cortexm.PriorityGroupFor(uint8(groupingOpts.group))
			if !ok {
				return fmt.Errorf("--group %d: want 0 to %d pre-emption bits", groupingOpts.group, cortexm.DefaultPriorityBits)
			}
			p := cortexm.EncodePriority(g, groupingOpts.bits, groupingOpts.preempt, groupingOpts.sub)
			preempt, sub := cortexm.DecodePriority(g, groupingOpts.bits, p)
			fmt.Fprintf(out, "%s: priority %d (byte 0x%02X), pre-emption %d, sub %d\n", g, p, p<<(8-groupingOpts.bits), preempt, sub)
			return nil
		},
	}
)

func init() {
	groupingCmd.Flags().Uint8Var(&groupingOpts.bits, "bits", cortexm.DefaultPriorityBits, "implemented priority bits")
	groupingCmd.Flags().IntVar(&groupingOpts.group, "group", -1, "pre-emption bits of the grouping to encode with")
	groupingCmd.Flags().Uint8Var(&groupingOpts.preempt, "preempt", 0, "pre-emption priority")
	groupingCmd.Flags().Uint8Var(&groupingOpts.sub, "sub", 0, "sub-priority")
}
