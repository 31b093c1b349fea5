package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"omibyte.io/cm3hal/arm/cortexm/stm32/stm32f1"
	"omibyte.io/cm3hal/boot"
	"omibyte.io/cm3hal/mmio"
	"omibyte.io/cm3hal/sim"
	"omibyte.io/cm3hal/targets"
)

var (
	bootOpts = struct {
		config  string
		backend string
		dryRun  bool
		trace   bool
	}{}

	bootCmd = &cobra.Command{
		Use:   "boot",
		Short: "Run the bring-up sequence of a board configuration",
		Long:  "Load a YAML board configuration, order its steps and apply them to the simulator or to real hardware.",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(bootOpts.config)
			if err != nil {
				return err
			}
			cfg, err := boot.LoadConfig(f)
			f.Close()
			if err != nil {
				return err
			}

			plan, err := boot.NewPlan(cfg)
			if err != nil {
				return err
			}

			if bootOpts.dryRun {
				for i, step := range plan.Steps {
					fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, step.Name)
				}
				return nil
			}

			bus, closeBus, err := openBackend(bootOpts.backend, plan.Target)
			if err != nil {
				return err
			}
			defer closeBus()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			opts := append(plan.RCCOptions(), stm32f1.WithLogger(logger))
			hal := boot.NewHAL(bus, plan.Target, opts...)
			if err := plan.Run(ctx, hal, logger); err != nil {
				return err
			}

			if mem, ok := bus.(*sim.Device); ok && bootOpts.trace {
				for _, access := range mem.Trace() {
					fmt.Fprintln(cmd.OutOrStdout(), access)
				}
			}
			return nil
		},
	}
)

func init() {
	bootCmd.Flags().StringVarP(&bootOpts.config, "config", "c", "board.yaml", "board configuration file")
	bootCmd.Flags().StringVarP(&bootOpts.backend, "backend", "b", "sim", "register backend (=sim, =devmem)")
	bootCmd.Flags().BoolVarP(&bootOpts.dryRun, "dry-run", "n", false, "print the ordered steps without touching registers")
	bootCmd.Flags().BoolVar(&bootOpts.trace, "trace", false, "print every register access (sim backend only)")
}

func openBackend(name string, target targets.TargetInfo) (mmio.Bus, func(), error) {
	switch name {
	case "sim":
		return sim.New(), func() {}, nil
	case "devmem":
		return openDevmem(target)
	}
	return nil, nil, fmt.Errorf("unknown backend %q", name)
}
