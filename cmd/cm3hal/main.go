package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	logger = log.New(os.Stderr, "cm3hal: ", 0)

	rootCmd = &cobra.Command{
		Use:           "cm3hal",
		Short:         "Bring up and inspect STM32F1 core peripherals",
		Long:          "cm3hal drives the NVIC, SCB and RCC of an STM32F1 either on a simulated register file or through /dev/mem.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func main() {
	rootCmd.AddCommand(bootCmd, irqsCmd, groupingCmd)
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}
