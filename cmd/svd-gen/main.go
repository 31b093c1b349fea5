package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"omibyte.io/cm3hal/cmd/svd-gen/generator"
	"omibyte.io/cm3hal/cmd/svd-gen/svd"
)

var (
	opts = struct {
		in         string
		out        string
		pkg        string
		coreImport string
	}{}

	rootCmd = &cobra.Command{
		Use:   "svd-gen",
		Short: "Generate the interrupt table of a chip from its SVD file",
		RunE: func(cmd *cobra.Command, args []string) error {
			device, err := readDevice(opts.in)
			if err != nil {
				return err
			}

			log.Printf("generating interrupt table for %s (%s, %d NVIC priority bits)", device.Name, device.CPU.Name, device.CPU.NVICPriorityBits)

			src, err := generator.IRQTable(device, generator.Options{
				Package:    opts.pkg,
				Source:     opts.in,
				CoreImport: opts.coreImport,
			})
			if err != nil {
				return err
			}

			if len(opts.out) == 0 {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			return os.WriteFile(opts.out, src, 0644)
		},
	}
)

func init() {
	rootCmd.Flags().StringVar(&opts.in, "in", "", "input SVD file")
	rootCmd.Flags().StringVar(&opts.out, "out", "", "output Go file, stdout if empty")
	rootCmd.Flags().StringVar(&opts.pkg, "package", "", "package name, the SVD series if empty")
	rootCmd.Flags().StringVar(&opts.coreImport, "core", generator.DefaultCoreImport, "import path of the package declaring Interrupt")
	rootCmd.MarkFlagRequired("in")
}

func readDevice(path string) (svd.DeviceElement, error) {
	var device svd.DeviceElement

	file, err := os.Open(path)
	if err != nil {
		return device, fmt.Errorf("file io error: %w", err)
	}
	defer file.Close()

	buf, err := io.ReadAll(file)
	if err != nil {
		return device, fmt.Errorf("io error: %w", err)
	}

	if err = xml.Unmarshal(buf, &device); err != nil {
		return device, fmt.Errorf("xml decode error: %w", err)
	}
	return device, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
