// Package generator turns the interrupt list of an SVD description into a
// Go interrupt table for the HAL.
package generator

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/exp/slices"
	"golang.org/x/tools/imports"

	"omibyte.io/cm3hal/cmd/svd-gen/svd"
)

const DefaultCoreImport = "omibyte.io/cm3hal/arm/cortexm"

type Options struct {
	// Package is the name of the generated package.
	Package string
	// Source names the SVD file in the generated header.
	Source string
	// CoreImport is the import path of the package declaring Interrupt.
	CoreImport string
}

// Interrupts collects the interrupts of every peripheral ordered by line.
// SVD files repeat shared lines on each peripheral using them, only the
// first occurrence of a line is kept.
func Interrupts(device svd.DeviceElement) []svd.InterruptElement {
	var interrupts []svd.InterruptElement
	seen := map[svd.Integer]bool{}
	for _, periph := range device.Peripherals.Elements {
		for _, irq := range periph.Interrupts {
			if seen[irq.Value] {
				continue
			}
			seen[irq.Value] = true
			interrupts = append(interrupts, irq)
		}
	}

	slices.SortStableFunc(interrupts, func(a, b svd.InterruptElement) bool {
		return a.Value < b.Value
	})
	return interrupts
}

// IRQTable returns the formatted source of the interrupt table.
func IRQTable(device svd.DeviceElement, opts Options) ([]byte, error) {
	if len(opts.Package) == 0 {
		opts.Package = strings.ToLower(device.Series)
	}
	if len(opts.CoreImport) == 0 {
		opts.CoreImport = DefaultCoreImport
	}
	core := filepath.Base(opts.CoreImport)

	interrupts := Interrupts(device)
	if len(interrupts) == 0 {
		return nil, fmt.Errorf("%s declares no interrupts", device.Name)
	}

	var w strings.Builder
	fmt.Fprintf(&w, "// Code generated by svd-gen from %s. DO NOT EDIT.\n\n", filepath.Base(opts.Source))
	fmt.Fprintf(&w, "package %s\n\n", opts.Package)
	fmt.Fprintf(&w, "import %q\n\n", opts.CoreImport)

	fmt.Fprintln(&w, "// Device interrupt lines.")
	fmt.Fprintln(&w, "const (")
	for _, irq := range interrupts {
		fmt.Fprintf(&w, "IRQ_%s %s.Interrupt = %d", identifier(irq.Name), core, irq.Value)
		if desc := description(irq.Description); len(desc) > 0 {
			fmt.Fprintf(&w, " // %s", desc)
		}
		fmt.Fprintln(&w)
	}
	fmt.Fprintf(&w, "\nIRQ_max = %d\n", interrupts[len(interrupts)-1].Value)
	fmt.Fprintln(&w, ")")
	fmt.Fprintln(&w)

	fmt.Fprintf(&w, "var interruptNames = map[%s.Interrupt]string{\n", core)
	for _, irq := range interrupts {
		fmt.Fprintf(&w, "IRQ_%s: %q,\n", identifier(irq.Name), irq.Name)
	}
	fmt.Fprintln(&w, "}")
	fmt.Fprintln(&w)

	fmt.Fprintln(&w, "func init() {")
	fmt.Fprintf(&w, "%s.RegisterNames(interruptNames)\n", core)
	fmt.Fprintln(&w, "}")

	src, err := imports.Process("irq.go", []byte(w.String()), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error formatting interrupt table: %w", err)
	}
	return src, nil
}

func identifier(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, name)
}

// description folds the multi-line descriptions SVD files carry into one line.
func description(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
