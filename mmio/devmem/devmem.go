//go:build linux

// Package devmem maps physical register windows through /dev/mem so the HAL
// can drive real silicon from a Linux host (for example the Cortex-M
// companion core of a heterogeneous SoC).
package devmem

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

var (
	ErrUnmappedAddress = errors.New("address is not inside a mapped window")
	ErrInvalidWindow   = errors.New("invalid window")
)

const DefaultPath = "/dev/mem"

// Window is a physical address range to map.
type Window struct {
	Base uintptr
	Size int
}

type mapping struct {
	base uintptr // first physical address reachable through mem
	mem  []byte
}

// Bus is an mmio.Bus over mmapped physical memory.
type Bus struct {
	fd       int
	mappings []mapping
}

// Open maps each window from /dev/mem.
func Open(windows ...Window) (*Bus, error) {
	return OpenFile(DefaultPath, windows...)
}

// OpenFile maps each window from the given memory device file.
func OpenFile(path string, windows ...Window) (*Bus, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	b := &Bus{fd: fd}
	pageSize := uintptr(os.Getpagesize())
	for _, w := range windows {
		if w.Size <= 0 {
			b.Close()
			return nil, fmt.Errorf("%w: base 0x%08X size %d", ErrInvalidWindow, w.Base, w.Size)
		}

		// mmap offsets must be page aligned
		start := w.Base &^ (pageSize - 1)
		length := int(w.Base-start) + w.Size
		mem, err := unix.Mmap(fd, int64(start), length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to map 0x%08X-0x%08X: %w", w.Base, w.Base+uintptr(w.Size), err)
		}
		b.mappings = append(b.mappings, mapping{base: start, mem: mem})
	}
	return b, nil
}

// Close unmaps every window and closes the memory device.
func (b *Bus) Close() error {
	var errs []error
	for _, m := range b.mappings {
		if err := unix.Munmap(m.mem); err != nil {
			errs = append(errs, err)
		}
	}
	b.mappings = nil
	if b.fd >= 0 {
		if err := unix.Close(b.fd); err != nil {
			errs = append(errs, err)
		}
		b.fd = -1
	}
	return errors.Join(errs...)
}

func (b *Bus) word(addr uintptr) (*uint32, error) {
	addr &^= 3
	for _, m := range b.mappings {
		if addr >= m.base && addr+4 <= m.base+uintptr(len(m.mem)) {
			return (*uint32)(unsafe.Pointer(&m.mem[addr-m.base])), nil
		}
	}
	return nil, fmt.Errorf("%w: 0x%08X", ErrUnmappedAddress, addr)
}

func (b *Bus) Load32(addr uintptr) uint32 {
	p, err := b.word(addr)
	if err != nil {
		log.Println("devmem:", err)
		return 0
	}
	return atomic.LoadUint32(p)
}

func (b *Bus) Store32(addr uintptr, value uint32) {
	p, err := b.word(addr)
	if err != nil {
		log.Println("devmem:", err)
		return
	}
	atomic.StoreUint32(p, value)
}

func (b *Bus) Load8(addr uintptr) uint8 {
	return uint8(b.Load32(addr) >> ((addr & 3) * 8))
}

// Store8 is an aligned word read-modify-write. It is only correct for
// registers whose other byte lanes read back what was last written, which
// holds for the NVIC priority array and the SHPR registers.
func (b *Bus) Store8(addr uintptr, value uint8) {
	p, err := b.word(addr)
	if err != nil {
		log.Println("devmem:", err)
		return
	}
	shift := (addr & 3) * 8
	v := atomic.LoadUint32(p)
	v = (v &^ (0xFF << shift)) | uint32(value)<<shift
	atomic.StoreUint32(p, v)
}
