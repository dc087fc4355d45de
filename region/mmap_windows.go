//go:build windows

package region

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func osMapAnon(size int) ([]byte, func([]byte) error, error) {
	// VirtualAlloc with MEM_COMMIT uses demand paging: pages are backed
	// by physical memory only when first touched, matching Unix mmap
	// behavior and avoiding upfront paging-file commitment.
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, nil, err
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)

	return data, func([]byte) error {
		// MEM_RELEASE frees the entire reservation at once.
		return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
	}, nil
}
