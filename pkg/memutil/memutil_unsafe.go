// Copyright 2024 The arm-trusted-firmware Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build linux

package memutil

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// mapSlice maps a fresh anonymous region of the given page-rounded size
// and wraps it in a byte slice.
func mapSlice(size uintptr) ([]byte, error) {
	addr, _, errno := unix.RawSyscall6(unix.SYS_MMAP,
		0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS,
		^uintptr(0) /* fd */, 0 /* offset */)
	if errno != 0 {
		return nil, errno
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(size)), nil
}

// UnmapSlice releases a mapping returned by MapAnonymous.
func UnmapSlice(slice []byte) error {
	ptr := unsafe.SliceData(slice)
	_, _, errno := unix.RawSyscall6(unix.SYS_MUNMAP, uintptr(unsafe.Pointer(ptr)), uintptr(cap(slice)), 0, 0, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}
