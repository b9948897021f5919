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

// Package memutil provides page-aligned anonymous memory mappings.
// Translation tables handed to hardware must sit in page-aligned storage;
// mmap gives that alignment by construction, where Go heap allocations do
// not.
package memutil

import (
	"golang.org/x/sys/unix"
)

// MapAnonymous returns a new private anonymous mapping of the given size,
// rounded up to the host page size. The mapping is readable and writable.
func MapAnonymous(size uintptr) ([]byte, error) {
	pageSize := uintptr(unix.Getpagesize())
	size = (size + pageSize - 1) &^ (pageSize - 1)
	return mapSlice(size)
}
