// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ies

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/sys/unix"

	"github.com/bpowers/ies/internal/cursor"
)

// Open decodes the IES file at path.  The file is mapped read-only for
// the duration of the decode and unmapped before Open returns.
func Open(path string, opts ...Option) (*Table, error) {
	o := newOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s): %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	stats, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("f.Stat: %w", err)
	}
	size := stats.Size()
	if size < headerSize {
		return nil, &TruncatedInputError{
			Section: "header",
			Err:     fmt.Errorf("file %s too short: %d < %d: %w", path, size, headerSize, cursor.ErrOutOfBounds),
		}
	}
	if size > math.MaxInt {
		return nil, fmt.Errorf("file %s too large to map (%d bytes)", path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap(%s): %w", path, err)
	}
	defer func() {
		if err := unix.Munmap(data); err != nil {
			o.logger.Warn("munmap failed", "path", path, "err", err)
		}
	}()
	// the decoder makes a single forward pass over the columns and rows
	if err := unix.Madvise(data, unix.MADV_SEQUENTIAL); err != nil {
		o.logger.Debug("madvise failed, continuing anyway", "path", path, "err", err)
	}

	t, err := decode(data, o)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return t, nil
}
