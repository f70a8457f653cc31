// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package psbt

import "io"

// offsetReader wraps an io.Reader and tracks the total number of bytes
// successfully read through it, so that parse errors can report the byte
// offset at which they were detected, per the codec's error contract.
type offsetReader struct {
	r      io.Reader
	offset int64
}

func newOffsetReader(r io.Reader) *offsetReader {
	return &offsetReader{r: r}
}

func (o *offsetReader) Read(p []byte) (int, error) {
	n, err := o.r.Read(p)
	o.offset += int64(n)
	return n, err
}
