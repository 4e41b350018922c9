/*
 * encode.go, part of frdvis.
 *
 * Copyright 2026 The frdvis developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//encode.go implements the inline binary encoding of VTK XML DataArrays with
//the zlib compressor: base64 of a four-word UInt32 block header (number of
//blocks, uncompressed block size, uncompressed size of the last block,
//compressed size of each block), followed by base64 of the zlib stream. Header
//and payload are base64-encoded separately; everything is a single block.

package vtu

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"math"

	"github.com/klauspost/compress/zlib"
)

func encodeCompressed(raw []byte) (string, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	comp := buf.Bytes()
	header := make([]byte, 16)
	binary.LittleEndian.PutUint32(header[0:], 1)
	binary.LittleEndian.PutUint32(header[4:], uint32(len(raw)))
	binary.LittleEndian.PutUint32(header[8:], uint32(len(raw)))
	binary.LittleEndian.PutUint32(header[12:], uint32(len(comp)))
	return base64.StdEncoding.EncodeToString(header) + base64.StdEncoding.EncodeToString(comp), nil
}

func encodeFloat64s(vals []float64) (string, error) {
	raw := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(v))
	}
	return encodeCompressed(raw)
}

func encodeInt64s(vals []int64) (string, error) {
	raw := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(raw[8*i:], uint64(v))
	}
	return encodeCompressed(raw)
}

func encodeUint8s(vals []uint8) (string, error) {
	return encodeCompressed(vals)
}
