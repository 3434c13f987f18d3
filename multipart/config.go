/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package multipart is a streaming multipart/form-data parser shared by the
// in-memory and file-backed readers: both drive the same boundary-scanning
// state machine over a small windowed-buffer abstraction.
package multipart

// Config tunes a single parse pass: the boundary token, how much of a file
// part is kept in memory before spilling to a temp file, and the hard caps
// that keep a malicious upload from exhausting memory or looping forever.
type Config struct {
	Boundary string `mapstructure:"-" json:"-" validate:"-"`

	// ChunkSize is the read-ahead window the scanner refills the buffer
	// with when looking for the next boundary marker.
	ChunkSize int `mapstructure:"chunk_size" json:"chunk_size" validate:"gt=0"`

	// MaxFileSizeInMemory is the per-file threshold above which a file
	// part spills to a temp file.
	MaxFileSizeInMemory int64 `mapstructure:"max_file_size_in_memory" json:"max_file_size_in_memory" validate:"gt=0"`

	// MaxFilesSizeInMemory is the cumulative threshold across every file
	// part in the request; once the running in-memory total for files
	// would exceed it, the current file spills even if it is still under
	// its own per-file threshold. Defaults to 10 MiB (see DESIGN.md for
	// why that value was picked over the reference implementation's
	// second, differently-sized default).
	MaxFilesSizeInMemory int64 `mapstructure:"max_files_size_in_memory" json:"max_files_size_in_memory" validate:"gt=0"`

	// MaxPartHeaderBytes bounds a single part's header block.
	MaxPartHeaderBytes int `mapstructure:"max_part_header_bytes" json:"max_part_header_bytes" validate:"gt=0"`

	// MaxPartsCount bounds how many parts one request may contain.
	MaxPartsCount int `mapstructure:"max_parts_count" json:"max_parts_count" validate:"gt=0"`

	// TempDir is where spilled file parts are created. Empty means the
	// OS default temp directory.
	TempDir string `mapstructure:"temp_dir" json:"temp_dir" validate:"-"`
}

const (
	defaultChunkSize            = 64 << 10
	defaultMaxFileSizeInMemory  = 5 << 20
	defaultMaxFilesSizeInMemory = 10 << 20
	defaultMaxPartHeaderBytes   = 8 << 10
	defaultMaxPartsCount        = 1000
)

// Default returns the parser's out-of-the-box tuning.
func Default() Config {
	return Config{
		ChunkSize:            defaultChunkSize,
		MaxFileSizeInMemory:  defaultMaxFileSizeInMemory,
		MaxFilesSizeInMemory: defaultMaxFilesSizeInMemory,
		MaxPartHeaderBytes:   defaultMaxPartHeaderBytes,
		MaxPartsCount:        defaultMaxPartsCount,
	}
}

// WithBoundary returns a copy of cfg scoped to a single request's boundary
// token, as extracted from its Content-Type header.
func (c Config) WithBoundary(boundary string) Config {
	c.Boundary = boundary
	return c
}
