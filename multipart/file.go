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

package multipart

import (
	"os"
	"runtime"
)

// File is one parsed file part. Storage is exclusive: either Bytes holds
// the whole part in memory, or TempPath names a file on disk that owns the
// content. Close is idempotent; it is also wired into a finalizer so a
// dropped File still cleans up its temp file if a caller forgets.
type File struct {
	Filename    string
	ContentType string

	Bytes    []byte
	TempPath string

	closed bool
}

func newMemoryFile(filename, contentType string, data []byte) *File {
	return &File{Filename: filename, ContentType: contentType, Bytes: data}
}

func newDiskFile(filename, contentType, path string) *File {
	f := &File{Filename: filename, ContentType: contentType, TempPath: path}
	runtime.SetFinalizer(f, func(f *File) { _ = f.Close() })
	return f
}

// IsSpilled reports whether this file's content lives on disk rather than
// in memory.
func (f *File) IsSpilled() bool {
	return f.TempPath != ""
}

// Size returns the part's content length regardless of storage location.
func (f *File) Size() (int64, error) {
	if f.TempPath == "" {
		return int64(len(f.Bytes)), nil
	}

	st, err := os.Stat(f.TempPath)

	if err != nil {
		return 0, err
	}

	return st.Size(), nil
}

// Close releases the file's storage. For a disk-backed file this deletes
// the temp path; for an in-memory file it is a no-op beyond marking the
// file closed.
func (f *File) Close() error {
	if f == nil || f.closed {
		return nil
	}

	f.closed = true

	if f.TempPath == "" {
		return nil
	}

	runtime.SetFinalizer(f, nil)

	return os.Remove(f.TempPath)
}
