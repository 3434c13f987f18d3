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
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	liberr "github.com/cluedesc/clueapi-sub000/errors"
)

// Result is everything a successful parse produced: form fields keyed by
// name, and uploaded files keyed by name. A part with an empty name is
// silently dropped, per the header-parsing rule.
type Result struct {
	Fields map[string]string
	Files  map[string]*File
}

// ParseBytes parses an in-memory multipart/form-data body.
func ParseBytes(body []byte, cfg Config) (Result, liberr.Error) {
	w := newWindow(body, func([]byte) ([]byte, error) { return nil, io.EOF })

	return parse(w, cfg)
}

// ParseFile parses a multipart/form-data body streamed from disk (the path
// a streamed request body was written to). The file is read in cfg-sized
// chunks through the same windowed scanner the in-memory parser uses.
func ParseFile(path string, cfg Config) (Result, liberr.Error) {
	f, err := os.Open(path)

	if err != nil {
		return Result{}, ErrUnexpectedEOF.Error(err)
	}

	defer f.Close()

	chunkSize := cfg.ChunkSize

	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	w := newWindow(nil, func(existing []byte) ([]byte, error) {
		chunk := make([]byte, chunkSize)

		n, rerr := f.Read(chunk)

		if n > 0 {
			existing = append(existing, chunk[:n]...)
		}

		if rerr != nil {
			return existing, rerr
		}

		return existing, nil
	})

	return parse(w, cfg)
}

func parse(w *window, cfg Config) (Result, liberr.Error) {
	res := Result{Fields: map[string]string{}, Files: map[string]*File{}}

	dashBoundary := []byte("--" + cfg.Boundary)
	partMarker := []byte("\r\n--" + cfg.Boundary)

	headerCap := cfg.MaxPartHeaderBytes

	if headerCap <= 0 {
		headerCap = defaultMaxPartHeaderBytes
	}

	maxParts := cfg.MaxPartsCount

	if maxParts <= 0 {
		maxParts = defaultMaxPartsCount
	}

	if err := w.ensure(len(dashBoundary)); err != nil {
		return res, ErrMissingDashBoundary.Error(err)
	}

	if !bytes.HasPrefix(w.avail(), dashBoundary) {
		return res, ErrMissingDashBoundary.Error(nil)
	}

	w.consume(len(dashBoundary))

	var cumulativeFilesMem int64

	for i := 0; i < maxParts; i++ {
		if err := w.ensure(2); err != nil {
			return res, ErrUnexpectedEOF.Error(err)
		}

		if bytes.HasPrefix(w.avail(), []byte("--")) {
			return res, nil
		}

		if !bytes.HasPrefix(w.avail(), []byte("\r\n")) {
			return res, ErrMalformedBoundaryLine.Error(nil)
		}

		w.consume(2)

		sepIdx, err := w.indexMarker([]byte("\r\n\r\n"), headerCap)

		if err != nil {
			if err == errScanBudgetExceeded {
				return res, ErrHeaderTooLarge.Error(nil)
			}

			return res, ErrUnexpectedEOF.Error(err)
		}

		headerBlock := string(w.avail()[:sepIdx])

		w.consume(sepIdx + 4)

		ph, herr := parsePartHeaders(headerBlock)

		if herr != nil {
			return res, herr
		}

		acc := newAccumulator(ph, cfg, &cumulativeFilesMem)

		if err := scanPartBody(w, partMarker, acc); err != nil {
			_ = acc.abort()
			return res, ErrUnexpectedEOF.Error(err)
		}

		if ph.name != "" {
			if ph.filename != "" {
				file, ferr := acc.finalizeFile()

				if ferr != nil {
					return res, ErrSpillFile.Error(ferr)
				}

				res.Files[ph.name] = file
			} else {
				res.Fields[ph.name] = acc.finalizeField()
			}
		} else {
			_ = acc.abort()
		}
	}

	return res, ErrTooManyParts.Error(nil)
}

// scanPartBody consumes bytes from w until marker is found, feeding
// everything before it to acc. It always keeps the last len(marker)-1
// bytes of the window unconsumed so a marker straddling two refills is
// never missed.
func scanPartBody(w *window, marker []byte, acc *accumulator) error {
	safeMargin := len(marker) - 1

	for {
		avail := w.avail()

		if idx := bytes.Index(avail, marker); idx >= 0 {
			if idx > 0 {
				if err := acc.append(avail[:idx]); err != nil {
					return err
				}
			}

			w.consume(idx + len(marker))

			return nil
		}

		if len(avail) > safeMargin {
			emitLen := len(avail) - safeMargin

			if err := acc.append(avail[:emitLen]); err != nil {
				return err
			}

			w.consume(emitLen)
		}

		if err := w.grow(); err != nil {
			return err
		}
	}
}

// accumulator collects one part's body, either as a plain field buffer or
// as file storage that may spill from memory to disk mid-stream.
type accumulator struct {
	isFile bool

	fieldBuf bytes.Buffer

	memBuf   []byte
	spilled  bool
	tempFile *os.File
	tempPath string

	filename    string
	contentType string

	perFileThreshold   int64
	cumulativeThresh   int64
	cumulativeFilesMem *int64
	tempDir            string
}

func newAccumulator(ph partHeaders, cfg Config, cumulative *int64) *accumulator {
	perFile := cfg.MaxFileSizeInMemory

	if perFile <= 0 {
		perFile = defaultMaxFileSizeInMemory
	}

	cumThresh := cfg.MaxFilesSizeInMemory

	if cumThresh <= 0 {
		cumThresh = defaultMaxFilesSizeInMemory
	}

	return &accumulator{
		isFile:             ph.filename != "",
		filename:           ph.filename,
		contentType:        ph.contentType,
		perFileThreshold:   perFile,
		cumulativeThresh:   cumThresh,
		cumulativeFilesMem: cumulative,
		tempDir:            cfg.TempDir,
	}
}

func (a *accumulator) append(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	if !a.isFile {
		a.fieldBuf.Write(data)
		return nil
	}

	if a.spilled {
		_, err := a.tempFile.Write(data)
		return err
	}

	wouldExceedPerFile := int64(len(a.memBuf)+len(data)) > a.perFileThreshold
	wouldExceedCumulative := *a.cumulativeFilesMem+int64(len(data)) > a.cumulativeThresh

	if wouldExceedPerFile || wouldExceedCumulative {
		return a.spill(data)
	}

	a.memBuf = append(a.memBuf, data...)
	*a.cumulativeFilesMem += int64(len(data))

	return nil
}

func (a *accumulator) spill(data []byte) error {
	name := filepath.Join(a.tempDir, "clueapi-upload-"+uuid.NewString())

	f, err := os.Create(name)

	if err != nil {
		return err
	}

	if len(a.memBuf) > 0 {
		if _, err := f.Write(a.memBuf); err != nil {
			f.Close()
			os.Remove(name)
			return err
		}
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return err
	}

	a.tempFile = f
	a.tempPath = name
	a.spilled = true
	a.memBuf = nil

	return nil
}

func (a *accumulator) finalizeField() string {
	return a.fieldBuf.String()
}

func (a *accumulator) finalizeFile() (*File, error) {
	name := SanitizeFilename(a.filename)

	if a.spilled {
		if err := a.tempFile.Close(); err != nil {
			return nil, err
		}

		return newDiskFile(name, a.contentType, a.tempPath), nil
	}

	return newMemoryFile(name, a.contentType, a.memBuf), nil
}

func (a *accumulator) abort() error {
	if a.spilled {
		a.tempFile.Close()
		return os.Remove(a.tempPath)
	}

	return nil
}
