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

// Package config aggregates every tunable this tree exposes into one root
// Config, validated with github.com/go-playground/validator/v10 and
// decodable from a generic map via github.com/mitchellh/mapstructure, the
// same pair the reference httpserver config builds on.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	liberr "github.com/cluedesc/clueapi-sub000/errors"
	"github.com/cluedesc/clueapi-sub000/multipart"
)

const pkgMinCode = liberr.MinPkgConfig

const (
	ErrValidate liberr.CodeError = pkgMinCode + iota + 1
	ErrDecode
)

func init() {
	liberr.RegisterIdFctMessage(pkgMinCode, func(code liberr.CodeError) string {
		switch code {
		case ErrValidate:
			return "configuration failed validation"
		case ErrDecode:
			return "configuration could not be decoded from the supplied map"
		default:
			return ""
		}
	})
}

// SocketConfig holds the Linux socket-level tuning the accept package wires
// into every listener it opens.
type SocketConfig struct {
	ReusePort      bool `mapstructure:"reuse_port" json:"reuse_port" validate:"-"`
	FastOpen       bool `mapstructure:"fast_open" json:"fast_open" validate:"-"`
	NoDelay        bool `mapstructure:"no_delay" json:"no_delay" validate:"-"`
	QuickAck       bool `mapstructure:"quick_ack" json:"quick_ack" validate:"-"`
	ReadBufferSize int  `mapstructure:"read_buffer_size" json:"read_buffer_size" validate:"gte=0"`
	SendBufferSize int  `mapstructure:"send_buffer_size" json:"send_buffer_size" validate:"gte=0"`
	KeepAlive      time.Duration `mapstructure:"keep_alive" json:"keep_alive" validate:"gte=0"`
}

// HTTPConfig bounds how much of a connection's time and memory a single
// request may consume before the reader/writer give up on it.
type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" json:"read_header_timeout" validate:"gt=0"`
	ReadBodyTimeout   time.Duration `mapstructure:"read_body_timeout" json:"read_body_timeout" validate:"gt=0"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" json:"write_timeout" validate:"gt=0"`
	MaxHeaderBytes    int           `mapstructure:"max_header_bytes" json:"max_header_bytes" validate:"gt=0"`
	MaxBodyBytes      int64         `mapstructure:"max_body_bytes" json:"max_body_bytes" validate:"gt=0"`
	KeepAliveTimeout  time.Duration `mapstructure:"keep_alive_timeout" json:"keep_alive_timeout" validate:"gte=0"`
}

// ServerConfig is the top-level pool/worker tuning, independent of any one
// listener.
type ServerConfig struct {
	Name            string        `mapstructure:"name" json:"name" validate:"required"`
	HostPort        string        `mapstructure:"host_port" json:"host_port" validate:"required,hostname_port"`
	Workers         int           `mapstructure:"workers" json:"workers" validate:"gt=0"`
	MaxConnections  int           `mapstructure:"max_connections" json:"max_connections" validate:"gt=0"`
	TempDir         string        `mapstructure:"temp_dir" json:"temp_dir" validate:"-"`
	ResponseClass   string        `mapstructure:"response_class" json:"response_class" validate:"omitempty,oneof=plain json"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout" validate:"gte=0"`
	PinWorkers      bool          `mapstructure:"pin_workers" json:"pin_workers" validate:"-"`
}

// Config is the root object this tree's application controller is built
// from. Every sub-config validates independently so a single malformed
// section reports itself instead of hiding behind a single all-or-nothing
// error.
type Config struct {
	Server    ServerConfig      `mapstructure:"server" json:"server"`
	HTTP      HTTPConfig        `mapstructure:"http" json:"http"`
	Socket    SocketConfig      `mapstructure:"socket" json:"socket"`
	Multipart multipart.Config  `mapstructure:"multipart" json:"multipart"`
}

// Default returns a Config populated with the same conservative defaults
// the application controller falls back to when sanitizing user input.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Name:            "clueapi",
			HostPort:        "127.0.0.1:8080",
			Workers:         4,
			MaxConnections:  1024,
			TempDir:         "",
			ShutdownTimeout: 10 * time.Second,
		},
		HTTP: HTTPConfig{
			ReadHeaderTimeout: 5 * time.Second,
			ReadBodyTimeout:   30 * time.Second,
			WriteTimeout:      30 * time.Second,
			MaxHeaderBytes:    1 << 20,
			MaxBodyBytes:      32 << 20,
			KeepAliveTimeout:  75 * time.Second,
		},
		Socket: SocketConfig{
			ReusePort:      true,
			NoDelay:        true,
			ReadBufferSize: 0,
			SendBufferSize: 0,
			KeepAlive:      15 * time.Second,
		},
		Multipart: multipart.Default(),
	}
}

// Validate runs struct-tag validation over every sub-config, accumulating
// every failing field into a single Error chain instead of stopping at the
// first offender.
func (c Config) Validate() liberr.Error {
	val := validator.New()

	out := ErrValidate.Error(nil)

	for _, sub := range []interface{}{c.Server, c.HTTP, c.Socket, c.Multipart} {
		if err := val.Struct(sub); err != nil {
			if ive, ok := err.(*validator.InvalidValidationError); ok {
				out.Add(ive)
				continue
			}

			for _, fe := range err.(validator.ValidationErrors) {
				out.Add(fmt.Errorf("field %q fails constraint %q", fe.Namespace(), fe.ActualTag()))
			}
		}
	}

	if !out.HasParent() {
		return nil
	}

	return out
}

// FromMap decodes an arbitrary map (as produced by a YAML/JSON/env loader)
// into a Config via mapstructure, then validates the result.
func FromMap(m map[string]interface{}) (Config, liberr.Error) {
	cfg := Default()

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})

	if err != nil {
		return cfg, ErrDecode.Error(err)
	}

	if err := dec.Decode(m); err != nil {
		return cfg, ErrDecode.Error(err)
	}

	if verr := cfg.Validate(); verr != nil {
		return cfg, verr
	}

	return cfg, nil
}
