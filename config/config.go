/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap/zapcore"
)

const (
	EnvLogLevel        = "SSS_LOG_LEVEL"
	EnvIsolateFailures = "SSS_ISOLATE_FAILURES"
	EnvVerify          = "SSS_VERIFY"

	defaultLogLevel = zapcore.WarnLevel
)

type Config struct {
	LogLevel zapcore.Level

	// IsolateFailures reports a failing case and carries on with the next one,
	// instead of aborting the whole run.
	IsolateFailures bool

	// Verify checks every k-subset of the shares instead of only the first k.
	Verify bool
}

// EnvConfig is the raw, unvalidated configuration as found in the environment.
type EnvConfig struct {
	logLevel        string
	isolateFailures string
	verify          string
}

// FromEnv reads the configuration variables through lookup, which is usually os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) EnvConfig {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	return EnvConfig{
		logLevel:        get(EnvLogLevel),
		isolateFailures: get(EnvIsolateFailures),
		verify:          get(EnvVerify),
	}
}

func (ec EnvConfig) ToConfig() (Config, error) {
	z := Config{}

	level := defaultLogLevel
	if ec.logLevel != "" {
		var err error
		level, err = zapcore.ParseLevel(ec.logLevel)
		if err != nil {
			return z, fmt.Errorf("%s=%s is not a valid log level (%v)", EnvLogLevel, ec.logLevel, err)
		}
	}

	isolate, err := parseBool(EnvIsolateFailures, ec.isolateFailures)
	if err != nil {
		return z, err
	}

	verify, err := parseBool(EnvVerify, ec.verify)
	if err != nil {
		return z, err
	}

	return Config{
		LogLevel:        level,
		IsolateFailures: isolate,
		Verify:          verify,
	}, nil
}

func parseBool(name, value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s=%s is not a boolean", name, value)
	}
	return b, nil
}
