/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/IBM/sss-recovery/config"
	"github.com/IBM/sss-recovery/recovery"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = "Usage: sssrecover <test1.json> <test2.json>"

var errCasesFailed = errors.New("some cases failed")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
}

func run(args []string, stdout, stderr io.Writer, lookup func(string) (string, bool)) int {
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	command := newCommand(stdout, stderr, lookup)
	command.SetArgs(args)
	command.SetOut(stdout)
	command.SetErr(stderr)

	if err := command.Execute(); err != nil {
		if !errors.Is(err, errCasesFailed) {
			fmt.Fprintln(stderr, "error:", err)
		}
		return 1
	}
	return 0
}

func newCommand(stdout, stderr io.Writer, lookup func(string) (string, bool)) *cobra.Command {
	return &cobra.Command{
		Use:   "sssrecover FILE1 FILE2 [FILE...]",
		Short: "Recover the secrets of threshold share files",
		Long: "Recover the constant term of the polynomial behind each share file by Lagrange interpolation " +
			"over the first k shares, and print one secret per file in argument order.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				fmt.Fprintln(stderr, usage)
				return nil
			}

			conf, err := config.FromEnv(lookup).ToConfig()
			if err != nil {
				return err
			}

			logger, err := newLogger(conf.LogLevel, stderr)
			if err != nil {
				return err
			}
			defer logger.Sync()

			r := &recovery.Recoverer{Logger: logger, Verify: conf.Verify}
			results := r.RecoverAll(args, conf.IsolateFailures)

			if last := results[len(results)-1]; last.Err != nil && !conf.IsolateFailures {
				return last.Err
			}

			var failed bool
			for _, res := range results {
				if res.Err != nil {
					failed = true
					fmt.Fprintf(stderr, "error: %s: %v\n", res.Path, res.Err)
					continue
				}
				fmt.Fprintln(stdout, res.Secret.String())
			}

			if failed {
				return errCasesFailed
			}
			return nil
		},
	}
}

type zapLogger struct {
	debugEnabled bool
	*zap.SugaredLogger
}

func (l *zapLogger) DebugEnabled() bool {
	return l.debugEnabled
}

func newLogger(level zapcore.Level, out io.Writer) (*zapLogger, error) {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.Level = zap.NewAtomicLevelAt(level)

	logger, err := logConfig.Build(zap.WrapCore(func(zapcore.Core) zapcore.Core {
		return zapcore.NewCore(
			zapcore.NewConsoleEncoder(logConfig.EncoderConfig),
			zapcore.AddSync(out),
			logConfig.Level,
		)
	}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}

	return &zapLogger{
		SugaredLogger: logger.Sugar(),
		debugEnabled:  logConfig.Level.Enabled(zapcore.DebugLevel),
	}, nil
}
