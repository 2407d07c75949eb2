// Copyright 2026 The JazzPetri Authors
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

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jazzpetri/metriclock/metric"
)

var unitNames = [...]string{"year", "month", "week", "day", "hour", "minute", "second"}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <year> <month> <week> <day> <hour> <minute> <second>",
		Short: "Encode metric date fields into epoch seconds",
		Long: `Encode multiplies each field by its place value and prints the sum followed by
the canonical date it decodes to. Out-of-range fields are not rejected; they
spill into the next unit.`,
		Args: cobra.ExactArgs(len(unitNames)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var f [len(unitNames)]uint64
			for i, arg := range args {
				v, err := strconv.ParseUint(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("%s: %w", unitNames[i], err)
				}
				f[i] = v
			}

			seconds := metric.Encode(f[0], f[1], f[2], f[3], f[4], f[5], f[6])
			fmt.Fprintln(cmd.OutOrStdout(), seconds)
			fmt.Fprintln(cmd.OutOrStdout(), metric.Decode(seconds))
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <seconds>",
		Short: "Decode epoch seconds into a metric date",
		Long:  `Decode accepts whole seconds (100000045) or fractional seconds (100000045.25).`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := parseSeconds(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ts.DateTime())
			return nil
		},
	}
}

func parseSeconds(s string) (metric.Timestamp, error) {
	if !strings.ContainsAny(s, ".eE") {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return metric.Timestamp{}, fmt.Errorf("seconds: %w", err)
		}
		return metric.FromEpochSeconds(v), nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return metric.Timestamp{}, fmt.Errorf("seconds: %w", err)
	}
	if v < 0 {
		return metric.Timestamp{}, fmt.Errorf("seconds: must not be negative, got %s", s)
	}
	return metric.FromSeconds(v), nil
}
