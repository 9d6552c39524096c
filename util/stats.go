// Copyright 2025 The Samply Community
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

package util

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
)

// VariableStatistics describes how the checked variables spread over the
// datasets of a form.
type VariableStatistics struct {
	Min, Mean, Max float64
}

// CalculateVariableStatistics calculates the VariableStatistics for the given
// variable counts per dataset.
func CalculateVariableStatistics(counts []float64) VariableStatistics {
	if len(counts) == 0 {
		return VariableStatistics{}
	}

	return VariableStatistics{
		Min:  floats.Min(counts),
		Mean: floats.Sum(counts) / float64(len(counts)),
		Max:  floats.Max(counts),
	}
}

// FmtBytesHumanReadable takes an amount of bytes and returns them in a human readable form
// up to a unit of PiB.
func FmtBytesHumanReadable(bytes float32) string {
	units := []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

	var unitIdx int
	for bytes > 1024 && unitIdx < len(units)-1 {
		bytes = bytes / 1024
		unitIdx++
	}

	return fmt.Sprintf("%.2f %s", bytes, units[unitIdx])
}

// FmtDurationHumanReadable prints durations under a minute with millisecond
// precision and longer ones with second precision.
func FmtDurationHumanReadable(d time.Duration) string {
	if d < time.Minute {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
