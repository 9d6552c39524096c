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
	"strings"
	"time"
)

// GenerationStats summarizes one run of the script generator.
type GenerationStats struct {
	GenerationID        string
	Questions           int
	RepeatGroups        int
	VariablesPerDataset []int
	ScriptBytes         int64
	TotalDuration       time.Duration
	Warnings            []error
}

func (gs *GenerationStats) String() string {

	builder := strings.Builder{}
	if gs.GenerationID != "" {
		builder.WriteString(fmt.Sprintf("Generation	[id]			%s\n", gs.GenerationID))
	}
	builder.WriteString(fmt.Sprintf("Questions	[total]			%d\n", gs.Questions))
	builder.WriteString(fmt.Sprintf("Repeat Groups	[total]			%d\n", gs.RepeatGroups))
	builder.WriteString(fmt.Sprintf("Datasets	[total]			%d\n", len(gs.VariablesPerDataset)))

	var variablesTotal int
	counts := make([]float64, len(gs.VariablesPerDataset))
	for i, n := range gs.VariablesPerDataset {
		variablesTotal += n
		counts[i] = float64(n)
	}
	builder.WriteString(fmt.Sprintf("Variables	[total]			%d\n", variablesTotal))

	if len(counts) > 0 {
		s := CalculateVariableStatistics(counts)
		builder.WriteString(fmt.Sprintf("Variables/Dataset	[min, mean, max]	%.0f, %.2f, %.0f\n", s.Min, s.Mean, s.Max))
	}

	builder.WriteString(fmt.Sprintf("Duration	[total]			%s\n", FmtDurationHumanReadable(gs.TotalDuration)))
	builder.WriteString(fmt.Sprintf("Script		[size]			%s\n", FmtBytesHumanReadable(float32(gs.ScriptBytes))))

	if len(gs.Warnings) > 0 {
		builder.WriteString("\nWarnings:\n")
		builder.WriteString(Indent(2, FmtWarnings(gs.Warnings)))
	}

	return builder.String()
}
