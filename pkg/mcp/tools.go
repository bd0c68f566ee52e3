package mcp

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/heapkit/pkg/alg/heap"
	"github.com/Sumatoshi-tech/heapkit/pkg/alg/heapsort"
	"github.com/Sumatoshi-tech/heapkit/pkg/alg/median"
	"github.com/Sumatoshi-tech/heapkit/pkg/alg/topk"
)

// Tool name constants.
const (
	ToolNameSort   = "heap_sort"
	ToolNameTopK   = "heap_topk"
	ToolNameMedian = "heap_median"
	ToolNameBuild  = "heap_build"
)

// MaxInputValues is the maximum number of values accepted by a single tool call.
const MaxInputValues = 1 << 20

// ErrTooManyValues indicates the values parameter exceeds MaxInputValues.
var ErrTooManyValues = errors.New("values exceeds maximum length")

// Input types (auto-generate JSON schemas via struct tags).

// SortInput is the input schema for the heap_sort tool.
type SortInput struct {
	Values     []float64 `json:"values"               jsonschema:"numbers to sort"`
	Descending bool      `json:"descending,omitempty" jsonschema:"sort from largest to smallest"`
}

// TopKInput is the input schema for the heap_topk tool.
type TopKInput struct {
	Values  []float64 `json:"values"            jsonschema:"numbers to select from"`
	K       int       `json:"k"                 jsonschema:"how many values to return (0 to len(values))"`
	Largest bool      `json:"largest,omitempty" jsonschema:"return the k largest instead of the k smallest"`
}

// MedianInput is the input schema for the heap_median tool.
type MedianInput struct {
	Values  []float64 `json:"values"            jsonschema:"stream of numbers in arrival order"`
	Running bool      `json:"running,omitempty" jsonschema:"also return the median after every value"`
}

// BuildInput is the input schema for the heap_build tool.
type BuildInput struct {
	Values    []float64 `json:"values"              jsonschema:"numbers to heapify"`
	Direction string    `json:"direction,omitempty" jsonschema:"min or max (default: min)"`
}

func (in SortInput) size() int   { return len(in.Values) }
func (in TopKInput) size() int   { return len(in.Values) }
func (in MedianInput) size() int { return len(in.Values) }
func (in BuildInput) size() int  { return len(in.Values) }

// Output types.

// ValuesOutput carries an ordered list of numbers.
type ValuesOutput struct {
	Values []float64 `json:"values"`
}

// MedianOutput carries the final median and, on request, the running medians.
type MedianOutput struct {
	Median  float64   `json:"median"`
	Count   int       `json:"count"`
	Running []float64 `json:"running,omitempty"`
}

// BuildOutput carries a heap's array layout and root.
type BuildOutput struct {
	Direction string    `json:"direction"`
	Layout    []float64 `json:"layout"`
	Root      *float64  `json:"root,omitempty"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

func validateValues(values []float64) error {
	if len(values) > MaxInputValues {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyValues, len(values), MaxInputValues)
	}

	return nil
}

// Handlers.

func handleSort(_ context.Context, _ *mcpsdk.CallToolRequest, in SortInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateValues(in.Values); err != nil {
		return errorResult(err)
	}

	values := slices.Clone(in.Values)
	if in.Descending {
		heapsort.SortFunc(values, func(a, b float64) int { return cmp.Compare(b, a) })
	} else {
		heapsort.Sort(values)
	}

	return jsonResult(ValuesOutput{Values: nonNil(values)})
}

func handleTopK(_ context.Context, _ *mcpsdk.CallToolRequest, in TopKInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateValues(in.Values); err != nil {
		return errorResult(err)
	}

	selectFn := topk.Smallest[float64]
	if in.Largest {
		selectFn = topk.Largest[float64]
	}

	values, err := selectFn(in.Values, in.K)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(ValuesOutput{Values: nonNil(values)})
}

func handleMedian(_ context.Context, _ *mcpsdk.CallToolRequest, in MedianInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateValues(in.Values); err != nil {
		return errorResult(err)
	}

	tracker := median.New[float64]()

	var running []float64
	if in.Running {
		running = make([]float64, 0, len(in.Values))
	}

	for _, v := range in.Values {
		tracker.Add(v)

		if in.Running {
			m, _ := tracker.Median() // non-empty after Add
			running = append(running, m)
		}
	}

	m, err := tracker.Median()
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(MedianOutput{Median: m, Count: tracker.Len(), Running: running})
}

func handleBuild(_ context.Context, _ *mcpsdk.CallToolRequest, in BuildInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateValues(in.Values); err != nil {
		return errorResult(err)
	}

	dir := heap.Min
	if in.Direction != "" {
		parsed, err := heap.ParseDirection(in.Direction)
		if err != nil {
			return errorResult(err)
		}

		dir = parsed
	}

	h, err := heap.Build(slices.Clone(in.Values), dir)
	if err != nil {
		return errorResult(err)
	}

	out := BuildOutput{Direction: dir.String(), Layout: nonNil(h.Values())}

	if root, peekErr := h.Peek(); peekErr == nil {
		out.Root = &root
	}

	return jsonResult(out)
}

func nonNil(values []float64) []float64 {
	if values == nil {
		return []float64{}
	}

	return values
}
