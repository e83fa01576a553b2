package engine_hooks_by_golang

// Cấu hình cho hook engine (Go port)

import (
	"fmt"
	"strings"
)

// -------------------- Enums --------------------

// FilterMode chọn filter chạy sau khi hook đã accept span.
type FilterMode int

const (
	// FilterExact = 0 để zero-value hữu ích (filter_0distance)
	FilterExact FilterMode = iota
	FilterLineBreak
	FilterNone
)

func (m FilterMode) String() string {
	switch m {
	case FilterExact:
		return "filter_0distance"
	case FilterLineBreak:
		return "filter_0distance_with_line_break"
	case FilterNone:
		return "none"
	default:
		return fmt.Sprintf("FilterMode(%d)", int(m))
	}
}

// ParseFilterMode nhận cả tên filter đầy đủ lẫn tên ngắn (exact, line_break, none).
func ParseFilterMode(s string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact", "filter_0distance":
		return FilterExact, nil
	case "line_break", "linebreak", "filter_0distance_with_line_break":
		return FilterLineBreak, nil
	case "none", "off":
		return FilterNone, nil
	default:
		return FilterExact, fmt.Errorf("unknown filter mode %q", s)
	}
}

// -------------------- EngineConfig --------------------

type EngineConfig struct {
	// Gắn debug_hook vào mọi rule (log span match)
	Debug bool `json:"debug"`

	// Filter áp dụng cho suggestions
	Filter FilterMode `json:"filter"`

	// Số document xử lý song song trong ProcessBatch (<=1 => tuần tự)
	Parallelism int `json:"parallelism"`
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Debug:       false,
		Filter:      FilterExact,
		Parallelism: 4,
	}
}

func NewEngineConfig() EngineConfig {
	return DefaultEngineConfig()
}

// Preset cho debug: log từng match, chạy tuần tự cho dễ đọc log
func DebugConfig() EngineConfig {
	return EngineConfig{
		Debug:       true,
		Filter:      FilterExact,
		Parallelism: 1,
	}
}

// Preset production: input thường là text nhiều dòng nên bỏ qua line break khi so suggestion
func ProductionConfig() EngineConfig {
	return EngineConfig{
		Debug:       false,
		Filter:      FilterLineBreak,
		Parallelism: 16,
	}
}

func (c EngineConfig) WithDebug(enable bool) EngineConfig {
	c.Debug = enable
	return c
}

func (c EngineConfig) WithFilter(m FilterMode) EngineConfig {
	c.Filter = m
	return c
}

func (c EngineConfig) WithParallelism(n int) EngineConfig {
	c.Parallelism = n
	return c
}

// Workers trả về số worker thực tế (tối thiểu 1).
func (c EngineConfig) Workers() int {
	if c.Parallelism < 1 {
		return 1
	}
	return c.Parallelism
}
