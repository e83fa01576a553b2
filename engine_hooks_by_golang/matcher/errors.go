package matcher

import "fmt"

// ConfigError: cấu hình hook sai (kiểu tham số, enum không hợp lệ...).
// Luôn trả về lúc dựng predicate, không bao giờ lúc evaluate.
type ConfigError struct {
	Hook   string
	Arg    string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Arg == "" {
		return fmt.Sprintf("%s: %s", e.Hook, e.Reason)
	}
	return fmt.Sprintf("%s: argument %q %s", e.Hook, e.Arg, e.Reason)
}

func configErrorf(hook, arg, format string, a ...any) *ConfigError {
	return &ConfigError{Hook: hook, Arg: arg, Reason: fmt.Sprintf(format, a...)}
}

// UnknownHookError: tên hook không có trong registry.
type UnknownHookError struct{ Name string }

func (e *UnknownHookError) Error() string { return "unknown match hook: " + e.Name }
