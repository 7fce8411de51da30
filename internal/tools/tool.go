package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// CodedTool is the contract every tool exposes to the agent runtime: a
// keyword-argument mapping plus a private side-channel mapping in, and either
// a structured result or an "Error:"-prefixed string out. Failures never
// escape the tool boundary as errors; they are rendered as strings the agent
// can read back.
type CodedTool interface {
	Name() string
	Invoke(ctx context.Context, args map[string]interface{}, slyData map[string]interface{}) interface{}
}

// Errorf renders a tool failure in the canonical "Error: ..." form.
func Errorf(format string, args ...interface{}) string {
	return "Error: " + fmt.Sprintf(format, args...)
}

// IsErrorResult reports whether a tool result is an error string.
func IsErrorResult(result interface{}) bool {
	s, ok := result.(string)
	return ok && len(s) >= 6 && s[:6] == "Error:"
}

// StringArg pulls a string argument, tolerating missing keys and non-string
// values the way the original tools' args.get(key, "") did.
func StringArg(args map[string]interface{}, key string) string {
	if args == nil {
		return ""
	}
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// StringSliceArg pulls a list-of-strings argument, accepting both []string
// and the []interface{} shape JSON decoding produces.
func StringSliceArg(args map[string]interface{}, key string) []string {
	if args == nil {
		return nil
	}
	switch v := args[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Registry holds the coded tools the agent session can invoke.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]CodedTool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]CodedTool)}
}

func (r *Registry) Register(tool CodedTool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

func (r *Registry) Get(name string) (CodedTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
