package skill

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/tessellate-ai/maestro/internal/llm"
)

// SystemInfo reports host and runtime facts for the coder specialist.
type SystemInfo struct{}

// NewSystemInfo creates the get_system_info skill.
func NewSystemInfo() *SystemInfo {
	return &SystemInfo{}
}

// Spec implements Skill.
func (s *SystemInfo) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name: "get_system_info",
		Description: "Report the host operating system, architecture, CPU count, " +
			"hostname, and working directory.",
		Properties: map[string]interface{}{},
	}
}

// Invoke implements Skill.
func (s *SystemInfo) Invoke(_ context.Context, _ json.RawMessage) (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "os: %s\n", runtime.GOOS)
	fmt.Fprintf(&b, "arch: %s\n", runtime.GOARCH)
	fmt.Fprintf(&b, "cpus: %d\n", runtime.NumCPU())
	fmt.Fprintf(&b, "hostname: %s\n", hostname)
	fmt.Fprintf(&b, "working_dir: %s\n", wd)
	fmt.Fprintf(&b, "go_version: %s\n", runtime.Version())
	return b.String(), nil
}
