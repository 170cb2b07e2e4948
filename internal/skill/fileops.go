package skill

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tessellate-ai/maestro/internal/llm"
)

// FileOps performs file management confined to a working directory.
// Paths are resolved relative to the sandbox root; escapes are rejected.
type FileOps struct {
	workDir string
}

// NewFileOps creates the manage_files skill rooted at workDir.
func NewFileOps(workDir string) *FileOps {
	return &FileOps{workDir: workDir}
}

// Spec implements Skill.
func (f *FileOps) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name: "manage_files",
		Description: "List, read, or write files inside the assistant's working directory. " +
			"Use action 'list' with a directory path, 'read' with a file path, " +
			"or 'write' with a file path and content.",
		Properties: map[string]interface{}{
			"action": map[string]interface{}{
				"type":        "string",
				"description": "One of: list, read, write",
			},
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path relative to the working directory ('.' for the root)",
			},
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Content to write (write action only)",
			},
		},
		Required: []string{"action", "path"},
	}
}

// Invoke implements Skill.
func (f *FileOps) Invoke(_ context.Context, input json.RawMessage) (string, error) {
	var params struct {
		Action  string `json:"action"`
		Path    string `json:"path"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid manage_files parameters: %w", err)
	}

	path, err := f.resolvePath(params.Path)
	if err != nil {
		return "", err
	}

	switch params.Action {
	case "list":
		return f.list(path)
	case "read":
		return f.read(path)
	case "write":
		return f.write(path, params.Content)
	default:
		return "", fmt.Errorf("unknown manage_files action %q", params.Action)
	}
}

// resolvePath joins the requested path onto the sandbox root and rejects
// traversal outside it.
func (f *FileOps) resolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is required")
	}
	joined := filepath.Join(f.workDir, path)
	cleanRoot := filepath.Clean(f.workDir)
	if joined != cleanRoot && !strings.HasPrefix(joined, cleanRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the working directory", path)
	}
	return joined, nil
}

func (f *FileOps) list(path string) (string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("list directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 0 {
		return "(empty directory)", nil
	}
	return strings.Join(names, "\n"), nil
}

func (f *FileOps) read(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(content), nil
}

func (f *FileOps) write(path, content string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return fmt.Sprintf("Wrote %d bytes to %s", len(content), path), nil
}
