package skill

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/tessellate-ai/maestro/internal/llm"
)

type namedSkill struct {
	name string
}

func (s *namedSkill) Spec() llm.ToolSpec {
	return llm.ToolSpec{Name: s.name}
}

func (s *namedSkill) Invoke(ctx context.Context, input json.RawMessage) (string, error) {
	return "ok", nil
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(&namedSkill{name: "a"}, &namedSkill{name: "a"})
	if err == nil {
		t.Fatal("expected error for duplicate skill name")
	}
}

func TestRegistrySelect(t *testing.T) {
	r, err := NewRegistry(&namedSkill{name: "a"}, &namedSkill{name: "b"}, &namedSkill{name: "c"})
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	selected, err := r.Select("c", "a")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(selected) != 2 || selected[0].Spec().Name != "c" || selected[1].Spec().Name != "a" {
		t.Errorf("expected [c a] in order, got %v", selected)
	}

	if _, err := r.Select("missing"); err == nil {
		t.Error("expected error for unknown skill name")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	r, err := NewRegistry(&namedSkill{name: "zeta"}, &namedSkill{name: "alpha"})
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("expected sorted names, got %v", names)
	}
}
