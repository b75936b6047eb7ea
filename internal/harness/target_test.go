package harness

import (
	"slices"
	"testing"
)

func TestTarget_Argv_Placeholder(t *testing.T) {
	target := Target{
		Name:    "rust_tokio",
		Command: []string{"./rust_tokio/target/release/rust_tokio", "{tasks}"},
	}

	argv := target.Argv(100_000)
	want := []string{"./rust_tokio/target/release/rust_tokio", "100000"}
	if !slices.Equal(argv, want) {
		t.Errorf("expected %v, got %v", want, argv)
	}
}

func TestTarget_Argv_AppendsWithoutPlaceholder(t *testing.T) {
	target := Target{
		Name:    "nodejs",
		Command: []string{"node", "main.js"},
	}

	argv := target.Argv(10)
	want := []string{"node", "main.js", "10"}
	if !slices.Equal(argv, want) {
		t.Errorf("expected %v, got %v", want, argv)
	}
}

func TestTarget_Argv_DoesNotMutateCommand(t *testing.T) {
	target := Target{
		Name:    "go",
		Command: []string{"./sleeper", "{tasks}"},
	}

	_ = target.Argv(1)
	_ = target.Argv(2)

	if target.Command[1] != "{tasks}" {
		t.Errorf("Argv mutated the command template: %v", target.Command)
	}
}

func TestTarget_Validate(t *testing.T) {
	tests := []struct {
		name    string
		target  Target
		wantErr bool
	}{
		{"valid", Target{Name: "go", Command: []string{"./sleeper"}}, false},
		{"no name", Target{Command: []string{"./sleeper"}}, true},
		{"no command", Target{Name: "go"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDefaultTargets(t *testing.T) {
	targets := DefaultTargets()
	if len(targets) == 0 {
		t.Fatal("expected at least the built-in go target")
	}
	for _, target := range targets {
		if err := target.Validate(); err != nil {
			t.Errorf("built-in target %q invalid: %v", target.Name, err)
		}
	}
}
