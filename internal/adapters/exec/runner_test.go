package exec

import (
	"context"
	"testing"
	"time"

	"github.com/openroberta/oraclient/pkg/log"
)

func TestNoop(t *testing.T) {
	code, err := Noop{}.Execute(context.Background(), "/tmp/prog.py")
	if err != nil || code != "0" {
		t.Errorf("Execute() = %q, %v; want 0, nil", code, err)
	}
}

func TestNewRunner_EmptyCommand(t *testing.T) {
	if _, err := NewRunner(nil, 0, log.NewNoopLogger()); err == nil {
		t.Error("NewRunner(nil) succeeded, want error")
	}
}

func TestRunner_ExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		command []string
		timeout time.Duration
		want    string
		wantErr bool
	}{
		{"success", []string{"sh", "-c", "exit 0"}, 0, "0", false},
		{"non-zero exit", []string{"sh", "-c", "exit 3"}, 0, "3", false},
		{"timeout", []string{"sh", "-c", "exec sleep 5"}, 50 * time.Millisecond, "-1", false},
		{"missing launcher", []string{"/nonexistent/launcher"}, 0, "-1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRunner(tt.command, tt.timeout, log.NewNoopLogger())
			if err != nil {
				t.Fatalf("NewRunner() error = %v", err)
			}
			got, err := r.Execute(context.Background(), "prog.py")
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Execute() = %q, want %q", got, tt.want)
			}
		})
	}
}
