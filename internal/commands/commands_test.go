package commands

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	r := NewRegistry()
	var steps int
	var rest []string
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.IntVar(&steps, "steps", 1, "")
	r.Register("simulate", "step a world", fs, func(args []string) error {
		rest = args
		return nil
	})
	r.Register("fail", "always fails", flag.NewFlagSet("fail", flag.ContinueOnError), func([]string) error {
		return errors.New("boom")
	})

	if err := r.Execute([]string{"simulate", "-steps", "5", "extra"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if steps != 5 || len(rest) != 1 || rest[0] != "extra" {
		t.Fatalf("steps=%d rest=%v", steps, rest)
	}
	if err := r.Execute([]string{"nope"}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if err := r.Execute(nil); err == nil {
		t.Fatalf("empty args accepted")
	}
	if err := r.Execute([]string{"fail"}); err == nil || err.Error() != "boom" {
		t.Fatalf("Run error not returned: %v", err)
	}
}

func TestUsageListsCommandsSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("view", "terminal viewer", flag.NewFlagSet("view", flag.ContinueOnError), func([]string) error { return nil })
	r.Register("path", "find a path", flag.NewFlagSet("path", flag.ContinueOnError), func([]string) error { return nil })

	var buf bytes.Buffer
	r.Usage(&buf, "hammer")
	out := buf.String()
	if strings.Index(out, "path") > strings.Index(out, "view") {
		t.Fatalf("commands not sorted:\n%s", out)
	}
	if !strings.Contains(out, "find a path") {
		t.Fatalf("summary missing:\n%s", out)
	}
}
