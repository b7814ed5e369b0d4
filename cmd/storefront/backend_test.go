package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tagdemo/storefront/internal/core/service"
	"github.com/tagdemo/storefront/internal/infrastructure/storage"
)

func TestOpenCatalog_LogLinesCarryOneComponent(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	local := storage.NewLocal(storage.NewMemoryKV(), "test:", log)

	if _, err := openCatalog(context.Background(), local, service.Latency{}, log); err != nil {
		t.Fatalf("openCatalog returned error: %v", err)
	}

	out := strings.TrimSpace(buf.String())
	if out == "" {
		t.Fatal("expected the seeding log line")
	}
	for _, line := range strings.Split(out, "\n") {
		if n := strings.Count(line, `"component"`); n != 1 {
			t.Fatalf("expected one component key, got %d in %s", n, line)
		}
	}
	if !strings.Contains(out, `"component":"catalog"`) {
		t.Fatalf("expected a catalog line, got:\n%s", out)
	}
}
