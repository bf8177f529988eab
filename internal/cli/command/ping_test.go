package command

import (
	"context"
	"encoding/json"
	"net"
	"strconv"
	"testing"

	"github.com/moroboxai/game-sdk-go/internal/server/controlserver"
	"github.com/moroboxai/game-sdk-go/internal/telemetry/logger"
)

func TestPing(t *testing.T) {
	s := controlserver.New(controlserver.WithLogger(logger.Discard()))
	if err := s.Listen(0); err != nil {
		t.Fatal(err)
	}
	defer s.Shutdown(context.Background())

	port := strconv.Itoa(s.Addr().Port)
	stdout, _, err := runApp(t, "-o", "json", "ping", "-c", "2", port)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var results []pingResult
	if err := json.Unmarshal([]byte(stdout), &results); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for i, r := range results {
		if r.Seq != i+1 || r.Error != "" || r.Latency == "" {
			t.Errorf("result %d = %+v", i, r)
		}
	}
}

func TestPing_Refused(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	stdout, _, err := runApp(t, "ping", addr)
	if got := exitCode(err); got != 1 {
		t.Errorf("exit code = %d, want 1 (err %v)", got, err)
	}
	if stdout == "" {
		t.Error("failed attempts should still be reported")
	}
}
