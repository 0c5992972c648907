package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/nats-io/nats-server/v2/server"
	natsserver "github.com/nats-io/nats-server/v2/test"

	"github.com/scrabblesolver/solver/anagrammer"
	"github.com/scrabblesolver/solver/config"
)

func TestMainAnswersClient(t *testing.T) {
	is := is.New(t)
	s := natsserver.RunRandClientPortServer()
	defer s.Shutdown()

	b := newTestBot(t)
	b.config.Set(config.ConfigNatsURL, s.ClientURL())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	startService(s, func() { done <- Main(ctx, "test.solve", b) })

	nc, err := Connect(ctx, s.ClientURL())
	is.NoErr(err)
	client := NewClient(nc, "test.solve")
	defer client.Close()

	res, err := client.RequestSolve(ctx, &SolveRequest{Letters: "CAT"})
	is.NoErr(err)
	is.Equal(res.Sort, anagrammer.SortByScore)
	is.Equal(res.String(), "AT (2)\nTA (2)\nACT (5)\nCAT (5)")

	res, err = client.RequestSolve(ctx, &SolveRequest{Letters: "Z"})
	is.NoErr(err)
	is.True(res.Empty())

	// The service's own errors come back without being retried.
	_, err = client.RequestSolve(ctx, &SolveRequest{Letters: "CAT", Sort: "sideways"})
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "solver returned: Could not solve: "+anagrammer.ErrUnknownSortKey.Error()))

	cancel()
	is.NoErr(<-done)
}

func TestRequestSolveNoService(t *testing.T) {
	is := is.New(t)
	s := natsserver.RunRandClientPortServer()
	defer s.Shutdown()

	nc, err := Connect(context.Background(), s.ClientURL())
	is.NoErr(err)
	client := NewClient(nc, "nobody.home")
	defer client.Close()
	client.Attempts = 2
	_, err = client.RequestSolve(context.Background(), &SolveRequest{Letters: "CAT"})
	is.True(err != nil)
}

// startService runs serve in the background and waits for it to subscribe.
func startService(s *server.Server, serve func()) {
	before := s.NumSubscriptions()
	go serve()
	deadline := time.Now().Add(5 * time.Second)
	for s.NumSubscriptions() == before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
}
