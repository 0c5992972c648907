package bot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/scrabblesolver/solver/anagrammer"
)

const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultAttempts       = 3
)

// Connect dials the NATS server, retrying with backoff until it answers,
// the attempts run out, or ctx is done.
func Connect(ctx context.Context, url string) (*nats.Conn, error) {
	return retry.DoWithData(
		func() (*nats.Conn, error) {
			return nats.Connect(url, nats.Name("solver"))
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("n", n).Str("url", url).Msg("nats-connect-retry")
		}),
	)
}

type Client struct {
	nc       *nats.Conn
	subject  string
	Timeout  time.Duration
	Attempts uint
}

func NewClient(nc *nats.Conn, subject string) *Client {
	return &Client{
		nc:       nc,
		subject:  subject,
		Timeout:  DefaultRequestTimeout,
		Attempts: DefaultAttempts,
	}
}

// Close closes the underlying connection.
func (c *Client) Close() {
	c.nc.Close()
}

// RequestSolve sends a request to the solve service and waits for the
// answer. Transport failures are retried; an error reported by the service
// is not.
func (c *Client) RequestSolve(ctx context.Context, req *SolveRequest) (*anagrammer.Result, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := retry.DoWithData(
		func() (*SolveResponse, error) {
			rctx, cancel := context.WithTimeout(ctx, c.Timeout)
			defer cancel()
			msg, err := c.nc.RequestWithContext(rctx, c.subject, data)
			if err != nil {
				if c.nc.LastError() != nil {
					log.Error().Msgf("%v for request", c.nc.LastError())
				}
				return nil, err
			}
			log.Debug().Msgf("res: %v", string(msg.Data))
			return decodeResponse(msg.Data)
		},
		retry.Context(ctx),
		retry.Attempts(c.Attempts),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Msg("solve-request-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return nil, err
	}
	return resp.Result()
}

func decodeResponse(data []byte) (*SolveResponse, error) {
	resp := &SolveResponse{}
	if err := json.Unmarshal(data, resp); err != nil {
		return nil, retry.Unrecoverable(err)
	}
	if resp.Error != "" {
		return nil, retry.Unrecoverable(errors.New("solver returned: " + resp.Error))
	}
	return resp, nil
}
