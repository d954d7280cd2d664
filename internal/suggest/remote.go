package suggest

import (
	"context"

	"github.com/i474232898/weather-search/internal/client"
)

// RemoteLoader loads a Service backed by the weather-search /suggest
// endpoint. The handshake is a backend health check.
type RemoteLoader struct {
	Client *client.Client
}

func (l RemoteLoader) Load(ctx context.Context) (Service, error) {
	if err := l.Client.Health(ctx); err != nil {
		return nil, err
	}
	return &RemoteService{client: l.Client}, nil
}

// RemoteService implements Service over HTTP. The callback runs on its own
// goroutine, as a browser service callback would arrive asynchronously.
type RemoteService struct {
	client *client.Client
}

// StatusError is reported to callbacks when the request itself failed.
const StatusError Status = "UNKNOWN_ERROR"

func (s *RemoteService) GetPlacePredictions(ctx context.Context, req Request, cb Callback) {
	go func() {
		resp, err := s.client.Suggest(ctx, req.Input)
		if err != nil {
			cb(nil, StatusError)
			return
		}
		cb(resp.Predictions, Status(resp.Status))
	}()
}
