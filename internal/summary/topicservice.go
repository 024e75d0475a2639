package summary

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/segmentio/encoding/json"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"
)

// TopicService is a TopicModeler backed by an HTTP topic service. It posts
// {"documents": [...]} to its URL and reads back {"topics": [...],
// "probabilities": [...]} with one entry per document.
type TopicService struct {
	http   *pester.Client
	url    string
	logger log.FieldLogger
}

// NewTopicService returns a client for the topic service at url.
func NewTopicService(url string, logger log.FieldLogger) *TopicService {
	hc := pester.New()
	hc.Backoff = pester.ExponentialBackoff
	hc.MaxRetries = DefaultRetries
	hc.Timeout = DefaultTimeout
	hc.LogHook = func(e pester.ErrEntry) {
		logger.WithFields(log.Fields{
			"attempt": e.Attempt,
			"url":     e.URL,
		}).WithError(e.Err).Debug("retrying topic request")
	}
	return &TopicService{http: hc, url: url, logger: logger}
}

type topicRequest struct {
	Documents []string `json:"documents"`
}

type topicResponse struct {
	Topics        []int     `json:"topics"`
	Probabilities []float64 `json:"probabilities"`
}

// Topics sends docs to the service and returns one assignment per document.
func (s *TopicService) Topics(ctx context.Context, docs []string) ([]Assignment, error) {
	body, err := json.Marshal(topicRequest{Documents: docs})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "topic service error"}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}

	var tr topicResponse
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(tr.Probabilities) > 0 && len(tr.Probabilities) != len(tr.Topics) {
		return nil, fmt.Errorf("%w: %d probabilities for %d topics", ErrInvalidResponse, len(tr.Probabilities), len(tr.Topics))
	}
	out := make([]Assignment, len(tr.Topics))
	for i, topic := range tr.Topics {
		out[i].Topic = topic
		if len(tr.Probabilities) > 0 {
			out[i].Probability = tr.Probabilities[i]
		}
	}
	s.logger.WithField("documents", len(docs)).Debug("topics assigned")
	return out, nil
}
