package check_rabbitmq_node

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kdar/factorlog"
)

// ErrHTTP is returned if the management api could not be queried successfully
var ErrHTTP = errors.New("http error occurred")

// fetchNodes queries the management api once and decodes the returned nodes.
// The response body is closed before returning.
func fetchNodes(ctx context.Context, client *http.Client, log *factorlog.FactorLog, opts *nodeOpts) ([]Record, error) {
	url := opts.URL()
	log.Debugf("fetching %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrHTTP, err.Error())
	}
	req.SetBasicAuth(opts.User, opts.Password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("%s/%s", NAME, VERSION))

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrHTTP, err.Error())
	}
	defer resp.Body.Close()

	log.Debugf("response: %s (%s)", resp.Status, resp.Header.Get("Content-Type"))
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s for url: %s", ErrHTTP, resp.Status, url)
	}

	records, err := decodeNodes(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w from %s", err, url)
	}
	log.Tracef("decoded %d node(s): %v", len(records), records)

	return records, nil
}
