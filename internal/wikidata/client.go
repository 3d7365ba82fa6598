package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Wikidata item identifiers for the two sex-or-gender values the bot
// classifies. Other P21 values (non-binary items, organizations with a
// bogus claim) map to GenderUnknown and are left for humans.
const (
	qidMale   = "Q6581097"
	qidFemale = "Q6581072"
)

// DefaultTimeout bounds each SPARQL request. The query service answers
// label lookups in well under a second; thirty seconds covers the slow
// tail without hanging a run.
const DefaultTimeout = 30 * time.Second

// Gender is the classification result of a P21 lookup.
type Gender int

// Possible genders, as far as the category tree distinguishes them.
const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

// String returns a readable name for logging.
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

// Client queries the Wikidata Query Service over SPARQL.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the SPARQL endpoint URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithUserAgent sets the User-Agent header. The query service requires
// a descriptive agent and throttles anonymous defaults.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Wikidata Query Service client.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:  "https://query.wikidata.org/sparql",
		userAgent: "vikibot/1.0",
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// sparqlResponse is the subset of the SPARQL JSON results format the
// client reads.
type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// query runs a SPARQL SELECT and returns the bindings.
func (c *Client) query(ctx context.Context, sparql string) ([]map[string]struct {
	Value string `json:"value"`
}, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid SPARQL endpoint: %w", err)
	}
	q := u.Query()
	q.Set("query", sparql)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SPARQL request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused, then report.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d", ErrQueryFailed, resp.StatusCode)
	}

	var parsed sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode SPARQL response: %w", err)
	}
	return parsed.Results.Bindings, nil
}

// escapeLabel escapes a label for inclusion in a SPARQL string literal.
func escapeLabel(label string) string {
	label = strings.ReplaceAll(label, `\`, `\\`)
	return strings.ReplaceAll(label, `"`, `\"`)
}

// qidFromURI strips the entity URI prefix, leaving the bare Q-number.
func qidFromURI(uri string) string {
	idx := strings.LastIndex(uri, "/")
	if idx < 0 {
		return uri
	}
	return uri[idx+1:]
}

// QIDForLabel resolves a human (P31 = Q5) by exact label match in the
// given language and returns its Q-number. ErrNotFound is returned when
// no item matches; ambiguous labels resolve to an arbitrary single match,
// the same behavior the service gives a LIMIT 1 query.
func (c *Client) QIDForLabel(ctx context.Context, label, lang string) (string, error) {
	sparql := fmt.Sprintf(`SELECT ?item WHERE {
  ?item rdfs:label "%s"@%s ;
        wdt:P31 wd:Q5 .
} LIMIT 1`, escapeLabel(label), lang)

	bindings, err := c.query(ctx, sparql)
	if err != nil {
		return "", err
	}
	if len(bindings) == 0 {
		return "", fmt.Errorf("%w: no item labelled %q", ErrNotFound, label)
	}
	return qidFromURI(bindings[0]["item"].Value), nil
}

// Gender returns the sex-or-gender (P21) of the given item.
// Items without a P21 claim return ErrNotFound; P21 values other than
// male/female return GenderUnknown with a nil error.
func (c *Client) Gender(ctx context.Context, qid string) (Gender, error) {
	sparql := fmt.Sprintf(`SELECT ?gender WHERE {
  wd:%s wdt:P21 ?gender .
} LIMIT 1`, qid)

	bindings, err := c.query(ctx, sparql)
	if err != nil {
		return GenderUnknown, err
	}
	if len(bindings) == 0 {
		return GenderUnknown, fmt.Errorf("%w: %s has no P21 claim", ErrNotFound, qid)
	}

	switch qidFromURI(bindings[0]["gender"].Value) {
	case qidMale:
		return GenderMale, nil
	case qidFemale:
		return GenderFemale, nil
	default:
		return GenderUnknown, nil
	}
}
