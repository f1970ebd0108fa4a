package pypi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/matzehuels/pipreq/pkg/buildinfo"
	"github.com/matzehuels/pipreq/pkg/cache"
	"github.com/matzehuels/pipreq/pkg/integrations"
)

// DefaultBaseURL is the JSON API root of the public index.
const DefaultBaseURL = "https://pypi.org/pypi"

// Releases lists the published versions of a project.
//
// Versions holds the raw release strings as the index reports them, sorted
// lexically; no PEP 440 ordering is applied. Latest is the version the index
// marks as current and may be empty for projects with no releases.
type Releases struct {
	Name     string   `json:"name"`
	Summary  string   `json:"summary,omitempty"`
	Latest   string   `json:"latest"`
	Versions []string `json:"versions"`
}

// Client provides access to the PyPI JSON API.
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a mirror index. Cache entries for a
// mirror are scoped by its URL so they never mix with the public index.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		url = strings.TrimRight(url, "/")
		if url == "" || url == DefaultBaseURL {
			return
		}
		c.baseURL = url
		c.WithKeyer(cache.NewScopedKeyer(nil, "index:"+cache.Hash([]byte(url))[:12]+":"))
	}
}

// NewClient creates a PyPI client that caches responses in backend for
// cacheTTL. Pass cache.NewNullCache() to disable caching.
func NewClient(backend cache.Cache, cacheTTL time.Duration, opts ...Option) *Client {
	c := &Client{
		Client: integrations.NewClient(backend, "pypi:", cacheTTL, map[string]string{
			"User-Agent": buildinfo.UserAgent(),
		}),
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the index the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchReleases retrieves the release list of a project.
//
// The name is normalized (PEP 503) before the request. If refresh is true
// the cache is bypassed. A missing project yields an error wrapping
// [integrations.ErrNotFound].
func (c *Client) FetchReleases(ctx context.Context, name string, refresh bool) (*Releases, error) {
	name = integrations.NormalizePkgName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty project name", integrations.ErrNotFound)
	}

	var rel Releases
	err := c.Cached(ctx, name, refresh, &rel, func() error {
		return c.fetch(ctx, name, &rel)
	})
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func (c *Client) fetch(ctx context.Context, name string, rel *Releases) error {
	var data apiResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s/json", c.baseURL, name), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: pypi package %s", err, name)
		}
		return err
	}

	versions := make([]string, 0, len(data.Releases))
	for v := range data.Releases {
		versions = append(versions, v)
	}
	sort.Strings(versions)

	*rel = Releases{
		Name:     integrations.NormalizePkgName(data.Info.Name),
		Summary:  data.Info.Summary,
		Latest:   data.Info.Version,
		Versions: versions,
	}
	if rel.Name == "" {
		rel.Name = name
	}
	return nil
}

type apiResponse struct {
	Info     apiInfo                     `json:"info"`
	Releases map[string][]apiReleaseFile `json:"releases"`
}

type apiInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Summary string `json:"summary"`
}

type apiReleaseFile struct {
	Filename string `json:"filename"`
	Yanked   bool   `json:"yanked"`
}
