package aon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"aonscraper/internal/assert"
	"aonscraper/internal/telemetry"
	"aonscraper/lib/htmlutil"
	"aonscraper/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	report_client_fetch = "client.fetch"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

var ErrUnexpectedStatus = errors.New("unexpected status")

// Fetcher turns a site path into a parsed document.
//
// note: fault injection point
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*htmlutil.Document, error)
}

type ClientOptions struct {
	BaseUrl string
	// minimum spacing between two requests, 0 disables pacing
	Delay            time.Duration
	Timeout          time.Duration
	UserAgent        string
	CloudflareBypass bool
	// when not nil every exchange is dumped to it
	Output restyutil.InstrumentOutput
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	tel telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel, "tel")

	tel = telemetry.Scope(tel, "aon_client")

	if opts.BaseUrl == "" {
		opts.BaseUrl = BaseUrl
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}

	parsedBaseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))
	httpClient.SetTimeout(opts.Timeout)

	if opts.Delay > 0 {
		// one request per delay, a burst of 1 keeps the spacing strict
		rateLimiter := rate.NewLimiter(rate.Every(opts.Delay), 1)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel, opts.Output)

	return &Client{
		BaseUrl: parsedBaseUrl,
		Http:    httpClient,
		tel:     tel,
	}, nil
}

func (c *Client) Fetch(ctx context.Context, path string) (*htmlutil.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch, err, path)
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	if res.StatusCode() != http.StatusOK {
		err := fmt.Errorf("fetch %s: %w: %s", path, ErrUnexpectedStatus, res.Status())
		c.tel.ReportBroken(report_client_fetch, err)
		return nil, err
	}

	doc, err := htmlutil.FromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		c.tel.ReportBroken(report_client_fetch, err, path)
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
