package restyutil

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Exchange is one finished request and the response it got.
type Exchange struct {
	Id              uint64
	Method          string
	Url             string
	RequestHeaders  http.Header
	Status          int
	ResponseHeaders http.Header
	Body            []byte
	Elapsed         time.Duration
}

func NewExchange(id uint64, res *resty.Response) Exchange {
	ex := Exchange{
		Id:              id,
		Method:          res.Request.Method,
		Url:             res.Request.URL,
		Status:          res.StatusCode(),
		ResponseHeaders: res.Header(),
		Body:            res.Body(),
		Elapsed:         res.Time(),
	}
	if res.Request.RawRequest != nil {
		ex.RequestHeaders = res.Request.RawRequest.Header
	}
	return ex
}

// IsHtml is true when the server labeled the body as html.
func (e Exchange) IsHtml() bool {
	return strings.Contains(e.ResponseHeaders.Get("Content-Type"), "text/html")
}

// Name is a file friendly name, the id keeps names in request order, the
// rest comes from the last path segment and the query.
//
// ex. 7 GET https://2e.aonprd.com/Spells.aspx?ID=12 -> 0007_Spells.aspx_ID-12
func (e Exchange) Name() string {
	slug := "request"
	if u, err := url.Parse(e.Url); err == nil {
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		slug = segments[len(segments)-1]
		if u.RawQuery != "" {
			slug += "_" + u.RawQuery
		}
	}
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_':
			return r
		}
		return '-'
	}, slug)
	if slug == "" {
		slug = "index"
	}
	return fmt.Sprintf("%04d_%s", e.Id, slug)
}

func writeHeaders(out *strings.Builder, prefix string, headers http.Header) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range headers[k] {
			fmt.Fprintf(out, "%s %s: %s\n", prefix, k, v)
		}
	}
}

// Render writes the exchange as a plain text transcript, request headers
// are marked with '>' and response headers with '<'.
func (e Exchange) Render() string {
	var out strings.Builder
	fmt.Fprintf(&out, "%s %s -> %d (%s)\n\n", e.Method, e.Url, e.Status, e.Elapsed)
	writeHeaders(&out, ">", e.RequestHeaders)
	writeHeaders(&out, "<", e.ResponseHeaders)
	out.WriteString("\n")
	out.Write(e.Body)
	return out.String()
}
