package telemetry

import (
	"context"
	"sync/atomic"
	"time"

	"aonscraper/lib/restyutil"

	"github.com/go-resty/resty/v2"
)

const (
	report_resty_request  = "request"
	report_resty_response = "response"
	report_resty_error    = "error"
)

type restyInstrument struct {
	tel    API
	output restyutil.InstrumentOutput
	nextId *atomic.Uint64
}

type exchangeKeyType int

const exchangeKey exchangeKeyType = 0

type exchangeStart struct {
	id    uint64
	start time.Time
}

// InstrumentResty reports every request the client makes under the
// "resty" scope. When output is not nil every finished exchange is also
// written to it.
func InstrumentResty(client *resty.Client, tel API, output restyutil.InstrumentOutput) {
	i := restyInstrument{
		tel:    Scope(tel, "resty"),
		output: output,
		nextId: &atomic.Uint64{},
	}
	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

func (i restyInstrument) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	started := exchangeStart{id: i.nextId.Add(1), start: time.Now()}
	i.tel.ReportDebug(report_resty_request, "id", started.id, "method", req.Method, "url", req.URL)
	req.SetContext(context.WithValue(req.Context(), exchangeKey, started))
	return nil
}

func (i restyInstrument) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	started, ok := res.Request.Context().Value(exchangeKey).(exchangeStart)
	if !ok {
		return nil
	}
	ex := restyutil.NewExchange(started.id, res)
	i.tel.ReportDebug(report_resty_response, "id", ex.Id, "status", ex.Status, "elapsed", ex.Elapsed)
	if i.output != nil {
		i.output.Write(ex)
	}
	return nil
}

func (i restyInstrument) onError(req *resty.Request, err error) {
	started, _ := req.Context().Value(exchangeKey).(exchangeStart)
	var elapsed time.Duration
	if !started.start.IsZero() {
		elapsed = time.Since(started.start)
	}
	i.tel.ReportBroken(
		report_resty_error,
		"id", started.id,
		"method", req.Method,
		"url", req.URL,
		"elapsed", elapsed,
		"err", err,
	)
}
