package transport

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/wired/core/pipeline"
	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/store"
)

// Response is the reply produced by a unit of work.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// JSON builds a JSON response. A marshalling failure yields a 500 response.
func JSON(status int, v any) Response {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResponse(ErrInternalServerError.WithError(err))
	}
	return Response{
		Status: status,
		Header: http.Header{"Content-Type": {"application/json; charset=utf-8"}},
		Body:   data,
	}
}

// Text builds a plain text response.
func Text(status int, s string) Response {
	return Response{
		Status: status,
		Header: http.Header{"Content-Type": {"text/plain; charset=utf-8"}},
		Body:   []byte(s),
	}
}

// NoContent builds an empty response with the given status.
func NoContent(status int) Response {
	return Response{Status: status}
}

// Clone implements store.Cloner.
func (r Response) Clone() Response {
	r.Header = r.Header.Clone()
	if r.Body != nil {
		r.Body = append([]byte(nil), r.Body...)
	}
	return r
}

// Next stores resp as the reply and lets the pipeline continue, so later
// handlers may still replace it.
func Next(c scope.RequestScoped, resp Response) (pipeline.Outcome, error) {
	store.Insert(c.RequestScope(), resp)
	return pipeline.Continue, nil
}

// Stop stores resp as the reply and ends the pipeline.
func Stop(c scope.RequestScoped, resp Response) (pipeline.Outcome, error) {
	store.Insert(c.RequestScope(), resp)
	return pipeline.Break, nil
}

// ResponseOf returns the reply stored by Next or Stop.
func ResponseOf(c scope.RequestScoped) (Response, bool) {
	return store.GetCloned[Response](c.RequestScope())
}

func errorResponse(e Error) Response {
	status := e.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	data, err := json.Marshal(e)
	if err != nil {
		return Text(status, e.Message)
	}
	return Response{
		Status: status,
		Header: http.Header{"Content-Type": {"application/json; charset=utf-8"}},
		Body:   data,
	}
}

func writeResponse(w http.ResponseWriter, r *http.Request, resp Response) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if r.Method != http.MethodHead && len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
}
