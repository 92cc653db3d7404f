package http

import (
	"github.com/indigo-web/filed/http/status"
	"github.com/indigo-web/filed/kv"
	"github.com/indigo-web/utils/uf"
)

// Response is an ordinary value, dereferenced to the wire by the serializer.
// Methods are chainable in order to stay pleasant to use in handlers.
type Response struct {
	Status  status.Code
	Headers *kv.Storage
	Body    []byte
}

func NewResponse() *Response {
	return &Response{
		Status:  status.OK,
		Headers: kv.New(),
	}
}

// Code sets the response status code.
func (r *Response) Code(code status.Code) *Response {
	r.Status = code
	return r
}

// Header sets the header, overwriting the already defined value, if any.
func (r *Response) Header(key, value string) *Response {
	r.Headers.Set(key, value)
	return r
}

// Bytes sets the response body. The slice isn't copied, so ownership transfers
// to the response.
func (r *Response) Bytes(body []byte) *Response {
	r.Body = body
	return r
}

// String sets the response body.
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}
