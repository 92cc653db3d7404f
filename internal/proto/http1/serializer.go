package http1

import (
	"io"
	"strconv"

	"github.com/indigo-web/filed/http"
	"github.com/indigo-web/filed/http/status"
)

var crlf = []byte("\r\n")

// Serializer renders responses into a single reusable buffer, flushed to the
// writer in one call.
type Serializer struct {
	buff []byte
}

func NewSerializer(buffSize int) *Serializer {
	return &Serializer{
		buff: make([]byte, 0, buffSize),
	}
}

// Write renders and sends the response. A HEAD response carries all the
// headers of a corresponding GET one, Content-Length included, but no body.
func (s *Serializer) Write(w io.Writer, request *http.Request, response *http.Response) error {
	defer s.clear()

	s.renderResponseLine(response.Status)
	s.renderHeaders(response)
	s.renderContentLength(int64(len(response.Body)))
	s.buff = append(s.buff, crlf...)

	if request.Line.Method != "HEAD" {
		s.buff = append(s.buff, response.Body...)
	}

	_, err := w.Write(s.buff)

	return err
}

func (s *Serializer) renderResponseLine(code status.Code) {
	s.buff = append(s.buff, "HTTP/1.1 "...)
	s.buff = strconv.AppendUint(s.buff, uint64(code), 10)
	s.buff = append(s.buff, ' ')
	s.buff = append(s.buff, status.Text(code)...)
	s.buff = append(s.buff, crlf...)
}

func (s *Serializer) renderHeaders(response *http.Response) {
	for key, value := range response.Headers.Iter() {
		s.buff = append(s.buff, key...)
		s.buff = append(s.buff, ": "...)
		s.buff = append(s.buff, value...)
		s.buff = append(s.buff, crlf...)
	}

	// keep-alive isn't supported, so every response also closes the connection
	s.buff = append(s.buff, "Connection: close\r\n"...)
}

func (s *Serializer) renderContentLength(length int64) {
	s.buff = append(s.buff, "Content-Length: "...)
	s.buff = strconv.AppendInt(s.buff, length, 10)
	s.buff = append(s.buff, crlf...)
}

func (s *Serializer) clear() {
	s.buff = s.buff[:0]
}
