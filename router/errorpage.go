package router

import (
	"fmt"

	"github.com/indigo-web/filed/http"
	"github.com/indigo-web/filed/http/mime"
	"github.com/indigo-web/filed/http/status"
)

const errorPageTemplate = `<!DOCTYPE html>
<html>
<head><title>%[1]d %[2]s</title></head>
<body>
<h1>%[1]d %[2]s</h1>
<p>%[3]s</p>
</body>
</html>
`

// errorPage attaches a human-readable HTML body to an already coded response.
func errorPage(response *http.Response, err error) *http.Response {
	return response.
		Header("Content-Type", mime.HTML).
		String(fmt.Sprintf(errorPageTemplate, response.Status, status.Text(response.Status), err))
}
