// Package router maps request targets onto files of a served directory tree.
// The route table is built once at startup and stays immutable afterwards, so
// workers share it without any locking.
package router

import (
	"encoding/hex"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"github.com/indigo-web/filed/config"
	"github.com/indigo-web/filed/http"
	"github.com/indigo-web/filed/http/byterange"
	"github.com/indigo-web/filed/http/mime"
	"github.com/indigo-web/filed/http/status"
)

type route struct {
	fsPath      string
	contentType mime.MIME
	etag        string
}

// Router resolves requests against the prebuilt route table and produces
// complete responses, partial-content ones included.
type Router struct {
	routes map[string]route
	log    *slog.Logger
}

// New walks the root directory and registers a route per regular file. The
// index file of a directory is additionally reachable via the bare directory
// path.
func New(cfg config.FS, log *slog.Logger) (*Router, error) {
	r := &Router{
		routes: make(map[string]route),
		log:    log,
	}

	err := filepath.WalkDir(cfg.Root, func(fsPath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(cfg.Root, fsPath)
		if err != nil {
			return err
		}

		target := "/" + filepath.ToSlash(rel)
		etag, err := fileETag(fsPath)
		if err != nil {
			return err
		}

		rt := route{
			fsPath:      fsPath,
			contentType: mime.ByExtension(filepath.Ext(fsPath)),
			etag:        etag,
		}
		r.routes[target] = rt

		if entry.Name() == cfg.Index {
			dir := path.Dir(target)
			r.routes[dir] = rt
			if dir != "/" {
				r.routes[dir+"/"] = rt
			}
		}

		log.Debug("registered route", "target", target, "file", fsPath)

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("route table built", "routes", len(r.routes))

	return r, nil
}

// OnRequest serves the request. Every outcome, erroneous ones included, is an
// ordinary response.
func (r *Router) OnRequest(request *http.Request) *http.Response {
	switch request.Line.Method {
	case "GET", "HEAD":
	default:
		return r.OnError(request, status.ErrMethodNotAllowed).
			Header("Allow", "GET, HEAD")
	}

	rt, found := r.routes[request.Path]
	if !found {
		return r.OnError(request, status.ErrNotFound)
	}

	content, err := os.ReadFile(rt.fsPath)
	if err != nil {
		r.log.Error("cannot read a routed file", "file", rt.fsPath, "err", err)
		return r.OnError(request, status.ErrInternalServerError)
	}

	response := http.NewResponse().
		Header("Content-Type", rt.contentType).
		Header("Accept-Ranges", "bytes").
		Header("ETag", rt.etag)

	if rangeValue, hasRange := request.Headers.Get("range"); hasRange {
		return r.respondPartially(request, response, content, rangeValue)
	}

	return response.Bytes(content)
}

// respondPartially maps a Range header onto a concrete window of the content:
// 206 with a Content-Range for a satisfiable one, 416 with the wildcard form
// otherwise. The latter is a normal outcome, not a failure.
func (r *Router) respondPartially(
	request *http.Request, response *http.Response, content []byte, rangeValue string,
) *http.Response {
	spec, err := byterange.Parse(rangeValue)
	if err != nil {
		return r.OnError(request, err)
	}

	total := int64(len(content))
	resolved, ok := spec.Resolve(total)
	if !ok {
		return errorPage(
			response.
				Code(status.RequestedRangeNotSatisfiable).
				Header("Content-Range", byterange.NotSatisfiable(total)),
			status.ErrRangeNotSatisfiable,
		)
	}

	return response.
		Code(status.PartialContent).
		Header("Content-Range", resolved.ContentRange()).
		Bytes(content[resolved.Start : resolved.End+1])
}

// OnError converts any error, typed or not, into a response carrying a
// human-readable page. Unrecognized errors collapse into a plain 500.
func (r *Router) OnError(_ *http.Request, err error) *http.Response {
	return errorPage(http.NewResponse().Code(status.CodeOf(err)), err)
}

func fileETag(fsPath string) (string, error) {
	file, err := os.Open(fsPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher, err := blake2b.New(16, nil)
	if err != nil {
		return "", err
	}

	if _, err = io.Copy(hasher, file); err != nil {
		return "", err
	}

	return `"` + hex.EncodeToString(hasher.Sum(nil)) + `"`, nil
}
