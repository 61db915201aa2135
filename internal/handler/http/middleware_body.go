package http

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/web-bootstrap/internal/utils"
)

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

type wrappedReadCloser struct {
	io.Reader
	OnClose func()
}

func (w *wrappedReadCloser) Close() error {
	if w.OnClose != nil {
		w.OnClose()
	}
	return nil
}

// decodeFunc turns a raw body into the value stored in [utils.ParsedBody].
type decodeFunc func(raw []byte) (any, error)

// bodyParser returns a stage that parses bodies of the given media type.
//
// Requests without a body, with a different media type, or already parsed by
// an earlier stage pass through untouched. Failures end the request with the
// status mapped from the error. On success the parsed body is stored in the
// request context and r.Body is replaced with the decoded UTF-8 bytes.
func bodyParser(mediaType string, kind utils.BodyKind, limit int64, charsets charsetFunc, decode decodeFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, parsed := utils.GetParsedBodyFromContext(r.Context()); parsed || !hasBody(r) {
				next.ServeHTTP(w, r)
				return
			}

			params, ok := matchMediaType(r, mediaType)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			charsetDecoder, err := charsets(params["charset"])
			if err != nil {
				writeBodyError(w, r, err)
				return
			}

			raw, err := readBody(r, limit)
			if err != nil {
				writeBodyError(w, r, err)
				return
			}

			raw, err = toUTF8(raw, charsetDecoder)
			if err != nil {
				writeBodyError(w, r, err)
				return
			}

			value, err := decode(raw)
			if err != nil {
				writeBodyError(w, r, err)
				return
			}

			ctx := utils.WithParsedBody(r.Context(), utils.ParsedBody{
				Kind:  kind,
				Value: value,
				Raw:   raw,
			})

			r = r.WithContext(ctx)
			r.Body = io.NopCloser(bytes.NewReader(raw))
			r.ContentLength = int64(len(raw))
			r.Header.Set("Content-Length", strconv.Itoa(len(raw)))
			r.Header.Del("Content-Encoding")
			if charsetDecoder != nil {
				r.Header.Set("Content-Type", mime.FormatMediaType(mediaType, map[string]string{"charset": "utf-8"}))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// hasBody reports whether the request framing announces a body, either by a
// positive Content-Length or by chunked transfer encoding.
func hasBody(r *http.Request) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return false
	}
	return r.ContentLength != 0
}

func matchMediaType(r *http.Request, want string) (map[string]string, bool) {
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != want {
		return nil, false
	}
	return params, true
}

// readBody reads at most limit decoded bytes from the request.
func readBody(r *http.Request, limit int64) ([]byte, error) {
	body, encoded, err := openBody(r)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	if !encoded && r.ContentLength > limit {
		return nil, ErrBodyTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		if encoded {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEncodedBody, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadingBody, err)
	}

	if int64(len(data)) > limit {
		return nil, ErrBodyTooLarge
	}

	return data, nil
}

// openBody returns a reader inflating the body per its Content-Encoding and
// whether any decoding is applied.
func openBody(r *http.Request) (io.ReadCloser, bool, error) {
	switch encoding := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Encoding"))); encoding {
	case "", "identity":
		return io.NopCloser(r.Body), false, nil
	case "gzip":
		gzipReader := gzipReaderPool.Get().(*gzip.Reader)
		if err := gzipReader.Reset(r.Body); err != nil {
			gzipReaderPool.Put(gzipReader)
			return nil, true, fmt.Errorf("%w: %v", ErrInvalidEncodedBody, err)
		}
		return &wrappedReadCloser{
			Reader: gzipReader,
			OnClose: func() {
				gzipReader.Close()
				gzipReaderPool.Put(gzipReader)
			},
		}, true, nil
	case "deflate":
		zlibReader, err := zlib.NewReader(r.Body)
		if err != nil {
			return nil, true, fmt.Errorf("%w: %v", ErrInvalidEncodedBody, err)
		}
		return zlibReader, true, nil
	default:
		return nil, false, fmt.Errorf("%w: %q", ErrUnsupportedContentEncoding, encoding)
	}
}
