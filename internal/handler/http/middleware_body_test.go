package http

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MKhiriev/web-bootstrap/internal/urlencoded"
	"github.com/MKhiriev/web-bootstrap/internal/utils"
)

const testLimit = 100 * 1024

// captureNext records the parsed body and the body bytes seen downstream.
type captureNext struct {
	called bool
	body   utils.ParsedBody
	parsed bool
	raw    []byte
}

func (c *captureNext) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.called = true
	c.body, c.parsed = utils.GetParsedBodyFromContext(r.Context())
	c.raw, _ = io.ReadAll(r.Body)
	w.WriteHeader(http.StatusOK)
}

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func deflateBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func utf16Bytes(t *testing.T, order unicode.Endianness, bom unicode.BOMPolicy, s string) []byte {
	t.Helper()
	encoded, err := unicode.UTF16(order, bom).NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return encoded
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestJSONBodyParser_TableTest(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		encoding    string
		body        []byte
		wantStatus  int
		wantParsed  bool
		wantValue   any
	}{
		{
			name:        "object",
			contentType: "application/json",
			body:        []byte(`{"a":1,"b":"x"}`),
			wantStatus:  http.StatusOK,
			wantParsed:  true,
			wantValue:   map[string]any{"a": json.Number("1"), "b": "x"},
		},
		{
			name:        "array with utf-8 charset",
			contentType: "application/json; charset=UTF-8",
			body:        []byte(` [1, 2] `),
			wantStatus:  http.StatusOK,
			wantParsed:  true,
			wantValue:   []any{json.Number("1"), json.Number("2")},
		},
		{
			name:        "whitespace only body",
			contentType: "application/json",
			body:        []byte("   "),
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "newline only body",
			contentType: "application/json",
			body:        []byte("\n"),
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "empty gzip body is an empty object",
			contentType: "application/json",
			encoding:    "gzip",
			body:        gzipBytes(t, ""),
			wantStatus:  http.StatusOK,
			wantParsed:  true,
			wantValue:   map[string]any{},
		},
		{
			name:        "utf-8 byte order mark",
			contentType: "application/json",
			body:        []byte("\xef\xbb\xbf{\"bom\":true}"),
			wantStatus:  http.StatusOK,
			wantParsed:  true,
			wantValue:   map[string]any{"bom": true},
		},
		{
			name:        "utf-16le",
			contentType: "application/json; charset=utf-16le",
			body:        utf16Bytes(t, unicode.LittleEndian, unicode.IgnoreBOM, `{"name":"Zoë"}`),
			wantStatus:  http.StatusOK,
			wantParsed:  true,
			wantValue:   map[string]any{"name": "Zoë"},
		},
		{
			name:        "utf-16 with big endian byte order mark",
			contentType: "application/json; charset=UTF-16",
			body:        utf16Bytes(t, unicode.BigEndian, unicode.UseBOM, `[1]`),
			wantStatus:  http.StatusOK,
			wantParsed:  true,
			wantValue:   []any{json.Number("1")},
		},
		{
			name:        "utf-7 charset",
			contentType: "application/json; charset=utf-7",
			body:        []byte(`{}`),
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:        "gzip encoded",
			contentType: "application/json",
			encoding:    "gzip",
			body:        gzipBytes(t, `{"zipped":true}`),
			wantStatus:  http.StatusOK,
			wantParsed:  true,
			wantValue:   map[string]any{"zipped": true},
		},
		{
			name:        "deflate encoded",
			contentType: "application/json",
			encoding:    "deflate",
			body:        deflateBytes(t, `{"deflated":true}`),
			wantStatus:  http.StatusOK,
			wantParsed:  true,
			wantValue:   map[string]any{"deflated": true},
		},
		{
			name:        "other media type passes through",
			contentType: "text/plain",
			body:        []byte(`{"a":1}`),
			wantStatus:  http.StatusOK,
		},
		{
			name:        "json suffix types are not matched",
			contentType: "application/vnd.api+json",
			body:        []byte(`{"a":1}`),
			wantStatus:  http.StatusOK,
		},
		{
			name:        "malformed",
			contentType: "application/json",
			body:        []byte(`{"a":`),
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "bare scalar",
			contentType: "application/json",
			body:        []byte(`"just a string"`),
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "trailing data",
			contentType: "application/json",
			body:        []byte(`{"a":1}{"b":2}`),
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "unsupported charset",
			contentType: "application/json; charset=latin1",
			body:        []byte(`{}`),
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:        "unsupported encoding",
			contentType: "application/json",
			encoding:    "br",
			body:        []byte(`{}`),
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:        "corrupt gzip",
			contentType: "application/json",
			encoding:    "gzip",
			body:        []byte("not gzip at all"),
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "too large",
			contentType: "application/json",
			body:        []byte(`{"a":"` + strings.Repeat("x", testLimit) + `"}`),
			wantStatus:  http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &captureNext{}

			req := httptest.NewRequest(http.MethodPost, "/api/echo", bytes.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			if tt.encoding != "" {
				req.Header.Set("Content-Encoding", tt.encoding)
			}

			rr := httptest.NewRecorder()
			jsonBodyParser(testLimit)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				assert.False(t, next.called, "next must not run after a rejected body")
				assert.Equal(t, utils.ContentTypeJSON, rr.Header().Get("Content-Type"))
				assert.NotEmpty(t, errorMessage(t, rr))
				return
			}

			require.True(t, next.called)
			assert.Equal(t, tt.wantParsed, next.parsed)
			if tt.wantParsed {
				assert.Equal(t, utils.BodyKindJSON, next.body.Kind)
				assert.Equal(t, tt.wantValue, next.body.Value)
				assert.Equal(t, next.body.Raw, next.raw, "downstream reads the decoded body")
			}
		})
	}
}

func TestJSONBodyParser_NoBodySkipped(t *testing.T) {
	next := &captureNext{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	jsonBodyParser(testLimit)(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, next.called)
	assert.False(t, next.parsed)
}

func TestJSONBodyParser_ContentLengthOverLimitRejectedEarly(t *testing.T) {
	next := &captureNext{}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = testLimit + 1

	rr := httptest.NewRecorder()
	jsonBodyParser(testLimit)(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, ErrBodyTooLarge.Error(), errorMessage(t, rr))
}

func TestJSONBodyParser_SecondParserIsNoOp(t *testing.T) {
	next := &captureNext{}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"once":true}`))
	req.Header.Set("Content-Type", "application/json")

	first := jsonBodyParser(testLimit)
	second := jsonBodyParser(testLimit)

	rr := httptest.NewRecorder()
	first(second(next)).ServeHTTP(rr, req)

	require.True(t, next.parsed)
	assert.Equal(t, map[string]any{"once": true}, next.body.Value)
	assert.Equal(t, `{"once":true}`, string(next.raw))
}

func TestURLEncodedBodyParser_TableTest(t *testing.T) {
	extended := urlencodedParserOptions{
		limit:          testLimit,
		parameterLimit: 3,
		parse:          urlencoded.Options{Extended: true, Depth: 32, ArrayLimit: 20},
	}
	simple := extended
	simple.parse = urlencoded.Options{}

	tests := []struct {
		name        string
		opts        urlencodedParserOptions
		contentType string
		body        string
		wantStatus  int
		wantParsed  bool
		wantValue   any
	}{
		{
			name:        "extended nesting",
			opts:        extended,
			contentType: "application/x-www-form-urlencoded",
			body:        "user[name]=ann&user[tags][]=a&user[tags][]=b",
			wantStatus:  http.StatusOK,
			wantParsed:  true,
			wantValue: map[string]any{
				"user": map[string]any{"name": "ann", "tags": []any{"a", "b"}},
			},
		},
		{
			name:        "simple mode keeps brackets",
			opts:        simple,
			contentType: "application/x-www-form-urlencoded; charset=utf-8",
			body:        "user[name]=ann",
			wantStatus:  http.StatusOK,
			wantParsed:  true,
			wantValue:   map[string]any{"user[name]": "ann"},
		},
		{
			name:        "parameter limit reached",
			opts:        extended,
			contentType: "application/x-www-form-urlencoded",
			body:        "a=1&b=2&c=3&d=4",
			wantStatus:  http.StatusRequestEntityTooLarge,
		},
		{
			name:        "unsupported charset",
			opts:        extended,
			contentType: "application/x-www-form-urlencoded; charset=utf-16",
			body:        "a=1",
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:        "json passes through",
			opts:        extended,
			contentType: "application/json",
			body:        `{"a":1}`,
			wantStatus:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &captureNext{}

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			rr := httptest.NewRecorder()
			urlencodedBodyParser(tt.opts)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				assert.False(t, next.called)
				return
			}

			assert.Equal(t, tt.wantParsed, next.parsed)
			if tt.wantParsed {
				assert.Equal(t, utils.BodyKindURLEncoded, next.body.Kind)
				assert.Equal(t, tt.wantValue, next.body.Value)
			}
		})
	}
}

func TestURLEncodedBodyParser_TooManyParametersMessage(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a&b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	urlencodedBodyParser(urlencodedParserOptions{limit: testLimit, parameterLimit: 1})(&captureNext{}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, ErrTooManyParameters.Error(), errorMessage(t, rr))
}

func TestDecodeJSON(t *testing.T) {
	v, err := decodeJSON([]byte(`{"n": 1.50}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": json.Number("1.50")}, v)

	_, err = decodeJSON([]byte(`42`))
	assert.ErrorIs(t, err, ErrNonObjectJSON)

	_, err = decodeJSON([]byte(`[1,]`))
	assert.ErrorIs(t, err, ErrMalformedJSON)

	_, err = decodeJSON([]byte("{}\n\t "))
	assert.NoError(t, err)

	v, err = decodeJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, v)

	_, err = decodeJSON([]byte(" \r\n\t"))
	assert.ErrorIs(t, err, ErrNonObjectJSON)
}

func TestJSONBodyParser_TranscodedBodyIsUTF8Downstream(t *testing.T) {
	var contentType string
	next := &captureNext{}
	wrapped := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		next.ServeHTTP(w, r)
	})

	body := utf16Bytes(t, unicode.BigEndian, unicode.IgnoreBOM, `{"a":"é"}`)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-16be")

	rr := httptest.NewRecorder()
	jsonBodyParser(testLimit)(wrapped).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", contentType)
	assert.Equal(t, `{"a":"é"}`, string(next.raw))
}

func TestCharsetFuncs(t *testing.T) {
	tests := []struct {
		charset     string
		unicodeOK   bool
		utf8OK      bool
		wantDecoder bool
	}{
		{charset: "", unicodeOK: true, utf8OK: true},
		{charset: "UTF-8", unicodeOK: true, utf8OK: true},
		{charset: "utf-16", unicodeOK: true, wantDecoder: true},
		{charset: "utf-16be", unicodeOK: true, wantDecoder: true},
		{charset: "utf-32le", unicodeOK: true, wantDecoder: true},
		{charset: "utf-7"},
		{charset: "iso-8859-1"},
	}

	for _, tt := range tests {
		t.Run(tt.charset, func(t *testing.T) {
			decoder, err := unicodeCharset(tt.charset)
			if tt.unicodeOK {
				require.NoError(t, err)
				assert.Equal(t, tt.wantDecoder, decoder != nil)
			} else {
				assert.ErrorIs(t, err, ErrUnsupportedCharset)
			}

			_, err = utf8Charset(tt.charset)
			if tt.utf8OK {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrUnsupportedCharset)
			}
		})
	}
}

func TestHasBody(t *testing.T) {
	withBody := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
	assert.True(t, hasBody(withBody))

	empty := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	assert.False(t, hasBody(empty))

	chunked := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("x")))
	assert.True(t, hasBody(chunked))
}
