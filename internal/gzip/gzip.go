package gzip

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/MisterMaks/rdrt-client/internal/logger"
	"go.uber.org/zap"
)

// Used constants.
const (
	ContentTypeKey     string = "Content-Type"
	ContentLengthKey   string = "Content-Length"
	GzipKey            string = "gzip"
	ContentEncodingKey string = "Content-Encoding"
	AcceptEncodingKey  string = "Accept-Encoding"
	VaryKey            string = "Vary"
)

// CompressibleTypes are content types compressed in responses.
var CompressibleTypes = []string{
	"text/html",
	"text/plain",
	"text/css",
	"text/javascript",
	"application/javascript",
	"application/json",
	"application/manifest+json",
	"image/svg+xml",
}

func compressible(contentType string) bool {
	for _, t := range CompressibleTypes {
		if strings.HasPrefix(contentType, t) {
			return true
		}
	}
	return false
}

// compressWriter сжимает ответ, если его Content-Type есть в CompressibleTypes.
// Решение принимается при записи заголовков.
type compressWriter struct {
	w           http.ResponseWriter
	zw          *gzip.Writer
	wroteHeader bool
}

func newCompressWriter(w http.ResponseWriter) *compressWriter {
	return &compressWriter{
		w: w,
	}
}

// Header return response header.
func (c *compressWriter) Header() http.Header {
	return c.w.Header()
}

// Write write data.
func (c *compressWriter) Write(p []byte) (int, error) {
	if !c.wroteHeader {
		c.WriteHeader(http.StatusOK)
	}
	if c.zw == nil {
		return c.w.Write(p)
	}
	return c.zw.Write(p)
}

// WriteHeader write header.
func (c *compressWriter) WriteHeader(statusCode int) {
	if c.wroteHeader {
		return
	}
	c.wroteHeader = true

	h := c.w.Header()
	if statusCode < 300 && statusCode != http.StatusNoContent && h.Get(ContentEncodingKey) == "" && compressible(h.Get(ContentTypeKey)) {
		h.Set(ContentEncodingKey, GzipKey)
		h.Del(ContentLengthKey)
		h.Add(VaryKey, AcceptEncodingKey)
		c.zw = gzip.NewWriter(c.w)
	}
	c.w.WriteHeader(statusCode)
}

// Close закрывает gzip.Writer и досылает все данные из буфера.
func (c *compressWriter) Close() error {
	if c.zw == nil {
		return nil
	}
	return c.zw.Close()
}

// compressReader реализует интерфейс io.ReadCloser и позволяет прозрачно для сервера
// декомпрессировать получаемые от клиента данные
type compressReader struct {
	r  io.ReadCloser
	zr *gzip.Reader
}

func newCompressReader(r io.ReadCloser) (*compressReader, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}

	return &compressReader{
		r:  r,
		zr: zr,
	}, nil
}

// Read read data.
func (c compressReader) Read(p []byte) (n int, err error) {
	return c.zr.Read(p)
}

// Close close reader.
func (c *compressReader) Close() error {
	if err := c.r.Close(); err != nil {
		return err
	}
	return c.zr.Close()
}

// GzipMiddleware middleware for zip data in response and unzip data from request.
func GzipMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger := logger.GetContextLogger(r.Context())

		ow := w

		// проверяем, что клиент умеет получать от сервера сжатые данные в формате gzip
		acceptEncoding := r.Header.Get(AcceptEncodingKey)
		supportsGzip := strings.Contains(acceptEncoding, GzipKey)
		if supportsGzip && r.Method != http.MethodHead {
			cw := newCompressWriter(w)
			ow = cw
			defer func() {
				if err := cw.Close(); err != nil {
					ctxLogger.Warn("Failed to close compressWriter", zap.Error(err))
				}
			}()
		}

		// проверяем, что клиент отправил серверу сжатые данные в формате gzip
		contentEncoding := r.Header.Get(ContentEncodingKey)
		sendsGzip := strings.Contains(contentEncoding, GzipKey)
		if sendsGzip {
			cr, err := newCompressReader(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			r.Body = cr
			defer func() {
				err = cr.Close()
				if err != nil {
					ctxLogger.Warn("Failed to close compressReader", zap.Error(err))
				}
			}()
		}

		h.ServeHTTP(ow, r)
	})
}
