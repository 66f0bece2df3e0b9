package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personalsite/internal/cv"
)

type fakeGenerator struct {
	generateFn func(ctx context.Context, slug, lang string) (*cv.Document, error)
	calls      int
}

func (f *fakeGenerator) Generate(ctx context.Context, slug, lang string) (*cv.Document, error) {
	f.calls++
	return f.generateFn(ctx, slug, lang)
}

func newCVRouter(gen CVGenerator) *gin.Engine {
	r := gin.New()
	r.GET("/cv/:file", NewCVHandler(gen, 3600).Get)
	return r
}

func getCV(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleDocument(lang string) *cv.Document {
	pdf := []byte("%PDF-1.3 sample")
	return &cv.Document{PDF: pdf, ETag: cv.ETag(pdf), FullName: "Ing. Jana Nováková", Lang: lang}
}

func TestCVHandler_Get(t *testing.T) {
	var gotSlug, gotLang string
	gen := &fakeGenerator{generateFn: func(_ context.Context, slug, lang string) (*cv.Document, error) {
		gotSlug, gotLang = slug, lang
		return sampleDocument(lang), nil
	}}

	w := getCV(newCVRouter(gen), "/cv/jana-novakova.cs.pdf", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jana-novakova", gotSlug)
	assert.Equal(t, "cs", gotLang)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.Equal(t, cv.ETag([]byte("%PDF-1.3 sample")), w.Header().Get("ETag"))
	assert.Equal(t,
		`inline; filename="CV-Ing. Jana Novakova-cs.pdf"; filename*=UTF-8''CV-Ing.%20Jana%20Nov%C3%A1kov%C3%A1-cs.pdf`,
		w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3 sample", w.Body.String())
}

func TestCVHandler_NotModified(t *testing.T) {
	doc := sampleDocument("en")
	gen := &fakeGenerator{generateFn: func(context.Context, string, string) (*cv.Document, error) {
		return doc, nil
	}}
	r := newCVRouter(gen)

	w := getCV(r, "/cv/jana.en.pdf", map[string]string{"If-None-Match": doc.ETag})
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.Bytes())
	assert.Equal(t, doc.ETag, w.Header().Get("ETag"))

	w = getCV(r, "/cv/jana.en.pdf", map[string]string{"If-None-Match": `"stale", W/` + doc.ETag})
	assert.Equal(t, http.StatusNotModified, w.Code)

	w = getCV(r, "/cv/jana.en.pdf", map[string]string{"If-None-Match": `"stale"`})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCVHandler_BadFileName(t *testing.T) {
	gen := &fakeGenerator{generateFn: func(context.Context, string, string) (*cv.Document, error) {
		return sampleDocument("en"), nil
	}}
	r := newCVRouter(gen)

	for _, path := range []string{"/cv/jana.pdf", "/cv/Jana.en.pdf", "/cv/jana.eng.pdf", "/cv/jana.en.html", "/cv/jana_x.en.pdf"} {
		assert.Equal(t, http.StatusNotFound, getCV(r, path, nil).Code, path)
	}
	assert.Zero(t, gen.calls)
}

func TestCVHandler_RenderFailure(t *testing.T) {
	gen := &fakeGenerator{generateFn: func(context.Context, string, string) (*cv.Document, error) {
		return nil, errors.New("template missing")
	}}

	w := getCV(newCVRouter(gen), "/cv/jana.en.pdf", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"CV_RENDER_FAILED"}`, w.Body.String())
}
