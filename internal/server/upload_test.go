package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

func multipartCSV(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func postUpload(t *testing.T, s *Server, platform, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartCSV(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/"+platform, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestUploadReplacesPlatformBucket(t *testing.T) {
	s := testServer(t)

	csv := "Date,Revenue,Orders,Location\n2024-01-15,100,2,Al Quoz\n2024-01-14,50,1,Dubai Marina\n"
	rec := postUpload(t, s, "deliveroo", "orders.csv", csv)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Accepted)
	assert.Equal(t, 2, resp.Records)

	bucket := s.buffer.Bucket(models.PlatformDeliveroo)
	require.Len(t, bucket, 2)
	assert.Equal(t, 100.0, bucket[0].Revenue)

	// A second upload replaces, never merges.
	rec = postUpload(t, s, "deliveroo", "orders.csv", "Date,Revenue\n2024-01-15,30\n")
	require.Equal(t, http.StatusOK, rec.Code)
	bucket = s.buffer.Bucket(models.PlatformDeliveroo)
	require.Len(t, bucket, 1)
	assert.Equal(t, 30.0, bucket[0].Revenue)
}

func TestUploadResolvesPlatformColumns(t *testing.T) {
	s := testServer(t)

	csv := "sale_date,total_sales,order_count,location_name\n2024-01-15,220.50,3,Business Bay\n"
	rec := postUpload(t, s, "sapaad", "sales.csv", csv)
	require.Equal(t, http.StatusOK, rec.Code)

	bucket := s.buffer.Bucket(models.PlatformSapaad)
	require.Len(t, bucket, 1)
	assert.Equal(t, 220.50, bucket[0].Revenue)
	assert.Equal(t, 3, bucket[0].Orders)
	assert.Equal(t, "Business Bay", bucket[0].Location)
}

func TestUploadRejectsUnknownPlatform(t *testing.T) {
	s := testServer(t)
	rec := postUpload(t, s, "ubereats", "orders.csv", "Date,Revenue\n2024-01-15,10\n")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadRejectsNonCSV(t *testing.T) {
	s := testServer(t)
	rec := postUpload(t, s, "talabat", "orders.xlsx", "not a csv")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestUploadRequiresFileField(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/talabat", bytes.NewBufferString("plain body"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
