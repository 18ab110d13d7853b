package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/fieldlog/internal/archive"
)

// fakeS3 is a tiny in-memory subset of the S3 REST API, enough to exercise
// the archive without network access.
type fakeS3 struct {
	mu    sync.Mutex
	state map[string]object
}

type object struct {
	body        []byte
	contentType string
}

const notFoundXML = `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Path style: /<bucket>/<key>
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	if req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2" {
		prefix := req.URL.Query().Get("prefix")
		var keys []string
		for k := range f.state {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString(`<?xml version="1.0"?><ListBucketResult><IsTruncated>false</IsTruncated>`)
		for _, k := range keys {
			fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>2024-03-10T09:00:00Z</LastModified></Contents>", k, len(f.state[k].body))
		}
		b.WriteString(`</ListBucketResult>`)
		return xmlResponse(http.StatusOK, b.String()), nil
	}

	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if dec, ok := decodeChunked(body); ok {
			body = dec
		}
		f.state[key] = object{body: body, contentType: req.Header.Get("Content-Type")}
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{"ETag": {`"etag"`}}}, nil
	case http.MethodHead:
		obj, ok := f.state[key]
		if !ok {
			return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
		}
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{
			"Content-Length": {strconv.Itoa(len(obj.body))},
			"Content-Type":   {obj.contentType},
		}}, nil
	case http.MethodGet:
		obj, ok := f.state[key]
		if !ok {
			return xmlResponse(http.StatusNotFound, notFoundXML), nil
		}
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(obj.body)), Header: http.Header{
			"Content-Length": {strconv.Itoa(len(obj.body))},
			"Content-Type":   {obj.contentType},
			"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
		}}, nil
	case http.MethodDelete:
		delete(f.state, key)
		return &http.Response{StatusCode: http.StatusNoContent, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
	}
	return &http.Response{StatusCode: http.StatusNotImplemented, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
}

func xmlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": {"application/xml"}},
	}
}

// decodeChunked unwraps a single-chunk aws-chunked payload:
// <hex>\r\n<body>\r\n0\r\n<trailers>
func decodeChunked(b []byte) ([]byte, bool) {
	parts := strings.Split(string(b), "\r\n")
	if len(parts) < 3 || parts[2] != "0" {
		return nil, false
	}
	size, err := strconv.ParseInt(parts[0], 16, 64)
	if err != nil || int64(len(parts[1])) != size {
		return nil, false
	}
	return []byte(parts[1]), true
}

func newTestArchive(t *testing.T) (*S3Archive, *fakeS3) {
	t.Helper()
	fake := &fakeS3{state: make(map[string]object)}
	awsCfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIA", "SECRET", ""),
	}
	a := NewFromConfig(awsCfg, Config{Bucket: "reports-bucket", Endpoint: "https://mock.s3.local", PathStyle: true},
		func(o *awss3.Options) { o.HTTPClient = &http.Client{Transport: fake} })
	return a, fake
}

func TestS3ArchiveSaveAndGet(t *testing.T) {
	a, fake := newTestArchive(t)
	ctx := context.Background()

	key, err := a.Save(ctx, "service_report_2024-03-01_2024-03-31.csv", "text/csv", strings.NewReader("Date,Time"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "reports/"))
	assert.True(t, strings.HasSuffix(key, "_service_report_2024-03-01_2024-03-31.csv"))
	assert.Contains(t, fake.state, key)

	body, contentType, err := a.Get(ctx, key)
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "Date,Time", string(data))
	assert.Equal(t, "text/csv", contentType)
}

func TestS3ArchiveGetMissing(t *testing.T) {
	a, _ := newTestArchive(t)

	_, _, err := a.Get(context.Background(), "reports/missing.csv")
	assert.ErrorIs(t, err, archive.ErrNotFound)
}

func TestS3ArchiveListAndDelete(t *testing.T) {
	a, fake := newTestArchive(t)
	ctx := context.Background()

	first, err := a.Save(ctx, "a.csv", "text/csv", strings.NewReader("1"))
	require.NoError(t, err)
	_, err = a.Save(ctx, "b.csv", "text/csv", strings.NewReader("22"))
	require.NoError(t, err)
	fake.state["other/ignored.txt"] = object{body: []byte("x")}

	entries, err := a.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0].Key)
	assert.Equal(t, int64(2), entries[1].Size)

	require.NoError(t, a.Delete(ctx, first))
	assert.ErrorIs(t, a.Delete(ctx, first), archive.ErrNotFound)

	entries, err = a.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestS3ArchiveListEmpty(t *testing.T) {
	a, _ := newTestArchive(t)

	entries, err := a.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
