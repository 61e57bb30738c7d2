package s3_test

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hajimekit/hajime/integration/storage/s3"
)

type fakeClient struct {
	objects map[string]string
	err     error
	keys    []string
}

func (c *fakeClient) GetObject(_ context.Context, in *s3aws.GetObjectInput, _ ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error) {
	c.keys = append(c.keys, aws.ToString(in.Key))
	if c.err != nil {
		return nil, c.err
	}
	body, ok := c.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	modified := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &s3aws.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: aws.Int64(int64(len(body))),
		LastModified:  &modified,
	}, nil
}

func newFS(t *testing.T, client s3.Client, prefix string, opts ...s3.Option) *s3.FS {
	t.Helper()
	fsys, err := s3.New(t.Context(), s3.Config{Bucket: "b", Region: "us-east-1", Prefix: prefix},
		append([]s3.Option{s3.WithClient(client)}, opts...)...)
	require.NoError(t, err)
	return fsys
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := s3.New(t.Context(), s3.Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, s3.ErrInvalidConfig)
	assert.False(t, s3.Config{}.Enabled())
	assert.True(t, s3.Config{Bucket: "b"}.Enabled())
}

func TestFS_Open(t *testing.T) {
	t.Parallel()

	client := &fakeClient{objects: map[string]string{"public/css/site.css": "body{}"}}
	fsys := newFS(t, client, "/public/")

	f, err := fsys.Open("css/site.css")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, "site.css", info.Name())
	assert.Equal(t, int64(6), info.Size())
	assert.False(t, info.IsDir())
	assert.Equal(t, 2024, info.ModTime().Year())

	_, ok := f.(io.Seeker)
	assert.True(t, ok)
	assert.Equal(t, []string{"public/css/site.css"}, client.keys)
}

func TestFS_ReadFile(t *testing.T) {
	t.Parallel()

	fsys := newFS(t, &fakeClient{objects: map[string]string{"index.html": "<h1>{{ title }}</h1>"}}, "")

	data, err := fs.ReadFile(fsys, "index.html")
	require.NoError(t, err)
	assert.Equal(t, "<h1>{{ title }}</h1>", string(data))
}

func TestFS_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		fsys := newFS(t, &fakeClient{}, "")
		_, err := fsys.Open("nope.txt")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("invalid path", func(t *testing.T) {
		t.Parallel()
		client := &fakeClient{}
		fsys := newFS(t, client, "")
		for _, name := range []string{"../secret", "/abs", ".", ""} {
			_, err := fsys.Open(name)
			assert.ErrorIs(t, err, fs.ErrInvalid, name)
		}
		assert.Empty(t, client.keys)
	})

	t.Run("access denied", func(t *testing.T) {
		t.Parallel()
		fsys := newFS(t, &fakeClient{err: &smithy.GenericAPIError{Code: "AccessDenied"}}, "")
		_, err := fsys.Open("a.txt")
		assert.ErrorIs(t, err, s3.ErrAccessDenied)
	})

	t.Run("unavailable", func(t *testing.T) {
		t.Parallel()
		fsys := newFS(t, &fakeClient{err: &smithy.GenericAPIError{Code: "SlowDown"}}, "")
		_, err := fsys.Open("a.txt")
		assert.ErrorIs(t, err, s3.ErrUnavailable)
	})

	t.Run("no such bucket", func(t *testing.T) {
		t.Parallel()
		fsys := newFS(t, &fakeClient{err: &smithy.GenericAPIError{Code: "NoSuchBucket"}}, "")
		_, err := fsys.Open("a.txt")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		fsys := newFS(t, &fakeClient{err: boom}, "")
		_, err := fsys.Open("a.txt")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		fsys := newFS(t, &fakeClient{objects: map[string]string{"big.bin": "0123456789"}}, "", s3.WithMaxObjectSize(4))
		_, err := fsys.Open("big.bin")
		assert.ErrorIs(t, err, s3.ErrTooLarge)
	})
}
