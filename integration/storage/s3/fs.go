package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultMaxObjectSize caps how much of one object is buffered in memory.
const DefaultMaxObjectSize = 32 << 20

// Client is the subset of the S3 API the filesystem uses.
type Client interface {
	GetObject(ctx context.Context, params *s3aws.GetObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error)
}

// Config describes the bucket to read from.
type Config struct {
	Bucket         string `env:"S3_BUCKET"`
	Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"` // For S3-compatible services like MinIO
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
	// Prefix is prepended to every object key, e.g. "assets/".
	Prefix string `env:"S3_PREFIX"`
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// Option configures an FS.
type Option func(*options)

type options struct {
	client        Client
	httpClient    *http.Client
	timeout       time.Duration
	maxObjectSize int64
}

// WithClient uses a pre-configured client instead of building one from Config.
func WithClient(c Client) Option {
	return func(o *options) {
		o.client = c
	}
}

// WithHTTPClient sets the HTTP client used by the SDK.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithTimeout bounds every object fetch.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithMaxObjectSize caps the bytes buffered for one object.
func WithMaxObjectSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxObjectSize = n
		}
	}
}

// FS is a read-only fs.FS over the objects of one bucket.
// Directories are not listed; opening a key that does not exist returns fs.ErrNotExist.
type FS struct {
	client        Client
	bucket        string
	prefix        string
	timeout       time.Duration
	maxObjectSize int64
}

var _ fs.FS = (*FS)(nil)

// New builds an FS. Credentials fall back to the default AWS chain when
// AccessKeyID or SecretKey is empty.
func New(ctx context.Context, cfg Config, opts ...Option) (*FS, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{
		timeout:       30 * time.Second,
		maxObjectSize: DefaultMaxObjectSize,
	}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		if o.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(o.httpClient))
		}

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}

		client = s3aws.NewFromConfig(awsConfig, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
		})
	}

	return &FS{
		client:        client,
		bucket:        cfg.Bucket,
		prefix:        strings.Trim(cfg.Prefix, "/"),
		timeout:       o.timeout,
		maxObjectSize: o.maxObjectSize,
	}, nil
}

// Open implements fs.FS by downloading the object named name.
func (f *FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	ctx := context.Background()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	out, err := f.client.GetObject(ctx, &s3aws.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
	})
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: classifyError(err, "get object")}
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, f.maxObjectSize+1))
	if err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: classifyError(err, "read object")}
	}
	if int64(len(data)) > f.maxObjectSize {
		return nil, &fs.PathError{Op: "read", Path: name, Err: ErrTooLarge}
	}

	info := fileInfo{name: path.Base(name), size: int64(len(data))}
	if out.LastModified != nil {
		info.modTime = *out.LastModified
	}

	return &file{Reader: bytes.NewReader(data), info: info}, nil
}

func (f *FS) key(name string) string {
	if f.prefix == "" {
		return name
	}
	return f.prefix + "/" + name
}

// file is an in-memory object body. It implements io.Seeker so it can be
// handed to http.ServeContent directly.
type file struct {
	*bytes.Reader
	info fileInfo
}

func (f *file) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *file) Close() error               { return nil }

type fileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (i fileInfo) Name() string       { return i.name }
func (i fileInfo) Size() int64        { return i.size }
func (i fileInfo) Mode() fs.FileMode  { return 0o444 }
func (i fileInfo) ModTime() time.Time { return i.modTime }
func (i fileInfo) IsDir() bool        { return false }
func (i fileInfo) Sys() any           { return nil }
