// Package s3 exposes an Amazon S3 (or S3-compatible) bucket as a read-only
// fs.FS, so static assets and templates can be served from object storage.
//
//	assets, err := s3.New(ctx, s3.Config{
//		Bucket: "my-site",
//		Region: "eu-central-1",
//		Prefix: "public",
//	})
//	if err != nil {
//		return err
//	}
//	handler := static.New("", static.WithFS(assets))
//
// MinIO and similar services need Endpoint and ForcePathStyle:
//
//	cfg := s3.Config{
//		Bucket:         "my-bucket",
//		Region:         "us-east-1",
//		AccessKeyID:    "minioadmin",
//		SecretKey:      "minioadmin",
//		Endpoint:       "http://localhost:9000",
//		ForcePathStyle: true,
//	}
//
// Objects are buffered in memory on Open, up to DefaultMaxObjectSize unless
// WithMaxObjectSize says otherwise. Missing keys report fs.ErrNotExist.
package s3
