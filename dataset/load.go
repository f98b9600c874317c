package dataset

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/hupe1980/symnmf/blobstore"
	minioblob "github.com/hupe1980/symnmf/blobstore/minio"
	s3blob "github.com/hupe1980/symnmf/blobstore/s3"
	"github.com/hupe1980/symnmf/errs"
	"github.com/hupe1980/symnmf/resource"
)

type options struct {
	rc       *resource.Controller
	insecure bool
}

// Option configures Load and Open.
type Option func(*options)

// WithResourceController rate-limits blob reads through rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) { o.rc = rc }
}

// WithInsecure connects to minio:// endpoints over plain HTTP.
func WithInsecure() Option {
	return func(o *options) { o.insecure = true }
}

// Load reads name from store, decompresses it if needed and parses it.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Dataset, error) {
	var o options
	for _, fn := range optFns {
		fn(&o)
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, errs.IO("dataset.Load", err, "%s", name)
	}
	defer blob.Close()

	if err := o.rc.AcquireIO(ctx, int(blob.Size())); err != nil {
		return nil, err
	}

	raw, err := blobstore.ReadAll(ctx, blob)
	if err != nil {
		return nil, errs.IO("dataset.Load", err, "read %s", name)
	}

	data, err := Decompress(raw)
	if err != nil {
		return nil, errs.IO("dataset.Load", err, "decompress %s (%s)", name, Detect(raw))
	}

	ds, err := ParseBytes(data)
	if err != nil {
		return nil, err
	}
	ds.Name = name
	return ds, nil
}

// Open loads the dataset at uri. See Resolve for the accepted forms.
func Open(ctx context.Context, uri string, optFns ...Option) (*Dataset, error) {
	store, name, err := Resolve(ctx, uri, optFns...)
	if err != nil {
		return nil, err
	}
	return Load(ctx, store, name, optFns...)
}

// Location is a parsed dataset or report URI.
type Location struct {
	// Scheme is "file", "s3" or "minio".
	Scheme string
	// Endpoint is the MinIO host[:port]; empty otherwise.
	Endpoint string
	// Bucket is empty for files.
	Bucket string
	// Key is the object key or file path.
	Key string
}

// ParseURI splits uri into its storage location. Plain paths and file://
// URIs refer to the local filesystem.
func ParseURI(uri string) (Location, error) {
	if !strings.Contains(uri, "://") {
		if uri == "" {
			return Location{}, errs.Usage("dataset", "empty path")
		}
		return Location{Scheme: "file", Key: uri}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return Location{}, errs.Usage("dataset", "invalid uri %q", uri)
	}

	switch u.Scheme {
	case "file":
		if u.Path == "" {
			return Location{}, errs.Usage("dataset", "invalid uri %q", uri)
		}
		return Location{Scheme: "file", Key: filepath.FromSlash(u.Path)}, nil
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Location{}, errs.Usage("dataset", "want s3://bucket/key, got %q", uri)
		}
		return Location{Scheme: "s3", Bucket: u.Host, Key: key}, nil
	case "minio":
		bucket, key, ok := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		if u.Host == "" || !ok || bucket == "" || key == "" {
			return Location{}, errs.Usage("dataset", "want minio://endpoint/bucket/key, got %q", uri)
		}
		return Location{Scheme: "minio", Endpoint: u.Host, Bucket: bucket, Key: key}, nil
	default:
		return Location{}, errs.Usage("dataset", "unsupported scheme %q", u.Scheme)
	}
}

// Resolve returns the store holding uri and the blob name inside it.
func Resolve(ctx context.Context, uri string, optFns ...Option) (blobstore.BlobStore, string, error) {
	var o options
	for _, fn := range optFns {
		fn(&o)
	}

	loc, err := ParseURI(uri)
	if err != nil {
		return nil, "", err
	}

	switch loc.Scheme {
	case "s3":
		store, err := s3blob.New(ctx, loc.Bucket)
		if err != nil {
			return nil, "", errs.IO("dataset.Resolve", err, "%s", uri)
		}
		return store, loc.Key, nil
	case "minio":
		store, err := minioblob.Connect(loc.Endpoint, loc.Bucket, "", !o.insecure)
		if err != nil {
			return nil, "", errs.IO("dataset.Resolve", err, "%s", uri)
		}
		return store, loc.Key, nil
	default:
		return blobstore.NewLocalStore(""), loc.Key, nil
	}
}
