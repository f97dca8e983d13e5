package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/datapantry/pantry-gui/internal/logging"
)

const (
	// HTTPFetchTimeout bounds a single remote catalog download.
	HTTPFetchTimeout = 60 * time.Second
	// MaxCatalogSize caps catalog downloads; catalog files are small YAML
	// documents and anything larger is almost certainly not one.
	MaxCatalogSize = 8 << 20 // 8 MiB
)

// Options configures remote access for an Opener. Zero values fall back to
// the ambient environment (AWS default chain, anonymous Azure access).
type Options struct {
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	AzureAccount   string // storage account for az:// locations
	RequestTimeout time.Duration
}

// Opener opens catalogs from location strings. The zero-value package-level
// Open uses default options.
type Opener struct {
	opts   Options
	http   *http.Client
	logger *logging.Logger
}

// NewOpener creates an Opener with the given remote-access options.
func NewOpener(opts Options) *Opener {
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = HTTPFetchTimeout
	}

	// Retry policy mirrors the platform API client: transient network and
	// 5xx failures retry with backoff, everything else fails fast.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 4
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 15 * time.Second
	retryClient.HTTPClient = &http.Client{Timeout: opts.RequestTimeout}
	retryClient.Logger = &retryLogger{logger: logging.NewLogger("catalog-fetch")}

	return &Opener{
		opts:   opts,
		http:   retryClient.StandardClient(),
		logger: logging.NewLogger("catalog"),
	}
}

// retryLogger adapts the package logger to retryablehttp.LeveledLogger.
// Only retry-worthy failures are surfaced; per-request chatter is dropped.
type retryLogger struct {
	logger *logging.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Msgf("%s %v", msg, keysAndValues)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Msgf("%s %v", msg, keysAndValues)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {}

var defaultOpener = NewOpener(Options{})

// Open opens the catalog at location using default options. This is the
// collaborator the GUI's confirm action delegates to.
func Open(location string) (*Catalog, error) {
	return defaultOpener.Open(context.Background(), location)
}

// Open resolves location by scheme, fetches the catalog bytes inline, and
// parses them. Failures are wrapped in *OpenError and never retried beyond
// the HTTP client's own policy.
func (o *Opener) Open(ctx context.Context, location string) (*Catalog, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, &OpenError{Location: location, Err: errors.New("empty location")}
	}

	data, err := o.fetch(ctx, location)
	if err != nil {
		o.logger.Error().Err(err).Str("location", location).Msg("Catalog fetch failed")
		return nil, &OpenError{Location: location, Err: err}
	}

	cat, err := Parse(data, location)
	if err != nil {
		return nil, err
	}
	o.logger.Debug().Str("location", location).Int("sources", len(cat.Sources)).Msg("Opened catalog")
	return cat, nil
}

// Fetch retrieves the raw catalog document at location without parsing it.
// The CLI fetch command uses this to mirror catalogs locally.
func (o *Opener) Fetch(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, &OpenError{Location: location, Err: errors.New("empty location")}
	}
	data, err := o.fetch(ctx, location)
	if err != nil {
		return nil, &OpenError{Location: location, Err: err}
	}
	return data, nil
}

// fetch retrieves the raw catalog bytes for a location.
func (o *Opener) fetch(ctx context.Context, location string) ([]byte, error) {
	scheme := ""
	if i := strings.Index(location, "://"); i > 0 {
		scheme = strings.ToLower(location[:i])
	}

	switch scheme {
	case "":
		return o.fetchLocal(location)
	case "file":
		return o.fetchLocal(strings.TrimPrefix(location, "file://"))
	case "http", "https":
		return o.fetchHTTP(ctx, location)
	case "s3":
		return o.fetchS3(ctx, location)
	case "az", "abfs":
		return o.fetchAzure(ctx, location)
	default:
		return nil, fmt.Errorf("unsupported location scheme %q", scheme)
	}
}

func (o *Opener) fetchLocal(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a catalog file", path)
	}
	if info.Size() > MaxCatalogSize {
		return nil, fmt.Errorf("catalog file too large (%d bytes)", info.Size())
	}
	return os.ReadFile(path)
}

func (o *Opener) fetchHTTP(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := o.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, MaxCatalogSize))
}

// fetchS3 retrieves s3://bucket/key via the AWS SDK. Credentials come from
// explicit options when set, otherwise the SDK default chain.
func (o *Opener) fetchS3(ctx context.Context, location string) ([]byte, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, err
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("s3 location must be s3://bucket/key, got %q", location)
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if o.opts.S3Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(o.opts.S3Region))
	}
	if o.opts.S3AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.opts.S3AccessKey, o.opts.S3SecretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	return io.ReadAll(io.LimitReader(out.Body, MaxCatalogSize))
}

// fetchAzure retrieves az://container/blob from the configured storage
// account using anonymous access. Catalog blobs are expected to be readable
// without credentials; authenticated accounts should expose them over https.
func (o *Opener) fetchAzure(ctx context.Context, location string) ([]byte, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, err
	}
	container := u.Host
	blobPath := strings.TrimPrefix(u.Path, "/")
	if container == "" || blobPath == "" {
		return nil, fmt.Errorf("azure location must be az://container/blob, got %q", location)
	}
	if o.opts.AzureAccount == "" {
		return nil, errors.New("azure storage account not configured")
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", o.opts.AzureAccount)
	client, err := azblob.NewClientWithNoCredential(serviceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create azure client: %w", err)
	}

	resp, err := client.DownloadStream(ctx, container, blobPath, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("blob %s/%s not found in account %s", container, blobPath, o.opts.AzureAccount)
		}
		return nil, fmt.Errorf("download %s/%s: %w", container, blobPath, err)
	}
	defer resp.Body.Close()

	return io.ReadAll(io.LimitReader(resp.Body, MaxCatalogSize))
}
