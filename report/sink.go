package report

import (
	"context"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/symnmf/blobstore"
)

// Archiver stores finished reports.
type Archiver interface {
	Archive(ctx context.Context, r *Report) error
}

// BlobSink writes reports as JSON blobs.
type BlobSink struct {
	store  blobstore.BlobStore
	prefix string
}

// NewBlobSink archives into store under prefix.
func NewBlobSink(store blobstore.BlobStore, prefix string) *BlobSink {
	return &BlobSink{store: store, prefix: prefix}
}

// Key returns the blob name r is archived under: the dataset's base name
// with its extensions stripped, the k value and the run timestamp.
func (s *BlobSink) Key(r *Report) string {
	base := path.Base(strings.ReplaceAll(r.Dataset, "\\", "/"))
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	if base == "" || base == "." || base == "/" {
		base = "dataset"
	}
	name := base + "-k" + strconv.Itoa(r.K) + "-" + r.CreatedAt.UTC().Format("20060102T150405.000000000Z") + ".json"
	return path.Join(s.prefix, name)
}

// Archive writes r.
func (s *BlobSink) Archive(ctx context.Context, r *Report) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	return s.store.Put(ctx, s.Key(r), data)
}

// DynamoClient is the subset of the DynamoDB API used by DynamoSink.
type DynamoClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoSink writes one item per report.
//
// Table schema:
//   - Partition key: dataset (string)
//   - Sort key: created_at (string, RFC 3339 with nanoseconds)
type DynamoSink struct {
	client DynamoClient
	table  string
}

// NewDynamoSink archives into table.
func NewDynamoSink(client DynamoClient, table string) *DynamoSink {
	return &DynamoSink{client: client, table: table}
}

// Archive puts r unless an item with the same key already exists.
func (s *DynamoSink) Archive(ctx context.Context, r *Report) error {
	body, err := r.Marshal()
	if err != nil {
		return err
	}

	item := map[string]types.AttributeValue{
		"dataset":    &types.AttributeValueMemberS{Value: r.Dataset},
		"created_at": &types.AttributeValueMemberS{Value: r.CreatedAt.UTC().Format(time.RFC3339Nano)},
		"k":          number(float64(r.K)),
		"n":          number(float64(r.N)),
		"dim":        number(float64(r.Dim)),
		"report":     &types.AttributeValueMemberS{Value: string(body)},
	}
	for _, p := range []*Pipeline{&r.NMF, &r.KMeans} {
		if err := p.Err(); err != nil {
			item[p.Algorithm+"_error"] = &types.AttributeValueMemberS{Value: err.Error()}
			continue
		}
		item[p.Algorithm+"_score"] = number(p.Score)
		item[p.Algorithm+"_iterations"] = number(float64(p.Iterations))
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(created_at)"),
	})
	return err
}

func number(v float64) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{Value: strconv.FormatFloat(v, 'f', -1, 64)}
}
