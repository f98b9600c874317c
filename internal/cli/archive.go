package cli

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/hupe1980/symnmf/dataset"
	"github.com/hupe1980/symnmf/errs"
	"github.com/hupe1980/symnmf/report"
)

const dynamoScheme = "dynamodb://"

// newArchiver returns the report sink named by uri: dynamodb://<table> for
// a DynamoDB table, anything dataset.Resolve accepts for a blob prefix.
func newArchiver(ctx context.Context, uri string, opts ...dataset.Option) (report.Archiver, error) {
	if table, ok := strings.CutPrefix(uri, dynamoScheme); ok {
		if table == "" || strings.Contains(table, "/") {
			return nil, errs.Usage("cli", "want dynamodb://table, got %q", uri)
		}
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, errs.IO("cli", err, "load aws config")
		}
		return report.NewDynamoSink(dynamodb.NewFromConfig(awsCfg), table), nil
	}

	store, prefix, err := dataset.Resolve(ctx, uri, opts...)
	if err != nil {
		return nil, err
	}
	return report.NewBlobSink(store, prefix), nil
}
