package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/symnmf/blobstore"
	"github.com/hupe1980/symnmf/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	r := New("data/points.txt.zst", 2, 4, 2)
	r.CreatedAt = time.Date(2026, 3, 1, 12, 30, 0, 5, time.UTC)
	r.NMF.Score = 0.93
	r.NMF.Iterations = 12
	r.NMF.Converged = true
	r.NMF.Labels = []int{0, 0, 1, 1}
	r.KMeans.Fail(errs.Numerical("kmeans.Train", "cluster 1 is empty after iteration 1"))
	return r
}

func TestReport_JSON(t *testing.T) {
	r := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, r.Encode(&buf))
	assert.Contains(t, buf.String(), `"algorithm": "nmf"`)
	assert.Contains(t, buf.String(), `"created_at": "2026-03-01T12:30:00.000000005Z"`)

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, r.Dataset, got.Dataset)
	assert.Equal(t, r.NMF.Labels, got.NMF.Labels)
	assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, got.NMF.OK())
	assert.EqualError(t, got.KMeans.Err(), r.KMeans.Error)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(bytes.NewBufferString("{"))
	assert.Error(t, err)
}

func TestBlobSink(t *testing.T) {
	store := blobstore.NewMemoryStore()
	sink := NewBlobSink(store, "reports")
	r := sampleReport()

	key := sink.Key(r)
	assert.Equal(t, "reports/points-k2-20260301T123000.000000005Z.json", key)

	require.NoError(t, sink.Archive(context.Background(), r))

	data, err := blobstore.ReadFile(context.Background(), store, key)
	require.NoError(t, err)
	got, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 4, got.N)
}

type mockDynamo struct {
	mock.Mock
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.PutItemOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestDynamoSink(t *testing.T) {
	client := new(mockDynamo)
	sink := NewDynamoSink(client, "symnmf-runs")

	client.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		s := func(k string) string {
			v, ok := in.Item[k].(*types.AttributeValueMemberS)
			if !ok {
				return ""
			}
			return v.Value
		}
		n := func(k string) string {
			v, ok := in.Item[k].(*types.AttributeValueMemberN)
			if !ok {
				return ""
			}
			return v.Value
		}
		return *in.TableName == "symnmf-runs" &&
			s("dataset") == "data/points.txt.zst" &&
			s("created_at") == "2026-03-01T12:30:00.000000005Z" &&
			n("k") == "2" &&
			n("nmf_score") == "0.93" &&
			n("nmf_iterations") == "12" &&
			s("kmeans_error") != "" &&
			in.Item["kmeans_score"] == nil &&
			*in.ConditionExpression == "attribute_not_exists(created_at)"
	})).Return(&dynamodb.PutItemOutput{}, nil).Once()

	require.NoError(t, sink.Archive(context.Background(), sampleReport()))
	client.AssertExpectations(t)
}

func TestDynamoSink_Conflict(t *testing.T) {
	client := new(mockDynamo)
	sink := NewDynamoSink(client, "symnmf-runs")

	client.On("PutItem", mock.Anything, mock.Anything).
		Return(nil, &types.ConditionalCheckFailedException{}).Once()

	err := sink.Archive(context.Background(), sampleReport())
	var conflict *types.ConditionalCheckFailedException
	assert.ErrorAs(t, err, &conflict)
}
