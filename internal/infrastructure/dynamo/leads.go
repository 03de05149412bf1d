package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/loan-landing-api/internal/domain"
)

// API is the subset of *dynamodb.Client the repositories call.
type API interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// LeadRepo provides typed DynamoDB operations for the leads table.
type LeadRepo struct {
	client    API
	tableName string
	now       func() time.Time
}

func NewLeadRepo(client API, tableName string) *LeadRepo {
	return &LeadRepo{client: client, tableName: tableName, now: time.Now}
}

func (r *LeadRepo) Put(ctx context.Context, l *domain.Lead) error {
	l.Kind = domain.LeadKind
	item, err := attributevalue.MarshalMap(l)
	if err != nil {
		return fmt.Errorf("marshal lead: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *LeadRepo) Get(ctx context.Context, leadID string) (*domain.Lead, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldLeadID, leadID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("lead not found: %w", domain.ErrNotFound)
	}
	var l domain.Lead
	if err := attributevalue.UnmarshalMap(out.Item, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// QueryRange returns leads created in [from, to], newest first.
// created_at is stored as a second-precision UTC RFC3339 string, so string
// order matches time order.
func (r *LeadRepo) QueryRange(ctx context.Context, from, to time.Time) ([]domain.Lead, error) {
	p := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(createdAtIndex),
		KeyConditionExpression: aws.String("#k = :k AND #c BETWEEN :from AND :to"),
		ExpressionAttributeNames: map[string]string{
			"#k": "kind",
			"#c": "created_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":k":    &types.AttributeValueMemberS{Value: domain.LeadKind},
			":from": &types.AttributeValueMemberS{Value: from.UTC().Format(time.RFC3339)},
			":to":   &types.AttributeValueMemberS{Value: to.UTC().Format(time.RFC3339)},
		},
		ScanIndexForward: aws.Bool(false),
	})

	leads := []domain.Lead{}
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []domain.Lead
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		leads = append(leads, page...)
	}
	return leads, nil
}

func (r *LeadRepo) UpdateStatus(ctx context.Context, leadID string, status domain.LeadStatus) (*domain.Lead, error) {
	return r.update(ctx, leadID, map[string]interface{}{fieldStatus: string(status)})
}

func (r *LeadRepo) UpdateMemo(ctx context.Context, leadID, memo string) (*domain.Lead, error) {
	return r.update(ctx, leadID, map[string]interface{}{fieldMemo: memo})
}

// update applies a SET expression to an existing lead and returns the new item.
func (r *LeadRepo) update(ctx context.Context, leadID string, updates map[string]interface{}) (*domain.Lead, error) {
	in, err := leadUpdateInput(r.tableName, leadID, updates, r.now())
	if err != nil {
		return nil, err
	}
	out, err := r.client.UpdateItem(ctx, in)
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("lead not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	var l domain.Lead
	if err := attributevalue.UnmarshalMap(out.Attributes, &l); err != nil {
		return nil, err
	}
	return &l, nil
}
