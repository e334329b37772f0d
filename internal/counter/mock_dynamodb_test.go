package counter

import (
	"context"
	"errors"
	"strconv"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// counterMock is a small in-memory stand-in for the counters table. It
// evaluates the two condition expressions the store issues literally, under a
// mutex, so concurrent Next calls exercise the same serialization the real
// table provides.
type counterMock struct {
	mu     sync.Mutex
	exists bool
	year   int
	count  int

	updateCalls int
	putCalls    int
	getCalls    int

	// failNextUpdates injects a spurious conditional failure on the next n
	// UpdateItem calls, simulating write conflicts.
	failNextUpdates int
	// hardErr, when set, is returned from every call.
	hardErr error
}

func newCounterMock() *counterMock {
	return &counterMock{}
}

func (m *counterMock) seed(year, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exists = true
	m.year = year
	m.count = count
}

func (m *counterMock) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.hardErr != nil {
		return nil, m.hardErr
	}
	if m.failNextUpdates > 0 {
		m.failNextUpdates--
		return nil, &types.ConditionalCheckFailedException{}
	}
	if params.ConditionExpression == nil || *params.ConditionExpression != "invoice_year = :year AND invoice_count < :max" {
		return nil, errors.New("unexpected update condition")
	}
	year := numValue(params.ExpressionAttributeValues[":year"])
	max := numValue(params.ExpressionAttributeValues[":max"])
	if !m.exists || m.year != year || m.count >= max {
		return nil, &types.ConditionalCheckFailedException{}
	}
	m.count++
	return &dyn.UpdateItemOutput{
		Attributes: map[string]types.AttributeValue{
			"invoice_count": &types.AttributeValueMemberN{Value: strconv.Itoa(m.count)},
		},
	}, nil
}

func (m *counterMock) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	if m.hardErr != nil {
		return nil, m.hardErr
	}
	if params.ConditionExpression == nil || *params.ConditionExpression != "attribute_not_exists(counter_id) OR invoice_year <> :year" {
		return nil, errors.New("unexpected put condition")
	}
	year := numValue(params.ExpressionAttributeValues[":year"])
	if m.exists && m.year == year {
		return nil, &types.ConditionalCheckFailedException{}
	}
	m.exists = true
	m.year = numValue(params.Item["invoice_year"])
	m.count = numValue(params.Item["invoice_count"])
	return &dyn.PutItemOutput{}, nil
}

func (m *counterMock) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.hardErr != nil {
		return nil, m.hardErr
	}
	if !m.exists {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{
		Item: map[string]types.AttributeValue{
			"counter_id":    &types.AttributeValueMemberS{Value: counterID},
			"invoice_year":  &types.AttributeValueMemberN{Value: strconv.Itoa(m.year)},
			"invoice_count": &types.AttributeValueMemberN{Value: strconv.Itoa(m.count)},
		},
	}, nil
}

func (m *counterMock) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	return nil, errors.New("not implemented")
}

func (m *counterMock) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	return nil, errors.New("not implemented")
}

func numValue(av types.AttributeValue) int {
	n, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		return -1
	}
	v, err := strconv.Atoi(n.Value)
	if err != nil {
		return -1
	}
	return v
}
