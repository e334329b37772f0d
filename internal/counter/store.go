package counter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/optistyle/core-engine/internal/awsx"
)

const (
	// counterID keys the single invoice counter item in the counters table.
	counterID = "invoice_counter"

	// maxSequence is the last invoice number the 4-digit format can express.
	maxSequence = 9999
)

// ErrSequenceExhausted is returned when a year's sequence would exceed maxSequence.
var ErrSequenceExhausted = errors.New("invoice sequence exhausted for current year")

// Store hands out sequential invoice numbers backed by a single DynamoDB item
// {counter_id, invoice_year, invoice_count}. Increments go through conditional
// writes, so concurrent callers never observe the same pre-increment value.
type Store struct {
	client     awsx.DynamoDBAPI
	tableName  string
	maxRetries int
	nowFunc    func() time.Time
}

// NewStore returns a configured Store.
func NewStore(client awsx.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:     client,
		tableName:  tableName,
		maxRetries: 5,
		nowFunc:    time.Now,
	}
}

// Next returns the next invoice number, formatted OPTI-INV-<year>-<0-padded seq>.
// The first call of a new calendar year resets the sequence to 0001.
func (s *Store) Next(ctx context.Context) (string, error) {
	year := s.nowFunc().Year()
	seq, err := s.nextSequence(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("OPTI-INV-%d-%04d", year, seq), nil
}

// nextSequence performs the atomic increment-or-reset(year) -> count contract.
// Two conditional writes cover all states:
//   - increment succeeds only while the stored year matches and the sequence
//     has headroom;
//   - reset succeeds only while the item is missing or holds a stale year.
//
// A conditional failure on both means another request moved the counter under
// us; we retry. If retries exhaust, the caller aborts order creation.
func (s *Store) nextSequence(ctx context.Context, year int) (int, error) {
	yearAttr := &types.AttributeValueMemberN{Value: strconv.Itoa(year)}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		out, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
			TableName: &s.tableName,
			Key: map[string]types.AttributeValue{
				"counter_id": &types.AttributeValueMemberS{Value: counterID},
			},
			UpdateExpression:    awsString("SET invoice_count = invoice_count + :one"),
			ConditionExpression: awsString("invoice_year = :year AND invoice_count < :max"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":one":  &types.AttributeValueMemberN{Value: "1"},
				":year": yearAttr,
				":max":  &types.AttributeValueMemberN{Value: strconv.Itoa(maxSequence)},
			},
			ReturnValues: types.ReturnValueUpdatedNew,
		})
		if err == nil {
			countAttr, ok := out.Attributes["invoice_count"].(*types.AttributeValueMemberN)
			if !ok {
				return 0, fmt.Errorf("counter update returned no invoice_count")
			}
			seq, perr := strconv.Atoi(countAttr.Value)
			if perr != nil {
				return 0, fmt.Errorf("parse invoice_count: %w", perr)
			}
			return seq, nil
		}
		if !isConditionalFailure(err) {
			return 0, fmt.Errorf("increment invoice counter: %w", err)
		}

		exhausted, err := s.isExhausted(ctx, year)
		if err != nil {
			return 0, err
		}
		if exhausted {
			return 0, ErrSequenceExhausted
		}

		// Item missing or left over from a previous year: start the new
		// year's sequence at 1. The condition loses to a concurrent reset.
		_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
			TableName: &s.tableName,
			Item: map[string]types.AttributeValue{
				"counter_id":    &types.AttributeValueMemberS{Value: counterID},
				"invoice_year":  yearAttr,
				"invoice_count": &types.AttributeValueMemberN{Value: "1"},
			},
			ConditionExpression: awsString("attribute_not_exists(counter_id) OR invoice_year <> :year"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":year": yearAttr,
			},
		})
		if err == nil {
			return 1, nil
		}
		if !isConditionalFailure(err) {
			return 0, fmt.Errorf("reset invoice counter: %w", err)
		}
	}

	return 0, fmt.Errorf("invoice counter: write conflict retries exhausted")
}

// isExhausted reports whether the stored counter already sits at maxSequence
// for the given year.
func (s *Store) isExhausted(ctx context.Context, year int) (bool, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"counter_id": &types.AttributeValueMemberS{Value: counterID},
		},
	})
	if err != nil {
		return false, fmt.Errorf("read invoice counter: %w", err)
	}
	if len(out.Item) == 0 {
		return false, nil
	}
	storedYear, ok := out.Item["invoice_year"].(*types.AttributeValueMemberN)
	if !ok || storedYear.Value != strconv.Itoa(year) {
		return false, nil
	}
	count, ok := out.Item["invoice_count"].(*types.AttributeValueMemberN)
	if !ok {
		return false, nil
	}
	n, err := strconv.Atoi(count.Value)
	if err != nil {
		return false, fmt.Errorf("parse invoice_count: %w", err)
	}
	return n >= maxSequence, nil
}

func isConditionalFailure(err error) bool {
	var cc *types.ConditionalCheckFailedException
	if errors.As(err, &cc) {
		return true
	}
	var api smithy.APIError
	return errors.As(err, &api) && api.ErrorCode() == "ConditionalCheckFailedException"
}

func awsString(s string) *string { return &s }
