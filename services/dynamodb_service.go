package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/michaeljabbour/openai-images-mcp/models"
)

// DynamoStore persists whole conversation records in a DynamoDB table
// keyed by conversation id. Intended for a local DynamoDB endpoint (dummy
// static credentials); it exists for setups that already run one and want
// conversations there instead of loose JSON files.
type DynamoStore struct {
	db    *dynamodb.Client
	table string
}

func NewDynamoStore(endpoint, region, table string) (*DynamoStore, error) {
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{URL: endpoint}, nil
	})

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(region),
		awsconfig.WithEndpointResolverWithOptions(customResolver),
		awsconfig.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID: "dummy", SecretAccessKey: "dummy", SessionToken: "dummy",
			},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	store := &DynamoStore{db: dynamodb.NewFromConfig(cfg), table: table}
	store.ensureTableExists()
	return store, nil
}

// ensureTableExists is best-effort: the table usually exists already and
// the create call just fails with ResourceInUseException.
func (ds *DynamoStore) ensureTableExists() {
	_, _ = ds.db.CreateTable(context.TODO(), &dynamodb.CreateTableInput{
		TableName: aws.String(ds.table),
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String("ConversationID"),
				AttributeType: types.ScalarAttributeTypeS,
			},
		},
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String("ConversationID"),
				KeyType:       types.KeyTypeHash,
			},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
}

func (ds *DynamoStore) Create(mode models.DialogueMode) (*models.Conversation, error) {
	conv := NewConversation(mode)
	if err := ds.Save(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (ds *DynamoStore) Load(id string) (*models.Conversation, error) {
	result, err := ds.db.GetItem(context.TODO(), &dynamodb.GetItemInput{
		TableName: aws.String(ds.table),
		Key: map[string]types.AttributeValue{
			"ConversationID": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("load conversation %s: %w", id, err)
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}
	return decodeDynamoRecord(result.Item)
}

func (ds *DynamoStore) Save(conv *models.Conversation) error {
	record, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", conv.ID, err)
	}

	_, err = ds.db.PutItem(context.TODO(), &dynamodb.PutItemInput{
		TableName: aws.String(ds.table),
		Item: map[string]types.AttributeValue{
			"ConversationID": &types.AttributeValueMemberS{Value: conv.ID},
			"UpdatedAt":      &types.AttributeValueMemberS{Value: conv.UpdatedAt.Format(time.RFC3339)},
			"Record":         &types.AttributeValueMemberS{Value: string(record)},
		},
	})
	if err != nil {
		return fmt.Errorf("save conversation %s: %w", conv.ID, err)
	}
	return nil
}

func (ds *DynamoStore) Delete(id string) error {
	if _, err := ds.Load(id); err != nil {
		return err
	}
	_, err := ds.db.DeleteItem(context.TODO(), &dynamodb.DeleteItemInput{
		TableName: aws.String(ds.table),
		Key: map[string]types.AttributeValue{
			"ConversationID": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return fmt.Errorf("delete conversation %s: %w", id, err)
	}
	return nil
}

func (ds *DynamoStore) List() ([]models.ConversationSummary, error) {
	conversations, err := ds.scanAll()
	if err != nil {
		return nil, err
	}
	summaries := make([]models.ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		summaries = append(summaries, summarize(conv))
	}
	sortSummaries(summaries)
	return summaries, nil
}

func (ds *DynamoStore) Search(query string) ([]models.ConversationSummary, error) {
	conversations, err := ds.scanAll()
	if err != nil {
		return nil, err
	}

	var matches []models.ConversationSummary
	for _, conv := range conversations {
		if excerpt, ok := matchConversation(conv, query); ok {
			summary := summarize(conv)
			summary.MatchingMessage = excerpt
			matches = append(matches, summary)
		}
		if len(matches) >= searchLimit {
			break
		}
	}
	sortSummaries(matches)
	return matches, nil
}

func (ds *DynamoStore) Stats() (models.StoreStats, error) {
	stats := models.StoreStats{Location: "dynamodb:" + ds.table}
	var startKey map[string]types.AttributeValue
	for {
		result, err := ds.db.Scan(context.TODO(), &dynamodb.ScanInput{
			TableName:         aws.String(ds.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return models.StoreStats{}, fmt.Errorf("scan conversations: %w", err)
		}
		for _, item := range result.Items {
			record, ok := item["Record"].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}
			stats.Conversations++
			stats.TotalBytes += int64(len(record.Value))
		}
		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}
	return stats, nil
}

func (ds *DynamoStore) scanAll() ([]*models.Conversation, error) {
	var conversations []*models.Conversation
	var startKey map[string]types.AttributeValue
	for {
		result, err := ds.db.Scan(context.TODO(), &dynamodb.ScanInput{
			TableName:         aws.String(ds.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan conversations: %w", err)
		}
		for _, item := range result.Items {
			conv, err := decodeDynamoRecord(item)
			if err != nil {
				continue
			}
			conversations = append(conversations, conv)
		}
		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}
	return conversations, nil
}

func decodeDynamoRecord(item map[string]types.AttributeValue) (*models.Conversation, error) {
	record, ok := item["Record"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("conversation item missing record attribute")
	}
	var conv models.Conversation
	if err := json.Unmarshal([]byte(record.Value), &conv); err != nil {
		return nil, fmt.Errorf("decode conversation record: %w", err)
	}
	return &conv, nil
}
