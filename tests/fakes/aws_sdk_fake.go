package fakes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// FakeSecretsManagerClient is a fake of the AWS Secrets Manager client
// covering GetSecretValue.
type FakeSecretsManagerClient struct {
	// Secrets maps secret names to their data
	Secrets map[string]*SecretData
	// Errors maps secret names to errors to return
	Errors map[string]error
	// GetSecretValueFunc allows custom behavior for GetSecretValue
	GetSecretValueFunc func(ctx context.Context, params *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error)

	mu       sync.Mutex
	requests []secretsmanager.GetSecretValueInput
}

// SecretData holds the data for a fake secret
type SecretData struct {
	SecretString  *string
	SecretBinary  []byte
	VersionId     *string
	VersionStages []string
	CreatedDate   *time.Time
}

// NewFakeSecretsManagerClient creates an empty fake client
func NewFakeSecretsManagerClient() *FakeSecretsManagerClient {
	return &FakeSecretsManagerClient{
		Secrets: make(map[string]*SecretData),
		Errors:  make(map[string]error),
	}
}

// AddSecret adds a secret with arbitrary data, including one with no value
func (f *FakeSecretsManagerClient) AddSecret(name string, data *SecretData) {
	f.Secrets[name] = data
}

// AddSecretString adds a string secret
func (f *FakeSecretsManagerClient) AddSecretString(name, value string) {
	f.Secrets[name] = currentVersion(&SecretData{SecretString: aws.String(value)})
}

// AddSecretBinary adds a binary secret
func (f *FakeSecretsManagerClient) AddSecretBinary(name string, value []byte) {
	f.Secrets[name] = currentVersion(&SecretData{SecretBinary: value})
}

// AddError makes requests for name fail with err
func (f *FakeSecretsManagerClient) AddError(name string, err error) {
	f.Errors[name] = err
}

// AddDecryptionFailure makes requests for name fail the way Secrets Manager
// does when it cannot use the secret's KMS key
func (f *FakeSecretsManagerClient) AddDecryptionFailure(name string) {
	f.Errors[name] = &types.DecryptionFailure{
		Message: aws.String("Secrets Manager can't decrypt the protected secret text using the provided KMS key."),
	}
}

// Requests returns every GetSecretValue input received so far
func (f *FakeSecretsManagerClient) Requests() []secretsmanager.GetSecretValueInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]secretsmanager.GetSecretValueInput(nil), f.requests...)
}

// GetSecretValue fakes the GetSecretValue operation
func (f *FakeSecretsManagerClient) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.mu.Lock()
	f.requests = append(f.requests, *params)
	f.mu.Unlock()

	if f.GetSecretValueFunc != nil {
		return f.GetSecretValueFunc(ctx, params)
	}

	secretName := aws.ToString(params.SecretId)

	if err, exists := f.Errors[secretName]; exists {
		return nil, err
	}

	data, exists := f.Secrets[secretName]
	if !exists {
		return nil, &types.ResourceNotFoundException{
			Message: aws.String(fmt.Sprintf("Secrets Manager can't find the specified secret: %s", secretName)),
		}
	}

	return &secretsmanager.GetSecretValueOutput{
		ARN:           aws.String(fmt.Sprintf("arn:aws:secretsmanager:us-east-1:123456789012:secret:%s", secretName)),
		Name:          params.SecretId,
		SecretString:  data.SecretString,
		SecretBinary:  data.SecretBinary,
		VersionId:     data.VersionId,
		VersionStages: data.VersionStages,
		CreatedDate:   data.CreatedDate,
	}, nil
}

func currentVersion(data *SecretData) *SecretData {
	now := time.Now()
	data.VersionId = aws.String("v1-abc123")
	data.VersionStages = []string{"AWSCURRENT"}
	data.CreatedDate = &now
	return data
}
