package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"healthtrack/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	mu        sync.Mutex
	endpoints int
	published []*awssns.PublishInput
	failARN   string
}

func (f *fakeSNS) CreatePlatformEndpoint(_ context.Context, in *awssns.CreatePlatformEndpointInput, _ ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.endpoints++
	return &awssns.CreatePlatformEndpointOutput{EndpointArn: aws.String("arn:endpoint/" + aws.ToString(in.Token))}, nil
}

func (f *fakeSNS) Publish(_ context.Context, in *awssns.PublishInput, _ ...func(*awssns.Options)) (*awssns.PublishOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if aws.ToString(in.TargetArn) == f.failARN {
		return nil, errors.New("endpoint disabled")
	}
	f.published = append(f.published, in)
	return &awssns.PublishOutput{}, nil
}

func TestRegisterDevice(t *testing.T) {
	db := newTestDB(t)
	sns := &fakeSNS{}
	push := newPushService(db, sns, "arn:app", nil)
	ctx := context.Background()

	_, err := push.RegisterDevice(ctx, 1, "blackberry", "tok")
	assert.ErrorIs(t, err, ErrUnknownPlatform)

	dev, err := push.RegisterDevice(ctx, 1, "iOS", "tok-a")
	require.NoError(t, err)
	assert.Equal(t, "ios", dev.Platform)
	assert.Equal(t, "arn:endpoint/tok-a", dev.EndpointARN)

	_, err = push.RegisterDevice(ctx, 1, "ios", "tok-a")
	require.NoError(t, err)
	var n int64
	require.NoError(t, db.Model(&models.UserDevice{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	_, err = newPushService(db, sns, "", nil).RegisterDevice(ctx, 1, "android", "tok")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPushWarnings_OnlyWarningsAndSkipsFailedDevices(t *testing.T) {
	db := newTestDB(t)
	sns := &fakeSNS{failARN: "arn:endpoint/bad"}
	push := newPushService(db, sns, "arn:app", nil)
	ctx := context.Background()

	_, err := push.RegisterDevice(ctx, 3, "android", "good")
	require.NoError(t, err)
	_, err = push.RegisterDevice(ctx, 3, "ios", "bad")
	require.NoError(t, err)

	n := NewNotifier(nil, push, nil)
	assert.False(t, n.PushWarnings(ctx, 3, "2024-03-10", []models.Suggestion{
		{Severity: models.SeverityInfo, Message: "nice"},
	}))
	assert.Empty(t, sns.published)

	assert.True(t, n.PushWarnings(ctx, 3, "2024-03-10", []models.Suggestion{
		{Severity: models.SeverityWarning, Message: "Drink more water."},
		{Severity: models.SeverityInfo, Message: "nice"},
	}))
	require.Len(t, sns.published, 1)
	assert.Contains(t, aws.ToString(sns.published[0].Message), "Drink more water.")
	assert.NotContains(t, aws.ToString(sns.published[0].Message), "nice")
}
