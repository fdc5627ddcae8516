package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"healthtrack/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrUnknownPlatform = errors.New("unknown platform")

// snsAPI is the part of the SNS client the push service uses.
type snsAPI interface {
	CreatePlatformEndpoint(ctx context.Context, in *awssns.CreatePlatformEndpointInput, optFns ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, in *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

type PushService struct {
	db          *gorm.DB
	sns         snsAPI
	platformArn string
	log         *zap.Logger
}

func NewPushService(db *gorm.DB, cfg aws.Config, platformArn string, log *zap.Logger) *PushService {
	return newPushService(db, awssns.NewFromConfig(cfg), platformArn, log)
}

func newPushService(db *gorm.DB, client snsAPI, platformArn string, log *zap.Logger) *PushService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PushService{db: db, sns: client, platformArn: platformArn, log: log}
}

type RegisterDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

// RegisterDevice creates the SNS endpoint and stores it; registering the
// same token again refreshes the stored endpoint.
func (p *PushService) RegisterDevice(ctx context.Context, userID uint, platform, token string) (*models.UserDevice, error) {
	platform = strings.ToLower(platform)
	if platform != "android" && platform != "ios" {
		return nil, ErrUnknownPlatform
	}
	if p.platformArn == "" {
		return nil, fmt.Errorf("%w: SNS_PLATFORM_ARN not set", ErrUnavailable)
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.platformArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, fmt.Errorf("create endpoint: %w", err)
	}

	dev := models.UserDevice{UserID: userID, TokenHash: tokenHash(token)}
	err = p.db.WithContext(ctx).
		Where("user_id = ? AND token_hash = ?", userID, dev.TokenHash).
		Assign(models.UserDevice{
			Platform:    platform,
			EndpointARN: aws.ToString(out.EndpointArn),
			Enabled:     true,
			UpdatedAt:   time.Now(),
		}).
		FirstOrCreate(&dev).Error
	if err != nil {
		return nil, fmt.Errorf("save device: %w", err)
	}
	return &dev, nil
}

// PushToUser publishes to every enabled device; failures are logged only.
func (p *PushService) PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string) int {
	var devices []models.UserDevice
	if err := p.db.WithContext(ctx).Where("user_id = ? AND enabled = ?", userID, true).Find(&devices).Error; err != nil {
		p.log.Warn("load devices failed", zap.Uint("user_id", userID), zap.Error(err))
		return 0
	}
	if len(devices) == 0 {
		return 0
	}

	gcm, _ := json.Marshal(map[string]any{
		"notification": map[string]string{"title": title, "body": body},
		"data":         data,
	})
	raw, _ := json.Marshal(map[string]string{
		"default": body,
		"GCM":     string(gcm),
	})

	sent := 0
	for _, d := range devices {
		_, err := p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		})
		if err != nil {
			p.log.Warn("sns publish failed", zap.Uint("device_id", d.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}
