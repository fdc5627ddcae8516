package services

import (
	"context"
	"fmt"
	"strings"

	"healthtrack/models"
	"healthtrack/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"go.uber.org/zap"
)

const (
	maxPhotoLabels    = 8
	minLabelConfident = 75
)

// labels too generic to describe a meal
var genericLabels = map[string]bool{
	"food": true, "meal": true, "dish": true, "plate": true, "lunch": true,
	"dinner": true, "breakfast": true, "tableware": true, "cutlery": true, "produce": true,
}

type labelDetector interface {
	DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

type PhotoStore interface {
	UploadMealPhoto(ctx context.Context, img utils.DataURI, prefix string) (string, error)
}

type RecognitionService struct {
	client   labelDetector
	photos   PhotoStore
	analyzer *NutritionAnalyzer
	log      *zap.Logger
}

// NewRecognitionService accepts a nil photo store; photos are then not kept.
func NewRecognitionService(cfg aws.Config, photos PhotoStore, analyzer *NutritionAnalyzer, log *zap.Logger) *RecognitionService {
	return newRecognitionService(rekognition.NewFromConfig(cfg), photos, analyzer, log)
}

func newRecognitionService(client labelDetector, photos PhotoStore, analyzer *NutritionAnalyzer, log *zap.Logger) *RecognitionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecognitionService{client: client, photos: photos, analyzer: analyzer, log: log}
}

type RecognitionResult struct {
	Labels      []string             `json:"labels"`
	Description string               `json:"description"`
	PhotoURL    string               `json:"photo_url,omitempty"`
	Nutrition   models.NutritionInfo `json:"nutrition"`
}

// RecognizeMeal turns a photo into a meal description and analyzes it.
// Nothing is logged to the user's day.
func (r *RecognitionService) RecognizeMeal(ctx context.Context, userID uint, image, portion string) (*RecognitionResult, error) {
	img, err := utils.ParseDataURI(image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: img.Data},
		MaxLabels:     aws.Int32(maxPhotoLabels),
		MinConfidence: aws.Float32(minLabelConfident),
	})
	if err != nil {
		return nil, fmt.Errorf("detect labels: %w", err)
	}

	res := &RecognitionResult{Labels: []string{}}
	var specific []string
	for _, l := range out.Labels {
		name := aws.ToString(l.Name)
		if name == "" {
			continue
		}
		res.Labels = append(res.Labels, name)
		if !genericLabels[strings.ToLower(name)] {
			specific = append(specific, strings.ToLower(name))
		}
	}
	if len(specific) == 0 {
		return nil, ErrNoFoodRecognized
	}
	res.Description = strings.Join(specific, ", ")
	res.Nutrition = r.analyzer.AnalyzeMeal(ctx, res.Description, portion)

	if r.photos != nil {
		url, err := r.photos.UploadMealPhoto(ctx, img, fmt.Sprintf("user-%d", userID))
		if err != nil {
			r.log.Warn("meal photo upload failed", zap.Uint("user_id", userID), zap.Error(err))
		} else {
			res.PhotoURL = url
		}
	}
	return res, nil
}
