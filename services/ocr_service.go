package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// OCRService extracts text lines from receipt/screenshot images via
// Rekognition.
type OCRService struct {
	client *rekognition.Client
}

func NewOCRService() (*OCRService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &OCRService{client: rekognition.NewFromConfig(cfg)}, nil
}

// DetectLines returns the LINE-level detections for a base64 data-URI
// image, in reading order as the service emits them.
func (s *OCRService) DetectLines(ctx context.Context, dataURI string) ([]OCRLine, error) {
	data, err := decodeImageDataURI(dataURI)
	if err != nil {
		return nil, err
	}

	out, err := s.client.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: data},
	})
	if err != nil {
		return nil, err
	}

	var lines []OCRLine
	for _, det := range out.TextDetections {
		if det.Type != types.TextTypesLine || det.DetectedText == nil {
			continue
		}
		line := OCRLine{Text: *det.DetectedText}
		if det.Confidence != nil {
			line.Confidence = float64(*det.Confidence)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func decodeImageDataURI(dataURI string) ([]byte, error) {
	if !strings.HasPrefix(dataURI, "data:image") {
		return nil, errors.New("invalid data URI")
	}
	idx := strings.Index(dataURI, "base64,")
	if idx < 0 {
		return nil, errors.New("data URI is not base64 encoded")
	}
	return base64.StdEncoding.DecodeString(dataURI[idx+len("base64,"):])
}
