package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"valet_parking/internal/domain"
)

var ErrLPRDisabled = errors.New("plate recognition is not enabled")
var ErrPlateNotDetected = errors.New("no licence plate detected in image")

// TextDetector is the slice of the Rekognition client the service calls.
type TextDetector interface {
	DetectText(ctx context.Context, params *rekognition.DetectTextInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectTextOutput, error)
}

// plateRegex matches Indian registration plates once spaces and dashes are removed,
// e.g. MH12AB1234, DL3CAF0001.
var plateRegex = regexp.MustCompile(`^[A-Z]{2}[0-9]{1,2}[A-Z]{1,3}[0-9]{4}$`)

type LPRService struct {
	detector TextDetector
}

// NewLPRService accepts a nil detector when recognition is disabled.
func NewLPRService(detector TextDetector) *LPRService {
	return &LPRService{detector: detector}
}

func (s *LPRService) RecognizePlate(ctx context.Context, dto domain.LPRRequestDTO) (*domain.LPRResponseDTO, error) {
	raw := dto.ImageBase64
	if i := strings.Index(raw, ","); strings.HasPrefix(raw, "data:") && i > 0 {
		raw = raw[i+1:]
	}
	image, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(image) == 0 {
		return nil, fmt.Errorf("%w: image_base64 is not valid base64", ErrValidation)
	}
	plate, confidence, err := s.ProcessImage(ctx, image)
	if err != nil {
		return nil, err
	}
	return &domain.LPRResponseDTO{DetectedPlate: plate, Confidence: confidence}, nil
}

// ProcessImage runs Rekognition DetectText and keeps the most confident
// line or word that looks like a plate.
func (s *LPRService) ProcessImage(ctx context.Context, image []byte) (string, float32, error) {
	if s.detector == nil {
		return "", 0, ErrLPRDisabled
	}

	result, err := s.detector.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: image},
	})
	if err != nil {
		log.Printf("LPRService: DetectText failed: %v", err)
		return "", 0, fmt.Errorf("LPRService: rekognition: %w", err)
	}

	var best string
	var maxConfidence float32
	for _, td := range result.TextDetections {
		if td.Type != types.TextTypesLine && td.Type != types.TextTypesWord {
			continue
		}
		if td.DetectedText == nil || td.Confidence == nil {
			continue
		}
		candidate := strings.NewReplacer(" ", "", "-", "", ".", "").Replace(strings.ToUpper(*td.DetectedText))
		if plateRegex.MatchString(candidate) && *td.Confidence > maxConfidence {
			best = candidate
			maxConfidence = *td.Confidence
		}
	}

	if best == "" {
		log.Printf("LPRService: no plate among %d text detections", len(result.TextDetections))
		return "", 0, ErrPlateNotDetected
	}
	log.Printf("LPRService: detected plate %s (%.2f)", best, maxConfidence)
	return best, maxConfidence, nil
}
