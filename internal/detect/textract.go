package detect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/fleetdocs/fleetdocs/constants"
)

// TextractDetector implements TextDetector on AWS Textract's asynchronous
// document-text-detection API.
type TextractDetector struct {
	client *textract.Client
	bucket string
	logger *slog.Logger
}

func NewTextractDetector(ctx context.Context, bucket, region string, logger *slog.Logger) (*TextractDetector, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("detect: load aws config: %w", err)
	}
	return &TextractDetector{
		client: textract.NewFromConfig(cfg),
		bucket: bucket,
		logger: logger,
	}, nil
}

func (d *TextractDetector) Submit(ctx context.Context, objectKey string) (string, error) {
	out, err := d.client.StartDocumentTextDetection(ctx, &textract.StartDocumentTextDetectionInput{
		DocumentLocation: &types.DocumentLocation{
			S3Object: &types.S3Object{
				Bucket: aws.String(d.bucket),
				Name:   aws.String(objectKey),
			},
		},
	})
	if err != nil {
		d.logger.Error("textract submit failed", "key", objectKey, "error", err)
		return "", fmt.Errorf("start text detection for %s: %w", objectKey, err)
	}
	jobID := aws.ToString(out.JobId)
	d.logger.Info("started text detection job", "job_id", jobID, "key", objectKey)
	return jobID, nil
}

func (d *TextractDetector) Poll(ctx context.Context, jobID string) (Result, error) {
	out, err := d.client.GetDocumentTextDetection(ctx, &textract.GetDocumentTextDetectionInput{
		JobId: aws.String(jobID),
	})
	if err != nil {
		var invalid *types.InvalidJobIdException
		if errors.As(err, &invalid) {
			return Result{}, fmt.Errorf("job %s: %w", jobID, ErrJobNotFound)
		}
		return Result{}, fmt.Errorf("get text detection results for %s: %w", jobID, err)
	}

	switch out.JobStatus {
	case types.JobStatusSucceeded:
		lines := collectLines(out.Blocks)
		// Results can span multiple pages; fetch them all in order.
		for out.NextToken != nil {
			out, err = d.client.GetDocumentTextDetection(ctx, &textract.GetDocumentTextDetectionInput{
				JobId:     aws.String(jobID),
				NextToken: out.NextToken,
			})
			if err != nil {
				return Result{}, fmt.Errorf("get text detection page for %s: %w", jobID, err)
			}
			lines = append(lines, collectLines(out.Blocks)...)
		}
		d.logger.Info("text detection succeeded", "job_id", jobID, "lines", len(lines))
		return Result{Status: constants.DetectionSucceeded, Lines: lines}, nil

	case types.JobStatusInProgress:
		return Result{Status: constants.DetectionInProgress}, nil

	default:
		d.logger.Error("text detection failed", "job_id", jobID, "status", out.JobStatus)
		return Result{Status: constants.DetectionFailed}, nil
	}
}

func collectLines(blocks []types.Block) []string {
	var lines []string
	for _, b := range blocks {
		if b.BlockType == types.BlockTypeLine {
			lines = append(lines, aws.ToString(b.Text))
		}
	}
	return lines
}
