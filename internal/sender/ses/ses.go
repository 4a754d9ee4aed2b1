// Package ses implements a Sender that delivers the forward payload via
// AWS SES v2.
package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/shineum/mail-forward-lite/internal/forward"
)

// Config holds the configuration for creating a Provider.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// SendEmailAPI is the interface for the SES v2 SendEmail operation.
// Used for testing with mock implementations.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Provider sends mail through the AWS SES v2 API. Each payload is delivered
// with a single SendEmail call; failures are not retried.
type Provider struct {
	client SendEmailAPI
}

// New creates a Provider with the given configuration.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	var opts []func(*awsconfig.LoadOptions) error

	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Provider{client: sesv2.NewFromConfig(awsCfg)}, nil
}

// NewWithClient creates a Provider with a custom client, used for testing.
func NewWithClient(client SendEmailAPI) *Provider {
	return &Provider{client: client}
}

// Send maps the forward payload onto a simple SES message and delivers it.
func (p *Provider) Send(ctx context.Context, payload *forward.Payload) error {
	input, err := buildSendInput(payload)
	if err != nil {
		return err
	}

	if _, err := p.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("SES send failed: %w", err)
	}
	return nil
}

// Name returns the backend name.
func (p *Provider) Name() string {
	return "ses"
}

// buildSendInput converts a forward payload into a SES SendEmailInput.
// The text/plain part maps to the text body and the text/html part, when
// present, to the HTML body.
func buildSendInput(payload *forward.Payload) (*sesv2.SendEmailInput, error) {
	text, ok := payload.TextPart()
	if !ok {
		return nil, fmt.Errorf("payload has no text/plain content part")
	}

	body := &types.Body{
		Text: &types.Content{
			Data:    aws.String(text.Value),
			Charset: aws.String("UTF-8"),
		},
	}
	if html, ok := payload.HTMLPart(); ok {
		body.Html = &types.Content{
			Data:    aws.String(html.Value),
			Charset: aws.String("UTF-8"),
		}
	}

	var to []string
	for _, p := range payload.Personalizations {
		for _, addr := range p.To {
			to = append(to, addr.Email)
		}
	}

	from := payload.From.Email
	if payload.From.Name != "" {
		from = fmt.Sprintf("%s <%s>", payload.From.Name, payload.From.Email)
	}

	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination:      &types.Destination{ToAddresses: to},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(payload.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: body,
			},
		},
	}, nil
}
