package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"

	"github.com/carpoolnu/sestmpl/internal/catalog"
)

// sesAPI is the subset of the SES client used here.
type sesAPI interface {
	CreateTemplate(ctx context.Context, in *ses.CreateTemplateInput, optFns ...func(*ses.Options)) (*ses.CreateTemplateOutput, error)
	UpdateTemplate(ctx context.Context, in *ses.UpdateTemplateInput, optFns ...func(*ses.Options)) (*ses.UpdateTemplateOutput, error)
	TestRenderTemplate(ctx context.Context, in *ses.TestRenderTemplateInput, optFns ...func(*ses.Options)) (*ses.TestRenderTemplateOutput, error)
}

// SES is a Client backed by the AWS SES v1 template API.
type SES struct {
	api    sesAPI
	logger zerolog.Logger
}

// NewSES builds an SES client from an AWS config.
// A non-empty endpoint overrides the service endpoint (LocalStack, VPC endpoints).
func NewSES(cfg aws.Config, endpoint string, logger zerolog.Logger) *SES {
	client := ses.NewFromConfig(cfg, func(o *ses.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return &SES{api: client, logger: logger}
}

// CreateTemplate creates tmpl. Returns ErrConflict if the name is taken.
func (s *SES) CreateTemplate(ctx context.Context, tmpl catalog.Template) error {
	s.logger.Debug().Str("template", tmpl.Name).Msg("ses CreateTemplate")
	_, err := s.api.CreateTemplate(ctx, &ses.CreateTemplateInput{Template: toSESTemplate(tmpl)})
	if err != nil {
		return classify("create", tmpl.Name, err)
	}
	return nil
}

// UpdateTemplate overwrites the remote template named tmpl.Name.
func (s *SES) UpdateTemplate(ctx context.Context, tmpl catalog.Template) error {
	s.logger.Debug().Str("template", tmpl.Name).Msg("ses UpdateTemplate")
	_, err := s.api.UpdateTemplate(ctx, &ses.UpdateTemplateInput{Template: toSESTemplate(tmpl)})
	if err != nil {
		return classify("update", tmpl.Name, err)
	}
	return nil
}

// RenderTemplate asks SES to render a stored template with the given JSON
// data, the same payload SendTemplatedEmail takes as TemplateData.
func (s *SES) RenderTemplate(ctx context.Context, name, data string) (string, error) {
	s.logger.Debug().Str("template", name).Msg("ses TestRenderTemplate")
	out, err := s.api.TestRenderTemplate(ctx, &ses.TestRenderTemplateInput{
		TemplateName: aws.String(name),
		TemplateData: aws.String(data),
	})
	if err != nil {
		return "", classify("render", name, err)
	}
	return aws.ToString(out.RenderedTemplate), nil
}

// toSESTemplate maps fields verbatim; placeholders are not touched.
func toSESTemplate(tmpl catalog.Template) *types.Template {
	return &types.Template{
		TemplateName: aws.String(tmpl.Name),
		SubjectPart:  aws.String(tmpl.Subject),
		HtmlPart:     aws.String(tmpl.HTML),
		TextPart:     aws.String(tmpl.Text),
	}
}

// classify converts an SDK error into ErrConflict, ErrNotFound or *RemoteError.
func classify(op, name string, err error) error {
	var exists *types.AlreadyExistsException
	if errors.As(err, &exists) {
		return fmt.Errorf("%s %s: %w", op, name, ErrConflict)
	}

	var missing *types.TemplateDoesNotExistException
	if errors.As(err, &missing) {
		return &RemoteError{Op: op, Name: name, Code: missing.ErrorCode(), Message: missing.ErrorMessage(), Err: ErrNotFound}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &RemoteError{Op: op, Name: name, Code: apiErr.ErrorCode(), Message: apiErr.ErrorMessage(), Err: err}
	}

	return &RemoteError{Op: op, Name: name, Message: err.Error(), Err: err}
}
