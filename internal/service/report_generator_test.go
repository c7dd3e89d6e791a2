package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/genai"
)

type contentGeneratorStub struct {
	requests []genai.Request
	resp     *genai.Response
	err      error
}

func (s *contentGeneratorStub) GenerateContent(ctx context.Context, req genai.Request) (*genai.Response, error) {
	s.requests = append(s.requests, req)
	return s.resp, s.err
}

var testGeneratorConfig = GeneratorConfig{
	MaxOutputTokens:    2000,
	TutorTemperature:   0.7,
	MedicalTemperature: 0.1,
	RefineTemperature:  0.7,
}

func TestReportGeneratorRequestParameters(t *testing.T) {
	client := &contentGeneratorStub{resp: &genai.Response{Text: "texto"}}
	gen := NewReportGenerator(client, testGeneratorConfig, nil)

	text, err := gen.Generate(context.Background(), "prompt", models.ReportMedical)
	require.NoError(t, err)
	assert.Equal(t, "texto", text)
	_, err = gen.Generate(context.Background(), "prompt", models.ReportTutor)
	require.NoError(t, err)
	_, err = gen.Refine(context.Background(), "antigo", "mais curto")
	require.NoError(t, err)

	require.Len(t, client.requests, 3)
	assert.Equal(t, 0.1, client.requests[0].Temperature)
	assert.Equal(t, 0.7, client.requests[1].Temperature)
	assert.Equal(t, 2000, client.requests[0].MaxOutputTokens)
	assert.Len(t, client.requests[0].SafetySettings, 5)
	assert.Len(t, client.requests[2].SafetySettings, 4)
	assert.Contains(t, client.requests[2].Prompt, "antigo")
	assert.Contains(t, client.requests[2].Prompt, "mais curto")
	assert.Equal(t, refineSystemInstruction, client.requests[2].SystemInstruction)
}

func TestReportGeneratorFailureMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want *appErrors.Error
	}{
		{name: "safety", err: &genai.Failure{Kind: genai.SafetyBlocked, Detail: "SAFETY"}, want: appErrors.ErrSafetyBlocked},
		{name: "empty", err: &genai.Failure{Kind: genai.EmptyCompletion, Detail: "MAX_TOKENS"}, want: appErrors.ErrEmptyCompletion},
		{name: "transport", err: &genai.Failure{Kind: genai.TransportError, Err: errors.New("dial tcp: refused")}, want: appErrors.ErrUpstreamFailure},
		{name: "untyped", err: errors.New("boom"), want: appErrors.ErrUpstreamFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := NewReportGenerator(&contentGeneratorStub{err: tc.err}, testGeneratorConfig, nil)
			_, err := gen.Generate(context.Background(), "prompt", models.ReportTutor)
			require.Error(t, err)
			appErr := appErrors.FromError(err)
			assert.Equal(t, tc.want.Code, appErr.Code)
			assert.Equal(t, tc.want.Status, appErr.Status)
		})
	}

	gen := NewReportGenerator(&contentGeneratorStub{err: &genai.Failure{Kind: genai.EmptyCompletion, Detail: "MAX_TOKENS"}}, testGeneratorConfig, nil)
	_, err := gen.Refine(context.Background(), "a", "b")
	assert.Contains(t, appErrors.FromError(err).Message, "MAX_TOKENS")
}

func TestReportGeneratorWithoutClient(t *testing.T) {
	gen := NewReportGenerator(nil, testGeneratorConfig, nil)
	_, err := gen.Generate(context.Background(), "prompt", models.ReportTutor)
	assert.True(t, errors.Is(err, appErrors.ErrGeneratorMissing))
}
