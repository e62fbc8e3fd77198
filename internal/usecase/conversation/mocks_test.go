package conversation

import (
	"context"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/stretchr/testify/mock"
)

type generatorMock struct {
	mock.Mock
}

func (g *generatorMock) Generate(ctx context.Context, req *entity.GenerationRequest) (string, error) {
	args := g.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type researcherMock struct {
	mock.Mock
}

func (r *researcherMock) Guidance(ctx context.Context, docType entity.DocumentTypeID, country string) (string, error) {
	args := r.Called(ctx, docType, country)
	return args.String(0), args.Error(1)
}

type rendererMock struct {
	mock.Mock
}

func (r *rendererMock) Render(docType entity.DocumentTypeID, fields []entity.Field, lang entity.Language) (string, error) {
	args := r.Called(docType, fields, lang)
	return args.String(0), args.Error(1)
}

type classifierFunc func(string, entity.Language) (entity.DocumentTypeID, bool)

func (f classifierFunc) Classify(message string, lang entity.Language) (entity.DocumentTypeID, bool) {
	return f(message, lang)
}
