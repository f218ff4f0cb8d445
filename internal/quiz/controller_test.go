package quiz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/guruai/internal/llm"
)

func newTestController(t *testing.T, mock *llm.MockProvider) *Controller {
	t.Helper()
	return NewController(New(mock, DefaultConfig()), nil)
}

func TestController_Start(t *testing.T) {
	mock := llm.NewMockProvider().Text(quizJSON(t, sampleQuestions()))
	c := newTestController(t, mock)

	s, err := c.Start(context.Background(), photosynthesis)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Same(t, s, c.Session())
	assert.False(t, c.Loading())
	assert.NoError(t, c.Err())
	assert.Equal(t, "Photosynthesis", c.Last().Topic)
}

func TestController_BusyWhileLoading(t *testing.T) {
	c := newTestController(t, llm.NewMockProvider())

	a, err := c.Begin(photosynthesis)
	require.NoError(t, err)
	assert.True(t, c.Loading())

	_, err = c.Begin(photosynthesis)
	assert.ErrorIs(t, err, ErrBusy)
	_, err = c.Retake()
	assert.ErrorIs(t, err, ErrBusy)

	_, err = c.Finish(a, Result{Questions: sampleQuestions()})
	require.NoError(t, err)
	assert.False(t, c.Loading())
}

func TestController_EmptyTopic(t *testing.T) {
	c := newTestController(t, llm.NewMockProvider())
	_, err := c.Begin(Input{Topic: " "})
	assert.ErrorIs(t, err, ErrEmptyTopic)
	assert.False(t, c.Loading())
}

func TestController_FailureKeepsTopic(t *testing.T) {
	mock := llm.NewMockProvider().Text(`[]`)
	c := newTestController(t, mock)

	_, err := c.Start(context.Background(), photosynthesis)
	var malformed *MalformedQuizError
	require.ErrorAs(t, err, &malformed)
	assert.Nil(t, c.Session())
	assert.ErrorAs(t, c.Err(), &malformed)
	assert.False(t, c.Loading())
	assert.Equal(t, "Photosynthesis", c.Last().Topic)
}

func TestController_RetakeRegenerates(t *testing.T) {
	mock := llm.NewMockProvider().
		Text(quizJSON(t, sampleQuestions())).
		Text(quizJSON(t, sampleQuestions()))
	c := newTestController(t, mock)

	first, err := c.Start(context.Background(), photosynthesis)
	require.NoError(t, err)
	first.Select(0)

	a, err := c.Retake()
	require.NoError(t, err)
	assert.Equal(t, photosynthesis.Topic, a.Input.Topic)
	assert.Nil(t, c.Session())

	second, err := c.Finish(a, c.Resolve(context.Background(), a))
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 0, second.Score())
	assert.Equal(t, 2, mock.CallCount())
}

func TestController_RetakeWithoutTopic(t *testing.T) {
	c := newTestController(t, llm.NewMockProvider())
	_, err := c.Retake()
	assert.ErrorIs(t, err, ErrNoTopic)
}

func TestController_StaleResultDropped(t *testing.T) {
	c := newTestController(t, llm.NewMockProvider())

	a, err := c.Begin(photosynthesis)
	require.NoError(t, err)
	c.Cancel()
	assert.False(t, c.Loading())

	s, err := c.Finish(a, Result{Questions: sampleQuestions()})
	assert.NoError(t, err)
	assert.Nil(t, s)
	assert.Nil(t, c.Session())
}

func TestController_ResolveTagsRequestID(t *testing.T) {
	var got string
	p := providerFunc(func(ctx context.Context, req llm.Request) (*llm.Response, error) {
		got = llm.RequestIDFrom(ctx)
		return &llm.Response{Content: []byte(quizJSON(t, sampleQuestions()))}, nil
	})
	c := NewController(New(p, DefaultConfig()), nil)

	a, err := c.Begin(photosynthesis)
	require.NoError(t, err)
	r := c.Resolve(context.Background(), a)
	require.NoError(t, r.Err)
	assert.Equal(t, a.ID, got)
}

func TestController_Reset(t *testing.T) {
	mock := llm.NewMockProvider().Text(quizJSON(t, sampleQuestions()))
	c := newTestController(t, mock)
	_, err := c.Start(context.Background(), photosynthesis)
	require.NoError(t, err)

	c.Reset()
	assert.Nil(t, c.Session())
	assert.False(t, c.Loading())
}
