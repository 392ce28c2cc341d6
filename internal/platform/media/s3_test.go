package media

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockObjectAPI struct {
	PutObjectFunc    func(in *s3.PutObjectInput) (*s3.PutObjectOutput, error)
	DeleteObjectFunc func(in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error)
}

func (m *mockObjectAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(in)
	}
	return &s3.PutObjectOutput{}, nil
}

func (m *mockObjectAPI) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if m.DeleteObjectFunc != nil {
		return m.DeleteObjectFunc(in)
	}
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage_Put(t *testing.T) {
	t.Parallel()

	var got *s3.PutObjectInput
	api := &mockObjectAPI{PutObjectFunc: func(in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		got = in
		return &s3.PutObjectOutput{}, nil
	}}
	s := newS3Storage(api, "foodgram", "https://cdn.test/foodgram/")

	require.NoError(t, s.Put(context.Background(), "avatars/a.png", []byte("png"), "image/png"))

	require.NotNil(t, got)
	assert.Equal(t, "foodgram", aws.ToString(got.Bucket))
	assert.Equal(t, "avatars/a.png", aws.ToString(got.Key))
	assert.Equal(t, "image/png", aws.ToString(got.ContentType))
	body, err := io.ReadAll(got.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), body)
	assert.Equal(t, "https://cdn.test/foodgram/avatars/a.png", s.URL("avatars/a.png"))
}

func TestS3Storage_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("access denied")
	api := &mockObjectAPI{
		PutObjectFunc: func(*s3.PutObjectInput) (*s3.PutObjectOutput, error) { return nil, boom },
		DeleteObjectFunc: func(*s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
			return nil, boom
		},
	}
	s := newS3Storage(api, "b", "https://cdn.test")

	assert.ErrorIs(t, s.Put(context.Background(), "k", nil, "image/png"), boom)
	assert.ErrorIs(t, s.Delete(context.Background(), "k"), boom)
}
