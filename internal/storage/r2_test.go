package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	objects map[string]string
	gotIn   *s3.GetObjectInput
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotIn = in
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestBucket_Get(t *testing.T) {
	f := &fakeGetter{objects: map[string]string{"resumes/jane.txt": "Jane Doe"}}
	b := NewBucket(f, "cvs")

	got, err := b.Get(context.Background(), "resumes/jane.txt")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", string(got))
	assert.Equal(t, "cvs", aws.ToString(f.gotIn.Bucket))
}

func TestBucket_GetMissing(t *testing.T) {
	b := NewBucket(&fakeGetter{}, "cvs")
	_, err := b.Get(context.Background(), "nope")
	assert.ErrorContains(t, err, "nope")
}

func TestNewR2Bucket_RequiresAccount(t *testing.T) {
	_, err := NewR2Bucket(context.Background(), R2Config{Bucket: "cvs"})
	assert.Error(t, err)
}

func TestR2Config_Endpoint(t *testing.T) {
	assert.Equal(t, "https://abc123.r2.cloudflarestorage.com", R2Config{AccountID: "abc123"}.endpoint())
}
