package storage

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func TestReadImage(t *testing.T) {
	img, err := ReadImage("small.gif", bytes.NewReader(smallGIF))
	require.NoError(t, err)
	assert.Regexp(t, keyPattern("small.gif"), img.Key)
	assert.Equal(t, "image/gif", img.ContentType)

	_, err = ReadImage("notes.gif", bytes.NewReader([]byte("just some text")))
	assert.ErrorIs(t, err, ErrNotImage)
}

func keyPattern(base string) string {
	return `^posts/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}-` + strings.ReplaceAll(base, ".", `\.`) + `$`
}

func TestImageKey(t *testing.T) {
	assert.Regexp(t, keyPattern("a.png"), ImageKey("../../etc/a.png", ".png"))
	assert.Regexp(t, keyPattern("a.png"), ImageKey(`C:\Users\me\a.png`, ".png"))
	assert.Regexp(t, keyPattern("photo.gif"), ImageKey("photo", ".gif"))
	assert.Regexp(t, keyPattern("image.gif"), ImageKey("", ".gif"))
}

func TestImageKeysDoNotCollide(t *testing.T) {
	a, b := ImageKey("cat.gif", ".gif"), ImageKey("cat.gif", ".gif")
	assert.NotEqual(t, a, b)
	assert.Equal(t, "posts", path.Dir(a))
	assert.Equal(t, "posts", path.Dir(b))
}

func TestFSStore(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFSStore(fs, "/srv/media", "/media/")
	img, err := ReadImage("small.gif", bytes.NewReader(smallGIF))
	require.NoError(t, err)

	require.NoError(t, SaveImage(context.Background(), store, img))
	data, err := afero.ReadFile(fs, "/srv/media/"+img.Key)
	require.NoError(t, err)
	assert.Equal(t, smallGIF, data)
	assert.Equal(t, "/media/"+img.Key, store.URL(img.Key))
	assert.Empty(t, store.URL(""))

	require.NoError(t, store.Delete(context.Background(), img.Key))
	require.NoError(t, store.Delete(context.Background(), img.Key))
	exists, err := afero.Exists(fs, "/srv/media/"+img.Key)
	require.NoError(t, err)
	assert.False(t, exists)
}

type fakeObjects struct {
	puts    map[string][]byte
	types   map[string]string
	deleted []string
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.puts[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	api := &fakeObjects{puts: map[string][]byte{}, types: map[string]string{}}
	store := NewS3Store(api, "media", "https://cdn.example.com")
	img, err := ReadImage("small.gif", bytes.NewReader(smallGIF))
	require.NoError(t, err)

	require.NoError(t, SaveImage(context.Background(), store, img))
	assert.Equal(t, smallGIF, api.puts["media/"+img.Key])
	assert.Equal(t, "image/gif", api.types[img.Key])
	assert.Equal(t, "https://cdn.example.com/"+img.Key, store.URL(img.Key))

	require.NoError(t, store.Delete(context.Background(), img.Key))
	assert.Equal(t, []string{img.Key}, api.deleted)
}

func TestNewS3ClientBuilds(t *testing.T) {
	c := NewS3Client(S3Config{Region: "auto", Endpoint: "https://example.r2.cloudflarestorage.com", AccessKeyID: "k", SecretAccessKey: "s"})
	assert.NotNil(t, c)
}
