package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalDisk(t *testing.T) *localDisk {
	t.Helper()
	t.Setenv("STORAGE_LOCAL_ROOT", t.TempDir())
	t.Setenv("STORAGE_URL", "http://localhost:8080/storage/")
	return newLocalDisk()
}

func TestLocalDiskRoundTrip(t *testing.T) {
	d := newTestLocalDisk(t)

	require.NoError(t, d.Put("products/1/front.jpg", []byte("jpeg-bytes")))
	assert.True(t, d.Exists("products/1/front.jpg"))

	data, err := d.Get("products/1/front.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)

	size, err := d.Size("products/1/front.jpg")
	require.NoError(t, err)
	assert.EqualValues(t, len("jpeg-bytes"), size)

	require.NoError(t, d.Delete("products/1/front.jpg"))
	assert.False(t, d.Exists("products/1/front.jpg"))
}

func TestLocalDiskStreams(t *testing.T) {
	d := newTestLocalDisk(t)

	require.NoError(t, d.PutStream("a/b.txt", strings.NewReader("hello")))

	rc, err := d.GetStream("a/b.txt")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestLocalDiskURL(t *testing.T) {
	d := newTestLocalDisk(t)
	assert.Equal(t, "http://localhost:8080/storage/products/1/a.jpg", d.URL("products/1/a.jpg"))
}

func TestLocalDiskMissingFile(t *testing.T) {
	d := newTestLocalDisk(t)

	_, err := d.Get("nope.txt")
	assert.Error(t, err)
	assert.False(t, d.Exists("nope.txt"))
}
