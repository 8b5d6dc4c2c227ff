package covers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFileHeader(t *testing.T, field, filename string, contents []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(contents)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File[field][0]
}

func TestStoreSave(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Init())

	fh := multipartFileHeader(t, "cover", "upload.jpg", []byte("first"))
	require.NoError(t, store.Save("9780306406157", fh))

	assert.True(t, store.Exists("9780306406157"))
	assert.Equal(t, filepath.Join(store.Dir(), "9780306406157.jpg"), store.Path("9780306406157"))

	data, err := os.ReadFile(store.Path("9780306406157"))
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)
}

func TestStoreSave_Overwrites(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Init())

	require.NoError(t, store.Save("9780306406157", multipartFileHeader(t, "cover", "a.jpg", []byte("first"))))
	require.NoError(t, store.Save("9780306406157", multipartFileHeader(t, "cover", "b.jpg", []byte("second"))))

	f, err := os.Open(store.Path("9780306406157"))
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestStoreRemove_MissingIsNotAnError(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Init())

	assert.NoError(t, store.Remove("9780306406157"))
}
