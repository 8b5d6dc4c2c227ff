package records

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemlockbooks/hemlock/pkg/binder"
	"github.com/hemlockbooks/hemlock/pkg/covers"
	"github.com/hemlockbooks/hemlock/pkg/errcodes"
)

func setupTestHandler(t *testing.T) (*handler, *echo.Echo) {
	t.Helper()

	db := setupTestDB(t)

	b, err := binder.New()
	require.NoError(t, err)
	e := echo.New()
	e.Binder = b

	h := &handler{
		recordService: NewService(db),
		coverStore:    covers.NewStore(t.TempDir()),
	}
	return h, e
}

func newInsertContext(t *testing.T, e *echo.Echo, table, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/data/:table")
	c.SetParamNames("table")
	c.SetParamValues(table)
	return c, rec
}

func TestHandler_InsertAuthor(t *testing.T) {
	h, e := setupTestHandler(t)

	c, rec := newInsertContext(t, e, "Authors", `{"first_name": "Tamsyn", "last_name": "Muir"}`)
	require.NoError(t, h.insert(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		LastID int64 `json:"lastID"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.LastID)
}

func TestHandler_InsertAuthor_FirstNameRequired(t *testing.T) {
	h, e := setupTestHandler(t)

	c, _ := newInsertContext(t, e, "Authors", `{"last_name": "Muir"}`)
	err := h.insert(c)
	require.Error(t, err)

	ec := &errcodes.Error{}
	require.ErrorAs(t, err, &ec)
	assert.Equal(t, http.StatusBadRequest, ec.HTTPCode)
	assert.Contains(t, ec.Message, "first_name")
}

func TestHandler_Insert_UnknownTable(t *testing.T) {
	h, e := setupTestHandler(t)

	c, _ := newInsertContext(t, e, "users", `{"last_name": "Muir"}`)
	err := h.insert(c)
	require.Error(t, err)

	ec := &errcodes.Error{}
	require.ErrorAs(t, err, &ec)
	assert.Equal(t, http.StatusBadRequest, ec.HTTPCode)
}
