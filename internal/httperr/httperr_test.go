package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(t *testing.T, err error, accept string, form any) (*httptest.ResponseRecorder, HTTPError) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	if accept != "" {
		c.Request.Header.Set("Accept", accept)
	}

	RespondWithForm(c, err, form)

	var body HTTPError
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestRespondStatusByKind(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", Validation("price", "invalid_price", "Preço inválido."), http.StatusBadRequest, "invalid_price"},
		{"conflict", Conflict("email", "email_already_exists", "Já existe."), http.StatusConflict, "email_already_exists"},
		{"auth", Auth("login_required"), http.StatusUnauthorized, "login_required"},
		{"not found", NotFoundErr("sale_not_found", "Venda não encontrada."), http.StatusNotFound, "sale_not_found"},
		{"protected", Protected("root_protected", "Não."), http.StatusForbidden, "root_protected"},
		{"persistence", Persistence(errors.New("disk on fire")), http.StatusInternalServerError, "persistence_error"},
		{"unavailable", BusinessError{Kind: KindUnavailable, Code: "checkout_unavailable"}, http.StatusServiceUnavailable, "checkout_unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := respond(t, tc.err, "", nil)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestRespondEchoesFormOnValidation(t *testing.T) {
	form := map[string]string{"name": "Lamp", "price": "abc"}

	w, body := respond(t, Validation("price", "invalid_price", "Preço inválido."), "", form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "price", body.Field)
	assert.Equal(t, map[string]any{"name": "Lamp", "price": "abc"}, body.Form)
}

func TestRespondPersistenceHidesCause(t *testing.T) {
	w, body := respond(t, Persistence(errors.New("pq: relation products does not exist")), "", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation")
	assert.NotEmpty(t, body.Message)
}

func TestRespondAuthRedirectsBrowsers(t *testing.T) {
	w, _ := respond(t, Auth("login_required"), "text/html,application/xhtml+xml", nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))

	w, body := respond(t, Auth("login_required"), "application/json", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, LoginPath, body.Redirect)
}

func TestPersistence(t *testing.T) {
	assert.NoError(t, Persistence(nil))

	be := Conflict("", "product_already_sold", "Vendido.")
	assert.Equal(t, be, Persistence(be))

	cause := errors.New("timeout")
	err := Persistence(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindPersistence, KindOf(err))
	assert.True(t, IsBusiness(err, "persistence_error"))
	assert.False(t, IsBusiness(cause, "persistence_error"))
}
