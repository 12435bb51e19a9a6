package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AnshJain2033/Backend-Ecommerce-App/apperrors"
	"github.com/AnshJain2033/Backend-Ecommerce-App/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func multipartProduct(t *testing.T, fields map[string]string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if photo != nil {
		fw, err := w.CreateFormFile("photo", "photo.jpg")
		require.NoError(t, err)
		_, err = fw.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func formContext(t *testing.T, body *bytes.Buffer, contentType string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/products", body)
	req.Header.Set("Content-Type", contentType)
	c.Request = req
	return c
}

func validFields() map[string]string {
	return map[string]string{
		"name":        "Winter Coat",
		"description": "Warm and waterproof",
		"price":       "49.99",
		"quantity":    "5",
		"category":    primitive.NewObjectID().Hex(),
	}
}

func TestParseProductForm(t *testing.T) {
	rv := NewRequestValidator()
	fields := validFields()
	body, contentType := multipartProduct(t, fields, []byte("jpegdata"))

	in, err := rv.ParseProductForm(formContext(t, body, contentType))
	require.NoError(t, err)

	assert.Equal(t, "Winter Coat", in.Name)
	assert.Equal(t, 49.99, *in.Price)
	assert.Equal(t, 5, *in.Quantity)
	assert.Equal(t, fields["category"], in.CategoryID.Hex())
	assert.Equal(t, []byte("jpegdata"), in.PhotoData)
}

func TestParseProductFormPhotoOptional(t *testing.T) {
	rv := NewRequestValidator()
	body, contentType := multipartProduct(t, validFields(), nil)

	in, err := rv.ParseProductForm(formContext(t, body, contentType))
	require.NoError(t, err)
	assert.Empty(t, in.PhotoData)
}

func TestParseProductFormMissingField(t *testing.T) {
	tests := []struct {
		name  string
		field string
	}{
		{"name", "name"},
		{"description", "description"},
		{"price", "price"},
		{"quantity", "quantity"},
		{"category", "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rv := NewRequestValidator()
			fields := validFields()
			delete(fields, tt.field)
			body, contentType := multipartProduct(t, fields, nil)

			_, err := rv.ParseProductForm(formContext(t, body, contentType))
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		})
	}
}

func TestParseProductFormZeroValuesAllowed(t *testing.T) {
	rv := NewRequestValidator()
	fields := validFields()
	fields["price"] = "0"
	fields["quantity"] = "0"
	body, contentType := multipartProduct(t, fields, nil)

	in, err := rv.ParseProductForm(formContext(t, body, contentType))
	require.NoError(t, err)
	assert.Equal(t, 0.0, *in.Price)
	assert.Equal(t, 0, *in.Quantity)
}

func TestParseProductFormBadCategory(t *testing.T) {
	rv := NewRequestValidator()
	fields := validFields()
	fields["category"] = "not-an-object-id"
	body, contentType := multipartProduct(t, fields, nil)

	_, err := rv.ParseProductForm(formContext(t, body, contentType))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestParseProductFormPhotoTooLarge(t *testing.T) {
	rv := NewRequestValidator()
	body, contentType := multipartProduct(t, validFields(), make([]byte, services.MaxPhotoBytes+1))

	_, err := rv.ParseProductForm(formContext(t, body, contentType))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func jsonContext(body string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/products/filter", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c
}

func TestParseFilterRequest(t *testing.T) {
	rv := NewRequestValidator()
	id := primitive.NewObjectID()

	checked, radio, err := rv.ParseFilterRequest(jsonContext(
		`{"checked": ["` + id.Hex() + `"], "radio": [20, 59.99]}`))
	require.NoError(t, err)

	require.Len(t, checked, 1)
	assert.Equal(t, id, checked[0])
	assert.Equal(t, []float64{20, 59.99}, radio)
}

func TestParseFilterRequestEmpty(t *testing.T) {
	rv := NewRequestValidator()

	checked, radio, err := rv.ParseFilterRequest(jsonContext(`{}`))
	require.NoError(t, err)
	assert.Empty(t, checked)
	assert.Empty(t, radio)
}

func TestParseFilterRequestBadRange(t *testing.T) {
	rv := NewRequestValidator()

	_, _, err := rv.ParseFilterRequest(jsonContext(`{"radio": [20]}`))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestParseFilterRequestBadCategoryID(t *testing.T) {
	rv := NewRequestValidator()

	_, _, err := rv.ParseFilterRequest(jsonContext(`{"checked": ["xyz"]}`))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"valid", "4", 4},
		{"zero clamps", "0", 1},
		{"negative clamps", "-2", 1},
		{"garbage clamps", "abc", 1},
	}

	rv := NewRequestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Params = gin.Params{{Key: "page", Value: tt.raw}}
			assert.Equal(t, tt.want, rv.ParsePage(c))
		})
	}
}

func TestParseObjectID(t *testing.T) {
	rv := NewRequestValidator()
	id := primitive.NewObjectID()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "pid", Value: id.Hex()}}

	got, err := rv.ParseObjectID(c, "pid")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	c.Params = gin.Params{{Key: "pid", Value: "bogus"}}
	_, err = rv.ParseObjectID(c, "pid")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
