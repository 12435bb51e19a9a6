package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/AnshJain2033/Backend-Ecommerce-App/apperrors"
	"github.com/AnshJain2033/Backend-Ecommerce-App/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// productForm is the multipart payload of a create or update request.
type productForm struct {
	Name        string   `form:"name" validate:"required"`
	Description string   `form:"description" validate:"required"`
	Price       *float64 `form:"price" validate:"required,gte=0"`
	Quantity    *int     `form:"quantity" validate:"required,gte=0"`
	Category    string   `form:"category" validate:"required"`
	Shipping    *bool    `form:"shipping"`
}

// filterRequest is the JSON body of the filter endpoint: a category
// checklist and an inclusive [min, max] price range.
type filterRequest struct {
	Checked []string  `json:"checked"`
	Radio   []float64 `json:"radio"`
}

// RequestValidator handles all input validation for the product routes.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// ParseProductForm binds and validates the multipart product form,
// including the optional photo upload. The photo size limit is enforced
// here, before the payload is read into memory.
func (rv *RequestValidator) ParseProductForm(c *gin.Context) (services.ProductInput, error) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		return services.ProductInput{}, apperrors.Validation("invalid form data")
	}

	if err := rv.validate.Struct(&form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return services.ProductInput{}, apperrors.Validation(fmt.Sprintf("%s is required", verrs[0].Field()))
		}
		return services.ProductInput{}, apperrors.Validation("invalid product payload")
	}

	categoryID, err := primitive.ObjectIDFromHex(form.Category)
	if err != nil {
		return services.ProductInput{}, apperrors.Validation("invalid category id")
	}

	in := services.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Quantity:    form.Quantity,
		Price:       form.Price,
		CategoryID:  categoryID,
		Shipping:    form.Shipping,
	}

	file, err := c.FormFile("photo")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return in, nil
	case err != nil:
		// No multipart file part at all; the photo is optional.
		return in, nil
	}

	if file.Size > services.MaxPhotoBytes {
		return services.ProductInput{}, apperrors.Validation(
			fmt.Sprintf("photo should be less than %d bytes", services.MaxPhotoBytes))
	}

	f, err := file.Open()
	if err != nil {
		return services.ProductInput{}, apperrors.Validation("could not read photo upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return services.ProductInput{}, apperrors.Validation("could not read photo upload")
	}
	in.PhotoData = data
	in.PhotoType = file.Header.Get("Content-Type")
	return in, nil
}

// ParseFilterRequest binds the filter body and resolves the category ids.
func (rv *RequestValidator) ParseFilterRequest(c *gin.Context) ([]primitive.ObjectID, []float64, error) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, nil, apperrors.Validation("invalid filter payload")
	}

	checked := make([]primitive.ObjectID, 0, len(req.Checked))
	for _, raw := range req.Checked {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, nil, apperrors.Validation("invalid category id in filter")
		}
		checked = append(checked, id)
	}

	if len(req.Radio) != 0 && len(req.Radio) != 2 {
		return nil, nil, apperrors.Validation("price range must have exactly two bounds")
	}
	return checked, req.Radio, nil
}

// ParsePage reads the page path parameter, clamping anything below 1 (or
// unparsable) to the first page.
func (rv *RequestValidator) ParsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParseObjectID reads an ObjectID path parameter.
func (rv *RequestValidator) ParseObjectID(c *gin.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}
