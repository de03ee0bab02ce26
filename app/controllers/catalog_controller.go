package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/pawmart/pawmart/app/resources"
	"github.com/pawmart/pawmart/app/services"
	"github.com/pawmart/pawmart/pkg/bind"
	"github.com/pawmart/pawmart/pkg/middleware"
	"github.com/pawmart/pawmart/pkg/response"
	"github.com/pawmart/pawmart/pkg/storage"
)

// maxImageBytes caps a single product image upload.
const maxImageBytes = 8 << 20

type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

func (c *CatalogController) Index(w http.ResponseWriter, r *http.Request) {
	page, perPage := bind.Page(r)
	category := r.URL.Query().Get("category")

	products, pagination, err := c.catalog.List(page, perPage, category)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, resources.NewProductList(products), pagination)
}

func (c *CatalogController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.catalog.Get(paramID(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.NewProduct(product))
}

func (c *CatalogController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, "Malformed request body")
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.Create(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, resources.NewProduct(product))
}

func (c *CatalogController) Update(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, "Malformed request body")
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.Update(paramID(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.NewProduct(product))
}

func (c *CatalogController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.catalog.Delete(paramID(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "Product deleted")
}

// UploadImage accepts a multipart "image" file, writes it to the configured
// disk and appends it to the product gallery.
func (c *CatalogController) UploadImage(w http.ResponseWriter, r *http.Request) {
	productID := paramID(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		response.BadRequest(w, "Image too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.ValidationError(w, map[string]string{"image": "The image field is required."})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		response.ValidationError(w, map[string]string{"image": "The image must be a jpg, png, webp or gif file."})
		return
	}

	path := fmt.Sprintf("products/%d/%d%s", productID, time.Now().UnixNano(), ext)
	if err := storage.PutStream(path, file); err != nil {
		fail(w, r, err)
		return
	}

	image, err := c.catalog.AttachImage(productID, storage.URL(path))
	if err != nil {
		storage.Delete(path)
		fail(w, r, err)
		return
	}
	response.Created(w, image)
}

func (c *CatalogController) Rate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.RatingInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, "Malformed request body")
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rating, err := c.catalog.AddRating(paramID(r, "id"), userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, rating)
}
