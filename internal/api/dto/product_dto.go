package dto

// UploadProductRequest payload for product creation.
type UploadProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	ImageURLs   []string `json:"imageUrl"`
	Stock       int      `json:"stock"`
}

// EditProductRequest payload for partial product updates. Pointer fields
// distinguish absent from present-and-zero; stock 0 must survive an edit.
type EditProductRequest struct {
	ProductID   string   `json:"productId"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURLs   []string `json:"imageUrl"`
	Stock       *int     `json:"stock"`
}
