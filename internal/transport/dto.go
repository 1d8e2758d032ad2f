package transport

type CreateProductRequest struct {
	Reference   string  `json:"reference"`
	Designation string  `json:"designation"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	Family      string  `json:"family"`
	Icon        string  `json:"icon"`
}

type UpdateProductRequest struct {
	Designation *string  `json:"designation"`
	Price       *float64 `json:"price"`
	Unit        *string  `json:"unit"`
	Family      *string  `json:"family"`
	Icon        *string  `json:"icon"`
}

type BatchItemError struct {
	Reference string `json:"reference"`
	Error     string `json:"error"`
}

// BatchResult reports per-item outcomes of a product synchronization run.
// Created+Updated+Failed always equals Total.
type BatchResult struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Failed  int              `json:"failed"`
	Errors  []BatchItemError `json:"errors"`
	Total   int              `json:"total"`
}

type CreateDAArticle struct {
	Reference   string  `json:"reference"`
	Designation string  `json:"designation"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
}

type CreateDARequest struct {
	UserEmail          string            `json:"user_email"`
	UserName           string            `json:"user_name"`
	Site               string            `json:"site"`
	Articles           []CreateDAArticle `json:"articles"`
	AttachmentFilename string            `json:"attachment_filename"`
	Comments           string            `json:"comments"`
}

type UpdateDAStatusRequest struct {
	Status string `json:"status"`
}

type CreateFamilyRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
