package products

// ColorOption is one selectable finish for a product. Identity within a
// product is the name.
type ColorOption struct {
	Name     string `json:"name"`
	HexCode  string `json:"hexCode"`
	ImageURL string `json:"imageUrl"`
}

// StorageOption is one selectable capacity tier and its price.
type StorageOption struct {
	Capacity string  `json:"capacity"`
	Price    float64 `json:"price"`
}

// ProductListItem is the catalog's listing shape.
type ProductListItem struct {
	ID        string  `json:"id"`
	Brand     string  `json:"brand"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"basePrice"`
	ImageURL  string  `json:"imageUrl"`
}

// ProductSpecs carries the detail-page hardware summary.
type ProductSpecs struct {
	Screen            string `json:"screen"`
	Resolution        string `json:"resolution"`
	Processor         string `json:"processor"`
	MainCamera        string `json:"mainCamera"`
	SelfieCamera      string `json:"selfieCamera"`
	Battery           string `json:"battery"`
	OS                string `json:"os"`
	ScreenRefreshRate string `json:"screenRefreshRate"`
}

// Product is the catalog's detail shape, including the option lists the
// cart consumes.
type Product struct {
	ID              string            `json:"id"`
	Brand           string            `json:"brand"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	BasePrice       float64           `json:"basePrice"`
	Rating          float64           `json:"rating"`
	Specs           ProductSpecs      `json:"specs"`
	ColorOptions    []ColorOption     `json:"colorOptions"`
	StorageOptions  []StorageOption   `json:"storageOptions"`
	SimilarProducts []ProductListItem `json:"similarProducts"`
}
