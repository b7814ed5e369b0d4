package analytics

// Event names understood by the external tag.
const (
	EventViewItem  = "view_item"
	EventCart      = "cart"
	EventFavorite  = "favorite"
	EventBuy       = "buy"
	EventSearch    = "search"
	EventIdentify  = "identify"
	EventAttribute = "attribute"
	EventLogin     = "login"
	EventSignup    = "signup"
)

// ViewItemPayload describes the product on a detail page.
type ViewItemPayload struct {
	ItemID        string `json:"item_id"`
	Name          string `json:"name"`
	Price         int    `json:"price"`
	ItemURL       string `json:"item_url"`
	ItemImageURL  string `json:"item_image_url"`
	LCategoryName string `json:"l_category_name"`
}

// ItemPayload is one cart or order line, denormalized with product details.
type ItemPayload struct {
	ItemID       string `json:"item_id"`
	Name         string `json:"name"`
	Price        int    `json:"price"`
	Quantity     int    `json:"quantity"`
	ItemURL      string `json:"item_url"`
	ItemImageURL string `json:"item_image_url"`
	CategoryName string `json:"category_name"`
}

// CartPayload is the full cart snapshot sent on every cart change.
type CartPayload struct {
	Price          int           `json:"price"`
	Quantity       int           `json:"quantity"`
	Status         bool          `json:"status"`
	Items          []ItemPayload `json:"items"`
	AddedItemID    *string       `json:"added_item_id"`
	DeletedItemID  *string       `json:"deleted_item_id"`
	ItemIDs        []string      `json:"item_ids"`
	ItemNames      []string      `json:"item_names"`
	ItemPrices     []int         `json:"item_prices"`
	ItemQuantities []int         `json:"item_quantities"`
	ItemURLs       []string      `json:"item_urls"`
	ItemImageURLs  []string      `json:"item_image_urls"`
}

// FavoriteItemPayload is one favorited product.
type FavoriteItemPayload struct {
	ItemID       string `json:"item_id"`
	Name         string `json:"name"`
	Price        int    `json:"price"`
	ItemURL      string `json:"item_url"`
	ItemImageURL string `json:"item_image_url"`
	CategoryName string `json:"category_name"`
}

// FavoritePayload is the full favorites snapshot sent on every change.
type FavoritePayload struct {
	Status        bool                  `json:"status"`
	Items         []FavoriteItemPayload `json:"items"`
	AddedItemID   *string               `json:"added_item_id"`
	DeletedItemID *string               `json:"deleted_item_id"`
	ItemIDs       []string              `json:"item_ids"`
	ItemNames     []string              `json:"item_names"`
	ItemPrices    []int                 `json:"item_prices"`
	ItemURLs      []string              `json:"item_urls"`
	ItemImageURLs []string              `json:"item_image_urls"`
}

type BuyPayload struct {
	OrderID  string        `json:"order_id"`
	Price    int           `json:"price"`
	Quantity int           `json:"quantity"`
	Items    []ItemPayload `json:"items"`
}

type SearchPayload struct {
	Keyword     string `json:"keyword"`
	ResultCount int    `json:"result_count"`
}

// IdentifyPayload carries the profile the tag ties the visitor to.
type IdentifyPayload struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Birthday string `json:"birthday,omitempty"`
	Age      *int   `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

// AttributePayload carries demographic attributes; unset ones are omitted.
type AttributePayload struct {
	UserID   string `json:"user_id"`
	Birthday string `json:"birthday,omitempty"`
	Age      *int   `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

type LoginPayload struct {
	UserID string `json:"user_id"`
}

type SignupPayload struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	SignupDate string `json:"signup_date"` // YYYY-MM-DD
}
