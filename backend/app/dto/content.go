package dto

type RecipeIngredientInput struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	Cost         float64 `json:"cost"`
}

type RecipeRequest struct {
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	Servings        int                     `json:"servings"`
	PreparationTime *int                    `json:"preparation_time"`
	Difficulty      string                  `json:"difficulty"`
	Instructions    string                  `json:"instructions"`
	TotalCost       float64                 `json:"total_cost"`
	OperationalCost float64                 `json:"operational_cost"`
	FinalCost       float64                 `json:"final_cost"`
	SellingPrice    float64                 `json:"selling_price"`
	ProfitMargin    float64                 `json:"profit_margin"`
	NetProfit       float64                 `json:"net_profit"`
	CategoryID      *uint                   `json:"category_id"`
	Ingredients     []RecipeIngredientInput `json:"ingredients"`
}

type IngredientRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Unit           string  `json:"unit"`
	UnitCost       float64 `json:"unit_cost"`
	Stock          float64 `json:"stock"`
	MinStock       float64 `json:"min_stock"`
	ExpirationDate string  `json:"expiration_date"`
	CategoryID     *uint   `json:"category_id"`
	SupplierID     *string `json:"supplier_id"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type SupplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type TicketRequest struct {
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}
