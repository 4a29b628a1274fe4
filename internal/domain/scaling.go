package domain

// ScalingRequest asks whether a recipe can be produced at a target yield
type ScalingRequest struct {
	RecipeID       string `json:"recipeId" binding:"required"`
	TargetPortions int    `json:"targetPortions" binding:"required,gt=0"`
}

// LotAllocation is a read-only view of an available lot for a material.
// SuggestedUse is how much of the lot a first-expiry-first-out draw would take.
type LotAllocation struct {
	LotID         string  `json:"lotId"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unitPrice"`
	BatchNumber   string  `json:"batchNumber"`
	ExpiryDate    *string `json:"expiryDate"`
	Supplier      string  `json:"supplier"`
	QualityStatus string  `json:"qualityStatus"`
	SuggestedUse  float64 `json:"suggestedUse"`
}

// MaterialRequirement is the inventory impact of a scaled batch on one material
type MaterialRequirement struct {
	MaterialID      string          `json:"materialId"`
	MaterialName    string          `json:"materialName"`
	Category        string          `json:"category"`
	Unit            string          `json:"unit"`
	Required        float64         `json:"required"`
	CurrentStock    float64         `json:"currentStock"`
	AfterProduction float64         `json:"afterProduction"`
	IsAvailable     bool            `json:"isAvailable"`
	Shortfall       float64         `json:"shortfall"`
	EstimatedCost   float64         `json:"estimatedCost"`
	InventoryLots   []LotAllocation `json:"inventoryLots"`
}

// InsufficientItem lists a material that cannot cover the scaled batch
type InsufficientItem struct {
	MaterialName string  `json:"materialName"`
	Required     float64 `json:"required"`
	Available    float64 `json:"available"`
	Unit         string  `json:"unit"`
}

// BatchInfo describes the scaled batch
type BatchInfo struct {
	RecipeID                string  `json:"recipeId"`
	RecipeName              string  `json:"recipeName"`
	BaseServingSize         int     `json:"baseServingSize"`
	TargetPortions          int     `json:"targetPortions"`
	ScalingFactor           float64 `json:"scalingFactor"`
	EstimatedProductionTime int     `json:"estimatedProductionTime"`
	EstimatedTotalCost      float64 `json:"estimatedTotalCost"`
	CostPerPortion          float64 `json:"costPerPortion"`
}

// ScalingSummary counts materials by availability
type ScalingSummary struct {
	TotalMaterials        int     `json:"totalMaterials"`
	AvailableMaterials    int     `json:"availableMaterials"`
	InsufficientMaterials int     `json:"insufficientMaterials"`
	TotalShortfallCost    float64 `json:"totalShortfallCost"`
}

// ScalingResponse is the result of a scaling preview
type ScalingResponse struct {
	CanProduce        bool                  `json:"canProduce"`
	BatchInfo         BatchInfo             `json:"batchInfo"`
	InventoryImpact   []MaterialRequirement `json:"inventoryImpact"`
	InsufficientItems []InsufficientItem    `json:"insufficientItems"`
	Summary           ScalingSummary        `json:"summary"`
}
