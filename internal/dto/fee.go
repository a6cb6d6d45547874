package dto

// GenerateFeesRequest asks for a billing run. An empty period means the
// current month.
type GenerateFeesRequest struct {
	Period string `json:"period" binding:"omitempty,len=7"` // YYYY-MM
}

// GenerateFeesResponse reports how many students were billed.
type GenerateFeesResponse struct {
	Period         string `json:"period"`
	StudentsBilled int    `json:"studentsBilled"`
}
