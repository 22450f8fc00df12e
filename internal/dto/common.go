package dto

// ListParams defines the pagination query parameters shared by all list
// endpoints. Out-of-range values are rejected at binding, not clamped.
type ListParams struct {
	Skip  int `form:"skip,default=0" binding:"omitempty,min=0"`
	Limit int `form:"limit,default=100" binding:"omitempty,min=1,max=100"`
}
