package request

type GetAvailabilityQuery struct {
	StudioID string `form:"studio_id" binding:"required,uuid"`
	Date     string `form:"date" binding:"required"`
}

type ListBlockedWindowsQuery struct {
	StudioID string `form:"studio_id" binding:"required,uuid"`
	Date     string `form:"date" binding:"required"`
}
