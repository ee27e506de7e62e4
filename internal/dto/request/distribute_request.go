package request

// DistributeRequest pays the current pot to one member. Creator only.
// Used by:
//   - internal/handler/rotation_handler.go: Distribute
type DistributeRequest struct {
	GroupId     string `json:"group_id" binding:"required"`
	RecipientId string `json:"recipient_id" binding:"required"`
}
