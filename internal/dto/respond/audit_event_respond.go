package respond

// AuditEventRespond is one entry of a group's audit trail.
// Used by:
//   - internal/service/audit/service.go: GetGroupTrail
type AuditEventRespond struct {
	Id        string `json:"id"`
	GroupId   string `json:"group_id"`
	Actor     string `json:"actor"`
	EventType string `json:"event_type"`
	Payload   string `json:"payload"`
	CreatedAt string `json:"created_at"`
}
