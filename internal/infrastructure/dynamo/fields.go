package dynamo

// Attribute names used in lead keys and update expressions.
const (
	fieldLeadID    = "lead_id"
	fieldStatus    = "status"
	fieldMemo      = "memo"
	fieldUpdatedAt = "updated_at"
)
