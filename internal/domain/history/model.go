package history

// TrainingHistory is the server-side aggregate a finished session produces.
// The API accumulates it in phases: created empty, then viewing-history
// rows attach themselves on creation, then one update adds the report IDs.
type TrainingHistory struct {
	ID                       int64
	ViewingHistoryIDs        []int64
	PhysicalConditionFormIDs []int64
}

// Update is a partial update to a training history record. Nil slices are
// omitted on the wire so the server only touches the fields present.
type Update struct {
	ViewingHistoryIDs        []int64
	PhysicalConditionFormIDs []int64
}
