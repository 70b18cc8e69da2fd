package models

// RemoveColumnRequest is bound from the query string of DELETE /api/table/RemoveColumn
type RemoveColumnRequest struct {
	ColumnName string `form:"columnName" binding:"required"`
}

// RenameColumnRequest is bound from the query string of PUT /api/table/RenameColumn
type RenameColumnRequest struct {
	OldColumnName string `form:"oldColumnName" binding:"required"`
	NewColumnName string `form:"newColumnName" binding:"required"`
}
