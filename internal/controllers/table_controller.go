package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"usertable-api/internal/models"
	"usertable-api/internal/service"
)

type TableController struct {
	schemaService service.SchemaService
}

func NewTableController(schemaService service.SchemaService) *TableController {
	return &TableController{
		schemaService: schemaService,
	}
}

// GetColumns handles GET /api/table/GetColumns
func (tc *TableController) GetColumns(c *gin.Context) {
	columns, err := tc.schemaService.Columns(c.Request.Context())
	if err != nil {
		respondError(c, "get_columns", "Error getting columns", err)
		return
	}

	c.JSON(http.StatusOK, columns)
}

// AddColumns handles POST /api/user/AddColumns with a JSON array of column names
func (tc *TableController) AddColumns(c *gin.Context) {
	var names []string
	if err := c.ShouldBindJSON(&names); err != nil {
		c.String(http.StatusBadRequest, "Error adding columns: "+bindingMessage(err))
		return
	}

	if err := tc.schemaService.AddColumns(c.Request.Context(), names); err != nil {
		respondError(c, "add_columns", "Error adding columns", err)
		return
	}

	c.String(http.StatusOK, "Columns added successfully")
}

// RemoveColumn handles DELETE /api/table/RemoveColumn?columnName=
func (tc *TableController) RemoveColumn(c *gin.Context) {
	var req models.RemoveColumnRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.String(http.StatusBadRequest, "Error removing column: "+bindingMessage(err))
		return
	}

	err := tc.schemaService.RemoveColumn(c.Request.Context(), req.ColumnName)
	if service.KindOf(err) == service.KindNotFound {
		logFailure("remove_column", err)
		c.String(http.StatusBadRequest, fmt.Sprintf("Column '%s' does not exist", req.ColumnName))
		return
	}
	if err != nil {
		respondError(c, "remove_column", "Error removing column", err)
		return
	}

	c.String(http.StatusOK, fmt.Sprintf("Column '%s' removed successfully", req.ColumnName))
}

// RenameColumn handles PUT /api/table/RenameColumn?oldColumnName=&newColumnName=
func (tc *TableController) RenameColumn(c *gin.Context) {
	var req models.RenameColumnRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.String(http.StatusBadRequest, "Error renaming column: "+bindingMessage(err))
		return
	}

	err := tc.schemaService.RenameColumn(c.Request.Context(), req.OldColumnName, req.NewColumnName)
	if service.KindOf(err) == service.KindNotFound {
		logFailure("rename_column", err)
		c.String(http.StatusBadRequest, fmt.Sprintf("Column '%s' does not exist", req.OldColumnName))
		return
	}
	if err != nil {
		respondError(c, "rename_column", "Error renaming column", err)
		return
	}

	c.String(http.StatusOK, fmt.Sprintf("Column '%s' renamed to '%s' successfully", req.OldColumnName, req.NewColumnName))
}
