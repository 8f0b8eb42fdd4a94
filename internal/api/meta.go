package api

import (
	"net/http"

	"schemata/internal/meta"

	"github.com/gin-gonic/gin"
)

// ===== META HANDLERS =====

type metaTableListItem struct {
	Table   string `json:"table"`
	Columns int    `json:"columns"`
}

func MetaListHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		tables := storage.Tables()
		out := make([]metaTableListItem, 0, len(tables))
		for _, name := range tables {
			_, t, _ := storage.NormalizeTable(name)
			out = append(out, metaTableListItem{
				Table:   name,
				Columns: len(storage.Meta.ColumnNames(t)),
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

type metaTable struct {
	Table                    string             `json:"table"`
	Columns                  []meta.TableColumn `json:"columns"`
	Properties               []string           `json:"properties"`
	ExtendColumn             string             `json:"extendColumn,omitempty"`
	StorageIgnoreNames       []string           `json:"storageIgnore"`
	SerializationIgnoreNames []string           `json:"serializationIgnore"`
}

// MetaTableHandler serves the derived metadata of one table. An optional
// dataType query parameter narrows the column list.
func MetaTableHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, t, ok := storage.NormalizeTable(c.Param("table"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}
		m := storage.Meta
		columns := m.TableColumns(t)
		if raw, ok := c.GetQuery("dataType"); ok {
			var dt meta.DataType
			if err := dt.UnmarshalText([]byte(raw)); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			columns = filterColumns(columns, dt)
		}
		c.JSON(http.StatusOK, metaTable{
			Table:                    name,
			Columns:                  columns,
			Properties:               m.PropertyNames(t),
			ExtendColumn:             m.ExtendColumnName(t),
			StorageIgnoreNames:       m.StorageIgnoreNames(t),
			SerializationIgnoreNames: m.SerializationIgnoreNames(t),
		})
	}
}

func filterColumns(cols []meta.TableColumn, dt meta.DataType) []meta.TableColumn {
	out := make([]meta.TableColumn, 0, len(cols))
	for _, col := range cols {
		if col.DataType == dt {
			out = append(out, col)
		}
	}
	return out
}

type databaseInfo struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

// DatabaseHandler describes the configured connection. The connection
// string is never returned since it usually carries a password.
func DatabaseHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		if storage.DB == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No database configured"})
			return
		}
		c.JSON(http.StatusOK, databaseInfo{
			Type:  storage.DB.Type.String(),
			Name:  storage.DB.Name,
			Owner: storage.DB.Owner,
		})
	}
}
