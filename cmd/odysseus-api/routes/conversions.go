package routes

import (
	"database/sql"
	"encoding/json"
	"errors"
	"github.com/julienschmidt/httprouter"
	"github.com/terrarium-earth/odysseus/database"
	"go.uber.org/zap"
	"net/http"
	"strconv"
)

func (r routeCtx) conversionsGet(rw http.ResponseWriter, req *http.Request, params httprouter.Params) {
	rows, err := r.db.ListConversions(req.Context(), r.config.Load().ListLimit())
	if err != nil {
		r.log.Error("Database error", zap.Error(err))
		http.Error(rw, "Database Error", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []database.Conversion{}
	}
	rw.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(rw).Encode(rows)
}

func (r routeCtx) conversionGet(rw http.ResponseWriter, req *http.Request, params httprouter.Params) {
	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil {
		http.Error(rw, "400 Bad Request", http.StatusBadRequest)
		return
	}
	row, err := r.db.GetConversion(req.Context(), id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		http.Error(rw, "404 Not Found", http.StatusNotFound)
		return
	case err != nil:
		r.log.Error("Database error", zap.Error(err))
		http.Error(rw, "Database Error", http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(rw).Encode(row)
}
