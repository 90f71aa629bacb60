package routes

import (
	"github.com/julienschmidt/httprouter"
	"github.com/terrarium-earth/odysseus"
	"github.com/terrarium-earth/odysseus/database"
	"go.uber.org/zap"
	"net/http"
	"strings"
	"sync/atomic"
)

type routeCtx struct {
	db     *database.Queries
	config *atomic.Pointer[odysseus.ServiceConfig]
	log    *zap.Logger
}

func Router(db *database.Queries, config *atomic.Pointer[odysseus.ServiceConfig], log *zap.Logger) http.Handler {
	base := routeCtx{db, config, log}

	r := httprouter.New()
	r.POST("/convert", base.convertPost)
	r.GET("/conversions", base.conversionsGet)
	r.GET("/conversions/:id", base.conversionGet)
	return r
}

func getBearer(req *http.Request) (string, bool) {
	auth := req.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	return auth[len("Bearer "):], true
}
