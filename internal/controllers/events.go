package controllers

import (
	"io"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/httputil"
)

func (co Controller) RegisterEventRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsEvents)
	r.GET("", co.StreamEvents)
}

// OptionsEvents returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Events
//	@Success		204
//	@Router			/events [options]
func OptionsEvents(c *gin.Context) {
	httputil.OptionsGet(c)
}

// StreamEvents streams pipeline stage events
//
//	@Summary		Stage events
//	@Description	Streams an event for every stage a message passes through the pipeline as Server-Sent Events. Events of slow clients are dropped.
//	@Tags			Events
//	@Produce		text/event-stream
//	@Success		200	{object}	events.Event
//	@Router			/events [get]
func (co Controller) StreamEvents(c *gin.Context) {
	ch, cancel := co.Broker.Subscribe()
	defer cancel()

	log.Debug().Str("request-id", requestid.Get(c)).Msg("event stream opened")

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(_ io.Writer) bool {
		select {
		case e, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("stage", e)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})

	log.Debug().Str("request-id", requestid.Get(c)).Msg("event stream closed")
}
