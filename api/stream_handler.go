package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rpupo63/volunteer-connect-backend/changefeed"
	"github.com/rpupo63/volunteer-connect-backend/classify"
	"github.com/rpupo63/volunteer-connect-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type streamHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     Store
	feed      Subscriber
	keepAlive time.Duration
}

func newStreamHandler(store Store, feed Subscriber, keepAlive time.Duration) streamHandler {
	logger := log.With().Str("handlerName", "streamHandler").Logger()
	if keepAlive <= 0 {
		keepAlive = 15 * time.Second
	}
	return streamHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		feed:      feed,
		keepAlive: keepAlive,
	}
}

// getStream pushes the caller's board using Server-Sent Events: once on connect and
// again after every project or application change.
// @Summary Board stream
// @Tags Projects
// @Produce text/event-stream
// @Param status query string false "Open, In Progress, Completed or All"
// @Router /projects/stream [get]
func (h streamHandler) getStream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := parseStatusFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if h.feed == nil {
			h.responder.WriteError(w, errs.NewDependencyFailure("subscribe to changes", errors.New("change feed not configured")))
			return
		}

		ctx := r.Context()
		userID := ctxGetUserID(ctx)

		// One pending signal is enough: the board is recomputed from a fresh snapshot.
		changed := make(chan struct{}, 1)
		onChange := func(changefeed.Change) {
			select {
			case changed <- struct{}{}:
			default:
			}
		}
		for _, collection := range []string{changefeed.Projects, changefeed.Applications} {
			unsubscribe, err := h.feed.Subscribe(ctx, collection, onChange)
			if err != nil {
				h.responder.WriteError(w, errs.NewDependencyFailure("subscribe to changes", err))
				return
			}
			defer unsubscribe()
		}

		rc := http.NewResponseController(w)
		// The server write timeout would otherwise end the stream.
		_ = rc.SetWriteDeadline(time.Time{})

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no") // nginx: disable buffering
		w.WriteHeader(http.StatusOK)

		send := func(event string) bool {
			snapshot, err := h.store.LoadSnapshot(ctx)
			if err != nil {
				h.logger.Warn().Err(err).Msg("failed to load snapshot for stream")
				fmt.Fprintf(w, "event: error\ndata: %s\n\n", `{"error":"failed to load projects"}`)
				return rc.Flush() == nil
			}
			board := classify.BuildBoard(snapshot.Projects, snapshot.Applications, userID, status)
			data, err := json.Marshal(board)
			if err != nil {
				h.logger.Error().Err(err).Msg("failed to marshal board")
				return false
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
				return false
			}
			return rc.Flush() == nil
		}

		if !send("initial") {
			return
		}

		ticker := time.NewTicker(h.keepAlive)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				// Client disconnected
				return
			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				if rc.Flush() != nil {
					return
				}
			case <-changed:
				if !send("update") {
					return
				}
			}
		}
	}
}
