package trainlights

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"

	"trainlights/leds"
)

// createEventsHandler streams controller events (on/off/blink/all_off)
// over a websocket until the client goes away.
func createEventsHandler(controller *leds.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			http.Error(w, fmt.Sprintf("websocket upgrade failed: %s", err), http.StatusInternalServerError)
			return
		}
		defer c.Close(websocket.StatusInternalError, "event stream aborted")

		unsubscribe, ch := controller.Subscribe()
		defer unsubscribe()

		for {
			select {
			case <-r.Context().Done():
				c.Close(websocket.StatusNormalClosure, "")
				return

			case event, open := <-ch:
				if !open {
					return
				}

				js, err := json.Marshal(event)
				if err != nil {
					log.Err(err).Msg("Failed to marshal event payload for websocket")
					continue
				}

				if err := writeTimeout(r.Context(), 5*time.Second, c, js); err != nil {
					return
				}
			}
		}
	}
}

func writeTimeout(ctx context.Context, timeout time.Duration, c *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return c.Write(ctx, websocket.MessageText, msg)
}
