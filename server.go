package trainlights

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"trainlights/leds"
)

/////////////////////
// Response helpers

func RespondText(w http.ResponseWriter, body string) {
	w.Write([]byte(body))
}

func RespondJSON(w http.ResponseWriter, body any) {
	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		RespondText(w, err.Error())
	}
}

func RespondNotFound(w http.ResponseWriter, body string) {
	w.WriteHeader(http.StatusNotFound)
	if body == "" {
		body = "Not found"
	}
	RespondText(w, body)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	RespondText(w, message)
}

// RespondError maps controller errors onto status codes: caller
// mistakes are 400, missing LEDs 404, hardware failures 500.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, leds.ErrInvalidParameter):
		RespondBadRequest(w, err.Error())
	case errors.Is(err, leds.ErrNotFound):
		RespondNotFound(w, err.Error())
	default:
		w.WriteHeader(http.StatusInternalServerError)
		RespondText(w, err.Error())
	}
}

/////////////////////
// Wire shapes

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type LedResponse struct {
	Led   int    `json:"led"`
	State string `json:"state"`
}

type BlinkRequest struct {
	FrequencyMs int64 `json:"frequency_ms"`
}

func ok(w http.ResponseWriter, format string, args ...any) {
	RespondJSON(w, StatusResponse{
		Status:  "ok",
		Message: fmt.Sprintf(format, args...),
	})
}

// ledParam pulls the {led} URL param. Anything that does not name one
// of the 24 LEDs is a 404, matching how the board is addressed.
func ledParam(w http.ResponseWriter, r *http.Request, controller *leds.Controller) (int, bool) {
	led, err := strconv.Atoi(chi.URLParam(r, "led"))
	if err != nil || !controller.IsValid(led) {
		RespondNotFound(w, "no such LED")
		return 0, false
	}
	return led, true
}

func NewRouter(controller *leds.Controller) *chi.Mux {
	r := chi.NewRouter()
	r.Use(LoggerMiddleware(&log.Logger))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		ok(w, "Train Set Control API - LED Control Only")
	})

	r.Route("/api/leds", func(r chi.Router) {
		// LED state is deliberately not tracked, so every query
		// answers "unknown"
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			all := make([]LedResponse, 0, controller.Count())
			for led := 1; led <= controller.Count(); led++ {
				all = append(all, LedResponse{Led: led, State: "unknown"})
			}
			RespondJSON(w, all)
		})

		r.Post("/all/off", func(w http.ResponseWriter, r *http.Request) {
			if err := controller.AllOff(); err != nil {
				RespondError(w, err)
				return
			}
			ok(w, "All LEDs turned off and blinking cancelled")
		})

		r.Get("/{led}", func(w http.ResponseWriter, r *http.Request) {
			led, valid := ledParam(w, r, controller)
			if !valid {
				return
			}
			RespondJSON(w, LedResponse{Led: led, State: "unknown"})
		})

		r.Post("/{led}/on", func(w http.ResponseWriter, r *http.Request) {
			led, valid := ledParam(w, r, controller)
			if !valid {
				return
			}
			if err := controller.On(led); err != nil {
				RespondError(w, err)
				return
			}
			ok(w, "LED %d turned on", led)
		})

		r.Post("/{led}/off", func(w http.ResponseWriter, r *http.Request) {
			led, valid := ledParam(w, r, controller)
			if !valid {
				return
			}
			if err := controller.Off(led); err != nil {
				RespondError(w, err)
				return
			}
			ok(w, "LED %d turned off", led)
		})

		r.Post("/{led}/blink", func(w http.ResponseWriter, r *http.Request) {
			led, valid := ledParam(w, r, controller)
			if !valid {
				return
			}

			var req BlinkRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				RespondBadRequest(w, "invalid blink request body")
				return
			}

			period := time.Duration(req.FrequencyMs) * time.Millisecond
			if err := controller.Blink(led, period); err != nil {
				RespondError(w, err)
				return
			}
			ok(w, "LED %d blinking at %dms interval", led, req.FrequencyMs)
		})
	})

	r.Get("/api/events", createEventsHandler(controller))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

func StartServer(config *Config, controller *leds.Controller) error {
	r := NewRouter(controller)

	address := config.Address()
	log.Info().Str("listen", address).Msg("launching server")

	daemon.SdNotify(false, daemon.SdNotifyReady)

	return http.ListenAndServe(address, r)
}
