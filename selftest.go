package trainlights

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"trainlights/leds"
)

// RunSelfTest exercises the LEDs on real hardware, for board
// bring-up. Modes:
//
//	all    - turn every LED on, wait for Enter, turn them off
//	off    - turn every LED off
//	seq    - light each LED in turn for 250ms
//	random - 200 iterations of a random LED flashing
func RunSelfTest(controller *leds.Controller, mode string) error {
	log.Info().Str("mode", mode).Msg("Running LED self test")

	switch mode {
	case "all":
		for led := 1; led <= controller.Count(); led++ {
			if err := controller.On(led); err != nil {
				return err
			}
		}
		fmt.Printf("All %d LEDs are now ON, press Enter to turn them off\n", controller.Count())
		bufio.NewReader(os.Stdin).ReadString('\n')
		return controller.AllOff()

	case "off":
		return controller.AllOff()

	case "seq":
		for led := 1; led <= controller.Count(); led++ {
			if err := controller.On(led); err != nil {
				return err
			}
			time.Sleep(250 * time.Millisecond)
			if err := controller.Off(led); err != nil {
				return err
			}
		}
		return nil

	case "random":
		for i := 1; i <= 200; i++ {
			led := rand.Intn(controller.Count()) + 1
			if err := controller.On(led); err != nil {
				return err
			}
			time.Sleep(250 * time.Millisecond)
			if err := controller.Off(led); err != nil {
				return err
			}

			if i%20 == 0 {
				log.Info().Int("iterations", i).Msg("Self test progress")
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown self test %q (want all, off, seq or random)", mode)
	}
}
