package oaf

import (
	"os"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
)

// newLogger wires a logiface.Logger onto the given zerolog.Logger (or a
// disabled stderr logger if none was configured via WithLogger),
// following the teacher corpus's logiface + logiface-zerolog pairing.
func newLogger(zl *zerolog.Logger) *logiface.Logger[*izerolog.Event] {
	if zl == nil {
		disabled := zerolog.New(os.Stderr).Level(zerolog.Disabled)
		zl = &disabled
	}
	return logiface.New[*izerolog.Event](
		izerolog.WithZerolog(*zl),
		logiface.WithLevel[*izerolog.Event](logiface.LevelInformational),
	)
}
