package kadmin

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ZerologAdapter bridges zerolog.Logger into the StdLogger seam so
// structured-logging consumers (several clients built atop sarama wire
// their own logger this way) can swap Logger for one without touching the
// driver. It is optional: the default Logger stays on the standard
// library, matching the teacher exactly.
type ZerologAdapter struct {
	zl zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(zl zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{zl: zl.With().Str("component", "kadmin").Logger()}
}

func (z *ZerologAdapter) Print(v ...any) {
	z.zl.Info().Msg(sprintAll(v...))
}

func (z *ZerologAdapter) Printf(format string, v ...any) {
	z.zl.Info().Msgf(format, v...)
}

func (z *ZerologAdapter) Println(v ...any) {
	z.zl.Info().Msg(sprintAll(v...))
}

func sprintAll(v ...any) string {
	s := ""
	for i, x := range v {
		if i > 0 {
			s += " "
		}
		s += toString(x)
	}
	return s
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}
