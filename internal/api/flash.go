package api

import (
	"encoding/gob"
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash is a one-shot notice that survives exactly one redirect.
type Flash struct {
	Level   string // success, warning, danger, info
	Message string
}

func init() {
	gob.Register(Flash{})
}

func flash(c *gin.Context, level, message string) {
	sess := sessions.Default(c)
	sess.AddFlash(Flash{Level: level, Message: message})
	if err := sess.Save(); err != nil {
		log.Println("saving flash:", err)
	}
}

// takeFlashes drains pending notices for rendering.
func takeFlashes(c *gin.Context) []Flash {
	sess := sessions.Default(c)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(); err != nil {
		log.Println("clearing flashes:", err)
	}
	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			out = append(out, f)
		}
	}
	return out
}
