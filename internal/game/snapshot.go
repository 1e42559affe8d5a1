package game

import (
	"github.com/tomz197/handninja/internal/object"
	"github.com/tomz197/handninja/internal/physics"
)

// EntityView is the read-only render data of one live entity.
type EntityView struct {
	X       float64        `json:"x" msgpack:"x"`
	Y       float64        `json:"y" msgpack:"y"`
	Radius  int            `json:"r" msgpack:"r"`
	Kind    object.Kind    `json:"k" msgpack:"k"`
	Variant object.Variant `json:"v,omitempty" msgpack:"v,omitempty"`
}

// HUD holds the values shown over the field.
type HUD struct {
	Score       int        `json:"score" msgpack:"score"`
	Lives       int        `json:"lives" msgpack:"lives"`
	MaxLives    int        `json:"maxLives" msgpack:"maxLives"`
	SecondsLeft int        `json:"secondsLeft" msgpack:"secondsLeft"` // Whole seconds, Time mode
	HighScore   int        `json:"highScore" msgpack:"highScore"`
	Multiplier  int        `json:"multiplier" msgpack:"multiplier"`
	Frozen      bool       `json:"frozen" msgpack:"frozen"`
	Mode        Mode       `json:"mode" msgpack:"mode"`
	Difficulty  Difficulty `json:"difficulty" msgpack:"difficulty"`
}

// Snapshot is everything a renderer needs for one frame. Slices are owned by
// the snapshot and stay valid after the next Tick.
type Snapshot struct {
	State    GameState       `json:"state" msgpack:"state"`
	FieldW   float64         `json:"fieldW" msgpack:"fieldW"`
	FieldH   float64         `json:"fieldH" msgpack:"fieldH"`
	Entities []EntityView    `json:"entities" msgpack:"entities"`
	Trail    []physics.Point `json:"trail" msgpack:"trail"`
	Tip      *physics.Point  `json:"tip,omitempty" msgpack:"tip,omitempty"`
	HUD      HUD             `json:"hud" msgpack:"hud"`
	End      EndReason       `json:"end" msgpack:"end"`
	Events   []Event         `json:"events,omitempty" msgpack:"events,omitempty"`
	Quit     bool            `json:"quit,omitempty" msgpack:"quit,omitempty"`
}

func (c *Controller) snapshot() Snapshot {
	r := &c.round
	s := Snapshot{
		State:    c.machine.State,
		FieldW:   c.tuning.FieldWidth,
		FieldH:   c.tuning.FieldHeight,
		Entities: make([]EntityView, 0, c.store.Len()),
		Trail:    c.tracker.Trail(),
		End:      r.End,
		Quit:     c.quit,
		HUD: HUD{
			Score:       r.Score,
			Lives:       r.Lives,
			MaxLives:    c.tuning.MaxLives,
			SecondsLeft: int(r.TimeLeft.Seconds()),
			HighScore:   c.highScore,
			Multiplier:  r.Multiplier(),
			Frozen:      r.Frozen(),
			Mode:        c.machine.Mode,
			Difficulty:  c.machine.Difficulty,
		},
	}
	if c.tip != nil {
		p := *c.tip
		s.Tip = &p
	}
	if len(c.events) > 0 {
		s.Events = append([]Event(nil), c.events...)
	}
	c.store.Each(func(e *object.Entity) bool {
		s.Entities = append(s.Entities, EntityView{
			X:       e.X,
			Y:       e.Y,
			Radius:  e.Radius,
			Kind:    e.Kind,
			Variant: e.Variant,
		})
		return true
	})
	return s
}
