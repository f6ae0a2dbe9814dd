package scenario

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"balance/engine"
	"balance/game"
)

// Attribute paths understood by the engine's modifiers manager.
const (
	RepeatTime   = "Attack/Ranged/RepeatTime"
	PrepareTime  = "Attack/Ranged/PrepareTime"
	PierceDamage = "Attack/Ranged/Damage/Pierce"
)

// Cavalry is the unit class every built-in modifier affects.
const Cavalry = "Cavalry"

//go:embed templates/modifier.js
var modifierSource string

var modifierTemplate = template.Must(template.New("modifier").Parse(modifierSource))

// Modifier applies a balance change, scaled by value, to a freshly reset scenario.
type Modifier func(ctx context.Context, e engine.Engine, value float64) error

// ModifierCode renders the script multiplying parameter for the given unit
// class of a player.
func ModifierCode(player int, class, parameter string, multiplier float64) (string, error) {
	var b strings.Builder
	err := modifierTemplate.Execute(&b, struct {
		Player     int
		Class      string
		Parameter  string
		Multiplier string
	}{
		Player:     player,
		Class:      class,
		Parameter:  parameter,
		Multiplier: strconv.FormatFloat(multiplier, 'g', -1, 64),
	})
	if err != nil {
		return "", fmt.Errorf("render modifier: %w", err)
	}
	return b.String(), nil
}

// Scale multiplies each parameter of the player's units of class by the value,
// in the given order.
func Scale(class string, parameters ...string) Modifier {
	return func(ctx context.Context, e engine.Engine, value float64) error {
		for _, parameter := range parameters {
			code, err := ModifierCode(game.Player, class, parameter, value)
			if err != nil {
				return err
			}
			if _, err := e.Evaluate(ctx, code); err != nil {
				return fmt.Errorf("failed to scale %s by %v: %w", parameter, value, err)
			}
		}
		return nil
	}
}

func ScaleRepeatTime() Modifier {
	return Scale(Cavalry, RepeatTime)
}

func ScalePrepareTime() Modifier {
	return Scale(Cavalry, PrepareTime)
}

// ScaleAttackSpeed scales both the prepare and the repeat time of ranged attacks.
func ScaleAttackSpeed() Modifier {
	return Scale(Cavalry, PrepareTime, RepeatTime)
}

func ScalePierceDamage() Modifier {
	return Scale(Cavalry, PierceDamage)
}

// ModifierByName resolves the modifier names used in experiment configs.
func ModifierByName(name string) (Modifier, error) {
	switch name {
	case "", "attack_speed":
		return ScaleAttackSpeed(), nil
	case "repeat_time":
		return ScaleRepeatTime(), nil
	case "prepare_time":
		return ScalePrepareTime(), nil
	case "pierce_damage":
		return ScalePierceDamage(), nil
	default:
		return nil, fmt.Errorf("unknown modifier %q", name)
	}
}
