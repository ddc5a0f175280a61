package game

import (
	"fmt"

	"github.com/robotalks/reaction.go/pkg/lcd"
	"github.com/robotalks/reaction.go/pkg/telemetry"
)

// Texts are the fixed screens and result lines shown on the LCD.
type Texts struct {
	Idle         lcd.Screen `toml:"idle"`
	Instructions lcd.Screen `toml:"instructions"`
	GameOver     string     `toml:"game-over"`
	Separator    string     `toml:"separator"`
	Congrats     string     `toml:"congrats"`
	Player1Wins  string     `toml:"player1-wins"`
	Player2Wins  string     `toml:"player2-wins"`
	Tie          string     `toml:"tie"`
}

// DefaultTexts are the stock screens.
var DefaultTexts = Texts{
	Idle: lcd.Screen{
		"     Welcome to     ",
		"-----MakerFaire-----",
		"  Press any button  ",
		"  to begin a game!  ",
	},
	Instructions: lcd.Screen{
		" Press all the lit  ",
		"  buttons together, ",
		"as fast as you can! ",
		"     GOOD LUCK!     ",
	},
	GameOver:    "     GAME OVER!     ",
	Separator:   "--------------------",
	Congrats:    "  Congratulations!  ",
	Player1Wins: "   Player 1 wins!   ",
	Player2Wins: "   Player 2 wins!   ",
	Tie:         "    It is a tie!    ",
}

// Results renders the final screen of a round. A round where one
// player never scored is shown as a single player game.
func (t *Texts) Results(r *Round) lcd.Screen {
	s := r.Scores()
	if s[0] == 0 || s[1] == 0 {
		return lcd.Screen{
			t.GameOver,
			t.Separator,
			fmt.Sprintf("Points = %d", s[0]+s[1]),
			t.Congrats,
		}
	}
	winner := t.Tie
	switch r.Winner() {
	case telemetry.Player1:
		winner = t.Player1Wins
	case telemetry.Player2:
		winner = t.Player2Wins
	}
	return lcd.Screen{
		t.GameOver,
		winner,
		fmt.Sprintf("Player 1 = %d", s[0]),
		fmt.Sprintf("Player 2 = %d", s[1]),
	}
}
